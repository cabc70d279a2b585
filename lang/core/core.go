// Mgmt
// Copyright (C) James Shubin and the project contributors
// Written by James Shubin <james@shubin.ca> and the project contributors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package core contains the builtin functions of the host. They are registered
// under the `core` module qualifier, so each of them can also be called by its
// canonical name, eg: `core_Trim`.
package core

import (
	"fmt"

	"github.com/purpleidea/clipscript/clip"
	"github.com/purpleidea/clipscript/lang/funcs"
	"github.com/purpleidea/clipscript/lang/types"
	"github.com/purpleidea/clipscript/util/errwrap"
)

// Builtin is the static description of one builtin function.
type Builtin struct {
	// Name is the name that scripts call it by.
	Name string

	// Sig is the signature in the token mini-language.
	Sig string

	// F is the entry point.
	F funcs.Func

	// Runtime is true if the entry point needs the clip runtime as its user
	// data.
	Runtime bool
}

// builtins is the list of every registered builtin. Each file adds its own.
var builtins = []*Builtin{}

// register adds to the list of builtins. It should only be called from init.
func register(name, sig string, f funcs.Func, runtime bool) {
	builtins = append(builtins, &Builtin{
		Name:    name,
		Sig:     sig,
		F:       f,
		Runtime: runtime,
	})
}

// Builtins returns the list of builtin functions.
func Builtins() []*Builtin {
	result := []*Builtin{}
	result = append(result, builtins...)
	return result
}

// Register puts every builtin into the registry. The runtime is the user data
// of the clip functions, which add the clips they build to its graph. It may
// only be nil if none of those functions are ever called.
func Register(registry *funcs.Registry, runtime *clip.Runtime) error {
	var reterr error
	for _, b := range builtins {
		var userData interface{}
		if b.Runtime {
			userData = runtime
		}
		if _, err := registry.Register(b.Name, b.Sig, b.F, userData, ""); err != nil {
			reterr = errwrap.Append(reterr, errwrap.Wrapf(err, "could not register %s", b.Name))
		}
	}
	return reterr
}

// runtimeOf returns the clip runtime from the user data.
func runtimeOf(userData interface{}) (*clip.Runtime, error) {
	runtime, ok := userData.(*clip.Runtime)
	if !ok || runtime == nil {
		return nil, fmt.Errorf("no clip runtime available")
	}
	return runtime, nil
}

// boolValue is a small helper.
func boolValue(b bool) types.Value {
	return &types.BoolValue{V: b}
}
