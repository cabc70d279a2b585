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

// Package funcs contains the function registry, the signature mini-language,
// and the overload resolution that picks one function for each call.
package funcs

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/purpleidea/clipscript/lang/interfaces"
	"github.com/purpleidea/clipscript/lang/types"
)

// Func is the entry point of a registered function. It receives the bound
// arguments, the opaque user data that it was registered with, and the
// environment of the caller, which it may use to call other functions.
type Func func(args *Args, userData interface{}, env interfaces.Env) (types.Value, error)

// Record is a registered function. It is never modified after registration.
type Record struct {
	// Name is the name that scripts call the function by.
	Name string

	// CanonicalName is the name qualified by the module which provided
	// the function, eg: `core_Trim`. It picks out one module's overloads
	// when several modules use the same name.
	CanonicalName string

	// Sig is the parsed signature.
	Sig *Signature

	// Fn is the entry point.
	Fn Func

	// UserData is passed to every call of Fn.
	UserData interface{}

	// ModulePath is the path of the extension module that registered this
	// function. It is empty for the functions of the host itself.
	ModulePath string

	// Duplicate is true if another record with the same name and an equal
	// signature was registered before this one.
	Duplicate bool
}

// String returns a visual representation of the record.
func (obj *Record) String() string {
	return fmt.Sprintf("%s(%s)", obj.CanonicalName, obj.Sig)
}

// Call runs the entry point with already bound arguments. Errors are passed
// through unchanged.
func (obj *Record) Call(args *Args, env interfaces.Env) (types.Value, error) {
	v, err := obj.Fn(args, obj.UserData, env)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return types.Undefined, nil
	}
	return v, nil
}

// Qualifier returns the module qualifier for a module path. This is the base
// name of the file without the extension, or CoreModule if the path is empty.
func Qualifier(modulePath string) string {
	if modulePath == "" {
		return interfaces.CoreModule
	}
	base := filepath.Base(modulePath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// CanonicalName returns the canonical name of a function.
func CanonicalName(name, modulePath string) string {
	return Qualifier(modulePath) + interfaces.CanonicalSep + name
}
