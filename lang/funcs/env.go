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

package funcs

import (
	"github.com/purpleidea/clipscript/lang/interfaces"
	"github.com/purpleidea/clipscript/lang/types"
	"github.com/purpleidea/clipscript/util/errwrap"
)

// Env is the environment of one running script or script function call. The
// registry and the global scope are shared by all of the environments of a
// host, but each one has its own local variables.
type Env struct {
	Registry *Registry
	Globals  *interfaces.Scope
	Locals   *interfaces.Scope

	Debug bool
	Logf  func(format string, v ...interface{})
}

// NewEnv builds a top level environment for a registry, with an empty global
// scope.
func NewEnv(registry *Registry) *Env {
	return &Env{
		Registry: registry,
		Globals:  interfaces.EmptyScope(),
		Locals:   interfaces.EmptyScope(),
		Logf:     func(format string, v ...interface{}) {},
	}
}

// Get returns the value of a variable. Locals shadow globals.
func (obj *Env) Get(name string) (types.Value, error) {
	if v, exists := obj.Locals.Lookup(name); exists {
		return v, nil
	}
	if v, exists := obj.Globals.Lookup(name); exists {
		return v, nil
	}
	return nil, errwrap.Wrapf(interfaces.ErrUndefinedVariable, "`%s`", name)
}

// Set binds a local variable.
func (obj *Env) Set(name string, value types.Value) error {
	obj.Locals.Bind(name, value)
	return nil
}

// SetGlobal binds a global variable.
func (obj *Env) SetGlobal(name string, value types.Value) error {
	obj.Globals.Bind(name, value)
	return nil
}

// Invoke resolves the call in the registry and runs the chosen entry point
// with this environment. Errors from the entry point are passed through as is.
func (obj *Env) Invoke(name string, args []types.Value, names []string) (types.Value, error) {
	record, bound, err := obj.Registry.Resolve(name, args, names)
	if err != nil {
		return nil, err
	}
	if obj.Debug {
		obj.Logf("call: %s", record)
	}
	return record.Call(bound, obj)
}

// Child returns a new environment with the same registry and globals, and no
// local variables.
func (obj *Env) Child() interfaces.Env {
	return &Env{
		Registry: obj.Registry,
		Globals:  obj.Globals,
		Locals:   interfaces.EmptyScope(),
		Debug:    obj.Debug,
		Logf:     obj.Logf,
	}
}
