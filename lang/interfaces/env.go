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

package interfaces

import (
	"fmt"
	"sort"
	"strings"

	"github.com/purpleidea/clipscript/lang/types"
	"github.com/purpleidea/clipscript/util/errwrap"
)

// Env is the environment that an expression is evaluated in. It holds the
// variables that are visible, and it is the path through which function calls
// reach the registry.
type Env interface {
	// Get returns the value of a variable. Local variables shadow the
	// global ones. If the name isn't bound anywhere, ErrUndefinedVariable
	// is returned.
	Get(name string) (types.Value, error)

	// Set binds a local variable, replacing any previous value.
	Set(name string, value types.Value) error

	// SetGlobal binds a variable in the global scope, which every
	// environment of this host can see.
	SetGlobal(name string, value types.Value) error

	// Invoke resolves the named function against the given arguments and
	// runs it. The names list is as long as args, and holds the empty
	// string for each positional argument.
	Invoke(name string, args []types.Value, names []string) (types.Value, error)

	// Child returns a fresh environment with no local variables that
	// shares the registry and the global scope with this one.
	Child() Env
}

// Scope is a mapping between variable identifiers and their current values.
// Identifiers are case insensitive, and are stored folded to lower case.
type Scope struct {
	Variables map[string]types.Value
}

// EmptyScope returns the zero, empty value for the scope, with all the internal
// maps initialized appropriately.
func EmptyScope() *Scope {
	return &Scope{
		Variables: make(map[string]types.Value),
	}
}

// InitScope initializes any uninitialized part of the struct. It is safe to use
// on scopes with existing data.
func (obj *Scope) InitScope() {
	if obj.Variables == nil {
		obj.Variables = make(map[string]types.Value)
	}
}

// Fold returns the form of the identifier that is used as the map key.
func Fold(name string) string {
	return strings.ToLower(name)
}

// Lookup returns the value bound to name, and whether it was found.
func (obj *Scope) Lookup(name string) (types.Value, bool) {
	if obj == nil || obj.Variables == nil {
		return nil, false
	}
	v, exists := obj.Variables[Fold(name)]
	return v, exists
}

// Bind sets name to the value, replacing any previous binding.
func (obj *Scope) Bind(name string, value types.Value) {
	obj.InitScope() // safety
	obj.Variables[Fold(name)] = value
}

// Copy makes a copy of the Scope struct. This ensures that if the internal map
// is changed, it doesn't affect other copies of the Scope. The values are not
// copied, since they are immutable.
func (obj *Scope) Copy() *Scope {
	variables := make(map[string]types.Value)
	if obj != nil { // allow copying nil scopes
		for k, v := range obj.Variables { // copy
			variables[k] = v
		}
	}
	return &Scope{
		Variables: variables,
	}
}

// Merge takes an existing scope and merges a scope on top of it. If any
// elements had to be overwritten, then the error result will contain some info.
// Even if this errors, the scope will have been merged successfully. The merge
// runs in a deterministic order so that errors will be consistent.
func (obj *Scope) Merge(scope *Scope) error {
	var err error
	// collect names so we can iterate in a deterministic order
	names := []string{}
	for name := range scope.Variables {
		names = append(names, name)
	}
	sort.Strings(names)

	obj.InitScope() // safety

	for _, name := range names {
		if _, exists := obj.Variables[name]; exists {
			e := fmt.Errorf("variable `%s` was overwritten", name)
			err = errwrap.Append(err, e)
		}
		obj.Variables[name] = scope.Variables[name]
	}
	return err
}

// IsEmpty returns whether or not a scope is empty or not.
func (obj *Scope) IsEmpty() bool {
	return obj == nil || len(obj.Variables) == 0
}

// Names returns the sorted list of bound identifiers.
func (obj *Scope) Names() []string {
	names := []string{}
	if obj == nil {
		return names
	}
	for name := range obj.Variables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
