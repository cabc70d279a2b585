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

package ast

import (
	"fmt"
	"strings"

	"github.com/purpleidea/clipscript/lang/funcs"
	"github.com/purpleidea/clipscript/lang/interfaces"
	"github.com/purpleidea/clipscript/lang/types"
	"github.com/purpleidea/clipscript/util/errwrap"
)

// FuncDef is a function that was defined by a script. It is registered like any
// other function, and when it is called, its body is evaluated in a new scope
// where the parameters are bound as local variables.
//
// The new scope contains the parameters and the global variables of the host.
// The locals of the caller, and those of the place where the function was
// defined, are not visible.
type FuncDef struct {
	// Name is the name that the function is registered as.
	Name string

	// Params are the parameter names, in order.
	Params []string

	// Numeric has one entry per parameter. A numeric parameter accepts
	// ints and floats, and always receives a float. The others accept a
	// value of any kind.
	Numeric []bool

	// Body is the expression that is evaluated for each call. The FuncDef
	// owns this ref, and releases it on Close.
	Body *Ref

	sig    *funcs.Signature
	policy *funcs.CoercionPolicy // of the registry it was registered in
}

// Init validates the definition and builds its signature.
func (obj *FuncDef) Init() error {
	if obj.Name == "" {
		return fmt.Errorf("function needs a name")
	}
	if len(obj.Numeric) != len(obj.Params) {
		return fmt.Errorf("function `%s` has %d params and %d numeric flags", obj.Name, len(obj.Params), len(obj.Numeric))
	}
	if _, err := obj.Body.Expr(); err != nil {
		return errwrap.Wrapf(err, "function `%s` has no body", obj.Name)
	}
	sig, err := funcs.ParseSignature(obj.Signature())
	if err != nil {
		return errwrap.Wrapf(err, "function `%s` has invalid params", obj.Name)
	}
	obj.sig = sig
	return nil
}

// Signature returns the signature token string for this definition. Every
// parameter is named and required.
func (obj *FuncDef) Signature() string {
	var b strings.Builder
	for i, name := range obj.Params {
		kind := types.KindAny
		if i < len(obj.Numeric) && obj.Numeric[i] {
			kind = types.KindFloat
		}
		b.WriteString("[" + name + "]")
		b.WriteByte(kind.Letter())
	}
	b.WriteString(interfaces.SigRequiredSep) // all of the above are required
	return b.String()
}

// String returns a short representation of this definition.
func (obj *FuncDef) String() string {
	return fmt.Sprintf("func %s(%s)", obj.Name, strings.Join(obj.Params, ", "))
}

// Register adds this definition to the registry as one more overload of its
// name. The module path is used for the canonical name, and may be empty.
func (obj *FuncDef) Register(registry *funcs.Registry, modulePath string) (*funcs.Record, error) {
	if obj.sig == nil {
		if err := obj.Init(); err != nil {
			return nil, err
		}
	}
	record, err := registry.Register(obj.Name, obj.Signature(), obj.call, obj, modulePath)
	if err != nil {
		return nil, err
	}
	obj.policy = registry.Policy
	return record, nil
}

// call is the entry point that the registry runs.
func (obj *FuncDef) call(args *funcs.Args, userData interface{}, env interfaces.Env) (types.Value, error) {
	return obj.Run(args, env)
}

// Run evaluates the body with already bound arguments.
func (obj *FuncDef) Run(args *funcs.Args, caller interfaces.Env) (types.Value, error) {
	env := caller.Child()
	for i, name := range obj.Params {
		v := args.Get(i)
		if i < len(obj.Numeric) && obj.Numeric[i] && types.KindOf(v) == types.KindInt {
			v = &types.FloatValue{V: float64(v.Int())}
		}
		if err := env.Set(name, v); err != nil {
			return nil, err
		}
	}
	return Evaluate(env, obj.Body)
}

// Invoke binds the arguments to the parameters with the same rules that the
// registry uses, including its coercion policy, and evaluates the body. The names list has the name of each
// argument, or the empty string for a positional one.
func (obj *FuncDef) Invoke(args []types.Value, names []string, caller interfaces.Env) (types.Value, error) {
	if obj.sig == nil {
		if err := obj.Init(); err != nil {
			return nil, err
		}
	}
	policy := obj.policy
	if policy == nil { // never registered
		policy = funcs.DefaultPolicy()
	}
	bound, err := funcs.Bind(obj.sig, args, names, nil)
	if err != nil {
		if bound, err = funcs.Bind(obj.sig, args, names, policy); err != nil {
			return nil, errwrap.Wrapf(err, "can't call %s", obj)
		}
	}
	return obj.Run(bound, caller)
}

// Close releases the body.
func (obj *FuncDef) Close() error {
	if obj.Body == nil {
		return nil
	}
	obj.Body.Release()
	obj.Body = nil
	return nil
}
