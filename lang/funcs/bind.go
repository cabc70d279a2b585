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
	"fmt"

	"github.com/purpleidea/clipscript/clip"
	"github.com/purpleidea/clipscript/lang/interfaces"
	"github.com/purpleidea/clipscript/lang/types"
	"github.com/purpleidea/clipscript/util/errwrap"
)

// Args are the arguments of a call after they were bound to the parameters of
// the chosen signature. There is exactly one slot per parameter. A slot of an
// optional parameter that was not passed is unset.
type Args struct {
	Sig *Signature

	values []types.Value // nil means unset
}

// NewArgs builds the arguments for a signature from one value per parameter.
// A nil or undefined value leaves that slot unset. This is mostly useful in
// tests and for calling an entry point directly.
func NewArgs(sig *Signature, values ...types.Value) (*Args, error) {
	if len(values) > len(sig.Params) {
		return nil, fmt.Errorf("too many values for %s", sig.Describe())
	}
	obj := &Args{
		Sig:    sig,
		values: make([]types.Value, len(sig.Params)),
	}
	for i, v := range values {
		if types.IsDefined(v) {
			obj.values[i] = v
		}
	}
	return obj, nil
}

// Len returns the number of slots, which is the number of parameters.
func (obj *Args) Len() int {
	return len(obj.values)
}

// Defined returns true if slot i holds a value. It is false for an omitted
// optional parameter, and for an optional parameter that was passed undefined.
func (obj *Args) Defined(i int) bool {
	return i >= 0 && i < len(obj.values) && types.IsDefined(obj.values[i])
}

// Get returns the value in slot i, or types.Undefined if it is unset.
func (obj *Args) Get(i int) types.Value {
	if !obj.Defined(i) {
		return types.Undefined
	}
	return obj.values[i]
}

// Lookup returns the value of the named parameter, and whether it was set.
func (obj *Args) Lookup(name string) (types.Value, bool) {
	i, ok := obj.Sig.Lookup(name)
	if !ok || !obj.Defined(i) {
		return types.Undefined, false
	}
	return obj.values[i], true
}

// Values returns the value of every slot, with types.Undefined for the unset
// ones.
func (obj *Args) Values() []types.Value {
	values := []types.Value{}
	for i := range obj.values {
		values = append(values, obj.Get(i))
	}
	return values
}

// Bool returns the bool in slot i, or def if the slot is unset.
func (obj *Args) Bool(i int, def bool) bool {
	if !obj.Defined(i) {
		return def
	}
	return obj.values[i].Bool()
}

// Int returns the int in slot i, or def if the slot is unset.
func (obj *Args) Int(i int, def int64) int64 {
	if !obj.Defined(i) {
		return def
	}
	return obj.values[i].Int()
}

// Float returns the number in slot i as a float, or def if the slot is unset.
func (obj *Args) Float(i int, def float64) float64 {
	if !obj.Defined(i) {
		return def
	}
	return types.NumToFloat(obj.values[i])
}

// Str returns the string in slot i, or def if the slot is unset.
func (obj *Args) Str(i int, def string) string {
	if !obj.Defined(i) {
		return def
	}
	return obj.values[i].Str()
}

// Clip returns the clip in slot i, or nil if the slot is unset.
func (obj *Args) Clip(i int) clip.Clip {
	if !obj.Defined(i) {
		return nil
	}
	return obj.values[i].Clip()
}

// Array returns the elements in slot i. The repeated tail is always an array.
func (obj *Args) Array(i int) []types.Value {
	if !obj.Defined(i) {
		return []types.Value{}
	}
	return obj.values[i].Array()
}

// accept checks that the value may be passed to the parameter and returns what
// the callee should see. A nil policy allows no coercions.
func accept(p *Param, v types.Value, policy *CoercionPolicy) (types.Value, error) {
	if p.Kind == types.KindAny {
		return v, nil
	}
	kind := types.KindOf(v)
	if kind == p.Kind {
		return v, nil
	}
	if !policy.Allows(kind, p.Kind) {
		return nil, errwrap.Wrapf(interfaces.ErrTypeMismatch, "got %s, expected %s", kind, p.Kind)
	}
	c, err := types.Convert(v, p.Kind)
	if err != nil {
		// the kinds may coerce, but this particular value doesn't
		return nil, errwrap.Wrapf(interfaces.ErrTypeMismatch, "%s", err.Error())
	}
	return c, nil
}

// acceptTail checks one value for the repeated tail. A named argument may pass
// the whole tail as an array. A positional array is a single element.
func acceptTail(p *Param, v types.Value, named bool, policy *CoercionPolicy) ([]types.Value, error) {
	if a, ok := v.(*types.ArrayValue); ok && named && p.Kind != types.KindArray && p.Kind != types.KindAny {
		values := []types.Value{}
		for i, x := range a.V {
			c, err := accept(p, x, policy)
			if err != nil {
				return nil, errwrap.Wrapf(err, "element %d", i)
			}
			values = append(values, c)
		}
		return values, nil
	}
	c, err := accept(p, v, policy)
	if err != nil {
		return nil, err
	}
	return []types.Value{c}, nil
}

// Bind binds the arguments of a call to the parameters of a signature. The
// names list holds the name of each argument, or the empty string for each
// positional one. Positional arguments fill the slots from left to right, and
// named arguments go into the slot of that name. A nil policy means that the
// kinds must match exactly. The returned error is always one of the argument
// errors in the interfaces package, wrapped with the details.
func Bind(sig *Signature, args []types.Value, names []string, policy *CoercionPolicy) (*Args, error) {
	if names == nil {
		names = make([]string, len(args))
	}
	if len(names) != len(args) {
		return nil, fmt.Errorf("got %d names for %d arguments", len(names), len(args))
	}

	params := sig.Params
	result := &Args{
		Sig:    sig,
		values: make([]types.Value, len(params)),
	}
	bound := make([]bool, len(params))
	var tail []types.Value // the repeated tail, if it was bound by position
	pos := 0               // next positional slot

	for i, arg := range args {
		if arg == nil {
			arg = types.Undefined
		}
		slot := -1
		if name := names[i]; name != "" {
			j, ok := sig.Lookup(name)
			if !ok {
				return nil, errwrap.Wrapf(interfaces.ErrArgumentNameMismatch, "no parameter named `%s`", name)
			}
			slot = j
		} else {
			if pos >= len(params) {
				return nil, errwrap.Wrapf(interfaces.ErrTooManyArguments, "argument %d has no parameter", i+1)
			}
			slot = pos
			if !params[slot].Variadic {
				pos++
			}
		}
		p := params[slot]

		if p.Variadic {
			if names[i] != "" && (bound[slot] || tail != nil) {
				return nil, errwrap.Wrapf(interfaces.ErrDuplicateBinding, "parameter %d (%s) is bound twice", slot+1, p)
			}
			if names[i] == "" && bound[slot] {
				return nil, errwrap.Wrapf(interfaces.ErrDuplicateBinding, "parameter %d (%s) is bound twice", slot+1, p)
			}
			values, err := acceptTail(p, arg, names[i] != "", policy)
			if err != nil {
				return nil, errwrap.Wrapf(err, "argument %d", i+1)
			}
			if names[i] != "" {
				bound[slot] = true
				tail = values
				continue
			}
			if tail == nil {
				tail = []types.Value{}
			}
			tail = append(tail, values...)
			continue
		}

		if bound[slot] {
			return nil, errwrap.Wrapf(interfaces.ErrDuplicateBinding, "parameter %d (%s) is bound twice", slot+1, p)
		}
		bound[slot] = true

		if !types.IsDefined(arg) && p.Optional {
			continue // reads back as unset
		}
		v, err := accept(p, arg, policy)
		if err != nil {
			return nil, errwrap.Wrapf(err, "argument %d", i+1)
		}
		result.values[slot] = v
	}

	for i, p := range params {
		if p.Variadic {
			if len(tail) < p.Min {
				return nil, errwrap.Wrapf(interfaces.ErrMissingRequiredArgument, "parameter %d (%s) needs at least %d value", i+1, p, p.Min)
			}
			if tail == nil {
				tail = []types.Value{}
			}
			result.values[i] = &types.ArrayValue{V: tail}
			continue
		}
		if !bound[i] && !p.Optional {
			return nil, errwrap.Wrapf(interfaces.ErrMissingRequiredArgument, "parameter %d (%s) is required", i+1, p)
		}
	}

	return result, nil
}
