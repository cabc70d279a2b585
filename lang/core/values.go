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

package core

import (
	"fmt"

	"github.com/purpleidea/clipscript/lang/funcs"
	"github.com/purpleidea/clipscript/lang/interfaces"
	"github.com/purpleidea/clipscript/lang/types"
)

func init() {
	register("Defined", ".", Defined, false)
	register("Default", "..", Default, false)
	register("Float", "f", Float, false)
	register("Int", "i", Int, false)
	register("Int", "f", Truncate, false)
	register("String", ".", String, false)
	register("Select", "i.+", Select, false)
	register("ArraySize", "a", ArraySize, false)

	register("IsBool", ".", isKind(types.KindBool), false)
	register("IsInt", ".", isKind(types.KindInt), false)
	register("IsFloat", ".", IsFloat, false)
	register("IsString", ".", isKind(types.KindStr), false)
	register("IsClip", ".", isKind(types.KindClip), false)
}

// Defined returns true if its argument is not the undefined value.
func Defined(args *funcs.Args, userData interface{}, env interfaces.Env) (types.Value, error) {
	return boolValue(args.Defined(0)), nil
}

// Default returns its first argument if it's defined, and the second one if
// not. This is how scripts give defaults to their optional parameters.
func Default(args *funcs.Args, userData interface{}, env interfaces.Env) (types.Value, error) {
	if args.Defined(0) {
		return args.Get(0), nil
	}
	return args.Get(1), nil
}

// Float returns the number as a float. Ints arrive here through the coercion
// policy.
func Float(args *funcs.Args, userData interface{}, env interfaces.Env) (types.Value, error) {
	return &types.FloatValue{V: args.Float(0, 0)}, nil
}

// Int returns an int unchanged.
func Int(args *funcs.Args, userData interface{}, env interfaces.Env) (types.Value, error) {
	return args.Get(0), nil
}

// Truncate returns a float as an int, rounding towards zero.
func Truncate(args *funcs.Args, userData interface{}, env interfaces.Env) (types.Value, error) {
	return types.Convert(args.Get(0), types.KindInt)
}

// String returns a string form of any value. Strings are returned as is,
// without quoting.
func String(args *funcs.Args, userData interface{}, env interfaces.Env) (types.Value, error) {
	v := args.Get(0)
	if v.Kind() == types.KindStr {
		return v, nil
	}
	return &types.StrValue{V: v.String()}, nil
}

// Select returns the value at the zero based index among the rest of its
// arguments.
func Select(args *funcs.Args, userData interface{}, env interfaces.Env) (types.Value, error) {
	index := args.Int(0, 0)
	tail, ok := args.Get(1).(*types.ArrayValue)
	if !ok {
		return nil, fmt.Errorf("nothing to select from")
	}
	v, exists := tail.Lookup(int(index))
	if !exists {
		return nil, fmt.Errorf("index %d is out of range for %d values", index, len(tail.V))
	}
	return v, nil
}

// ArraySize returns the number of elements of an array.
func ArraySize(args *funcs.Args, userData interface{}, env interfaces.Env) (types.Value, error) {
	return &types.IntValue{V: int64(len(args.Array(0)))}, nil
}

// IsFloat returns true for any number, since every int is also a float.
func IsFloat(args *funcs.Args, userData interface{}, env interfaces.Env) (types.Value, error) {
	return boolValue(args.Get(0).Kind().IsNumeric()), nil
}

// isKind builds a predicate which checks the kind of its argument.
func isKind(kind types.Kind) funcs.Func {
	return func(args *funcs.Args, userData interface{}, env interfaces.Env) (types.Value, error) {
		return boolValue(args.Get(0).Kind() == kind), nil
	}
}
