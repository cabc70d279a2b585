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

// Package types provides the value representation that crosses the function
// dispatch boundary. Values are immutable once constructed.
package types

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/purpleidea/clipscript/clip"
	"github.com/purpleidea/clipscript/util/errwrap"
)

// Value represents an interface to get values out of each kind. It is similar
// to the reflection interfaces used in the golang standard library.
type Value interface {
	fmt.Stringer // String() string (for display purposes)
	Kind() Kind
	Cmp(Value) error // error if the two values aren't the same
	Value() interface{}
	Bool() bool
	Str() string
	Int() int64
	Float() float64
	Clip() clip.Clip
	Array() []Value
}

// Undefined is the one undefined value. It is what an unset variable or an
// unset optional argument holds.
var Undefined Value = &UndefinedValue{}

// IsDefined returns true if the value is not nil and not undefined.
func IsDefined(v Value) bool {
	return v != nil && v.Kind() != KindUndefined
}

// KindOf returns the kind of a value, treating nil as undefined.
func KindOf(v Value) Kind {
	if v == nil {
		return KindUndefined
	}
	return v.Kind()
}

// Kinds returns the list of kinds of the values in order. It is used for error
// messages.
func Kinds(values []Value) []Kind {
	kinds := []Kind{}
	for _, x := range values {
		kinds = append(kinds, KindOf(x))
	}
	return kinds
}

// base implements the missing methods that all values need.
type base struct{}

// Bool represents the value of this type as a bool if it is one. If this is not
// a bool, then this panics.
func (obj *base) Bool() bool {
	panic("not a bool")
}

// Str represents the value of this type as a string if it is one. If this is
// not a string, then this panics.
func (obj *base) Str() string {
	panic("not a string")
}

// Int represents the value of this type as an integer if it is one. If this is
// not an integer, then this panics.
func (obj *base) Int() int64 {
	panic("not an int")
}

// Float represents the value of this type as a float if it is one. If this is
// not a float, then this panics.
func (obj *base) Float() float64 {
	panic("not a float")
}

// Clip represents the value of this type as a clip if it is one. If this is not
// a clip, then this panics.
func (obj *base) Clip() clip.Clip {
	panic("not a clip")
}

// Array represents the value of this type as an array if it is one. If this is
// not an array, then this panics.
func (obj *base) Array() []Value {
	panic("not an array")
}

// cmpKind is a small helper that all the Cmp methods start with.
func cmpKind(a, b Value) error {
	if a == nil || b == nil {
		return fmt.Errorf("cannot cmp to nil")
	}
	if k1, k2 := a.Kind(), b.Kind(); k1 != k2 {
		return fmt.Errorf("kinds differ: %s != %s", k1, k2)
	}
	return nil
}

// UndefinedValue represents the absence of a value.
type UndefinedValue struct {
	base
}

// String returns a visual representation of this value.
func (obj *UndefinedValue) String() string { return "undefined" }

// Kind returns the kind of this value.
func (obj *UndefinedValue) Kind() Kind { return KindUndefined }

// Cmp returns an error if this value isn't the same as the arg passed in.
func (obj *UndefinedValue) Cmp(val Value) error {
	return cmpKind(obj, val) // all undefined values are equal
}

// Value returns the raw value of this type.
func (obj *UndefinedValue) Value() interface{} { return nil }

// BoolValue represents a boolean value.
type BoolValue struct {
	base
	V bool
}

// String returns a visual representation of this value.
func (obj *BoolValue) String() string {
	return strconv.FormatBool(obj.V) // true or false
}

// Kind returns the kind of this value.
func (obj *BoolValue) Kind() Kind { return KindBool }

// Cmp returns an error if this value isn't the same as the arg passed in.
func (obj *BoolValue) Cmp(val Value) error {
	if err := cmpKind(obj, val); err != nil {
		return errwrap.Wrapf(err, "cannot cmp kinds")
	}
	if obj.V != val.Bool() {
		return fmt.Errorf("values are different")
	}
	return nil
}

// Value returns the raw value of this type.
func (obj *BoolValue) Value() interface{} { return obj.V }

// Bool represents the value of this type as a bool.
func (obj *BoolValue) Bool() bool { return obj.V }

// IntValue represents an integer value.
type IntValue struct {
	base
	V int64
}

// String returns a visual representation of this value.
func (obj *IntValue) String() string {
	return strconv.FormatInt(obj.V, 10)
}

// Kind returns the kind of this value.
func (obj *IntValue) Kind() Kind { return KindInt }

// Cmp returns an error if this value isn't the same as the arg passed in.
func (obj *IntValue) Cmp(val Value) error {
	if err := cmpKind(obj, val); err != nil {
		return errwrap.Wrapf(err, "cannot cmp kinds")
	}
	if obj.V != val.Int() {
		return fmt.Errorf("values are different")
	}
	return nil
}

// Value returns the raw value of this type.
func (obj *IntValue) Value() interface{} { return obj.V }

// Int represents the value of this type as an integer.
func (obj *IntValue) Int() int64 { return obj.V }

// FloatValue represents a floating point value.
type FloatValue struct {
	base
	V float64
}

// String returns a visual representation of this value.
func (obj *FloatValue) String() string {
	return strconv.FormatFloat(obj.V, 'f', -1, 64) // -1 for exact precision
}

// Kind returns the kind of this value.
func (obj *FloatValue) Kind() Kind { return KindFloat }

// Cmp returns an error if this value isn't the same as the arg passed in.
func (obj *FloatValue) Cmp(val Value) error {
	if err := cmpKind(obj, val); err != nil {
		return errwrap.Wrapf(err, "cannot cmp kinds")
	}
	if obj.V != val.Float() {
		return fmt.Errorf("values are different")
	}
	return nil
}

// Value returns the raw value of this type.
func (obj *FloatValue) Value() interface{} { return obj.V }

// Float represents the value of this type as a float.
func (obj *FloatValue) Float() float64 { return obj.V }

// StrValue represents a string value.
type StrValue struct {
	base
	V string
}

// String returns a visual representation of this value.
func (obj *StrValue) String() string {
	return strconv.Quote(obj.V) // wraps in quotes, turns tabs into \t etc...
}

// Kind returns the kind of this value.
func (obj *StrValue) Kind() Kind { return KindStr }

// Cmp returns an error if this value isn't the same as the arg passed in.
func (obj *StrValue) Cmp(val Value) error {
	if err := cmpKind(obj, val); err != nil {
		return errwrap.Wrapf(err, "cannot cmp kinds")
	}
	if obj.V != val.Str() {
		return fmt.Errorf("values are different")
	}
	return nil
}

// Value returns the raw value of this type.
func (obj *StrValue) Value() interface{} { return obj.V }

// Str represents the value of this type as a string.
func (obj *StrValue) Str() string { return obj.V }

// ClipValue is a reference to a node in the processing graph. Copies of this
// value share the same node.
type ClipValue struct {
	base
	V clip.Clip
}

// String returns a visual representation of this value.
func (obj *ClipValue) String() string {
	if obj.V == nil {
		return "clip(nil)"
	}
	return fmt.Sprintf("clip(%s)", obj.V.String())
}

// Kind returns the kind of this value.
func (obj *ClipValue) Kind() Kind { return KindClip }

// Cmp returns an error if this value isn't the same as the arg passed in. Two
// clip values are the same if they reference the same node.
func (obj *ClipValue) Cmp(val Value) error {
	if err := cmpKind(obj, val); err != nil {
		return errwrap.Wrapf(err, "cannot cmp kinds")
	}
	if obj.V != val.Clip() {
		return fmt.Errorf("clips are different")
	}
	return nil
}

// Value returns the raw value of this type.
func (obj *ClipValue) Value() interface{} { return obj.V }

// Clip represents the value of this type as a clip.
func (obj *ClipValue) Clip() clip.Clip { return obj.V }

// ArrayValue represents an ordered sequence of values. The elements may be of
// different kinds. The slice must not be modified after construction.
type ArrayValue struct {
	base
	V []Value
}

// String returns a visual representation of this value.
func (obj *ArrayValue) String() string {
	var s []string
	for _, x := range obj.V {
		s = append(s, x.String())
	}
	return fmt.Sprintf("[%s]", strings.Join(s, ", "))
}

// Kind returns the kind of this value.
func (obj *ArrayValue) Kind() Kind { return KindArray }

// Cmp returns an error if this value isn't the same as the arg passed in.
func (obj *ArrayValue) Cmp(val Value) error {
	if err := cmpKind(obj, val); err != nil {
		return errwrap.Wrapf(err, "cannot cmp kinds")
	}
	cmp := val.Array()
	if len(obj.V) != len(cmp) {
		return fmt.Errorf("values have different lengths")
	}
	for i := range obj.V {
		if err := obj.V[i].Cmp(cmp[i]); err != nil {
			return errwrap.Wrapf(err, "index %d did not cmp", i)
		}
	}
	return nil
}

// Value returns the raw value of this type.
func (obj *ArrayValue) Value() interface{} {
	out := []interface{}{}
	for _, x := range obj.V {
		out = append(out, x.Value())
	}
	return out
}

// Array represents the value of this type as an array.
func (obj *ArrayValue) Array() []Value { return obj.V }

// Lookup looks up a value by index. On success it also returns the Value.
func (obj *ArrayValue) Lookup(index int) (value Value, exists bool) {
	if index >= 0 && index < len(obj.V) {
		return obj.V[index], true // found
	}
	return nil, false
}
