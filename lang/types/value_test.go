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

//go:build !root

package types

import (
	"fmt"
	"math"
	"testing"
)

func TestKindLetters0(t *testing.T) {
	for _, kind := range []Kind{KindBool, KindInt, KindFloat, KindStr, KindClip, KindArray, KindAny} {
		letter := kind.Letter()
		if letter == 0 {
			t.Errorf("kind %s has no letter", kind)
			continue
		}
		k, ok := KindFromLetter(letter)
		if !ok || k != kind {
			t.Errorf("letter %c did not round trip to %s, got: %s", letter, kind, k)
		}
		k, ok = KindFromName(kind.String())
		if !ok || k != kind {
			t.Errorf("name %s did not round trip, got: %s", kind.String(), k)
		}
	}

	if _, ok := KindFromLetter('z'); ok {
		t.Errorf("unknown letter should not be found")
	}
	if KindUndefined.Letter() != 0 {
		t.Errorf("undefined can't be declared in a signature")
	}
}

func TestValueCmp0(t *testing.T) {
	type test struct { // an individual test
		name string
		a    Value
		b    Value
		same bool
	}
	testCases := []test{
		{"bool", &BoolValue{V: true}, &BoolValue{V: true}, true},
		{"bool diff", &BoolValue{V: true}, &BoolValue{V: false}, false},
		{"int", &IntValue{V: 42}, &IntValue{V: 42}, true},
		{"int float", &IntValue{V: 42}, &FloatValue{V: 42}, false},
		{"float", &FloatValue{V: 1.5}, &FloatValue{V: 1.5}, true},
		{"str", &StrValue{V: "x"}, &StrValue{V: "x"}, true},
		{"str diff", &StrValue{V: "x"}, &StrValue{V: "y"}, false},
		{"undefined", Undefined, &UndefinedValue{}, true},
		{"undefined int", Undefined, &IntValue{}, false},
		{
			"array",
			&ArrayValue{V: []Value{&IntValue{V: 1}, &StrValue{V: "a"}}},
			&ArrayValue{V: []Value{&IntValue{V: 1}, &StrValue{V: "a"}}},
			true,
		},
		{
			"array len",
			&ArrayValue{V: []Value{&IntValue{V: 1}}},
			&ArrayValue{V: []Value{}},
			false,
		},
	}

	for index, tc := range testCases {
		t.Run(fmt.Sprintf("test #%d (%s)", index, tc.name), func(t *testing.T) {
			err := tc.a.Cmp(tc.b)
			if tc.same && err != nil {
				t.Errorf("test #%d: expected same, got: %+v", index, err)
			}
			if !tc.same && err == nil {
				t.Errorf("test #%d: expected different", index)
			}
		})
	}
}

func TestConvert0(t *testing.T) {
	type test struct { // an individual test
		name   string
		in     Value
		to     Kind
		fail   bool
		expect Value
	}
	testCases := []test{}
	{
		testCases = append(testCases, test{
			name:   "int to float",
			in:     &IntValue{V: 20},
			to:     KindFloat,
			expect: &FloatValue{V: 20},
		})
	}
	{
		testCases = append(testCases, test{
			name:   "float to int truncates",
			in:     &FloatValue{V: 10.9},
			to:     KindInt,
			expect: &IntValue{V: 10},
		})
	}
	{
		testCases = append(testCases, test{
			name: "float too large for an int",
			in:   &FloatValue{V: 1e300},
			to:   KindInt,
			fail: true,
		})
	}
	{
		testCases = append(testCases, test{
			name: "float at 2^63",
			in:   &FloatValue{V: math.Exp2(63)},
			to:   KindInt,
			fail: true,
		})
	}
	{
		testCases = append(testCases, test{
			name:   "smallest int from a float",
			in:     &FloatValue{V: -math.Exp2(63)},
			to:     KindInt,
			expect: &IntValue{V: math.MinInt64},
		})
	}
	{
		testCases = append(testCases, test{
			name:   "bool to int",
			in:     &BoolValue{V: true},
			to:     KindInt,
			expect: &IntValue{V: 1},
		})
	}
	{
		testCases = append(testCases, test{
			name:   "string to float",
			in:     &StrValue{V: " 2.5"},
			to:     KindFloat,
			expect: &FloatValue{V: 2.5},
		})
	}
	{
		testCases = append(testCases, test{
			name: "bad string to int",
			in:   &StrValue{V: "x"},
			to:   KindInt,
			fail: true,
		})
	}
	{
		testCases = append(testCases, test{
			name: "string to clip",
			in:   &StrValue{V: "x"},
			to:   KindClip,
			fail: true,
		})
	}
	{
		testCases = append(testCases, test{
			name:   "to any",
			in:     &StrValue{V: "x"},
			to:     KindAny,
			expect: &StrValue{V: "x"},
		})
	}

	for index, tc := range testCases {
		t.Run(fmt.Sprintf("test #%d (%s)", index, tc.name), func(t *testing.T) {
			out, err := Convert(tc.in, tc.to)
			if !tc.fail && err != nil {
				t.Errorf("test #%d: convert failed with: %+v", index, err)
				return
			}
			if tc.fail && err == nil {
				t.Errorf("test #%d: convert passed, expected fail", index)
				return
			}
			if tc.fail {
				return
			}
			if err := out.Cmp(tc.expect); err != nil {
				t.Errorf("test #%d: got %s, expected %s: %+v", index, out, tc.expect, err)
			}
		})
	}
}

func TestAccessorPanic0(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected a panic")
		}
	}()
	v := &StrValue{V: "hello"}
	v.Int() // not an int
}
