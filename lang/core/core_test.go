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

package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/purpleidea/clipscript/clip"
	"github.com/purpleidea/clipscript/lang/funcs"
	"github.com/purpleidea/clipscript/lang/interfaces"
	"github.com/purpleidea/clipscript/lang/types"
)

func newEnv(t *testing.T) (*funcs.Env, *clip.Runtime) {
	runtime := &clip.Runtime{
		Logf: func(format string, v ...interface{}) {
			t.Logf("clip: "+format, v...)
		},
	}
	if err := runtime.Init(); err != nil {
		t.Fatalf("could not init runtime: %+v", err)
	}
	registry := &funcs.Registry{
		Logf: func(format string, v ...interface{}) {
			t.Logf("funcs: "+format, v...)
		},
	}
	if err := registry.Init(); err != nil {
		t.Fatalf("could not init registry: %+v", err)
	}
	if err := Register(registry, runtime); err != nil {
		t.Fatalf("could not register builtins: %+v", err)
	}
	registry.Freeze()
	return funcs.NewEnv(registry), runtime
}

func TestRegister0(t *testing.T) {
	env, _ := newEnv(t)
	if n := env.Registry.Len(); n != len(Builtins()) {
		t.Errorf("expected %d records, got %d", len(Builtins()), n)
	}
	for _, r := range env.Registry.Records() {
		if r.Duplicate {
			t.Errorf("unexpected duplicate: %s", r)
		}
		if r.ModulePath != "" {
			t.Errorf("builtin %s has a module path: %s", r, r.ModulePath)
		}
	}
	if records := env.Registry.Lookup("core_trim"); len(records) != 1 {
		t.Errorf("expected the canonical name to find trim, got: %v", records)
	}
}

func TestValues0(t *testing.T) {
	type test struct { // an individual test
		name  string
		fn    string
		args  []types.Value
		names []string
		exp   types.Value
		fail  bool
	}
	testCases := []test{}

	i := func(v int64) types.Value { return &types.IntValue{V: v} }
	f := func(v float64) types.Value { return &types.FloatValue{V: v} }
	s := func(v string) types.Value { return &types.StrValue{V: v} }
	b := func(v bool) types.Value { return &types.BoolValue{V: v} }

	testCases = append(testCases, test{"defined", "Defined", []types.Value{i(1)}, nil, b(true), false})
	testCases = append(testCases, test{"undefined", "defined", []types.Value{types.Undefined}, nil, b(false), false})
	testCases = append(testCases, test{"default set", "Default", []types.Value{i(1), i(2)}, nil, i(1), false})
	testCases = append(testCases, test{"default unset", "Default", []types.Value{types.Undefined, i(2)}, nil, i(2), false})
	testCases = append(testCases, test{"float of int", "Float", []types.Value{i(3)}, nil, f(3), false})
	testCases = append(testCases, test{"int of int", "Int", []types.Value{i(3)}, nil, i(3), false})
	testCases = append(testCases, test{"int truncates", "Int", []types.Value{f(-2.7)}, nil, i(-2), false})
	testCases = append(testCases, test{"int of string", "Int", []types.Value{s("3")}, nil, nil, true})
	testCases = append(testCases, test{"string of string", "String", []types.Value{s("hi")}, nil, s("hi"), false})
	testCases = append(testCases, test{"string of int", "String", []types.Value{i(42)}, nil, s("42"), false})
	testCases = append(testCases, test{"select", "Select", []types.Value{i(1), s("a"), s("b"), s("c")}, nil, s("b"), false})
	testCases = append(testCases, test{"select out of range", "Select", []types.Value{i(3), s("a"), s("b"), s("c")}, nil, nil, true})
	testCases = append(testCases, test{"select nothing", "Select", []types.Value{i(0)}, nil, nil, true})
	testCases = append(testCases, test{"array size", "ArraySize", []types.Value{&types.ArrayValue{V: []types.Value{i(1), i(2)}}}, nil, i(2), false})
	testCases = append(testCases, test{"is int", "IsInt", []types.Value{i(1)}, nil, b(true), false})
	testCases = append(testCases, test{"is int of float", "IsInt", []types.Value{f(1)}, nil, b(false), false})
	testCases = append(testCases, test{"is float of int", "IsFloat", []types.Value{i(1)}, nil, b(true), false})
	testCases = append(testCases, test{"is string", "IsString", []types.Value{s("")}, nil, b(true), false})
	testCases = append(testCases, test{"is bool", "IsBool", []types.Value{i(0)}, nil, b(false), false})
	testCases = append(testCases, test{"is clip", "IsClip", []types.Value{types.Undefined}, nil, b(false), false})

	for index, tc := range testCases { // run all the tests
		t.Run(fmt.Sprintf("test #%d (%s)", index, tc.name), func(t *testing.T) {
			env, _ := newEnv(t)
			v, err := env.Invoke(tc.fn, tc.args, tc.names)
			if tc.fail {
				if err == nil {
					t.Errorf("expected an error, got: %v", v)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %+v", err)
				return
			}
			if err := tc.exp.Cmp(v); err != nil {
				t.Errorf("expected %v, got %v: %+v", tc.exp, v, err)
			}
		})
	}
}

func TestClips0(t *testing.T) {
	env, runtime := newEnv(t)

	v, err := env.Invoke("BlankClip", []types.Value{&types.IntValue{V: 100}}, []string{"length"})
	if err != nil {
		t.Fatalf("err: %+v", err)
	}
	blank := v.Clip()
	if n := blank.Info().NumFrames; n != 100 {
		t.Errorf("expected 100 frames, got %d", n)
	}
	if w, h := blank.Info().Width, blank.Info().Height; w != DefaultBlankWidth || h != DefaultBlankHeight {
		t.Errorf("unexpected size: %dx%d", w, h)
	}

	type test struct { // an individual test
		name  string
		first int64
		last  int64
		exp   int
	}
	testCases := []test{}
	testCases = append(testCases, test{"inclusive", 10, 19, 10})
	testCases = append(testCases, test{"to the end", 10, 0, 90})
	testCases = append(testCases, test{"count", 10, -5, 5})
	testCases = append(testCases, test{"past the end", 90, 200, 10})

	for index, tc := range testCases {
		t.Run(fmt.Sprintf("test #%d (%s)", index, tc.name), func(t *testing.T) {
			args := []types.Value{v, &types.IntValue{V: tc.first}, &types.IntValue{V: tc.last}}
			trimmed, err := env.Invoke("trim", args, nil)
			if err != nil {
				t.Fatalf("err: %+v", err)
			}
			count, err := env.Invoke("FrameCount", []types.Value{trimmed}, nil)
			if err != nil {
				t.Fatalf("err: %+v", err)
			}
			if n := count.Int(); n != int64(tc.exp) {
				t.Errorf("expected %d frames, got %d", tc.exp, n)
			}
		})
	}

	if _, err := env.Invoke("Trim", []types.Value{v, &types.IntValue{V: 20}, &types.IntValue{V: 10}}, nil); err == nil {
		t.Errorf("expected an error for last before first")
	}

	clips, err := runtime.Order()
	if err != nil {
		t.Fatalf("err: %+v", err)
	}
	if len(clips) != 1+len(testCases) {
		t.Errorf("expected %d clips in the graph, got: %v", 1+len(testCases), clips)
	}
	if clips[0] != blank {
		t.Errorf("expected the source first, got: %s", clips[0])
	}
}

func TestClips1(t *testing.T) {
	env, _ := newEnv(t)
	v, err := env.Invoke("BlankClip", []types.Value{&types.IntValue{V: 10}, &types.StrValue{V: "wide"}}, []string{"length", "width"})
	if err == nil {
		t.Errorf("expected an error, got: %v", v)
	}
	if !errors.Is(err, interfaces.ErrNoMatchingOverload) {
		t.Errorf("expected no matching overload, got: %+v", err)
	}
}

func TestVersionNumber0(t *testing.T) {
	type test struct { // an individual test
		version string
		exp     float64
	}
	testCases := []test{}
	testCases = append(testCases, test{"", 0})
	testCases = append(testCases, test{"1", 1})
	testCases = append(testCases, test{"0.12.3", 0.12})
	testCases = append(testCases, test{"v2.5", 2.5})
	testCases = append(testCases, test{"0.3-dirty", 0.3})
	testCases = append(testCases, test{"garbage", 0})

	for index, tc := range testCases {
		t.Run(fmt.Sprintf("test #%d (%s)", index, tc.version), func(t *testing.T) {
			if f := versionNumber(tc.version); f != tc.exp {
				t.Errorf("expected %v, got %v", tc.exp, f)
			}
		})
	}
}
