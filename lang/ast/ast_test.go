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

package ast

import (
	"errors"
	"fmt"
	"testing"

	"github.com/purpleidea/clipscript/lang/funcs"
	"github.com/purpleidea/clipscript/lang/interfaces"
	"github.com/purpleidea/clipscript/lang/types"

	"github.com/kylelemons/godebug/pretty"
)

// recorder remembers the order in which it was called.
type recorder struct {
	calls []string
}

func newEnv(t *testing.T, rec *recorder) *funcs.Env {
	registry := &funcs.Registry{
		Logf: func(format string, v ...interface{}) {
			t.Logf("funcs: "+format, v...)
		},
	}
	if err := registry.Init(); err != nil {
		t.Fatalf("err: %+v", err)
	}
	if _, err := registry.Register("Rec", "s", func(args *funcs.Args, userData interface{}, env interfaces.Env) (types.Value, error) {
		rec.calls = append(rec.calls, args.Str(0, ""))
		return args.Get(0), nil
	}, nil, ""); err != nil {
		t.Fatalf("err: %+v", err)
	}
	if _, err := registry.Register("Sum", "f*", func(args *funcs.Args, userData interface{}, env interfaces.Env) (types.Value, error) {
		sum := 0.0
		for _, x := range args.Array(0) {
			sum += x.Float()
		}
		return &types.FloatValue{V: sum}, nil
	}, nil, ""); err != nil {
		t.Fatalf("err: %+v", err)
	}
	if _, err := registry.Register("Pair", "..", func(args *funcs.Args, userData interface{}, env interfaces.Env) (types.Value, error) {
		return &types.ArrayValue{V: args.Values()}, nil
	}, nil, ""); err != nil {
		t.Fatalf("err: %+v", err)
	}
	return funcs.NewEnv(registry)
}

func must(t *testing.T) func(*Ref, error) *Ref {
	return func(ref *Ref, err error) *Ref {
		if err != nil {
			t.Fatalf("could not build: %+v", err)
		}
		return ref
	}
}

func TestLiterals0(t *testing.T) {
	b := &Builder{}
	env := newEnv(t, &recorder{})
	arr := must(t)(b.Array(b.Bool(true), b.Int(42), b.Float(1.5), b.Str("hi"), b.Value(nil)))
	v, err := Evaluate(env, arr)
	if err != nil {
		t.Fatalf("err: %+v", err)
	}
	expected := &types.ArrayValue{V: []types.Value{
		&types.BoolValue{V: true},
		&types.IntValue{V: 42},
		&types.FloatValue{V: 1.5},
		&types.StrValue{V: "hi"},
		types.Undefined,
	}}
	if err := v.Cmp(expected); err != nil {
		t.Errorf("unexpected value %s: %+v", v, err)
	}
	if s := arr.String(); s != `array(bool(true), int(42), float(1.5), str("hi"), value(undefined))` {
		t.Errorf("unexpected string: %s", s)
	}
}

// Children are evaluated left to right, and their side effects are visible in
// that order.
func TestLeftToRight0(t *testing.T) {
	rec := &recorder{}
	b := &Builder{}
	env := newEnv(t, rec)

	// Pair(x = 1, x = 2)
	call := must(t)(b.Call("Pair", []*Ref{
		must(t)(b.Assign(b.Var("x"), b.Int(1), false)),
		must(t)(b.Assign(b.Var("x"), b.Int(2), false)),
	}, nil))
	v, err := Evaluate(env, call)
	if err != nil {
		t.Fatalf("err: %+v", err)
	}
	if s := v.String(); s != "[1, 2]" {
		t.Errorf("unexpected value: %s", s)
	}
	x, err := env.Get("x")
	if err != nil {
		t.Fatalf("err: %+v", err)
	}
	if x.Int() != 2 {
		t.Errorf("the last assignment should win, got: %s", x)
	}

	// [Rec("a"), Rec("b"), Rec("c")]
	arr := must(t)(b.Array(
		must(t)(b.Call("Rec", []*Ref{b.Str("a")}, nil)),
		must(t)(b.Call("Rec", []*Ref{b.Str("b")}, nil)),
		must(t)(b.Call("Rec", []*Ref{b.Str("c")}, nil)),
	))
	if _, err := Evaluate(env, arr); err != nil {
		t.Fatalf("err: %+v", err)
	}
	if diff := pretty.Compare(rec.calls, []string{"a", "b", "c"}); diff != "" {
		t.Errorf("wrong order: %s", diff)
	}

	// nothing is memoized
	if _, err := Evaluate(env, arr); err != nil {
		t.Fatalf("err: %+v", err)
	}
	if n := len(rec.calls); n != 6 {
		t.Errorf("expected 6 calls, got: %d", n)
	}
}

func TestErrors0(t *testing.T) {
	type test struct {
		name  string
		build func(b *Builder) (*Ref, error)
		err   error
	}
	testCases := []test{}
	{
		testCases = append(testCases, test{
			name: "undefined variable",
			build: func(b *Builder) (*Ref, error) {
				return b.Var("nope"), nil
			},
			err: interfaces.ErrUndefinedVariable,
		})
	}
	{
		testCases = append(testCases, test{
			name: "assign to literal",
			build: func(b *Builder) (*Ref, error) {
				return b.Assign(b.Int(1), b.Int(2), false)
			},
			err: interfaces.ErrNotAssignable,
		})
	}
	{
		testCases = append(testCases, test{
			name: "assign to call",
			build: func(b *Builder) (*Ref, error) {
				call, err := b.Call("Rec", []*Ref{b.Str("a")}, nil)
				if err != nil {
					return nil, err
				}
				return b.Assign(call, b.Int(2), false)
			},
			err: interfaces.ErrNotAssignable,
		})
	}
	{
		testCases = append(testCases, test{
			name: "unknown function",
			build: func(b *Builder) (*Ref, error) {
				return b.Call("Frobnicate", nil, nil)
			},
			err: interfaces.ErrUnknownFunction,
		})
	}
	{
		testCases = append(testCases, test{
			name: "no match",
			build: func(b *Builder) (*Ref, error) {
				return b.Call("Rec", []*Ref{b.Int(1)}, nil)
			},
			err: interfaces.ErrNoMatchingOverload,
		})
	}
	{
		testCases = append(testCases, test{
			name: "condition",
			build: func(b *Builder) (*Ref, error) {
				return b.If(b.Int(1), b.Int(2), b.Int(3))
			},
			err: interfaces.ErrTypeMismatch,
		})
	}

	for index, tc := range testCases { // run all the tests
		t.Run(fmt.Sprintf("test #%d (%s)", index, tc.name), func(t *testing.T) {
			b := &Builder{}
			ref, err := tc.build(b)
			if err != nil {
				t.Fatalf("test #%d: could not build: %+v", index, err)
			}
			_, err = Evaluate(newEnv(t, &recorder{}), ref)
			if !errors.Is(err, tc.err) {
				t.Errorf("test #%d: expected %v, got: %+v", index, tc.err, err)
			}
		})
	}
}

// An error stops the evaluation, and the later statements never run.
func TestAbort0(t *testing.T) {
	rec := &recorder{}
	b := &Builder{}
	env := newEnv(t, rec)
	seq := must(t)(b.Seq(
		must(t)(b.Call("Rec", []*Ref{b.Str("first")}, nil)),
		b.Var("missing"),
		must(t)(b.Call("Rec", []*Ref{b.Str("never")}, nil)),
	))
	if _, err := Evaluate(env, seq); !errors.Is(err, interfaces.ErrUndefinedVariable) {
		t.Errorf("expected an undefined variable, got: %+v", err)
	}
	if diff := pretty.Compare(rec.calls, []string{"first"}); diff != "" {
		t.Errorf("unexpected calls: %s", diff)
	}
}

func TestIf0(t *testing.T) {
	rec := &recorder{}
	b := &Builder{}
	env := newEnv(t, rec)
	ref := must(t)(b.If(
		b.Bool(false),
		must(t)(b.Call("Rec", []*Ref{b.Str("then")}, nil)),
		must(t)(b.Call("Rec", []*Ref{b.Str("else")}, nil)),
	))
	v, err := Evaluate(env, ref)
	if err != nil {
		t.Fatalf("err: %+v", err)
	}
	if v.Str() != "else" {
		t.Errorf("unexpected value: %s", v)
	}
	if diff := pretty.Compare(rec.calls, []string{"else"}); diff != "" {
		t.Errorf("only one branch should run: %s", diff)
	}
}

func TestGlobal0(t *testing.T) {
	b := &Builder{}
	env := newEnv(t, &recorder{})
	ref := must(t)(b.Assign(b.Var("g"), b.Int(7), true))
	if _, err := Evaluate(env, ref); err != nil {
		t.Fatalf("err: %+v", err)
	}
	if v, err := env.Child().Get("g"); err != nil || v.Int() != 7 {
		t.Errorf("global should be visible everywhere: %v, %+v", v, err)
	}
}

func TestSharedOwnership0(t *testing.T) {
	destroyed := []string{}
	b := &Builder{
		OnDestroy: func(expr Expr) {
			destroyed = append(destroyed, expr.String())
		},
	}
	shared := b.Int(5)
	p1 := must(t)(b.Seq(shared.Retain()))
	p2 := must(t)(b.Array(shared))
	if c := shared.Count(); c != 2 {
		t.Errorf("expected two owners, got: %d", c)
	}
	if n := b.Live(); n != 3 {
		t.Errorf("expected 3 live nodes, got: %d", n)
	}

	p1.Release()
	if _, err := shared.Expr(); err != nil {
		t.Errorf("shared node was destroyed early: %+v", err)
	}
	if diff := pretty.Compare(destroyed, []string{"seq(int(5))"}); diff != "" {
		t.Errorf("unexpected destroyed list: %s", diff)
	}
	env := newEnv(t, &recorder{})
	if v, err := Evaluate(env, p2); err != nil || v.String() != "[5]" {
		t.Errorf("surviving parent should still work: %v, %+v", v, err)
	}

	p2.Release()
	if diff := pretty.Compare(destroyed, []string{"seq(int(5))", "array(int(5))", "int(5)"}); diff != "" {
		t.Errorf("unexpected destroyed list: %s", diff)
	}
	if n := b.Live(); n != 0 {
		t.Errorf("expected no live nodes, got: %d", n)
	}
	if _, err := Evaluate(env, shared); !errors.Is(err, interfaces.ErrReleased) {
		t.Errorf("expected a released error, got: %+v", err)
	}
	if _, err := b.Seq(shared); !errors.Is(err, interfaces.ErrReleased) {
		t.Errorf("a released node can't be owned again, got: %+v", err)
	}

	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected a panic on over release")
		}
	}()
	shared.Release()
}
