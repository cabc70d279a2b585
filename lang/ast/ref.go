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
	"sync/atomic"

	"github.com/purpleidea/clipscript/lang/interfaces"
	"github.com/purpleidea/clipscript/lang/types"
	"github.com/purpleidea/clipscript/util/errwrap"
)

// Ref is an owning handle to an expression node. A node may have more than one
// owner, such as two parents or a parent and a script function. Each owner
// holds one count. When the last one is released, the node releases its own
// children and is destroyed, exactly once. The counts are atomic, so refs may
// be retained and released from any goroutine.
type Ref struct {
	expr    Expr
	count   atomic.Int64
	builder *Builder
}

// Expr returns the node, or ErrReleased if it was destroyed.
func (obj *Ref) Expr() (Expr, error) {
	if obj == nil || obj.count.Load() <= 0 {
		return nil, interfaces.ErrReleased
	}
	return obj.expr, nil
}

// Count returns the current number of owners.
func (obj *Ref) Count() int64 {
	return obj.count.Load()
}

// Retain adds an owner. It returns the same ref for convenience, so that a node
// can be shared with: b.Seq(x.Retain(), x). Retaining a destroyed node is a
// programming error and panics.
func (obj *Ref) Retain() *Ref {
	for {
		c := obj.count.Load()
		if c <= 0 {
			panic(fmt.Sprintf("retain of released expression: %s", obj.expr))
		}
		if obj.count.CompareAndSwap(c, c+1) {
			return obj
		}
	}
}

// Release drops an owner. The last release destroys the node and then releases
// its children. Releasing more times than retaining is a programming error and
// panics.
func (obj *Ref) Release() {
	c := obj.count.Add(-1)
	if c > 0 {
		return
	}
	if c < 0 {
		panic(fmt.Sprintf("release of released expression: %s", obj.expr))
	}
	if obj.builder != nil {
		obj.builder.destroyed(obj.expr)
	}
	for _, x := range obj.expr.Children() {
		x.Release()
	}
}

// String returns a short representation of the node.
func (obj *Ref) String() string {
	if obj == nil {
		return "<nil>"
	}
	if obj.count.Load() <= 0 {
		return "<released>"
	}
	return obj.expr.String()
}

// Builder is the only way to make nodes. Each constructor takes ownership of
// the child refs that it is passed, and returns a new ref with one owner. Since
// a child must exist before its parent, no node can ever own one of its own
// ancestors, and the ownership graph is acyclic. To use one child in two
// places, Retain it once for each extra place. If a constructor fails, the
// caller keeps ownership of the children.
type Builder struct {
	// OnDestroy, if set, is called once for each destroyed node.
	OnDestroy func(Expr)

	Debug bool
	Logf  func(format string, v ...interface{})

	live atomic.Int64
}

// Live returns the number of nodes that were built and not destroyed yet.
func (obj *Builder) Live() int64 {
	return obj.live.Load()
}

func (obj *Builder) destroyed(expr Expr) {
	obj.live.Add(-1)
	if obj.Debug && obj.Logf != nil {
		obj.Logf("destroyed: %s", expr)
	}
	if obj.OnDestroy != nil {
		obj.OnDestroy(expr)
	}
}

func (obj *Builder) ref(expr Expr) *Ref {
	r := &Ref{
		expr:    expr,
		builder: obj,
	}
	r.count.Store(1)
	obj.live.Add(1)
	return r
}

// check returns an error if any of the children can't be owned.
func check(children ...*Ref) error {
	for i, x := range children {
		if x == nil {
			return fmt.Errorf("child %d is nil", i)
		}
		if _, err := x.Expr(); err != nil {
			return errwrap.Wrapf(err, "child %d", i)
		}
	}
	return nil
}

// Bool builds a bool literal.
func (obj *Builder) Bool(v bool) *Ref { return obj.ref(&ExprBool{V: v}) }

// Int builds an int literal.
func (obj *Builder) Int(v int64) *Ref { return obj.ref(&ExprInt{V: v}) }

// Float builds a float literal.
func (obj *Builder) Float(v float64) *Ref { return obj.ref(&ExprFloat{V: v}) }

// Str builds a string literal.
func (obj *Builder) Str(v string) *Ref { return obj.ref(&ExprStr{V: v}) }

// Value builds a node that evaluates to an existing value.
func (obj *Builder) Value(v types.Value) *Ref {
	if v == nil {
		v = types.Undefined
	}
	return obj.ref(&ExprValue{V: v})
}

// Var builds a variable lookup.
func (obj *Builder) Var(name string) *Ref { return obj.ref(&ExprVar{Name: name}) }

// Assign builds an assignment of value to target. The target is checked when
// the node is evaluated, not here.
func (obj *Builder) Assign(target, value *Ref, global bool) (*Ref, error) {
	if err := check(target, value); err != nil {
		return nil, err
	}
	return obj.ref(&ExprAssign{Target: target, Value: value, Global: global}), nil
}

// Call builds a function call. The names list must be empty or have one entry
// per argument, with the empty string for positional arguments.
func (obj *Builder) Call(name string, args []*Ref, names []string) (*Ref, error) {
	if name == "" {
		return nil, fmt.Errorf("call needs a function name")
	}
	if names == nil {
		names = make([]string, len(args))
	}
	if len(names) != len(args) {
		return nil, fmt.Errorf("got %d names for %d arguments", len(names), len(args))
	}
	if err := check(args...); err != nil {
		return nil, err
	}
	return obj.ref(&ExprCall{Name: name, Args: args, Names: names}), nil
}

// Array builds an array literal.
func (obj *Builder) Array(elements ...*Ref) (*Ref, error) {
	if err := check(elements...); err != nil {
		return nil, err
	}
	return obj.ref(&ExprArray{Elements: elements}), nil
}

// If builds a ternary expression.
func (obj *Builder) If(condition, thenBranch, elseBranch *Ref) (*Ref, error) {
	if err := check(condition, thenBranch, elseBranch); err != nil {
		return nil, err
	}
	return obj.ref(&ExprIf{Condition: condition, ThenBranch: thenBranch, ElseBranch: elseBranch}), nil
}

// Seq builds a statement list.
func (obj *Builder) Seq(body ...*Ref) (*Ref, error) {
	if err := check(body...); err != nil {
		return nil, err
	}
	return obj.ref(&ExprSeq{Body: body}), nil
}
