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

// Package ast contains the expression tree that scripts are translated into,
// the shared ownership of its nodes, and the evaluator that walks it.
package ast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/purpleidea/clipscript/lang/types"
)

// Expr is a node of the expression tree. The set of node types is closed: only
// the types in this package implement it, and Evaluate handles each of them.
// Child nodes are always held through a *Ref.
type Expr interface {
	fmt.Stringer

	// Lvalue returns the identifier that this node assigns to, and true,
	// if this node may be the target of an assignment.
	Lvalue() (string, bool)

	// Children returns the refs that this node owns, in evaluation order.
	Children() []*Ref

	isExpr() // seal
}

// notAssignable is embedded by every node that can't be assigned to.
type notAssignable struct{}

// Lvalue returns false.
func (notAssignable) Lvalue() (string, bool) { return "", false }

// ExprBool is a representation of a boolean.
type ExprBool struct {
	notAssignable

	V bool
}

// String returns a short representation of this expression.
func (obj *ExprBool) String() string { return fmt.Sprintf("bool(%t)", obj.V) }

// Children returns nothing since this is a leaf.
func (obj *ExprBool) Children() []*Ref { return nil }

func (obj *ExprBool) isExpr() {}

// ExprInt is a representation of an int.
type ExprInt struct {
	notAssignable

	V int64
}

// String returns a short representation of this expression.
func (obj *ExprInt) String() string { return fmt.Sprintf("int(%d)", obj.V) }

// Children returns nothing since this is a leaf.
func (obj *ExprInt) Children() []*Ref { return nil }

func (obj *ExprInt) isExpr() {}

// ExprFloat is a representation of a float.
type ExprFloat struct {
	notAssignable

	V float64
}

// String returns a short representation of this expression.
func (obj *ExprFloat) String() string {
	return fmt.Sprintf("float(%s)", strconv.FormatFloat(obj.V, 'g', -1, 64))
}

// Children returns nothing since this is a leaf.
func (obj *ExprFloat) Children() []*Ref { return nil }

func (obj *ExprFloat) isExpr() {}

// ExprStr is a representation of a string.
type ExprStr struct {
	notAssignable

	V string
}

// String returns a short representation of this expression.
func (obj *ExprStr) String() string { return fmt.Sprintf("str(%s)", strconv.Quote(obj.V)) }

// Children returns nothing since this is a leaf.
func (obj *ExprStr) Children() []*Ref { return nil }

func (obj *ExprStr) isExpr() {}

// ExprValue holds an already built value. The host uses it to splice a clip, or
// any other value that has no literal syntax, into a tree.
type ExprValue struct {
	notAssignable

	V types.Value
}

// String returns a short representation of this expression.
func (obj *ExprValue) String() string { return fmt.Sprintf("value(%s)", obj.V) }

// Children returns nothing since this is a leaf.
func (obj *ExprValue) Children() []*Ref { return nil }

func (obj *ExprValue) isExpr() {}

// ExprVar is a representation of a variable lookup.
type ExprVar struct {
	Name string // name of the variable
}

// String returns a short representation of this expression.
func (obj *ExprVar) String() string { return fmt.Sprintf("var(%s)", obj.Name) }

// Lvalue returns the name of the variable. A variable is the only thing that
// can be assigned to.
func (obj *ExprVar) Lvalue() (string, bool) { return obj.Name, true }

// Children returns nothing since this is a leaf.
func (obj *ExprVar) Children() []*Ref { return nil }

func (obj *ExprVar) isExpr() {}

// ExprAssign assigns the value of an expression to a variable, and evaluates to
// that value.
type ExprAssign struct {
	notAssignable

	// Target must be assignable, or the evaluation fails.
	Target *Ref

	// Value is the expression whose value is assigned.
	Value *Ref

	// Global assigns in the global scope instead of the local one.
	Global bool
}

// String returns a short representation of this expression.
func (obj *ExprAssign) String() string {
	if obj.Global {
		return fmt.Sprintf("global(%s = %s)", obj.Target, obj.Value)
	}
	return fmt.Sprintf("assign(%s = %s)", obj.Target, obj.Value)
}

// Children returns the target and the value.
func (obj *ExprAssign) Children() []*Ref { return []*Ref{obj.Target, obj.Value} }

func (obj *ExprAssign) isExpr() {}

// ExprCall is a representation of a function call. The function is looked up in
// the registry when the call is evaluated, not when it is built.
type ExprCall struct {
	notAssignable

	// Name of the function to be called.
	Name string

	// Args are the list of inputs to this function, in source order.
	Args []*Ref

	// Names has the name for each of the args that was passed by name, and
	// the empty string for each positional one.
	Names []string
}

// String returns a short representation of this expression.
func (obj *ExprCall) String() string {
	var s []string
	for i, x := range obj.Args {
		if obj.Names[i] != "" {
			s = append(s, fmt.Sprintf("%s=%s", obj.Names[i], x))
			continue
		}
		s = append(s, x.String())
	}
	return fmt.Sprintf("call:%s(%s)", obj.Name, strings.Join(s, ", "))
}

// Children returns the args.
func (obj *ExprCall) Children() []*Ref { return obj.Args }

func (obj *ExprCall) isExpr() {}

// ExprArray is a representation of an array literal.
type ExprArray struct {
	notAssignable

	Elements []*Ref
}

// String returns a short representation of this expression.
func (obj *ExprArray) String() string {
	var s []string
	for _, x := range obj.Elements {
		s = append(s, x.String())
	}
	return fmt.Sprintf("array(%s)", strings.Join(s, ", "))
}

// Children returns the elements.
func (obj *ExprArray) Children() []*Ref { return obj.Elements }

func (obj *ExprArray) isExpr() {}

// ExprIf is the ternary operator. Only the chosen branch is evaluated.
type ExprIf struct {
	notAssignable

	Condition  *Ref
	ThenBranch *Ref
	ElseBranch *Ref
}

// String returns a short representation of this expression.
func (obj *ExprIf) String() string {
	return fmt.Sprintf("if(%s) { %s } else { %s }", obj.Condition, obj.ThenBranch, obj.ElseBranch)
}

// Children returns the condition and both of the branches.
func (obj *ExprIf) Children() []*Ref {
	return []*Ref{obj.Condition, obj.ThenBranch, obj.ElseBranch}
}

func (obj *ExprIf) isExpr() {}

// ExprSeq is a list of statements. It evaluates to the value of the last one.
type ExprSeq struct {
	notAssignable

	Body []*Ref
}

// String returns a short representation of this expression.
func (obj *ExprSeq) String() string {
	var s []string
	for _, x := range obj.Body {
		s = append(s, x.String())
	}
	return fmt.Sprintf("seq(%s)", strings.Join(s, "; "))
}

// Children returns the statements.
func (obj *ExprSeq) Children() []*Ref { return obj.Body }

func (obj *ExprSeq) isExpr() {}
