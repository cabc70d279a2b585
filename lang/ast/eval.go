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

	"github.com/purpleidea/clipscript/lang/interfaces"
	"github.com/purpleidea/clipscript/lang/types"
	"github.com/purpleidea/clipscript/util/errwrap"
)

// Evaluate walks the tree under ref and returns its value. The children of a
// node are evaluated from left to right before the node itself, so that their
// side effects are visible in source order. Nothing is memoized: every call
// walks the tree again. The first error stops the walk and is returned as is.
func Evaluate(env interfaces.Env, ref *Ref) (types.Value, error) {
	expr, err := ref.Expr()
	if err != nil {
		return nil, err
	}

	switch x := expr.(type) {
	case *ExprBool:
		return &types.BoolValue{V: x.V}, nil

	case *ExprInt:
		return &types.IntValue{V: x.V}, nil

	case *ExprFloat:
		return &types.FloatValue{V: x.V}, nil

	case *ExprStr:
		return &types.StrValue{V: x.V}, nil

	case *ExprValue:
		return x.V, nil

	case *ExprVar:
		return env.Get(x.Name)

	case *ExprAssign:
		target, err := x.Target.Expr()
		if err != nil {
			return nil, err
		}
		name, ok := target.Lvalue()
		if !ok {
			return nil, errwrap.Wrapf(interfaces.ErrNotAssignable, "can't assign to %s", target)
		}
		v, err := Evaluate(env, x.Value)
		if err != nil {
			return nil, err
		}
		if x.Global {
			err = env.SetGlobal(name, v)
		} else {
			err = env.Set(name, v)
		}
		if err != nil {
			return nil, err
		}
		return v, nil

	case *ExprCall:
		args, err := evaluateAll(env, x.Args)
		if err != nil {
			return nil, err
		}
		return env.Invoke(x.Name, args, x.Names)

	case *ExprArray:
		elements, err := evaluateAll(env, x.Elements)
		if err != nil {
			return nil, err
		}
		return &types.ArrayValue{V: elements}, nil

	case *ExprIf:
		cond, err := Evaluate(env, x.Condition)
		if err != nil {
			return nil, err
		}
		if k := types.KindOf(cond); k != types.KindBool {
			return nil, errwrap.Wrapf(interfaces.ErrTypeMismatch, "condition is a %s, not a bool", k)
		}
		if cond.Bool() {
			return Evaluate(env, x.ThenBranch)
		}
		return Evaluate(env, x.ElseBranch)

	case *ExprSeq:
		var v types.Value = types.Undefined
		for _, stmt := range x.Body {
			if v, err = Evaluate(env, stmt); err != nil {
				return nil, err
			}
		}
		return v, nil
	}

	// only reachable if a node type was added without a case here
	return nil, fmt.Errorf("unknown expression: %T", expr)
}

// evaluateAll evaluates each ref in order.
func evaluateAll(env interfaces.Env, refs []*Ref) ([]types.Value, error) {
	values := []types.Value{}
	for _, x := range refs {
		v, err := Evaluate(env, x)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}
