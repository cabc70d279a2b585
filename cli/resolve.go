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

package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	cliUtil "github.com/purpleidea/clipscript/cli/util"
	"github.com/purpleidea/clipscript/lang/funcs"
	"github.com/purpleidea/clipscript/lang/types"
	"github.com/purpleidea/clipscript/util/errwrap"
)

// ResolveArgs is the CLI parsing structure and type of the parsed result. This
// particular one contains all the flags for the `resolve` subcommand.
type ResolveArgs struct {
	cliUtil.LangArgs // embedded config (can't be a pointer) https://github.com/alexflint/go-arg/issues/240

	Call bool `arg:"--call" help:"also run the chosen function"`

	Name string `arg:"positional,required" help:"name of the function to resolve"`

	// Args are the literal arguments. A `name=value` argument is passed by
	// name.
	Args []string `arg:"positional" help:"literal arguments, eg: 5 2.5 true \"str\" radius=2"`
}

// Run resolves the call and prints which overload was chosen and how its
// parameters were bound.
func (obj *ResolveArgs) Run(ctx context.Context, data *cliUtil.Data) (bool, error) {
	values, names, err := ParseArgs(obj.Args)
	if err != nil {
		return false, cliUtil.CliParseError(err)
	}

	l, err := newLang(&obj.LangArgs, data, nil, nil)
	if err != nil {
		return false, err
	}
	defer l.Close()
	l.Freeze()

	record, bound, err := l.Registry().Resolve(obj.Name, values, names)
	if err != nil {
		var rerr *funcs.ResolveError
		if errors.As(err, &rerr) {
			for _, c := range rerr.Candidates {
				fmt.Printf("candidate: %s %s\n", c, c.Sig.Describe())
			}
		}
		return false, err
	}

	fmt.Printf("resolved: %s %s\n", record, record.Sig.Describe())
	for i, p := range record.Sig.Params {
		v := "<unset>"
		if bound.Defined(i) {
			v = bound.Get(i).String()
		}
		fmt.Printf("  %d: %s = %s\n", i, p, v)
	}

	if !obj.Call {
		return true, nil
	}
	result, err := record.Call(bound, l.Env())
	if err != nil {
		return false, errwrap.Wrapf(err, "call of %s failed", record)
	}
	fmt.Printf("result: %s\n", result)
	return true, nil
}

// ParseArgs parses literal arguments from the command line. It returns the
// values, and the name of each one, which is empty for positional arguments.
func ParseArgs(args []string) ([]types.Value, []string, error) {
	values := []types.Value{}
	names := []string{}
	for _, arg := range args {
		name := ""
		s := arg
		if i := strings.IndexByte(arg, '='); i > 0 && !strings.HasPrefix(arg, `"`) {
			name, s = arg[:i], arg[i+1:]
		}
		if name != "" && s == "" {
			return nil, nil, errwrap.Wrapf(cliUtil.MissingValue, "argument `%s` has no value", name)
		}
		v, err := ParseLiteral(s)
		if err != nil {
			return nil, nil, err
		}
		values = append(values, v)
		names = append(names, name)
	}
	return values, names, nil
}

// ParseLiteral parses one literal. Ints, floats, true, false and undefined are
// recognized, a double quoted string is unquoted, and anything else is taken
// as a bare string.
func ParseLiteral(s string) (types.Value, error) {
	switch s {
	case "true":
		return &types.BoolValue{V: true}, nil
	case "false":
		return &types.BoolValue{V: false}, nil
	case "undefined":
		return types.Undefined, nil
	}
	if strings.HasPrefix(s, `"`) {
		str, err := strconv.Unquote(s)
		if err != nil {
			return nil, errwrap.Wrapf(err, "bad string literal: %s", s)
		}
		return &types.StrValue{V: str}, nil
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return &types.IntValue{V: i}, nil
	}
	// ParseFloat also takes words like nan and inf, which are strings here
	if f, err := strconv.ParseFloat(s, 64); err == nil && strings.ContainsAny(s, "0123456789") {
		return &types.FloatValue{V: f}, nil
	}
	if s == "" {
		return nil, fmt.Errorf("empty literal")
	}
	return &types.StrValue{V: s}, nil
}
