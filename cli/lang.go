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
	"fmt"
	"strings"

	cliUtil "github.com/purpleidea/clipscript/cli/util"
	"github.com/purpleidea/clipscript/clip"
	"github.com/purpleidea/clipscript/lang"
	"github.com/purpleidea/clipscript/lang/funcs"
	"github.com/purpleidea/clipscript/lang/interfaces"
	"github.com/purpleidea/clipscript/lang/types"
	"github.com/purpleidea/clipscript/util/errwrap"
)

// newLang builds and initializes a script host from the shared flags. If a
// module path was given, the demo module is loaded under it.
func newLang(args *cliUtil.LangArgs, data *cliUtil.Data, resolveObserver funcs.Observer, cacheObserver clip.Observer) (*lang.Lang, error) {
	scope, err := ParseVars(args.Vars)
	if err != nil {
		return nil, cliUtil.CliParseError(err)
	}
	obj := &lang.Lang{
		Scope:           scope,
		PolicyPath:      args.Policy,
		CacheSize:       args.CacheSize,
		ResolveObserver: resolveObserver,
		CacheObserver:   cacheObserver,
		Debug:           data.Flags.Debug,
		Logf:            data.Flags.Prefixed("lang: "),
	}
	if err := obj.Init(); err != nil {
		return nil, err
	}
	if args.ModulePath != "" {
		if err := obj.Load(args.ModulePath, demoModule); err != nil {
			return nil, err
		}
	}
	return obj, nil
}

// ParseVars builds a scope from a list of name=value strings. The values use
// the same literal syntax as the arguments of the resolve command.
func ParseVars(vars []string) (*interfaces.Scope, error) {
	scope := interfaces.EmptyScope()
	for _, s := range vars {
		name, value, ok := strings.Cut(s, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("variable `%s` is not of the form name=value", s)
		}
		if value == "" {
			return nil, errwrap.Wrapf(cliUtil.MissingValue, "variable `%s` has no value", name)
		}
		v, err := ParseLiteral(value)
		if err != nil {
			return nil, errwrap.Wrapf(err, "bad value for variable `%s`", name)
		}
		if _, exists := scope.Lookup(name); exists {
			return nil, fmt.Errorf("variable `%s` was given twice", name)
		}
		scope.Bind(name, v)
	}
	return scope, nil
}

// demoModule is a small extension module. It registers functions the same way
// that a module loaded from disk would.
func demoModule(register lang.RegisterFunc) error {
	if err := register("Sum", "f*", sum, nil); err != nil {
		return err
	}
	return register("Repeat", "s[times]i", repeat, nil)
}

// sum adds up all of its arguments.
func sum(args *funcs.Args, userData interface{}, env interfaces.Env) (types.Value, error) {
	total := 0.0
	for _, v := range args.Array(0) {
		total += v.Float()
	}
	return &types.FloatValue{V: total}, nil
}

// repeat concatenates a string with itself.
func repeat(args *funcs.Args, userData interface{}, env interfaces.Env) (types.Value, error) {
	times := args.Int(1, 2)
	if times < 0 {
		return nil, fmt.Errorf("can't repeat %d times", times)
	}
	s := ""
	for i := int64(0); i < times; i++ {
		s += args.Str(0, "")
	}
	return &types.StrValue{V: s}, nil
}
