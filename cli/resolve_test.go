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

package cli

import (
	"errors"
	"fmt"
	"testing"

	cliUtil "github.com/purpleidea/clipscript/cli/util"
	"github.com/purpleidea/clipscript/lang/interfaces"
	"github.com/purpleidea/clipscript/lang/types"

	"github.com/davecgh/go-spew/spew"
	"github.com/kylelemons/godebug/pretty"
)

func TestParseLiteral0(t *testing.T) {
	type test struct { // an individual test
		input string
		exp   types.Value
		fail  bool
	}
	testCases := []test{}
	testCases = append(testCases, test{"5", &types.IntValue{V: 5}, false})
	testCases = append(testCases, test{"-3", &types.IntValue{V: -3}, false})
	testCases = append(testCases, test{"2.5", &types.FloatValue{V: 2.5}, false})
	testCases = append(testCases, test{"true", &types.BoolValue{V: true}, false})
	testCases = append(testCases, test{"false", &types.BoolValue{V: false}, false})
	testCases = append(testCases, test{"undefined", types.Undefined, false})
	testCases = append(testCases, test{`"5"`, &types.StrValue{V: "5"}, false})
	testCases = append(testCases, test{`"a=b"`, &types.StrValue{V: "a=b"}, false})
	testCases = append(testCases, test{"hello", &types.StrValue{V: "hello"}, false})
	testCases = append(testCases, test{"nan", &types.StrValue{V: "nan"}, false})
	testCases = append(testCases, test{"Inf", &types.StrValue{V: "Inf"}, false})
	testCases = append(testCases, test{"-infinity", &types.StrValue{V: "-infinity"}, false})
	testCases = append(testCases, test{"1e3", &types.FloatValue{V: 1000}, false})
	testCases = append(testCases, test{`"open`, nil, true})
	testCases = append(testCases, test{"", nil, true})

	for index, tc := range testCases {
		t.Run(fmt.Sprintf("test #%d (%s)", index, tc.input), func(t *testing.T) {
			v, err := ParseLiteral(tc.input)
			if tc.fail {
				if err == nil {
					t.Errorf("expected an error, got: %s", spew.Sdump(v))
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %+v", err)
				return
			}
			if err := tc.exp.Cmp(v); err != nil {
				t.Errorf("expected %s, got %s", tc.exp, v)
			}
		})
	}
}

func TestParseArgs0(t *testing.T) {
	values, names, err := ParseArgs([]string{"c", "radius=2", `"x=y"`})
	if err != nil {
		t.Fatalf("err: %+v", err)
	}
	if diff := pretty.Compare(names, []string{"", "radius", ""}); diff != "" {
		t.Errorf("unexpected names: (-got +want)\n%s", diff)
	}
	if diff := pretty.Compare(types.Kinds(values), []types.Kind{types.KindStr, types.KindInt, types.KindStr}); diff != "" {
		t.Errorf("unexpected kinds: (-got +want)\n%s", diff)
	}

	if _, _, err := ParseArgs([]string{"radius="}); !errors.Is(err, cliUtil.MissingValue) {
		t.Errorf("expected a missing value, got: %+v", err)
	}
}

func TestDemoModule0(t *testing.T) {
	data := &cliUtil.Data{
		Flags: cliUtil.Flags{
			Logf: func(format string, v ...interface{}) {
				t.Logf(format, v...)
			},
		},
	}
	args := &cliUtil.LangArgs{
		ModulePath: "/usr/lib/clipscript/demo.so",
	}
	l, err := newLang(args, data, nil, nil)
	if err != nil {
		t.Fatalf("err: %+v", err)
	}
	defer l.Close()
	l.Freeze()

	values, names, err := ParseArgs([]string{`"ab"`, "times=3"})
	if err != nil {
		t.Fatalf("err: %+v", err)
	}
	v, err := l.Env().Invoke("demo_repeat", values, names)
	if err != nil {
		t.Fatalf("err: %+v", err)
	}
	if v.Str() != "ababab" {
		t.Errorf("unexpected value: %s", v)
	}

	values, _, err = ParseArgs([]string{"1", "2.5", "3"})
	if err != nil {
		t.Fatalf("err: %+v", err)
	}
	v, err = l.Env().Invoke("Sum", values, nil)
	if err != nil {
		t.Fatalf("err: %+v", err)
	}
	if v.Float() != 6.5 {
		t.Errorf("unexpected value: %s", v)
	}

	// strings don't parse into numbers under the default policy
	values, _, _ = ParseArgs([]string{"1", "two"})
	if _, err := l.Env().Invoke("Sum", values, nil); !errors.Is(err, interfaces.ErrNoMatchingOverload) {
		t.Errorf("expected no matching overload, got: %+v", err)
	}
}

func TestParseVars0(t *testing.T) {
	type test struct { // an individual test
		vars  []string
		names []string
		err   error
		fail  bool
	}
	testCases := []test{}
	testCases = append(testCases, test{nil, []string{}, nil, false})
	testCases = append(testCases, test{[]string{"Width=640", `title="a=b"`}, []string{"title", "width"}, nil, false})
	testCases = append(testCases, test{[]string{"width="}, nil, cliUtil.MissingValue, true})
	testCases = append(testCases, test{[]string{"width"}, nil, nil, true})
	testCases = append(testCases, test{[]string{"=5"}, nil, nil, true})
	testCases = append(testCases, test{[]string{"a=1", "A=2"}, nil, nil, true})

	for index, tc := range testCases {
		t.Run(fmt.Sprintf("test #%d (%v)", index, tc.vars), func(t *testing.T) {
			scope, err := ParseVars(tc.vars)
			if tc.fail {
				if err == nil {
					t.Errorf("expected an error, got: %v", scope.Names())
				}
				if tc.err != nil && !errors.Is(err, tc.err) {
					t.Errorf("expected %v, got: %+v", tc.err, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("err: %+v", err)
			}
			if diff := pretty.Compare(scope.Names(), tc.names); diff != "" {
				t.Errorf("unexpected names: (-got +want)\n%s", diff)
			}
		})
	}
}
