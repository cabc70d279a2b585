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

package funcs

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/purpleidea/clipscript/lang/interfaces"
)

func TestSuggest0(t *testing.T) {
	registry := newRegistry(t)
	for _, name := range []string{"Trim", "BlankClip", "FrameCount"} {
		if _, err := registry.Register(name, ".", tag(), name, ""); err != nil {
			t.Fatalf("err: %+v", err)
		}
	}
	registry.Freeze()

	type test struct { // an individual test
		name string
		exp  string
	}
	testCases := []test{}
	testCases = append(testCases, test{"Trm", "Trim"})
	testCases = append(testCases, test{"blankclp", "BlankClip"})
	testCases = append(testCases, test{"core_trm", "core_Trim"})
	testCases = append(testCases, test{"Resize", ""})
	testCases = append(testCases, test{"TRIM", ""}) // exact matches aren't suggestions

	for index, tc := range testCases {
		t.Run(fmt.Sprintf("test #%d (%s)", index, tc.name), func(t *testing.T) {
			if s := registry.Suggest(tc.name); s != tc.exp {
				t.Errorf("expected `%s`, got `%s`", tc.exp, s)
			}
		})
	}

	_, _, err := registry.Resolve("Trm", nil, nil)
	if !errors.Is(err, interfaces.ErrUnknownFunction) {
		t.Fatalf("expected an unknown function, got: %+v", err)
	}
	if !strings.Contains(err.Error(), "did you mean `Trim`?") {
		t.Errorf("expected a suggestion, got: %s", err)
	}
}
