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

package util

import (
	"errors"
	"testing"
)

type fooArgs struct{}

type barArgs struct{}

type topArgs struct {
	Verbose bool     `arg:"--verbose"`
	Foo     *fooArgs `arg:"subcommand:foo"`
	Bar     *barArgs `arg:"subcommand:bar" help:"the bar command"`
}

func TestLookupSubcommand0(t *testing.T) {
	args := &topArgs{Bar: &barArgs{}}
	if name := LookupSubcommand(args, args.Bar); name != "bar" {
		t.Errorf("expected bar, got: `%s`", name)
	}
	if name := LookupSubcommand(args, &fooArgs{}); name != "" {
		t.Errorf("expected nothing, got: `%s`", name)
	}
}

func TestCliParseError0(t *testing.T) {
	err := CliParseError(MissingValue)
	if !errors.Is(err, MissingValue) {
		t.Errorf("expected the cause to survive, got: %+v", err)
	}
	if SafeProgram("clipscript pull") != "clipscript" {
		t.Errorf("unexpected program name")
	}
}

func TestPrefixed0(t *testing.T) {
	got := ""
	flags := &Flags{
		Logf: func(format string, v ...interface{}) {
			got = format
		},
	}
	flags.Prefixed("cli: ")("hello")
	if got != "cli: hello" {
		t.Errorf("unexpected message: `%s`", got)
	}
}
