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

package errwrap

import (
	"errors"
	"fmt"
	"testing"
)

func TestWrapfErr1(t *testing.T) {
	if err := Wrapf(nil, "whatever: %d", 42); err != nil {
		t.Errorf("expected nil result")
	}
}

func TestAppendErr1(t *testing.T) {
	if err := Append(nil, nil); err != nil {
		t.Errorf("expected nil result")
	}
}

func TestAppendErr2(t *testing.T) {
	reterr := fmt.Errorf("reterr")
	if err := Append(reterr, nil); err != reterr {
		t.Errorf("expected reterr")
	}
}

func TestAppendErr3(t *testing.T) {
	err := fmt.Errorf("err")
	if reterr := Append(nil, err); reterr != err {
		t.Errorf("expected err")
	}
}

func TestFlatten1(t *testing.T) {
	if l := len(Flatten(nil)); l != 0 {
		t.Errorf("expected empty list, got %d", l)
	}

	e1 := fmt.Errorf("e1")
	e2 := fmt.Errorf("e2")
	e3 := fmt.Errorf("e3")
	var err error
	err = Append(err, e1)
	err = Append(err, Append(e2, e3))

	errs := Flatten(err)
	if l := len(errs); l != 3 {
		t.Errorf("expected 3 errors, got %d", l)
		return
	}
	for i, e := range []error{e1, e2, e3} {
		if errs[i] != e {
			t.Errorf("error #%d did not match: %v", i, errs[i])
		}
	}
}

func TestWrapfIs1(t *testing.T) {
	sentinel := fmt.Errorf("sentinel")
	err := Wrapf(Wrapf(sentinel, "inner %d", 1), "outer %d", 2)
	if !errors.Is(err, sentinel) {
		t.Errorf("wrapping lost the sentinel: %v", err)
	}
	if s := err.Error(); s != "outer 2: inner 1: sentinel" {
		t.Errorf("unexpected message: %s", s)
	}
}

func TestFlattenIs1(t *testing.T) {
	sentinel := fmt.Errorf("sentinel")
	err := Append(fmt.Errorf("other"), Wrapf(sentinel, "wrapped"))
	found := false
	for _, e := range Flatten(err) {
		if errors.Is(e, sentinel) {
			found = true
		}
	}
	if !found {
		t.Errorf("sentinel not found in: %v", err)
	}
}
