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

package types

import (
	"fmt"
)

// Kind represents the base type of each value. A value always has exactly one
// kind. KindAny is only used by function signatures and never by a value.
type Kind int

// Each Kind represents a type in the language type system. These are ordered
// and must never be reordered, since the letters and the names are part of the
// signature mini-language that extension modules compile against.
const (
	KindUndefined Kind = iota
	KindBool
	KindInt
	KindFloat
	KindStr
	KindClip
	KindArray

	// KindAny matches a value of any kind. It is only valid in signatures.
	KindAny
)

// kindInfo is the static lookup information for each kind.
var kindInfo = map[Kind]struct {
	name   string
	letter byte
}{
	KindUndefined: {"undefined", 0}, // can't be declared in a signature
	KindBool:      {"bool", 'b'},
	KindInt:       {"int", 'i'},
	KindFloat:     {"float", 'f'},
	KindStr:       {"string", 's'},
	KindClip:      {"clip", 'c'},
	KindArray:     {"array", 'a'},
	KindAny:       {"any", '.'},
}

// String returns the human readable name of the kind.
func (obj Kind) String() string {
	if info, exists := kindInfo[obj]; exists {
		return info.name
	}
	return fmt.Sprintf("Kind(%d)", int(obj))
}

// Letter returns the signature letter used for this kind. Kinds which can't be
// declared in a signature return zero.
func (obj Kind) Letter() byte {
	return kindInfo[obj].letter // zero if missing
}

// IsNumeric returns true if this kind holds a number.
func (obj Kind) IsNumeric() bool {
	return obj == KindInt || obj == KindFloat
}

// KindFromLetter returns the kind which corresponds to a signature letter. If
// the letter is unknown, then this returns false.
func KindFromLetter(letter byte) (Kind, bool) {
	for kind, info := range kindInfo {
		if info.letter != 0 && info.letter == letter {
			return kind, true
		}
	}
	return KindUndefined, false
}

// KindFromName returns the kind which corresponds to a kind name, as returned
// by the String method. This is used when parsing configuration files.
func KindFromName(name string) (Kind, bool) {
	for kind, info := range kindInfo {
		if info.name == name {
			return kind, true
		}
	}
	return KindUndefined, false
}
