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

package funcs

import (
	"fmt"
	"strings"

	"github.com/purpleidea/clipscript/lang/interfaces"
	"github.com/purpleidea/clipscript/lang/types"
	"github.com/purpleidea/clipscript/util/errwrap"
)

// Param is a single parameter descriptor of a signature.
type Param struct {
	// Name is the declared name, or empty if the parameter can only be
	// passed by position.
	Name string

	// Kind is the kind of value accepted. KindAny accepts everything.
	Kind types.Kind

	// Optional is true if the parameter can be omitted.
	Optional bool

	// Variadic is true if this is the tail which consumes all of the
	// remaining positional arguments. It is always the last parameter.
	Variadic bool

	// Min is the minimum number of values that a variadic tail takes. It
	// is zero for `*` and one for `+`.
	Min int
}

// String returns the token form of this parameter.
func (obj *Param) String() string {
	s := ""
	if obj.Name != "" {
		s = "[" + obj.Name + "]"
	}
	s += string(obj.Kind.Letter())
	if obj.Variadic {
		if obj.Min > 0 {
			s += "+"
		} else {
			s += "*"
		}
	}
	return s
}

// Equal returns true if the two parameter descriptors are identical. Names are
// compared without regard to case.
func (obj *Param) Equal(p *Param) bool {
	return interfaces.Fold(obj.Name) == interfaces.Fold(p.Name) &&
		obj.Kind == p.Kind &&
		obj.Optional == p.Optional &&
		obj.Variadic == p.Variadic &&
		obj.Min == p.Min
}

// Signature is the parsed form of a signature token string. It is built once
// when a function is registered and never changes after that.
type Signature struct {
	Params []*Param

	tokens string
}

// ParseSignature parses a signature token string. The grammar is a list of
// descriptors, each made of an optional `[name]`, a type letter, and an
// optional repeat marker: `*` for zero or more, `+` for one or more. The type
// letters are: b (bool), i (int), f (float), s (string), c (clip), a (array)
// and `.` (any). A single `|` separates the required descriptors from the
// optional ones. Without it, named descriptors are optional and unnamed ones
// are required. Whitespace is ignored.
func ParseSignature(tokens string) (*Signature, error) {
	sig := &Signature{
		Params: []*Param{},
		tokens: tokens,
	}

	split := -1 // index of the first param after the `|`
	name := ""  // pending name
	named := false
	names := make(map[string]struct{})

	s := strings.Join(strings.Fields(tokens), "") // whitespace is ignored
	for i := 0; i < len(s); i++ {
		c := s[i]

		if n := len(sig.Params); n > 0 && sig.Params[n-1].Variadic {
			return nil, errwrap.Wrapf(interfaces.ErrInvalidSignature, "`%s`: the repeated parameter must be last", tokens)
		}

		switch c {
		case '[':
			if named {
				return nil, errwrap.Wrapf(interfaces.ErrInvalidSignature, "`%s`: name `%s` has no type", tokens, name)
			}
			end := strings.IndexByte(s[i:], ']')
			if end == -1 {
				return nil, errwrap.Wrapf(interfaces.ErrInvalidSignature, "`%s`: unterminated name", tokens)
			}
			name = s[i+1 : i+end]
			if name == "" {
				return nil, errwrap.Wrapf(interfaces.ErrInvalidSignature, "`%s`: empty name", tokens)
			}
			if strings.ContainsAny(name, "[|*+") {
				return nil, errwrap.Wrapf(interfaces.ErrInvalidSignature, "`%s`: invalid name `%s`", tokens, name)
			}
			if _, exists := names[interfaces.Fold(name)]; exists {
				return nil, errwrap.Wrapf(interfaces.ErrInvalidSignature, "`%s`: duplicate name `%s`", tokens, name)
			}
			names[interfaces.Fold(name)] = struct{}{}
			named = true
			i += end
			continue

		case '|':
			if named {
				return nil, errwrap.Wrapf(interfaces.ErrInvalidSignature, "`%s`: name `%s` has no type", tokens, name)
			}
			if split != -1 {
				return nil, errwrap.Wrapf(interfaces.ErrInvalidSignature, "`%s`: more than one `|`", tokens)
			}
			split = len(sig.Params)
			continue

		case '*', '+':
			return nil, errwrap.Wrapf(interfaces.ErrInvalidSignature, "`%s`: repeat marker `%c` without a type", tokens, c)
		}

		kind, ok := types.KindFromLetter(c)
		if !ok {
			return nil, errwrap.Wrapf(interfaces.ErrInvalidSignature, "`%s`: unknown type token `%c`", tokens, c)
		}
		param := &Param{
			Name: name,
			Kind: kind,
		}
		if i+1 < len(s) && (s[i+1] == '*' || s[i+1] == '+') {
			param.Variadic = true
			if s[i+1] == '+' {
				param.Min = 1
			}
			i++
		}
		sig.Params = append(sig.Params, param)
		name = ""
		named = false
	}
	if named {
		return nil, errwrap.Wrapf(interfaces.ErrInvalidSignature, "`%s`: name `%s` has no type", tokens, name)
	}

	for i, p := range sig.Params {
		if split == -1 {
			p.Optional = p.Name != "" // the default convention
		} else {
			p.Optional = i >= split
		}
		if p.Variadic && !p.Optional && p.Min == 0 {
			p.Optional = true // zero or more can always be omitted
		}
	}
	return sig, nil
}

// String returns the tokens that this signature was parsed from, without any
// whitespace.
func (obj *Signature) String() string {
	return strings.Join(strings.Fields(obj.tokens), "")
}

// Equal returns true if both signatures describe the same parameters.
func (obj *Signature) Equal(sig *Signature) bool {
	if len(obj.Params) != len(sig.Params) {
		return false
	}
	for i := range obj.Params {
		if !obj.Params[i].Equal(sig.Params[i]) {
			return false
		}
	}
	return true
}

// Lookup returns the index of the parameter with that name.
func (obj *Signature) Lookup(name string) (int, bool) {
	for i, p := range obj.Params {
		if p.Name != "" && interfaces.Fold(p.Name) == interfaces.Fold(name) {
			return i, true
		}
	}
	return -1, false
}

// Variadic returns the repeated tail parameter, or nil if there isn't one.
func (obj *Signature) Variadic() *Param {
	if n := len(obj.Params); n > 0 && obj.Params[n-1].Variadic {
		return obj.Params[n-1]
	}
	return nil
}

// Describe returns a human readable form of the signature for error messages.
func (obj *Signature) Describe() string {
	params := []string{}
	for _, p := range obj.Params {
		s := p.Kind.String()
		if p.Variadic {
			s += "..."
		}
		if p.Name != "" {
			s = fmt.Sprintf("%s %s", p.Name, s)
		}
		if p.Optional {
			s += "?"
		}
		params = append(params, s)
	}
	return "(" + strings.Join(params, ", ") + ")"
}
