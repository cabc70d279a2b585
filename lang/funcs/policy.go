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
	"os"
	"sort"

	"github.com/purpleidea/clipscript/lang/types"
	"github.com/purpleidea/clipscript/util/errwrap"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v2"
)

// Coercion is a permitted implicit conversion from one kind to another.
type Coercion struct {
	From types.Kind
	To   types.Kind
}

// String returns a visual representation of the coercion.
func (obj Coercion) String() string {
	return fmt.Sprintf("%s->%s", obj.From, obj.To)
}

// knownCoercions are the only conversions that a policy may permit. Anything
// else is rejected when the policy is built.
var knownCoercions = map[Coercion]struct{}{
	{From: types.KindInt, To: types.KindFloat}: {},
	{From: types.KindFloat, To: types.KindInt}: {},
	{From: types.KindBool, To: types.KindInt}:  {},
	{From: types.KindInt, To: types.KindBool}:  {},
	{From: types.KindStr, To: types.KindInt}:   {},
	{From: types.KindStr, To: types.KindFloat}: {},
}

// CoercionPolicy is the table of implicit conversions that the loose pass of
// the resolver may apply. The strict pass never applies any.
type CoercionPolicy struct {
	allowed map[Coercion]struct{}
}

// NewPolicy builds a policy which allows exactly the listed coercions.
func NewPolicy(coercions ...Coercion) (*CoercionPolicy, error) {
	obj := &CoercionPolicy{
		allowed: make(map[Coercion]struct{}),
	}
	for _, c := range coercions {
		if _, exists := knownCoercions[c]; !exists {
			return nil, fmt.Errorf("unsupported coercion: %s", c)
		}
		obj.allowed[c] = struct{}{}
	}
	return obj, nil
}

// DefaultPolicy returns the policy that is used when nothing else was asked
// for. It only widens ints to floats.
func DefaultPolicy() *CoercionPolicy {
	return &CoercionPolicy{
		allowed: map[Coercion]struct{}{
			{From: types.KindInt, To: types.KindFloat}: {},
		},
	}
}

// Allows returns true if a value of kind from may be passed where kind to is
// expected.
func (obj *CoercionPolicy) Allows(from, to types.Kind) bool {
	if obj == nil {
		return false
	}
	_, exists := obj.allowed[Coercion{From: from, To: to}]
	return exists
}

// Coercions returns the list of permitted coercions in a stable order.
func (obj *CoercionPolicy) Coercions() []Coercion {
	l := []Coercion{}
	for c := range obj.allowed {
		l = append(l, c)
	}
	sort.Slice(l, func(i, j int) bool {
		if l[i].From != l[j].From {
			return l[i].From < l[j].From
		}
		return l[i].To < l[j].To
	})
	return l
}

// policyConfig is the on disk format of a coercion policy.
//
//	coercions:
//	  - from: int
//	    to: float
type policyConfig struct {
	Coercions []coercionConfig `yaml:"coercions"`
}

type coercionConfig struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// ParsePolicy builds a policy from its yaml representation.
func ParsePolicy(data []byte) (*CoercionPolicy, error) {
	config := &policyConfig{}
	if err := yaml.UnmarshalStrict(data, config); err != nil {
		return nil, errwrap.Wrapf(err, "could not parse the coercion policy")
	}
	coercions := []Coercion{}
	for _, x := range config.Coercions {
		from, ok := types.KindFromName(x.From)
		if !ok {
			return nil, fmt.Errorf("unknown kind: %s", x.From)
		}
		to, ok := types.KindFromName(x.To)
		if !ok {
			return nil, fmt.Errorf("unknown kind: %s", x.To)
		}
		coercions = append(coercions, Coercion{From: from, To: to})
	}
	return NewPolicy(coercions...)
}

// LoadPolicy reads a coercion policy from a yaml file. If the file doesn't
// exist, the default policy is returned.
func LoadPolicy(fs afero.Fs, path string) (*CoercionPolicy, error) {
	data, err := afero.ReadFile(fs, path)
	if os.IsNotExist(err) {
		return DefaultPolicy(), nil
	}
	if err != nil {
		return nil, errwrap.Wrapf(err, "could not read the coercion policy")
	}
	return ParsePolicy(data)
}

// MarshalPolicy returns the yaml representation of a policy.
func MarshalPolicy(policy *CoercionPolicy) ([]byte, error) {
	config := &policyConfig{}
	for _, c := range policy.Coercions() {
		config.Coercions = append(config.Coercions, coercionConfig{
			From: c.From.String(),
			To:   c.To.String(),
		})
	}
	return yaml.Marshal(config)
}
