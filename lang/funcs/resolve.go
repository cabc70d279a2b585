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

const (
	// PassStrict is the name of the first resolution pass, where the kinds
	// must match exactly.
	PassStrict = "strict"

	// PassLoose is the name of the second resolution pass, where the
	// coercion policy is applied.
	PassLoose = "loose"
)

// ResolveError is returned when a call can't be resolved to exactly one
// function. It unwraps to its Kind, and to each of the rejection reasons, so
// that errors.Is works on all of them.
type ResolveError struct {
	// Kind is one of ErrUnknownFunction, ErrAmbiguousOverload or
	// ErrNoMatchingOverload.
	Kind error

	// Name is the called name.
	Name string

	// Args are the kinds of the arguments, in order.
	Args []types.Kind

	// Names are the names of the arguments, empty for positional ones.
	Names []string

	// Candidates are the tied records for an ambiguous call, or the
	// rejected ones when nothing matched.
	Candidates []*Record

	// Reasons has one error per rejected candidate, in the order of
	// Candidates. It is nil unless Kind is ErrNoMatchingOverload.
	Reasons error

	// Suggestion is a registered name that is close to Name. It is only
	// set when Kind is ErrUnknownFunction, and may be empty.
	Suggestion string
}

// call returns a visual representation of the attempted call.
func (obj *ResolveError) call() string {
	args := []string{}
	for i, k := range obj.Args {
		s := k.String()
		if i < len(obj.Names) && obj.Names[i] != "" {
			s = obj.Names[i] + "=" + s
		}
		args = append(args, s)
	}
	return fmt.Sprintf("%s(%s)", obj.Name, strings.Join(args, ", "))
}

// Error returns a description of why the call could not be resolved.
func (obj *ResolveError) Error() string {
	s := fmt.Sprintf("%s: %s", obj.Kind, obj.call())
	if len(obj.Candidates) > 0 && obj.Kind == interfaces.ErrAmbiguousOverload {
		sigs := []string{}
		for _, x := range obj.Candidates {
			sigs = append(sigs, x.String())
		}
		s += ": tied between " + strings.Join(sigs, " and ")
	}
	if obj.Suggestion != "" {
		s += fmt.Sprintf(", did you mean `%s`?", obj.Suggestion)
	}
	for _, e := range errwrap.Flatten(obj.Reasons) {
		s += "\n\t" + e.Error()
	}
	return s
}

// Unwrap returns the kind followed by each of the rejection reasons.
func (obj *ResolveError) Unwrap() []error {
	return append([]error{obj.Kind}, errwrap.Flatten(obj.Reasons)...)
}

// Resolve picks the one function that a call refers to, and binds the
// arguments to its parameters. The names list holds the name of each argument,
// or the empty string for a positional one. A strict pass runs first, where
// the kinds must match exactly. Only if that finds nothing, a loose pass runs
// where the coercion policy may convert arguments. One match wins, more than
// one is an ambiguous call.
func (obj *Registry) Resolve(name string, args []types.Value, names []string) (*Record, *Args, error) {
	defer obj.rlock()()

	candidates := obj.lookup(name)
	if len(candidates) == 0 {
		obj.observe("", "unknown")
		return nil, nil, &ResolveError{
			Kind:       interfaces.ErrUnknownFunction,
			Name:       name,
			Args:       types.Kinds(args),
			Names:      names,
			Suggestion: obj.suggest(name),
		}
	}

	pass := PassStrict
	matches, bound, reasons := obj.pass(candidates, args, names, nil)
	if len(matches) == 0 {
		pass = PassLoose
		matches, bound, reasons = obj.pass(candidates, args, names, obj.Policy)
	}

	switch len(matches) {
	case 1:
		if obj.Debug {
			obj.Logf("resolved %s in the %s pass to %s", name, pass, matches[0])
		}
		obj.observe(pass, "ok")
		return matches[0], bound[0], nil

	case 0:
		obj.observe(pass, "nomatch")
		return nil, nil, &ResolveError{
			Kind:       interfaces.ErrNoMatchingOverload,
			Name:       name,
			Args:       types.Kinds(args),
			Names:      names,
			Candidates: candidates,
			Reasons:    reasons,
		}
	}

	obj.observe(pass, "ambiguous")
	return nil, nil, &ResolveError{
		Kind:       interfaces.ErrAmbiguousOverload,
		Name:       name,
		Args:       types.Kinds(args),
		Names:      names,
		Candidates: matches,
	}
}

// pass tries to bind the arguments to each candidate. It returns the ones which
// accept them, and the reason each of the others was rejected.
func (obj *Registry) pass(candidates []*Record, args []types.Value, names []string, policy *CoercionPolicy) ([]*Record, []*Args, error) {
	matches := []*Record{}
	bound := []*Args{}
	var reasons error
	for _, x := range candidates {
		a, err := Bind(x.Sig, args, names, policy)
		if err != nil {
			reasons = errwrap.Append(reasons, errwrap.Wrapf(err, "%s", x))
			continue
		}
		matches = append(matches, x)
		bound = append(bound, a)
	}
	return matches, bound, reasons
}

func (obj *Registry) observe(pass, result string) {
	if obj.Observer != nil {
		obj.Observer.ObserveResolve(pass, result)
	}
}
