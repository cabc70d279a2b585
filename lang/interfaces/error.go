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

// Package interfaces contains the common interfaces and errors that are shared
// by the function registry, the expression evaluator, and the host.
package interfaces

// Error is a constant error type that implements error.
type Error string

// Error fulfills the error interface of this type.
func (e Error) Error() string { return string(e) }

const (
	// ErrInvalidSignature is returned when a signature token string can't
	// be parsed at registration time.
	ErrInvalidSignature = Error("invalid signature")

	// ErrUnknownFunction is returned when no function of that name was
	// ever registered.
	ErrUnknownFunction = Error("unknown function")

	// ErrNoMatchingOverload is returned when functions of that name exist,
	// but none of them accept the given arguments. The reasons each
	// candidate was rejected are carried along with it.
	ErrNoMatchingOverload = Error("no matching overload")

	// ErrAmbiguousOverload is returned when more than one candidate
	// accepts the arguments equally well.
	ErrAmbiguousOverload = Error("ambiguous overload")

	// ErrMissingRequiredArgument means a candidate was rejected because a
	// required parameter was not bound by any argument.
	ErrMissingRequiredArgument = Error("missing required argument")

	// ErrDuplicateBinding means a candidate was rejected because one of its
	// parameters was bound twice.
	ErrDuplicateBinding = Error("duplicate binding")

	// ErrArgumentNameMismatch means a candidate was rejected because a named
	// argument doesn't name any of its parameters.
	ErrArgumentNameMismatch = Error("argument name mismatch")

	// ErrTypeMismatch means a candidate was rejected because an argument
	// has a kind that the parameter doesn't accept.
	ErrTypeMismatch = Error("type mismatch")

	// ErrTooManyArguments means a candidate was rejected because there were
	// more positional arguments than it has parameters.
	ErrTooManyArguments = Error("too many arguments")

	// ErrUndefinedVariable is returned when a variable is read before it
	// was ever assigned.
	ErrUndefinedVariable = Error("undefined variable")

	// ErrNotAssignable is returned when the target of an assignment is not
	// a plain identifier.
	ErrNotAssignable = Error("not assignable")

	// ErrRegistryFrozen is returned when a function is registered after
	// the load phase has ended.
	ErrRegistryFrozen = Error("registry is frozen")

	// ErrReleased is returned when an expression is used after its last
	// reference was released.
	ErrReleased = Error("expression was released")
)
