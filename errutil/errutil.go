// Copyright (C) 2021-2025 Chronicle Labs, Inc.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package errutil defines the two error kinds returned by the filesystem
// helpers and a few generic helpers for combining errors.
//
// InvalidArgumentError reports that the caller supplied an unusable input,
// such as an empty path or an unreadable source. ApplicationError reports
// that an operation failed because of external resource state, such as a
// corrupt archive or an already populated destination.
package errutil

import (
	"errors"
	"fmt"
	"strings"
)

// InvalidArgumentError is returned when the caller supplied an unusable
// argument. It is always raised by a precondition check.
type InvalidArgumentError struct {
	Op   string
	Path string
	Err  error
}

// InvalidArgument returns a new InvalidArgumentError.
func InvalidArgument(op, path string, err error) error {
	return &InvalidArgumentError{Op: op, Path: path, Err: err}
}

// Error implements the error interface.
func (e *InvalidArgumentError) Error() string {
	return format("invalid argument", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *InvalidArgumentError) Unwrap() error {
	return e.Err
}

// ApplicationError is returned when an operation that depends on external
// resource state failed despite valid looking arguments.
type ApplicationError struct {
	Op   string
	Path string
	Err  error
}

// Application returns a new ApplicationError.
func Application(op, path string, err error) error {
	return &ApplicationError{Op: op, Path: path, Err: err}
}

// Error implements the error interface.
func (e *ApplicationError) Error() string {
	return format("application error", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *ApplicationError) Unwrap() error {
	return e.Err
}

// IsInvalidArgument reports whether any error in err's chain is an
// InvalidArgumentError.
func IsInvalidArgument(err error) bool {
	_, ok := As[*InvalidArgumentError](err)
	return ok
}

// IsApplication reports whether any error in err's chain is an
// ApplicationError.
func IsApplication(err error) bool {
	_, ok := As[*ApplicationError](err)
	return ok
}

func format(kind, op, path string, err error) string {
	var b strings.Builder
	if op != "" {
		b.WriteString(op)
		b.WriteString(": ")
	}
	b.WriteString(kind)
	if path != "" {
		fmt.Fprintf(&b, " %q", path)
	}
	if err != nil {
		b.WriteString(": ")
		b.WriteString(err.Error())
	}
	return b.String()
}

// Append combines the provided error with a list of errors.
func Append(err error, errs ...error) error {
	if err == nil && len(errs) == 0 {
		return nil
	}
	// Using type casting instead of errors.As is intentional.
	var mErr MultiError
	if e, ok := err.(MultiError); ok {
		mErr = e
	} else if err != nil {
		mErr = MultiError{err}
	}
	for _, e := range errs {
		if e == nil {
			continue
		}
		if m, ok := e.(MultiError); ok {
			mErr = append(mErr, m...)
		} else {
			mErr = append(mErr, e)
		}
	}
	switch len(mErr) {
	case 0:
		return nil
	case 1:
		return mErr[0]
	default:
		return mErr
	}
}

// MultiError is a collection of errors.
type MultiError []error

// Error implements the error interface.
func (m MultiError) Error() string {
	if len(m) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("following errors occurred: [")
	for i, err := range m {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(err.Error())
	}
	b.WriteString("]")
	return b.String()
}

// Unwrap unwraps all errors.
func (m MultiError) Unwrap() []error {
	return m
}

// As is a helper function that attempts to extract a target type from the error
// and returns it. It returns false if the error does not contain the target
// type.
func As[T error](err error) (target T, ok bool) {
	ok = errors.As(err, &target)
	return
}
