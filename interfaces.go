/*
 * interfaces.go, part of gdytac.
 *
 * Copyright 2024 The gdytac Authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package chem

import (
	"errors"
	"fmt"
)
// Decorator is implemented by the errors of this module (see Error).
// Decorator is implemented by the errors of all the packages in this module.
// The Decorate method allows to add and retrieve info from the error,
// without changing its type or wrapping it around something else.
type Decorator interface {
	error
	//Decorate adds the caller to the trail and returns the trail. If passed an
	//empty string, it just returns the current value.
	Decorate(string) []string
}

// Kind classifies the errors of the module. A Kind is itself an error, so
// errors.Is(err, chem.ParseError) reports whether err is a parse error.
type Kind int

const (
	UnknownError Kind = iota
	//malformed or unrecognized input. Fatal to that input file only.
	ParseError
	//symbol missing from the element property table. Fatal to the current model.
	LookupError
	//read/write/directory failure. Fatal to the current model.
	IOError
	//non-invertible lattice matrix.
	DegenerateGeometryError
)

var kindNames = map[Kind]string{
	UnknownError:            "unknown",
	ParseError:              "parse",
	LookupError:             "lookup",
	IOError:                 "io",
	DegenerateGeometryError: "degenerate geometry",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

func (k Kind) Error() string { return k.String() + " error" }

// Error is the general error type of the module. It fulfills Decorator.
type Error struct {
	kind     Kind
	message  string
	filename string //the file that has problems, or empty string if none.
	line     int    //1-based line in filename, 0 if not applicable.
	deco     []string
	critical bool
	err      error
}

// NewError returns an Error of the given kind. The caller, if given, starts the trail.
func NewError(kind Kind, filename, message string, caller ...string) *Error {
	return &Error{kind: kind, message: message, filename: filename, deco: caller, critical: true}
}

// WrapError returns an Error of the given kind that wraps err.
func WrapError(kind Kind, filename string, err error, caller ...string) *Error {
	return &Error{kind: kind, message: err.Error(), filename: filename, deco: caller, critical: true, err: err}
}

// AtLine sets the line number where the problem was found, and returns the error.
func (E *Error) AtLine(line int) *Error {
	E.line = line
	return E
}

// InFile sets the file name of the error, if it had none, and returns the error.
func (E *Error) InFile(filename string) *Error {
	if E.filename == "" {
		E.filename = filename
	}
	return E
}

func (E *Error) Error() string {
	switch {
	case E.filename != "" && E.line > 0:
		return fmt.Sprintf("%s: %s:%d: %s", E.kind.Error(), E.filename, E.line, E.message)
	case E.filename != "":
		return fmt.Sprintf("%s: %s: %s", E.kind.Error(), E.filename, E.message)
	}
	return fmt.Sprintf("%s: %s", E.kind.Error(), E.message)
}

// Decorate adds new information to the error.
func (E *Error) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

// Kind returns the class of the error.
func (E *Error) Kind() Kind { return E.kind }

// FileName returns the file to which the error is associated, if any.
func (E *Error) FileName() string { return E.filename }

// Line returns the line in FileName where the error was found, or 0.
func (E *Error) Line() int { return E.line }

// Critical returns true if the error is critical, false otherwise.
func (E *Error) Critical() bool { return E.critical }

// Unwrap returns the wrapped error, if any.
func (E *Error) Unwrap() error { return E.err }

// Is matches the Kind sentinels.
func (E *Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == E.kind
}

// ErrDecorate decorates err with the caller's name before returning it.
// Errors that don't implement Decorator are wrapped in an Error of kind
// UnknownError first.
func ErrDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	var d Decorator
	if !errors.As(err, &d) {
		e := WrapError(UnknownError, "", err)
		e.Decorate(caller)
		return e
	}
	d.Decorate(caller)
	return err
}

// KindOf returns the Kind of err, or UnknownError.
func KindOf(err error) Kind {
	var E *Error
	if errors.As(err, &E) {
		return E.kind
	}
	return UnknownError
}
