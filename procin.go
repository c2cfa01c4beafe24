/*
Package procin reads typed values from whitespace-delimited text input, the way
competitive programming judges feed it.

Consists of subpackages:
  - source: token sources splitting a byte stream into whitespace-delimited tokens,
    either reading the whole input at once (Once) or line by line (Line);
  - read: the Reader capability implemented for scalars, 1-indexed markers,
    char and byte sequences, arrays, tuples, and user aggregates;
  - shape: parser for binding lists like "n: usize, a: [[i32]; n]";
  - input: reads binding lists from a source into caller variables, including the
    process-wide stdin source;
  - derive: generates Reader implementations for annotated structs, used by cmd/procingen;
  - cmd/procingen: go:generate utility wrapping derive;
  - cmd/procin: console utility dumping values read from stdin by a binding list.

Typical usage is:

	var n int
	var edges [][2]int
	input.Input("n: usize, edges: [(Usize1, Usize1); n]", &n, &edges)

Every read consumes tokens strictly left to right, so several binding lists may be
read one after another from the same source, with arbitrary code in between.
*/
package procin

import (
	"fmt"
)

// Error classes used by subpackages, each class contains up to 99 error codes:
const (
	SourceErrors = 1   // used by source
	ReadErrors   = 101 // used by read
	ShapeErrors  = 201 // used by shape
	InputErrors  = 301 // used by input
	DeriveErrors = 401 // used by derive
)

// Error is the error type used by procin subpackages.
type Error struct {
	// Code contains non-zero error code.
	Code int

	// Message contains non-empty error message including source name and position information if provided.
	Message string

	// SourceName contains source name that caused this error or empty string.
	SourceName string

	// Line contains line number in source or 0.
	Line int

	// Col contains column number in source or 0.
	Col int
}

// SourcePos is used to retrieve source name and position information when constructing an error;
// source.Token implements this interface.
type SourcePos interface {
	// SourceName returns source name or empty string.
	SourceName() string
	// Line returns line number or 0.
	Line() int
	// Col returns column number or 0.
	Col() int
}

// NewError creates new Error structure.
// line and col will be added to error message if provided (non-zero), name is added if not empty.
func NewError(code int, msg, name string, line, col int) *Error {
	if line != 0 && col != 0 {
		if name == "" {
			msg += fmt.Sprintf(" at line %d col %d", line, col)
		} else {
			msg += fmt.Sprintf(" in %s at line %d col %d", name, line, col)
		}
	}
	return &Error{code, msg, name, line, col}
}

// Error simply returns Error.Message.
func (e *Error) Error() string {
	return e.Message
}

// FormatError creates Error structure with no source and position information.
// params will be added to error message using fmt.Sprintf function.
func FormatError(code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, "", 0, 0)
}

// FormatErrorPos creates Error structure with source and position information.
// pos must not be nil.
// params will be added to error message using fmt.Sprintf function.
func FormatErrorPos(pos SourcePos, code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, pos.SourceName(), pos.Line(), pos.Col())
}

// HasCode reports whether e is a *Error with given code.
func HasCode(e error, code int) bool {
	ee, ok := e.(*Error)
	return ok && ee.Code == code
}
