// Package source defines token sources splitting byte streams into whitespace-delimited tokens.
//
// Two kinds of sources are provided: Once reads entire input when created and is the fastest one,
// Line reads input line by line on demand and is suitable for interactive use.
// NewAuto picks one of them depending on the reader.
package source

import (
	"io"

	"github.com/ava12/procin"
)

// Error codes used by sources:
const (
	// ErrIO indicates that underlying reader has failed. Sources return the same error for all subsequent calls.
	ErrIO = procin.SourceErrors + iota

	// ErrExhausted indicates that a token is required but input has ended.
	ErrExhausted

	// ErrMode indicates unknown source mode in ModeEnv environment variable.
	ErrMode
)

// Source is a stream of whitespace-delimited tokens. Separators are ASCII and Unicode white space,
// empty tokens are never returned.
// Sources are not safe for concurrent use.
type Source interface {
	// NextToken returns the next token and advances source position.
	// Returns io.EOF if there are no more tokens, *procin.Error with ErrIO code if reader fails.
	// Returned token is valid until the next call.
	NextToken() (Token, error)

	// IsEmpty reports whether there are no more tokens.
	// May read more input, but never consumes tokens.
	IsEmpty() (bool, error)
}

// Require returns the next token from s.
// Returns *procin.Error with ErrExhausted code if there are no more tokens.
func Require(s Source) (Token, error) {
	t, e := s.NextToken()
	if e == io.EOF {
		e = procin.FormatError(ErrExhausted,
			"failed to get the next token: reached the end of input; "+
				"ensure that the binding list matches the input format")
	}
	return t, e
}

func ioError(name string, e error) *procin.Error {
	if name == "" {
		return procin.FormatError(ErrIO, "failed to read input: %s", e.Error())
	}
	return procin.FormatError(ErrIO, "failed to read %s: %s", name, e.Error())
}
