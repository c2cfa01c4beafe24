// Package read defines the Reader capability: a value of some output type is produced by consuming
// exactly the tokens it needs from a source, in order.
//
// Readers are provided for scalars (Int, Uint, Float, Bool, Char, String, Big), token-wide sequences
// (Chars, Bytes), 1-indexed markers (Usize1, Isize1, Dec), and structural combinators
// (Array, Prefixed, Tuple2, Tuple3, Tuple4). User types implementing Readable plug in with Of.
package read

import (
	"strconv"

	"github.com/ava12/procin"
	"github.com/ava12/procin/source"
)

// Error codes used by readers:
const (
	// ErrParse indicates that token text cannot be parsed as the target type.
	ErrParse = procin.ReadErrors + iota

	// ErrUnderflow indicates that a 1-indexed value is the minimum of its type and cannot be decremented.
	ErrUnderflow

	// ErrLength indicates negative or too large array length.
	ErrLength
)

// Reader reads a value of type T from a source.
// Shape and output may differ: e.g. Usize1 reads "1" as uint(0).
type Reader[T any] interface {
	Read(s source.Source) (T, error)
}

// Readable is implemented by user aggregates, see Of.
// ReadTokens must consume the same tokens regardless of receiver content.
type Readable interface {
	ReadTokens(s source.Source) error
}

// Func adapts a function to Reader interface.
type Func[T any] func(s source.Source) (T, error)

func (f Func[T]) Read(s source.Source) (T, error) {
	return f(s)
}

func parseError(t source.Token, typeName string, e error) *procin.Error {
	msg := e.Error()
	if ne, ok := e.(*strconv.NumError); ok {
		msg = ne.Err.Error()
	}
	return procin.FormatErrorPos(t, ErrParse, "failed to parse %q as %s: %s", t.Text(), typeName, msg)
}

// recorder remembers the last token fetched, so that errors detected after parsing can refer to it.
type recorder struct {
	source.Source
	last source.Token
}

func (r *recorder) NextToken() (source.Token, error) {
	t, e := r.Source.NextToken()
	if e == nil {
		r.last = t
	}
	return t, e
}
