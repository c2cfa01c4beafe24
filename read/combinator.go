package read

import (
	"math"

	"github.com/ava12/procin"
	"github.com/ava12/procin/source"
)

// maxPrealloc limits slice capacity allocated before elements are actually read.
const maxPrealloc = 1 << 16

// Array reads exactly Len elements with Elem.
type Array[T any] struct {
	Elem Reader[T]
	Len  int
}

func (a Array[T]) Read(s source.Source) ([]T, error) {
	return readN(s, a.Elem, a.Len)
}

// ArrayOf creates Array reader.
func ArrayOf[T any](elem Reader[T], n int) Array[T] {
	return Array[T]{elem, n}
}

// Prefixed reads a length token first, then reads that many elements with Elem.
type Prefixed[T any] struct {
	Elem Reader[T]
}

func (p Prefixed[T]) Read(s source.Source) ([]T, error) {
	n, e := Len(s)
	if e != nil {
		return nil, e
	}
	return readN(s, p.Elem, n)
}

// PrefixedOf creates Prefixed reader.
func PrefixedOf[T any](elem Reader[T]) Prefixed[T] {
	return Prefixed[T]{elem}
}

// Len reads an unsigned array length.
func Len(s source.Source) (int, error) {
	rec := &recorder{Source: s}
	n, e := Uint[uint]{}.Read(rec)
	if e != nil {
		return 0, e
	}
	if n > math.MaxInt {
		return 0, procin.FormatErrorPos(rec.last, ErrLength, "array length %d is too large", n)
	}
	return int(n), nil
}

func readN[T any](s source.Source, elem Reader[T], n int) ([]T, error) {
	if n < 0 {
		return nil, procin.FormatError(ErrLength, "negative array length %d", n)
	}

	res := make([]T, 0, min(n, maxPrealloc))
	for i := 0; i < n; i++ {
		v, e := elem.Read(s)
		if e != nil {
			return nil, e
		}
		res = append(res, v)
	}
	return res, nil
}

type T2[A, B any] struct {
	V1 A
	V2 B
}

type T3[A, B, C any] struct {
	V1 A
	V2 B
	V3 C
}

type T4[A, B, C, D any] struct {
	V1 A
	V2 B
	V3 C
	V4 D
}

// Tuple2 reads two values in order.
type Tuple2[A, B any] struct {
	R1 Reader[A]
	R2 Reader[B]
}

func (t Tuple2[A, B]) Read(s source.Source) (res T2[A, B], e error) {
	if res.V1, e = t.R1.Read(s); e != nil {
		return
	}
	res.V2, e = t.R2.Read(s)
	return
}

// Tuple3 reads three values in order.
type Tuple3[A, B, C any] struct {
	R1 Reader[A]
	R2 Reader[B]
	R3 Reader[C]
}

func (t Tuple3[A, B, C]) Read(s source.Source) (res T3[A, B, C], e error) {
	if res.V1, e = t.R1.Read(s); e != nil {
		return
	}
	if res.V2, e = t.R2.Read(s); e != nil {
		return
	}
	res.V3, e = t.R3.Read(s)
	return
}

// Tuple4 reads four values in order.
type Tuple4[A, B, C, D any] struct {
	R1 Reader[A]
	R2 Reader[B]
	R3 Reader[C]
	R4 Reader[D]
}

func (t Tuple4[A, B, C, D]) Read(s source.Source) (res T4[A, B, C, D], e error) {
	if res.V1, e = t.R1.Read(s); e != nil {
		return
	}
	if res.V2, e = t.R2.Read(s); e != nil {
		return
	}
	if res.V3, e = t.R3.Read(s); e != nil {
		return
	}
	res.V4, e = t.R4.Read(s)
	return
}

// Pair creates Tuple2 reader.
func Pair[A, B any](r1 Reader[A], r2 Reader[B]) Tuple2[A, B] {
	return Tuple2[A, B]{r1, r2}
}

// Triple creates Tuple3 reader.
func Triple[A, B, C any](r1 Reader[A], r2 Reader[B], r3 Reader[C]) Tuple3[A, B, C] {
	return Tuple3[A, B, C]{r1, r2, r3}
}

// Quad creates Tuple4 reader.
func Quad[A, B, C, D any](r1 Reader[A], r2 Reader[B], r3 Reader[C], r4 Reader[D]) Tuple4[A, B, C, D] {
	return Tuple4[A, B, C, D]{r1, r2, r3, r4}
}

type readable[T any, P interface {
	*T
	Readable
}] struct{}

func (readable[T, P]) Read(s source.Source) (T, error) {
	var v T
	e := P(&v).ReadTokens(s)
	return v, e
}

// Of returns a reader for user type T whose pointer implements Readable,
// e.g. a struct processed by procingen.
func Of[T any, P interface {
	*T
	Readable
}]() Reader[T] {
	return readable[T, P]{}
}
