package read

import (
	"github.com/ava12/procin"
	"github.com/ava12/procin/source"
)

// Dec reads an integer with Base and decrements it, converting 1-indexed values to 0-indexed ones.
// Fails with ErrUnderflow if the value read is the minimum value of its type.
type Dec[T Integer] struct {
	Base Reader[T]
}

func (d Dec[T]) Read(s source.Source) (T, error) {
	rec := &recorder{Source: s}
	v, e := d.Base.Read(rec)
	if e != nil {
		return 0, e
	}

	if v-1 > v {
		return 0, procin.FormatErrorPos(rec.last, ErrUnderflow,
			"cannot decrement %q of type %s: value is the minimum of the type", rec.last.Text(), typeName[T]())
	}
	return v - 1, nil
}

// Usize1 reads a 1-indexed unsigned integer and returns it 0-indexed.
type Usize1 struct{}

func (Usize1) Read(s source.Source) (uint, error) {
	return Dec[uint]{Uint[uint]{}}.Read(s)
}

// Isize1 reads a 1-indexed signed integer and returns it 0-indexed.
type Isize1 struct{}

func (Isize1) Read(s source.Source) (int, error) {
	return Dec[int]{Int[int]{}}.Read(s)
}
