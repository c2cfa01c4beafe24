package read

import (
	"bytes"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"unicode/utf8"
	"unsafe"

	"github.com/ava12/procin/source"
)

type Signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

type Integer interface {
	Signed | Unsigned
}

type Floating interface {
	~float32 | ~float64
}

func bitSize[T any]() int {
	var zero T
	return int(unsafe.Sizeof(zero)) * 8
}

func typeName[T any]() string {
	var zero T
	return fmt.Sprintf("%T", zero)
}

// Int reads a decimal signed integer.
type Int[T Signed] struct{}

func (Int[T]) Read(s source.Source) (T, error) {
	t, e := source.Require(s)
	if e != nil {
		return 0, e
	}

	v, e := strconv.ParseInt(string(t.Bytes()), 10, bitSize[T]())
	if e != nil {
		return 0, parseError(t, typeName[T](), e)
	}
	return T(v), nil
}

// Uint reads a decimal unsigned integer. Leading "+" is allowed, "-" is not.
type Uint[T Unsigned] struct{}

func (Uint[T]) Read(s source.Source) (T, error) {
	t, e := source.Require(s)
	if e != nil {
		return 0, e
	}

	text := t.Bytes()
	if len(text) > 1 && text[0] == '+' {
		text = text[1:]
	}
	v, e := strconv.ParseUint(string(text), 10, bitSize[T]())
	if e != nil {
		return 0, parseError(t, typeName[T](), e)
	}
	return T(v), nil
}

var errHexFloat = errors.New("hexadecimal and underscored numbers are not allowed")

// Float reads a decimal floating point number, "inf" and "nan" included.
type Float[T Floating] struct{}

func (Float[T]) Read(s source.Source) (T, error) {
	t, e := source.Require(s)
	if e != nil {
		return 0, e
	}

	if bytes.ContainsAny(t.Bytes(), "xX_") {
		return 0, parseError(t, typeName[T](), errHexFloat)
	}
	v, e := strconv.ParseFloat(string(t.Bytes()), bitSize[T]())
	if e != nil {
		return 0, parseError(t, typeName[T](), e)
	}
	return T(v), nil
}

var errNotBool = errors.New(`expecting "true" or "false"`)

// Bool reads exactly "true" or "false".
type Bool struct{}

func (Bool) Read(s source.Source) (bool, error) {
	t, e := source.Require(s)
	if e != nil {
		return false, e
	}

	switch string(t.Bytes()) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, parseError(t, "bool", errNotBool)
	}
}

var errNotChar = errors.New("token must contain exactly one character")

// Char reads a token consisting of exactly one character.
type Char struct{}

func (Char) Read(s source.Source) (rune, error) {
	t, e := source.Require(s)
	if e != nil {
		return 0, e
	}

	text := t.Bytes()
	r, size := utf8.DecodeRune(text)
	if size != len(text) || (r == utf8.RuneError && size <= 1) {
		return 0, parseError(t, "char", errNotChar)
	}
	return r, nil
}

// String reads a token as a string.
type String struct{}

func (String) Read(s source.Source) (string, error) {
	t, e := source.Require(s)
	if e != nil {
		return "", e
	}
	return t.Text(), nil
}

// Chars reads a token as a sequence of characters.
type Chars struct{}

func (Chars) Read(s source.Source) ([]rune, error) {
	t, e := source.Require(s)
	if e != nil {
		return nil, e
	}
	return []rune(string(t.Bytes())), nil
}

// Bytes reads a token as a byte sequence. Returned slice is a copy.
type Bytes struct{}

func (Bytes) Read(s source.Source) ([]byte, error) {
	t, e := source.Require(s)
	if e != nil {
		return nil, e
	}
	return append([]byte(nil), t.Bytes()...), nil
}

var (
	errNotInteger = errors.New("invalid syntax")
	errRange      = errors.New("value out of range")
)

// Big reads an arbitrary precision decimal integer.
// Non-zero Bits limits the value to Bits-wide signed or unsigned integer range.
type Big struct {
	Bits     int
	Unsigned bool
}

func (b Big) Read(s source.Source) (*big.Int, error) {
	t, e := source.Require(s)
	if e != nil {
		return nil, e
	}

	v, ok := new(big.Int).SetString(string(t.Bytes()), 10)
	if !ok {
		return nil, parseError(t, b.typeName(), errNotInteger)
	}
	if !b.fits(v) {
		return nil, parseError(t, b.typeName(), errRange)
	}
	return v, nil
}

func (b Big) fits(v *big.Int) bool {
	if b.Unsigned && v.Sign() < 0 {
		return false
	}
	if b.Bits <= 0 {
		return true
	}
	if b.Unsigned {
		return v.BitLen() <= b.Bits
	}

	// -2^(n-1) .. 2^(n-1)-1
	if v.Sign() >= 0 {
		return v.BitLen() < b.Bits
	}
	m := new(big.Int).Add(v, big.NewInt(1))
	return m.BitLen() < b.Bits
}

func (b Big) typeName() string {
	switch {
	case b.Bits <= 0:
		return "big integer"
	case b.Unsigned:
		return fmt.Sprintf("u%d", b.Bits)
	default:
		return fmt.Sprintf("i%d", b.Bits)
	}
}
