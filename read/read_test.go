package read

import (
	"math"
	"math/big"
	"strings"
	"testing"

	"github.com/ava12/procin/internal/test"
	"github.com/ava12/procin/source"
)

func src(text string) source.Source {
	return source.OnceString("test", text)
}

type intSample struct {
	input string
	value int64
	err   int
}

func TestInt(t *testing.T) {
	samples := []intSample{
		{"0", 0, 0},
		{"-23", -23, 0},
		{"+7", 7, 0},
		{"127", 127, 0},
		{"128", 0, ErrParse},
		{"-128", -128, 0},
		{"3.2", 0, ErrParse},
		{"x", 0, ErrParse},
		{"", 0, source.ErrExhausted},
	}

	for i, sample := range samples {
		v, e := Int[int8]{}.Read(src(sample.input))
		if sample.err != 0 {
			test.ExpectErrorCode(t, sample.err, e)
			continue
		}
		if e != nil || int64(v) != sample.value {
			t.Errorf("sample #%d (%q): expecting %d, got %d, %v", i, sample.input, sample.value, v, e)
		}
	}
}

func TestUint(t *testing.T) {
	v, e := Uint[uint64]{}.Read(src("18446744073709551615"))
	test.Assert(t, e == nil && v == math.MaxUint64, "expecting max uint64, got %d, %v", v, e)
	v, e = Uint[uint64]{}.Read(src("+5"))
	test.Assert(t, e == nil && v == 5, "expecting 5, got %d, %v", v, e)
	_, e = Uint[uint64]{}.Read(src("-1"))
	test.ExpectErrorCode(t, ErrParse, e)
	_, e = Uint[uint16]{}.Read(src("65536"))
	test.ExpectErrorCode(t, ErrParse, e)
}

func TestParseErrorMessage(t *testing.T) {
	_, e := Int[int32]{}.Read(src("1 2\n  3.2"))
	test.Assert(t, e == nil, "unexpected error %v", e)

	s := src("1 2\n  3.2")
	s.NextToken()
	s.NextToken()
	_, e = Int[int32]{}.Read(s)
	test.ExpectErrorCode(t, ErrParse, e)
	msg := e.Error()
	for _, part := range []string{`"3.2"`, "int32", "invalid syntax", "line 2 col 3"} {
		test.Assert(t, strings.Contains(msg, part), "message %q does not contain %q", msg, part)
	}
}

func TestFloatBool(t *testing.T) {
	s := src("3.25 -1e3 true false 0 1 TRUE T")
	f, e := Float[float64]{}.Read(s)
	test.Assert(t, e == nil && f == 3.25, "expecting 3.25, got %v, %v", f, e)
	g, e := Float[float32]{}.Read(s)
	test.Assert(t, e == nil && g == -1000, "expecting -1000, got %v, %v", g, e)
	b, e := Bool{}.Read(s)
	test.Assert(t, e == nil && b, "expecting true, got %v, %v", b, e)
	b, e = Bool{}.Read(s)
	test.Assert(t, e == nil && !b, "expecting false, got %v, %v", b, e)
	for i := 0; i < 4; i++ {
		_, e = Bool{}.Read(s)
		test.ExpectErrorCode(t, ErrParse, e)
	}

	for _, text := range []string{"0x1p4", "1_000.5", "0X10"} {
		_, e = Float[float64]{}.Read(src(text))
		test.ExpectErrorCode(t, ErrParse, e)
	}
	f, e = Float[float64]{}.Read(src("inf"))
	test.Assert(t, e == nil && f > 1e308, "expecting +Inf, got %v, %v", f, e)
}

func TestText(t *testing.T) {
	s := src("  string   chars\nbytes ж ab")
	str, e := String{}.Read(s)
	test.Assert(t, e == nil && str == "string", "expecting string, got %q, %v", str, e)
	chars, e := Chars{}.Read(s)
	test.Assert(t, e == nil, "unexpected error %v", e)
	test.ExpectDeep(t, []rune{'c', 'h', 'a', 'r', 's'}, chars)
	bytes, e := Bytes{}.Read(s)
	test.Assert(t, e == nil, "unexpected error %v", e)
	test.ExpectDeep(t, []byte("bytes"), bytes)
	c, e := Char{}.Read(s)
	test.Assert(t, e == nil && c == 'ж', "expecting zhe, got %q, %v", c, e)
	_, e = Char{}.Read(s)
	test.ExpectErrorCode(t, ErrParse, e)
}

func TestCharReplacement(t *testing.T) {
	c, e := Char{}.Read(src("\uFFFD"))
	test.Assert(t, e == nil && c == '\uFFFD', "expecting U+FFFD, got %q, %v", c, e)
	_, e = Char{}.Read(src("\xff"))
	test.ExpectErrorCode(t, ErrParse, e)
}

func TestBytesAreCopied(t *testing.T) {
	content := []byte("abc")
	b, _ := Bytes{}.Read(source.OnceBytes("", content))
	b[0] = 'x'
	test.Assert(t, string(content) == "abc", "source buffer modified: %q", content)
}

func TestBig(t *testing.T) {
	s := src("340282366920938463463374607431768211455 340282366920938463463374607431768211456 " +
		"-170141183460469231731687303715884105728 170141183460469231731687303715884105728 -1")
	u := Big{Bits: 128, Unsigned: true}
	i := Big{Bits: 128}

	v, e := u.Read(s)
	max := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
	test.Assert(t, e == nil && v.Cmp(max) == 0, "expecting 2^128-1, got %v, %v", v, e)
	_, e = u.Read(s)
	test.ExpectErrorCode(t, ErrParse, e)
	v, e = i.Read(s)
	test.Assert(t, e == nil && v.Sign() < 0, "expecting min i128, got %v, %v", v, e)
	_, e = i.Read(s)
	test.ExpectErrorCode(t, ErrParse, e)
	_, e = u.Read(s)
	test.ExpectErrorCode(t, ErrParse, e)
}

func TestDecrement(t *testing.T) {
	s := src("1 0 5 -9223372036854775808 -3")
	v, e := Usize1{}.Read(s)
	test.Assert(t, e == nil && v == 0, "expecting 0, got %d, %v", v, e)
	_, e = Usize1{}.Read(s)
	test.ExpectErrorCode(t, ErrUnderflow, e)
	test.Assert(t, strings.Contains(e.Error(), `"0"`), "message %q does not name the token", e.Error())

	w, e := Isize1{}.Read(s)
	test.Assert(t, e == nil && w == 4, "expecting 4, got %d, %v", w, e)
	_, e = Isize1{}.Read(s)
	test.ExpectErrorCode(t, ErrUnderflow, e)
	w, e = Isize1{}.Read(s)
	test.Assert(t, e == nil && w == -4, "expecting -4, got %d, %v", w, e)

	b, e := Dec[uint8]{Uint[uint8]{}}.Read(src("0"))
	test.Assert(t, e != nil, "expecting underflow, got %d", b)
	test.ExpectErrorCode(t, ErrUnderflow, e)
}

func TestArrays(t *testing.T) {
	s := src("3 3 1 2 3 0 2 1 2")
	n, e := Len(s)
	test.Assert(t, e == nil && n == 3, "expecting 3, got %d, %v", n, e)
	a, e := ArrayOf[[]int32](PrefixedOf[int32](Int[int32]{}), n).Read(s)
	test.Assert(t, e == nil, "unexpected error %v", e)
	test.ExpectDeep(t, [][]int32{{1, 2, 3}, {}, {1, 2}}, a)

	_, e = ArrayOf[int](Int[int]{}, -1).Read(src("1"))
	test.ExpectErrorCode(t, ErrLength, e)
	_, e = PrefixedOf[int](Int[int]{}).Read(src("3 1 2"))
	test.ExpectErrorCode(t, source.ErrExhausted, e)
}

func TestTuples(t *testing.T) {
	s := src("2 1 1 1 2 2 2")
	n, _ := Len(s)
	r := ArrayOf(Pair(ArrayOf[uint32](Uint[uint32]{}, 2), Reader[int32](Int[int32]{})), n)
	v, e := r.Read(s)
	test.Assert(t, e == nil, "unexpected error %v", e)
	test.ExpectDeep(t, []T2[[]uint32, int32]{{[]uint32{1, 1}, 1}, {[]uint32{2, 2}, 2}}, v)

	q, e := Quad[int, string, rune, uint](Int[int]{}, String{}, Char{}, Usize1{}).Read(src("-1 x y 1"))
	test.Assert(t, e == nil, "unexpected error %v", e)
	test.ExpectDeep(t, T4[int, string, rune, uint]{-1, "x", 'y', 0}, q)

	_, e = Triple[int, int, int](Int[int]{}, Int[int]{}, Int[int]{}).Read(src("1 2"))
	test.ExpectErrorCode(t, source.ErrExhausted, e)
}

type point struct {
	X, Y int
}

func (p *point) ReadTokens(s source.Source) (e error) {
	if p.X, e = (Int[int]{}).Read(s); e != nil {
		return
	}
	p.Y, e = Int[int]{}.Read(s)
	return
}

type unit struct{}

func (*unit) ReadTokens(source.Source) error {
	return nil
}

func TestOf(t *testing.T) {
	s := src("3 1 2 3 4 5 6 7")
	ps, e := PrefixedOf(Of[point]()).Read(s)
	test.Assert(t, e == nil, "unexpected error %v", e)
	test.ExpectDeep(t, []point{{1, 2}, {3, 4}, {5, 6}}, ps)

	us, e := ArrayOf(Of[unit](), 4).Read(s)
	test.Assert(t, e == nil && len(us) == 4, "expecting 4 units, got %v, %v", us, e)
	last, e := Int[int]{}.Read(s)
	test.Assert(t, e == nil && last == 7, "units consumed tokens: got %d, %v", last, e)
}

func TestRegistry(t *testing.T) {
	for _, name := range []string{"usize", "Usize1", "proconio::marker::Usize1", "marker.Chars", "i128", "string"} {
		_, found := Lookup(name)
		test.Assert(t, found, "%q not found", name)
	}
	_, found := Lookup("Point")
	test.Assert(t, !found, "unexpected Point entry")

	Register("read_test.Point", Of[point]())
	entry, found := Lookup("Point")
	test.Assert(t, found, "Point not found by short name")
	v, e := entry.Read(src("4 5"))
	test.Assert(t, e == nil, "unexpected error %v", e)
	test.ExpectDeep(t, point{4, 5}, v)
	test.Assert(t, entry.Type.Name() == "point", "unexpected entry type %s", entry.Type)

	defer func() {
		test.Assert(t, recover() != nil, "expecting panic on duplicate registration")
	}()
	Register("read_test.Point", Of[point]())
}
