package source

import (
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/ava12/procin"
	"github.com/ava12/procin/internal/test"
)

type result struct {
	pos, line, col int
}

func TestBufferLineCol(t *testing.T) {
	samples := map[string][]result{
		"": {
			{0, 1, 1},
			{100, 1, 1},
			{100, 1, 1},
		},
		"\n": {
			{0, 1, 1},
			{1, 2, 1},
			{1, 2, 1},
			{100, 2, 1},
		},
		"0\n2\n4\n6789abcde\ng\ni\n": {
			{4, 3, 1},
			{5, 3, 2},
			{6, 4, 1},
			{7, 4, 2},
			{14, 4, 9},
			{19, 6, 2},
			{20, 7, 1},
			{9, 4, 4},
			{5, 3, 2},
		},
		"\u0436\u0436 x": {
			{0, 1, 1},
			{4, 1, 3},
			{5, 1, 4},
		},
	}

	for text, results := range samples {
		buf := NewBuffer("", []byte(text), 1)
		for _, res := range results {
			l, c := buf.LineCol(res.pos)
			if l != res.line || c != res.col {
				t.Errorf("sample %q: expected %v, got line: %d, col: %d", text, res, l, c)
			}
		}
	}
}

func TestBufferFirstLine(t *testing.T) {
	buf := NewBuffer("", []byte("12 34\n"), 7)
	l, c := buf.LineCol(3)
	test.ExpectInt(t, 7, l)
	test.ExpectInt(t, 4, c)
}

type sourceMaker struct {
	name string
	make func(string) Source
}

var makers = []sourceMaker{
	{"once", func(s string) Source { return OnceString("input", s) }},
	{"line", func(s string) Source { return LineString("input", s) }},
}

func tokens(t *testing.T, s Source) []string {
	res := []string{}
	for {
		tok, e := s.NextToken()
		if e == io.EOF {
			return res
		}
		if e != nil {
			t.Fatalf("unexpected error: %s", e)
		}
		res = append(res, tok.Text())
	}
}

func cmp(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}

	for i, v := range a {
		if v != b[i] {
			return false
		}
	}

	return true
}

func TestTokenSplit(t *testing.T) {
	samples := []struct {
		text     string
		expected []string
	}{
		{"", []string{}},
		{" \t\r\n ", []string{}},
		{"    32   54 -23\r\r\n\nfalse", []string{"32", "54", "-23", "false"}},
		{"a\vb\fc", []string{"a", "b", "c"}},
		{" x\u3000y\u00a0z", []string{"x", "y", "z"}},
		{"\u043f\u0440\u0438 hi", []string{"\u043f\u0440\u0438", "hi"}},
		{"no-trailing-newline", []string{"no-trailing-newline"}},
	}

	for _, m := range makers {
		for _, sample := range samples {
			got := tokens(t, m.make(sample.text))
			if !cmp(sample.expected, got) {
				t.Errorf("%s source, sample %q: expected %q, got %q", m.name, sample.text, sample.expected, got)
			}
		}
	}
}

func TestIsEmpty(t *testing.T) {
	for _, m := range makers {
		s := m.make("  1\n\n  \n2 \n \n")
		empty, e := s.IsEmpty()
		test.Assert(t, e == nil && !empty, "%s: expecting non-empty source", m.name)
		empty, _ = s.IsEmpty()
		test.Assert(t, !empty, "%s: IsEmpty consumed a token", m.name)

		tok, e := Require(s)
		test.Assert(t, e == nil && tok.Text() == "1", "%s: expecting 1, got %q, %v", m.name, tok.Text(), e)
		empty, _ = s.IsEmpty()
		test.Assert(t, !empty, "%s: expecting non-empty source before 2", m.name)
		tok, e = Require(s)
		test.Assert(t, e == nil && tok.Text() == "2", "%s: expecting 2, got %q, %v", m.name, tok.Text(), e)
		empty, _ = s.IsEmpty()
		test.Assert(t, empty, "%s: expecting empty source", m.name)

		_, e = Require(s)
		test.ExpectErrorCode(t, ErrExhausted, e)
	}
}

func TestTokenPosition(t *testing.T) {
	for _, m := range makers {
		s := m.make("a bc\n  \n \u0436 d\n")
		expected := []result{{0, 1, 1}, {0, 1, 3}, {0, 3, 2}, {0, 3, 4}}
		for i, res := range expected {
			tok, e := s.NextToken()
			test.Assert(t, e == nil, "%s: unexpected error %v", m.name, e)
			if tok.Line() != res.line || tok.Col() != res.col {
				t.Errorf("%s source, token #%d %q: expected line %d col %d, got %d, %d",
					m.name, i, tok.Text(), res.line, res.col, tok.Line(), tok.Col())
			}
			test.Assert(t, tok.SourceName() == "input", "%s: wrong source name %q", m.name, tok.SourceName())
		}
	}
}

type countingReader struct {
	r     io.Reader
	calls int
}

func (c *countingReader) Read(p []byte) (int, error) {
	c.calls++
	return c.r.Read(p)
}

func TestLineReadsOnDemand(t *testing.T) {
	cr := &countingReader{r: iotest.OneByteReader(strings.NewReader("1 2\n3 4\n"))}
	s := NewLine("", cr)
	tok, _ := s.NextToken()
	test.Assert(t, tok.Text() == "1", "expecting 1, got %q", tok.Text())
	calls := cr.calls
	tok, _ = s.NextToken()
	test.Assert(t, tok.Text() == "2", "expecting 2, got %q", tok.Text())
	test.ExpectInt(t, calls, cr.calls)

	empty, _ := s.IsEmpty()
	test.ExpectBool(t, false, empty)
	calls = cr.calls
	tok, _ = s.NextToken()
	test.Assert(t, tok.Text() == "3", "expecting 3, got %q", tok.Text())
	test.ExpectInt(t, calls, cr.calls)
}

func TestReaderError(t *testing.T) {
	failure := errors.New("broken pipe")
	_, e := NewOnce("stdin", iotest.ErrReader(failure))
	test.ExpectErrorCode(t, ErrIO, e)

	s := NewLine("stdin", io.MultiReader(strings.NewReader("5\n"), iotest.ErrReader(failure)))
	tok, e := s.NextToken()
	test.Assert(t, e == nil && tok.Text() == "5", "expecting 5, got %q, %v", tok.Text(), e)
	_, e = s.NextToken()
	test.ExpectErrorCode(t, ErrIO, e)
	_, e = s.IsEmpty()
	test.ExpectErrorCode(t, ErrIO, e)
	_, e = Require(s)
	test.ExpectErrorCode(t, ErrIO, e)
	test.Assert(t, procin.HasCode(e, ErrIO), "expecting sticky error")

	s = NewLine("stdin", io.MultiReader(strings.NewReader("5\n7 8"), iotest.ErrReader(failure)))
	tok, e = s.NextToken()
	test.Assert(t, e == nil && tok.Text() == "5", "expecting 5, got %q, %v", tok.Text(), e)
	_, e = s.NextToken()
	test.ExpectErrorCode(t, ErrIO, e)
	_, e = s.NextToken()
	test.ExpectErrorCode(t, ErrIO, e)
}

func TestAutoMode(t *testing.T) {
	t.Setenv(ModeEnv, "line")
	s, e := NewAuto("", strings.NewReader("1"))
	test.Assert(t, e == nil, "unexpected error %v", e)
	_, isLine := s.(*Line)
	test.Assert(t, isLine, "expecting line source, got %T", s)

	t.Setenv(ModeEnv, "")
	s, e = NewAuto("", strings.NewReader("1"))
	test.Assert(t, e == nil, "unexpected error %v", e)
	_, isOnce := s.(*Once)
	test.Assert(t, isOnce, "expecting once source, got %T", s)

	t.Setenv(ModeEnv, "eager")
	_, e = NewAuto("", strings.NewReader("1"))
	test.ExpectErrorCode(t, ErrMode, e)
}
