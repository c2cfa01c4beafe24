package source

import (
	"bufio"
	"io"
	"strings"
)

// Line is a source that reads input line by line.
// A new line is read only when the tokens of the current one are exhausted,
// so it may be used for interactive input.
type Line struct {
	name   string
	reader *bufio.Reader
	buf    *Buffer
	pos    int
	lines  int
	eof    bool
	err    error
}

// NewLine creates a source reading r line by line.
// r is wrapped into bufio.Reader unless it already is one.
func NewLine(name string, r io.Reader) *Line {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Line{name: name, reader: br, buf: NewBuffer(name, nil, 1)}
}

// LineString creates a line source reading from content.
func LineString(name, content string) *Line {
	return NewLine(name, strings.NewReader(content))
}

// prepare reads lines until the current one contains a token, the input ends, or the reader fails.
// Buffer and position are always replaced together.
func (s *Line) prepare() error {
	for {
		s.pos = s.buf.skipSpace(s.pos)
		if s.pos < s.buf.Len() || s.eof || s.err != nil {
			return s.err
		}

		line, e := s.reader.ReadBytes('\n')
		if len(line) > 0 {
			s.lines++
			s.buf, s.pos = NewBuffer(s.name, line, s.lines), 0
		}
		if e == io.EOF {
			s.eof = true
		} else if e != nil {
			// tokens of a partial line are never returned
			s.err = ioError(s.name, e)
		}
	}
}

func (s *Line) NextToken() (Token, error) {
	if e := s.prepare(); e != nil {
		return Token{}, e
	}
	if s.pos >= s.buf.Len() {
		return Token{}, io.EOF
	}

	start := s.pos
	s.pos = s.buf.tokenEnd(start)
	return newToken(s.buf, start, s.pos), nil
}

func (s *Line) IsEmpty() (bool, error) {
	if e := s.prepare(); e != nil {
		return false, e
	}
	return s.pos >= s.buf.Len(), nil
}
