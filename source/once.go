package source

import (
	"io"
)

// Once is a source that reads entire input when created.
type Once struct {
	buf *Buffer
	pos int
}

// NewOnce reads r until EoF and returns the source.
// Returns nil and *procin.Error with ErrIO code if r fails.
func NewOnce(name string, r io.Reader) (*Once, error) {
	content, e := io.ReadAll(r)
	if e != nil {
		return nil, ioError(name, e)
	}

	return OnceBytes(name, content), nil
}

// OnceBytes creates a source reading tokens from content.
// content must not be modified while the source is used.
func OnceBytes(name string, content []byte) *Once {
	return &Once{buf: NewBuffer(name, content, 1)}
}

// OnceString creates a source reading tokens from content.
func OnceString(name, content string) *Once {
	return OnceBytes(name, []byte(content))
}

func (s *Once) NextToken() (Token, error) {
	start := s.buf.skipSpace(s.pos)
	if start >= s.buf.Len() {
		s.pos = start
		return Token{}, io.EOF
	}

	end := s.buf.tokenEnd(start)
	s.pos = end
	return newToken(s.buf, start, end), nil
}

func (s *Once) IsEmpty() (bool, error) {
	s.pos = s.buf.skipSpace(s.pos)
	return s.pos >= s.buf.Len(), nil
}
