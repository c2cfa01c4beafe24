package source

// Token is a whitespace-delimited part of source input.
// Token text is not copied, it stays valid until the next call to the source it came from.
type Token struct {
	text []byte
	buf  *Buffer
	pos  int
}

func newToken(buf *Buffer, start, end int) Token {
	return Token{buf.content[start:end:end], buf, start}
}

// Bytes returns token text. The slice shares memory with source buffer and must not be modified or retained.
func (t Token) Bytes() []byte {
	return t.text
}

// Text returns a copy of token text.
func (t Token) Text() string {
	return string(t.text)
}

func (t Token) SourceName() string {
	if t.buf == nil {
		return ""
	} else {
		return t.buf.Name()
	}
}

func (t Token) Line() int {
	if t.buf == nil {
		return 0
	}
	line, _ := t.buf.LineCol(t.pos)
	return line
}

func (t Token) Col() int {
	if t.buf == nil {
		return 0
	}
	_, col := t.buf.LineCol(t.pos)
	return col
}
