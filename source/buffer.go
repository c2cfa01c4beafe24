package source

import (
	"bytes"
	"unicode/utf8"
)

// Buffer is an immutable text buffer owned by a token source.
// Tokens returned by sources are slices of buffer content.
type Buffer struct {
	name          string
	content       []byte
	lineStarts    []int
	firstLine     int
	prevLineIndex int
}

// NewBuffer creates a buffer. firstLine is the number of the first content line in the input,
// it is 1 for sources reading everything at once.
func NewBuffer(name string, content []byte, firstLine int) *Buffer {
	if firstLine <= 0 {
		firstLine = 1
	}
	b := &Buffer{name: name, content: content, firstLine: firstLine, prevLineIndex: -1}
	lineCnt := bytes.Count(content, []byte("\n")) + 1
	b.lineStarts = make([]int, lineCnt)
	j := 1
	for i := 0; i < len(content) && j < lineCnt; i++ {
		if content[i] == '\n' {
			b.lineStarts[j] = i + 1
			j++
		}
	}

	return b
}

func (b *Buffer) Name() string {
	return b.name
}

func (b *Buffer) Content() []byte {
	return b.content
}

func (b *Buffer) Len() int {
	return len(b.content)
}

// LineCol converts byte offset to line and column numbers, both starting from 1.
// Columns are counted in runes.
func (b *Buffer) LineCol(pos int) (line, col int) {
	var lineIndex int
	if pos < 0 {
		pos = 0
		lineIndex = 0
	} else if pos >= len(b.content) {
		pos = len(b.content)
		lineIndex = len(b.lineStarts) - 1
	} else {
		lineIndex = b.findLineIndex(pos)
	}

	lineStart := b.lineStarts[lineIndex]
	return lineIndex + b.firstLine, utf8.RuneCount(b.content[lineStart:pos]) + 1
}

func (b *Buffer) findLineIndex(pos int) int {
	if b.prevLineIndex >= 0 && b.lineStarts[b.prevLineIndex] <= pos {
		lineIndex := b.prevLineIndex
		last := len(b.lineStarts) - 1
		for lineIndex <= last && b.lineStarts[lineIndex] <= pos {
			lineIndex++
		}
		lineIndex--
		b.prevLineIndex = lineIndex
		return lineIndex
	}

	leftIndex := 0
	rightIndex := len(b.lineStarts) - 1
	index := 0
	if b.prevLineIndex >= 0 {
		rightIndex = b.prevLineIndex
	}
	for leftIndex < rightIndex {
		index = (leftIndex + rightIndex + 1) >> 1
		lineStart := b.lineStarts[index]
		if lineStart == pos {
			break
		}

		if lineStart < pos {
			leftIndex = index
		} else {
			rightIndex = index - 1
			index = rightIndex
		}
	}
	b.prevLineIndex = index
	return index
}

// skipSpace returns the offset of the first non-space byte at or after pos.
func (b *Buffer) skipSpace(pos int) int {
	c := b.content
	for pos < len(c) {
		if c[pos] < utf8.RuneSelf {
			if !asciiSpace[c[pos]] {
				return pos
			}
			pos++
			continue
		}

		r, size := utf8.DecodeRune(c[pos:])
		if !isSpace(r) {
			return pos
		}
		pos += size
	}
	return pos
}

// tokenEnd returns the offset right after the token starting at pos.
func (b *Buffer) tokenEnd(pos int) int {
	c := b.content
	for pos < len(c) {
		if c[pos] < utf8.RuneSelf {
			if asciiSpace[c[pos]] {
				return pos
			}
			pos++
			continue
		}

		r, size := utf8.DecodeRune(c[pos:])
		if isSpace(r) {
			return pos
		}
		pos += size
	}
	return pos
}
