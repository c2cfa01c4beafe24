package source

import "unicode"

var asciiSpace = [128]bool{'\t': true, '\n': true, '\v': true, '\f': true, '\r': true, ' ': true}

func isSpace(r rune) bool {
	if r < 128 {
		return asciiSpace[r]
	}
	return unicode.IsSpace(r)
}
