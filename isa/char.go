package isa

import (
	"fmt"
	"unicode"
)

// Char is an index into the display glyph table.
type Char uint8

// CharTable is the glyph table shared by character literals and the
// character display.
var CharTable = [30]rune{
	' ', 'A', 'B', 'C', 'D', 'E', 'F', 'G', 'H', 'I', 'J', 'K', 'L', 'M', 'N',
	'O', 'P', 'Q', 'R', 'S', 'T', 'U', 'V', 'W', 'X', 'Y', 'Z', '.', '!', '?',
}

const CHAR_SPACE = Char(0)

// CharFrom converts a rune to its glyph index. Letters are case insensitive.
func CharFrom(r rune) (ch Char, err error) {
	switch {
	case r == ' ':
		ch = CHAR_SPACE
	case r == '.':
		ch = 27
	case r == '!':
		ch = 28
	case r == '?':
		ch = 29
	case r < unicode.MaxASCII && unicode.IsLetter(r):
		ch = Char(unicode.ToUpper(r)-'A') + 1
	default:
		err = ErrCharInvalid(r)
	}
	return
}

// Valid returns true if the index is inside the glyph table.
func (ch Char) Valid() bool {
	return int(ch) < len(CharTable)
}

// Rune returns the glyph for the index.
func (ch Char) Rune() (r rune, ok bool) {
	if !ch.Valid() {
		return
	}
	return CharTable[ch], true
}

func (ch Char) String() string {
	r, ok := ch.Rune()
	if !ok {
		return fmt.Sprintf("<%d>", uint8(ch))
	}
	return string(r)
}
