package io

import (
	"fmt"
	"strings"

	"github.com/ezrec/batpu2/isa"
)

const CHAR_DISPLAY_LEN = 10

var _chars_defines = map[string]string{
	"CHAR_DISPLAY_LEN": fmt.Sprintf("%d", CHAR_DISPLAY_LEN),
}

// CharDisplay is the double buffered character line. Writes append to
// the staging line; characters past the end are dropped.
type CharDisplay struct {
	Buffer [CHAR_DISPLAY_LEN]isa.Char
	Output [CHAR_DISPLAY_LEN]isa.Char

	cursor int
}

// Reset blanks both lines.
func (cd *CharDisplay) Reset() {
	*cd = CharDisplay{}
}

// Write appends a glyph index to the staging line.
func (cd *CharDisplay) Write(ch isa.Char) {
	if cd.cursor >= len(cd.Buffer) {
		return
	}
	cd.Buffer[cd.cursor] = ch
	cd.cursor++
}

// Commit copies the staging line to the visible line.
func (cd *CharDisplay) Commit() {
	cd.Output = cd.Buffer
}

// ClearBuffer blanks the staging line and rewinds the cursor.
func (cd *CharDisplay) ClearBuffer() {
	clear(cd.Buffer[:])
	cd.cursor = 0
}

// String renders the visible line. Indexes outside of the glyph table
// render as '#'.
func (cd *CharDisplay) String() string {
	var sb strings.Builder
	for _, ch := range cd.Output {
		r, ok := ch.Rune()
		if !ok {
			r = '#'
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
