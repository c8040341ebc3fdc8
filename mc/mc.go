package mc

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/ezrec/batpu2/isa"
)

// WORD_DIGITS is the length of a machine-code line.
const WORD_DIGITS = 16

// isWord returns true if the trimmed line is a machine-code word.
func isWord(line string) bool {
	if len(line) != WORD_DIGITS {
		return false
	}
	for _, c := range line {
		if c != '0' && c != '1' {
			return false
		}
	}
	return true
}

// Is returns true if every non-blank line of text is a machine-code word.
func Is(text string) bool {
	for line := range strings.Lines(text) {
		line = strings.TrimSpace(line)
		if len(line) > 0 && !isWord(line) {
			return false
		}
	}
	return true
}

// Parse decodes a single machine-code line.
func Parse(line string) (in isa.Instruction, err error) {
	line = strings.TrimSpace(line)
	if len(line) != WORD_DIGITS {
		err = ErrLineLength
		return
	}

	var word uint16
	for _, c := range line {
		word <<= 1
		switch c {
		case '0':
		case '1':
			word |= 1
		default:
			err = ErrLineDigit
			return
		}
	}

	in = isa.Decode(word)
	return
}

// Format encodes an instruction as a machine-code line.
func Format(in isa.Instruction) string {
	return fmt.Sprintf("%016b", isa.Encode(in))
}

// Decode reads machine-code text.
func Decode(input io.Reader) (code []isa.Instruction, err error) {
	scanner := bufio.NewScanner(input)

	var lineno int
	for scanner.Scan() {
		lineno++
		line := scanner.Text()
		if len(strings.TrimSpace(line)) == 0 {
			continue
		}

		var in isa.Instruction
		in, err = Parse(line)
		if err != nil {
			err = &ErrLine{LineNo: lineno, Line: line, Err: err}
			return
		}
		code = append(code, in)
	}

	err = scanner.Err()
	return
}

// Encode writes machine-code text, one line per instruction.
func Encode(output io.Writer, code []isa.Instruction) (err error) {
	w := bufio.NewWriter(output)
	for _, in := range code {
		_, err = fmt.Fprintln(w, Format(in))
		if err != nil {
			return
		}
	}

	err = w.Flush()
	return
}
