package emulator

import (
	"fmt"
	"io"

	bpio "github.com/ezrec/batpu2/io"
	"github.com/ezrec/batpu2/isa"
)

// Tape records committed display changes as text lines, for running
// without a terminal.
//
//	chars: HELLO
//	number: -5
type Tape struct {
	Output io.Writer

	chars  Watch[[bpio.CHAR_DISPLAY_LEN]isa.Char]
	number Watch[string]
}

// Prime records the current displays without writing them.
func (tp *Tape) Prime(bus *bpio.Bus) {
	tp.chars.Changed(bus.Chars.Output)
	tp.number.Changed(bus.Number.String())
}

// Observe writes a line for each display that changed since the last
// observation.
func (tp *Tape) Observe(bus *bpio.Bus) (err error) {
	if tp.Output == nil {
		return
	}

	if _, ok := tp.chars.Changed(bus.Chars.Output); ok {
		_, err = fmt.Fprintf(tp.Output, "chars: %v\n", bus.Chars.String())
		if err != nil {
			return
		}
	}

	if number, ok := tp.number.Changed(bus.Number.String()); ok {
		_, err = fmt.Fprintf(tp.Output, "number: %v\n", number)
		if err != nil {
			return
		}
	}

	return
}
