package vm

import (
	"github.com/ezrec/batpu2/translate"
)

var f = translate.From

// ErrProgramSize is returned when a program image does not fit in program memory.
type ErrProgramSize int

func (err ErrProgramSize) Error() string {
	return f("program of %d words exceeds %d words of program memory", int(err), PROGRAM_SIZE)
}
