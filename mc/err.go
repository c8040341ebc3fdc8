package mc

import (
	"errors"

	"github.com/ezrec/batpu2/translate"
)

var f = translate.From

var (
	ErrLineLength = errors.New(f("line is not 16 digits"))
	ErrLineDigit  = errors.New(f("line has a digit other than 0 or 1"))
)

// ErrLine locates a machine-code error.
type ErrLine struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrLine) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrLine) Unwrap() error {
	return err.Err
}
