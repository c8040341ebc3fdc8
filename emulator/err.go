package emulator

import (
	"github.com/ezrec/batpu2/translate"
)

var f = translate.From

// ErrImage indicates an image that could not be loaded into the machine.
type ErrImage struct {
	Name string
	Err  error
}

func (err *ErrImage) Error() string {
	return f("%v: %v", err.Name, err.Err)
}

func (err *ErrImage) Unwrap() error {
	return err.Err
}
