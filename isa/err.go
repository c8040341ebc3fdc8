package isa

import (
	"github.com/ezrec/batpu2/translate"
)

var f = translate.From

// ErrMnemonicUnknown is returned for a name that is neither a canonical
// nor an alias mnemonic.
type ErrMnemonicUnknown string

func (err ErrMnemonicUnknown) Error() string {
	return f("unknown mnemonic '%v'", string(err))
}

// ErrOperandCount is returned when a mnemonic is given the wrong number of operands.
type ErrOperandCount struct {
	Mnemonic string
	Expected int
	Actual   int
}

func (err ErrOperandCount) Error() string {
	return f("%v expects %d operands, got %d", err.Mnemonic, err.Expected, err.Actual)
}

// ErrOperandRange is returned when an operand does not fit its field.
type ErrOperandRange struct {
	Mnemonic string
	Field    Field
	Value    int
}

func (err ErrOperandRange) Error() string {
	lo, hi := err.Field.Range()
	return f("%v %v operand %d out of range [%d, %d]", err.Mnemonic, err.Field, err.Value, lo, hi)
}

// ErrCharInvalid is returned for a character outside of the glyph table.
type ErrCharInvalid rune

func (err ErrCharInvalid) Error() string {
	return f("invalid character %q", rune(err))
}
