package io

import (
	"fmt"
)

// NumberDisplay shows one byte as a signed or unsigned integer.
type NumberDisplay struct {
	Value   uint8
	Signed  bool
	Visible bool
}

// Reset blanks the display and selects unsigned mode.
func (nd *NumberDisplay) Reset() {
	*nd = NumberDisplay{}
}

// Show displays a value.
func (nd *NumberDisplay) Show(value uint8) {
	nd.Value = value
	nd.Visible = true
}

// Clear blanks the display.
func (nd *NumberDisplay) Clear() {
	nd.Value = 0
	nd.Visible = false
}

// Int returns the displayed value under the current mode.
func (nd *NumberDisplay) Int() int {
	if nd.Signed {
		return int(int8(nd.Value))
	}
	return int(nd.Value)
}

func (nd NumberDisplay) String() string {
	if !nd.Visible {
		return ""
	}
	return fmt.Sprintf("%d", nd.Int())
}
