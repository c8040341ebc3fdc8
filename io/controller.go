package io

import (
	"fmt"
)

// Controller button bit indexes, as taken by SetButton and ClearButton.
// The assembler equates BUTTON_LEFT..BUTTON_START are the matching masks,
// 1 << BUTTON_BIT_LEFT and so on, and BUTTON_NONE and BUTTON_ALL are masks
// here too.
const (
	BUTTON_BIT_LEFT   = 0
	BUTTON_BIT_DOWN   = 1
	BUTTON_BIT_RIGHT  = 2
	BUTTON_BIT_UP     = 3
	BUTTON_BIT_B      = 4
	BUTTON_BIT_A      = 5
	BUTTON_BIT_SELECT = 6
	BUTTON_BIT_START  = 7

	BUTTON_NONE = uint8(0)
	BUTTON_ALL  = uint8(0xff)
)

var buttonNames = [8]string{"LEFT", "DOWN", "RIGHT", "UP", "B", "A", "SELECT", "START"}

var _controller_defines = func() map[string]string {
	defines := make(map[string]string, len(buttonNames))
	for n, name := range buttonNames {
		defines["BUTTON_"+name] = fmt.Sprintf("%d", 1<<n)
	}
	return defines
}()

// Controller latches eight independent button bits.
//
// ClearMask selects buttons that are released as soon as the program
// reads them. Front ends that never see key release events set it to
// BUTTON_ALL; the default releases nothing.
type Controller struct {
	State     uint8
	ClearMask uint8
}

// Reset releases every button.
func (ct *Controller) Reset() {
	ct.State = 0
}

// SetButton presses a button by bit index.
func (ct *Controller) SetButton(button int) {
	ct.State |= 1 << (button & 7)
}

// ClearButton releases a button by bit index.
func (ct *Controller) ClearButton(button int) {
	ct.State &^= 1 << (button & 7)
}

// Pressed returns true if the button is held.
func (ct *Controller) Pressed(button int) bool {
	return (ct.State>>(button&7))&1 == 1
}

// Read returns the button state, then releases the ClearMask buttons.
func (ct *Controller) Read() (state uint8) {
	state = ct.State
	ct.State &^= ct.ClearMask
	return
}
