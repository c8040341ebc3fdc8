package io

import (
	"fmt"
)

const (
	SCREEN_WIDTH  = 32
	SCREEN_HEIGHT = 32
)

var _screen_defines = map[string]string{
	"SCREEN_WIDTH":  fmt.Sprintf("%d", SCREEN_WIDTH),
	"SCREEN_HEIGHT": fmt.Sprintf("%d", SCREEN_HEIGHT),
}

// Screen is the double buffered 32x32 monochrome pixel display.
// Rows are indexed by Y, bit X of a row is the pixel at (X, Y).
type Screen struct {
	X uint8 // Latched X coordinate.
	Y uint8 // Latched Y coordinate.

	Buffer [SCREEN_HEIGHT]uint32 // Staging buffer, written by Draw and Erase.
	Output [SCREEN_HEIGHT]uint32 // Committed, visible buffer.
}

// Reset clears both buffers and the latches.
func (sc *Screen) Reset() {
	*sc = Screen{}
}

// SetX latches the X coordinate.
func (sc *Screen) SetX(x uint8) {
	sc.X = x % SCREEN_WIDTH
}

// SetY latches the Y coordinate.
func (sc *Screen) SetY(y uint8) {
	sc.Y = y % SCREEN_HEIGHT
}

// Draw sets the staging pixel at the latched coordinates.
func (sc *Screen) Draw() {
	sc.Buffer[sc.Y] |= 1 << sc.X
}

// Erase clears the staging pixel at the latched coordinates.
func (sc *Screen) Erase() {
	sc.Buffer[sc.Y] &^= 1 << sc.X
}

// Pixel reads the committed pixel at the latched coordinates.
func (sc *Screen) Pixel() bool {
	return sc.At(sc.X, sc.Y)
}

// At reads the committed pixel at (x, y).
func (sc *Screen) At(x, y uint8) bool {
	if x >= SCREEN_WIDTH || y >= SCREEN_HEIGHT {
		return false
	}
	return (sc.Output[y]>>x)&1 == 1
}

// Commit copies the staging buffer to the visible output.
func (sc *Screen) Commit() {
	sc.Output = sc.Buffer
}

// ClearBuffer blanks the staging buffer.
func (sc *Screen) ClearBuffer() {
	clear(sc.Buffer[:])
}
