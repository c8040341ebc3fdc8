package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/ezrec/batpu2/emulator"
	bpio "github.com/ezrec/batpu2/io"
	"github.com/ezrec/batpu2/isa"
)

const (
	ansiClear      = "\x1b[2J"
	ansiHideCursor = "\x1b[?25l"
	ansiShowCursor = "\x1b[?25h"
	ansiReset      = "\x1b[0m"
	ansiReverse    = "\x1b[7m"
)

// Screen layout, in 1 based terminal rows and columns.
const (
	ROW_CHARS   = 2
	COL_CHARS   = 2
	COL_NUMBER  = 30
	ROW_SCREEN  = 4
	ROW_BUTTONS = ROW_SCREEN + bpio.SCREEN_HEIGHT/2 + 2
	COL_SCREEN  = 2
)

// display draws the peripherals with ANSI escapes, redrawing only the
// parts that changed.
type display struct {
	Output io.Writer

	started bool
	halted  bool
	screen  emulator.Watch[[bpio.SCREEN_HEIGHT]uint32]
	chars   emulator.Watch[[bpio.CHAR_DISPLAY_LEN]isa.Char]
	number  emulator.Watch[string]
	buttons emulator.Watch[uint8]
}

func moveTo(row, col int) string {
	return fmt.Sprintf("\x1b[%d;%dH", row, col)
}

// renderScreen converts the committed screen into half block text rows,
// top row first. Screen row 0 is the bottom of the display.
func renderScreen(output [bpio.SCREEN_HEIGHT]uint32) (lines []string) {
	for y := bpio.SCREEN_HEIGHT - 1; y > 0; y -= 2 {
		upper := output[y]
		lower := output[y-1]
		var sb strings.Builder
		for x := range bpio.SCREEN_WIDTH {
			bit := uint32(1) << x
			switch {
			case upper&bit != 0 && lower&bit != 0:
				sb.WriteRune('█')
			case upper&bit != 0:
				sb.WriteRune('▀')
			case lower&bit != 0:
				sb.WriteRune('▄')
			default:
				sb.WriteRune(' ')
			}
		}
		lines = append(lines, sb.String())
	}
	return
}

var buttonGlyphs = [8][2]string{
	bpio.BUTTON_BIT_LEFT:   {"◁", "◀"},
	bpio.BUTTON_BIT_DOWN:   {"▽", "▼"},
	bpio.BUTTON_BIT_RIGHT:  {"▷", "▶"},
	bpio.BUTTON_BIT_UP:     {"△", "▲"},
	bpio.BUTTON_BIT_B:      {"b", "B"},
	bpio.BUTTON_BIT_A:      {"a", "A"},
	bpio.BUTTON_BIT_SELECT: {"select", "SELECT"},
	bpio.BUTTON_BIT_START:  {"start", "START"},
}

// renderButtons shows the controller, pressed buttons filled in.
func renderButtons(state uint8) string {
	words := make([]string, 0, len(buttonGlyphs))
	for n, glyph := range buttonGlyphs {
		if (state>>n)&1 == 1 {
			words = append(words, glyph[1])
		} else {
			words = append(words, glyph[0])
		}
	}
	return strings.Join(words, " ")
}

// Draw redraws the changed peripherals.
func (disp *display) Draw(bus *bpio.Bus, halted bool) (err error) {
	var sb strings.Builder

	if !disp.started {
		sb.WriteString(ansiHideCursor + ansiClear)
		disp.started = true
	}

	if chars, ok := disp.chars.Changed(bus.Chars.Output); ok {
		cd := bpio.CharDisplay{Output: chars}
		sb.WriteString(moveTo(ROW_CHARS, COL_CHARS) + ansiReverse + cd.String() + ansiReset)
	}

	if number, ok := disp.number.Changed(bus.Number.String()); ok {
		sb.WriteString(moveTo(ROW_CHARS, COL_NUMBER) + fmt.Sprintf("%-4s", number))
	}

	if screen, ok := disp.screen.Changed(bus.Screen.Output); ok {
		for n, line := range renderScreen(screen) {
			sb.WriteString(moveTo(ROW_SCREEN+n, COL_SCREEN) + line)
		}
	}

	if buttons, ok := disp.buttons.Changed(bus.Controller.State); ok {
		sb.WriteString(moveTo(ROW_BUTTONS, COL_SCREEN) + renderButtons(buttons) + "\x1b[K")
	}

	if halted && !disp.halted {
		sb.WriteString(moveTo(ROW_BUTTONS+2, COL_SCREEN) + "halted, Ctrl-C to exit")
		disp.halted = true
	}

	if sb.Len() == 0 {
		return
	}

	_, err = io.WriteString(disp.Output, sb.String())
	return
}

// Close restores the cursor below the drawing.
func (disp *display) Close() (err error) {
	_, err = io.WriteString(disp.Output, moveTo(ROW_BUTTONS+3, 1)+ansiShowCursor)
	return
}
