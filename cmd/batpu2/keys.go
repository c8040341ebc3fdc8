package main

import (
	"io"
	"strconv"
	"strings"
	"unicode"

	bpio "github.com/ezrec/batpu2/io"
)

// Kitty keyboard protocol: disambiguate keys, report event types, and
// report all keys as escape codes, so letters also send release events.
const (
	kittyPush = "\x1b[>11u"
	kittyPop  = "\x1b[<u"
)

// Kitty event types.
const (
	kittyPress   = 1
	kittyRelease = 3
	kittyCtrl    = 4 // Modifier bit, after subtracting one.
)

// keyEvent is a button press or release.
type keyEvent struct {
	Button  int
	Release bool
}

var keyButtons = map[rune]int{
	'a':  bpio.BUTTON_BIT_LEFT,
	's':  bpio.BUTTON_BIT_DOWN,
	'd':  bpio.BUTTON_BIT_RIGHT,
	'w':  bpio.BUTTON_BIT_UP,
	'z':  bpio.BUTTON_BIT_A,
	'j':  bpio.BUTTON_BIT_A,
	'x':  bpio.BUTTON_BIT_B,
	'k':  bpio.BUTTON_BIT_B,
	'\r': bpio.BUTTON_BIT_START,
	'\n': bpio.BUTTON_BIT_START,
	'y':  bpio.BUTTON_BIT_START,
	't':  bpio.BUTTON_BIT_SELECT,
	0x1b: bpio.BUTTON_BIT_SELECT,
}

var arrowButtons = map[byte]int{
	'A': bpio.BUTTON_BIT_UP,
	'B': bpio.BUTTON_BIT_DOWN,
	'C': bpio.BUTTON_BIT_RIGHT,
	'D': bpio.BUTTON_BIT_LEFT,
}

// decodeKeys maps terminal input to controller events. Plain bytes and
// legacy arrow sequences are presses; kitty protocol sequences also
// carry releases. Ctrl-C in either form requests quit.
func decodeKeys(buf []byte) (events []keyEvent, quit bool) {
	for n := 0; n < len(buf); n++ {
		c := buf[n]
		switch {
		case c == 0x03:
			quit = true
			return
		case c == 0x1b && n+1 < len(buf) && buf[n+1] == '[':
			end := n + 2
			for end < len(buf) && (buf[end] < 0x40 || buf[end] > 0x7e) {
				end++
			}
			if end == len(buf) {
				// Truncated sequence.
				return
			}
			event, stop, ok := decodeCSI(string(buf[n+2:end]), buf[end])
			if stop {
				quit = true
				return
			}
			if ok {
				events = append(events, event)
			}
			n = end
		case c == 0x1b:
			if len(buf) == 1 {
				events = append(events, keyEvent{Button: bpio.BUTTON_BIT_SELECT})
			}
		default:
			if button, ok := keyButtons[unicode.ToLower(rune(c))]; ok {
				events = append(events, keyEvent{Button: button})
			}
		}
	}
	return
}

// decodeCSI decodes one 'ESC [ params final' sequence.
func decodeCSI(params string, final byte) (event keyEvent, quit bool, ok bool) {
	fields := strings.Split(params, ";")

	mods, kind := 1, kittyPress
	if len(fields) > 1 {
		m, k, _ := strings.Cut(fields[1], ":")
		if v, err := strconv.Atoi(m); err == nil {
			mods = v
		}
		if v, err := strconv.Atoi(k); err == nil {
			kind = v
		}
	}
	event.Release = kind == kittyRelease

	switch final {
	case 'A', 'B', 'C', 'D':
		event.Button, ok = arrowButtons[final]
	case 'u':
		code, _, _ := strings.Cut(fields[0], ":")
		key, err := strconv.Atoi(code)
		if err != nil {
			return
		}
		if key == 'c' && (mods-1)&kittyCtrl != 0 {
			quit = !event.Release
			return
		}
		event.Button, ok = keyButtons[unicode.ToLower(rune(key))]
	}
	return
}

// applyKeys presses and releases controller buttons.
func applyKeys(ct *bpio.Controller, events []keyEvent) {
	for _, event := range events {
		if event.Release {
			ct.ClearButton(event.Button)
		} else {
			ct.SetButton(event.Button)
		}
	}
}

// readKeys forwards terminal input until a read fails or done closes.
func readKeys(in io.Reader, keys chan<- []byte, done <-chan struct{}) {
	defer close(keys)
	for {
		buf := make([]byte, 32)
		n, err := in.Read(buf)
		if err != nil {
			return
		}
		select {
		case keys <- buf[:n]:
		case <-done:
			return
		}
	}
}
