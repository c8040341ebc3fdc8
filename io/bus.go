package io

import (
	"log"

	"github.com/ezrec/batpu2/isa"
)

// Bus routes peripheral port accesses to the devices.
type Bus struct {
	Verbose bool

	Screen     Screen
	Chars      CharDisplay
	Number     NumberDisplay
	Random     Random
	Controller Controller
}

// Reset blanks the displays and releases the controller. The random
// stream restarts from its seed.
func (bus *Bus) Reset() {
	bus.Screen.Reset()
	bus.Chars.Reset()
	bus.Number.Reset()
	bus.Random.Reset()
	bus.Controller.Reset()
}

// Load reads a port. Ports that cannot be read report ok as false and
// have no effect.
func (bus *Bus) Load(addr uint8) (value uint8, ok bool) {
	ok = true
	switch Port(addr) {
	case PORT_LOAD_PIXEL:
		if bus.Screen.Pixel() {
			value = 1
		}
	case PORT_RNG:
		value = bus.Random.Next()
	case PORT_CONTROLLER_INPUT:
		value = bus.Controller.Read()
	default:
		ok = false
	}

	if bus.Verbose && ok {
		log.Printf("io: load %v = 0x%02x", Port(addr), value)
	}

	return
}

// Store writes a port. Ports that cannot be written report ok as false
// and have no effect.
func (bus *Bus) Store(addr uint8, value uint8) (ok bool) {
	ok = true
	switch Port(addr) {
	case PORT_PIXEL_X:
		bus.Screen.SetX(value)
	case PORT_PIXEL_Y:
		bus.Screen.SetY(value)
	case PORT_DRAW_PIXEL:
		bus.Screen.Draw()
	case PORT_CLEAR_PIXEL:
		bus.Screen.Erase()
	case PORT_BUFFER_SCREEN:
		bus.Screen.Commit()
	case PORT_CLEAR_SCREEN_BUFFER:
		bus.Screen.ClearBuffer()
	case PORT_WRITE_CHAR:
		bus.Chars.Write(isa.Char(value))
	case PORT_BUFFER_CHARS:
		bus.Chars.Commit()
	case PORT_CLEAR_CHARS_BUFFER:
		bus.Chars.ClearBuffer()
	case PORT_SHOW_NUMBER:
		bus.Number.Show(value)
	case PORT_CLEAR_NUMBER:
		bus.Number.Clear()
	case PORT_SIGNED_MODE:
		bus.Number.Signed = true
	case PORT_UNSIGNED_MODE:
		bus.Number.Signed = false
	default:
		ok = false
	}

	if bus.Verbose && ok {
		log.Printf("io: store %v = 0x%02x", Port(addr), value)
	}

	return
}
