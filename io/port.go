// Package io provides the memory-mapped peripherals of the BatPU-2.
//
// The top sixteen data memory addresses are routed to the peripheral Bus
// instead of RAM: a double buffered 32x32 pixel screen, a ten cell
// character display, a numeric display, a seeded random byte source and
// an eight button controller.
package io

import (
	"fmt"
	"iter"

	"github.com/ezrec/batpu2/internal"
)

// Port is a peripheral address in data memory.
type Port uint8

const (
	PORT_BASE = Port(240) // First peripheral address.

	PORT_PIXEL_X             = Port(240) // PIXEL_X
	PORT_PIXEL_Y             = Port(241) // PIXEL_Y
	PORT_DRAW_PIXEL          = Port(242) // DRAW_PIXEL
	PORT_CLEAR_PIXEL         = Port(243) // CLEAR_PIXEL
	PORT_LOAD_PIXEL          = Port(244) // LOAD_PIXEL
	PORT_BUFFER_SCREEN       = Port(245) // BUFFER_SCREEN
	PORT_CLEAR_SCREEN_BUFFER = Port(246) // CLEAR_SCREEN_BUFFER
	PORT_WRITE_CHAR          = Port(247) // WRITE_CHAR
	PORT_BUFFER_CHARS        = Port(248) // BUFFER_CHARS
	PORT_CLEAR_CHARS_BUFFER  = Port(249) // CLEAR_CHARS_BUFFER
	PORT_SHOW_NUMBER         = Port(250) // SHOW_NUMBER
	PORT_CLEAR_NUMBER        = Port(251) // CLEAR_NUMBER
	PORT_SIGNED_MODE         = Port(252) // SIGNED_MODE
	PORT_UNSIGNED_MODE       = Port(253) // UNSIGNED_MODE
	PORT_RNG                 = Port(254) // RNG
	PORT_CONTROLLER_INPUT    = Port(255) // CONTROLLER_INPUT
)

var portNames = [16]string{
	"PIXEL_X", "PIXEL_Y", "DRAW_PIXEL", "CLEAR_PIXEL",
	"LOAD_PIXEL", "BUFFER_SCREEN", "CLEAR_SCREEN_BUFFER", "WRITE_CHAR",
	"BUFFER_CHARS", "CLEAR_CHARS_BUFFER", "SHOW_NUMBER", "CLEAR_NUMBER",
	"SIGNED_MODE", "UNSIGNED_MODE", "RNG", "CONTROLLER_INPUT",
}

func (port Port) String() string {
	if port >= PORT_BASE {
		return portNames[port-PORT_BASE]
	}
	return fmt.Sprintf("Port(%d)", uint8(port))
}

// IsPort returns true if the data memory address is routed to the Bus.
func IsPort(addr uint8) bool {
	return Port(addr) >= PORT_BASE
}

var _port_defines = func() map[string]string {
	defines := make(map[string]string, len(portNames))
	for n, name := range portNames {
		defines[name] = fmt.Sprintf("%d", int(PORT_BASE)+n)
	}
	return defines
}()

// Defines returns the assembler equates for every peripheral.
func Defines() iter.Seq2[string, string] {
	return internal.Concat2(
		internal.Sorted(_port_defines),
		internal.Sorted(_screen_defines),
		internal.Sorted(_chars_defines),
		internal.Sorted(_controller_defines),
	)
}
