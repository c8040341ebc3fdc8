// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"log"
	"time"

	"github.com/ezrec/batpu2/asm"
	"github.com/ezrec/batpu2/isa"
	"github.com/ezrec/batpu2/loader"
	"github.com/ezrec/batpu2/vm"
)

// DEFAULT_TICK_RATE is the default instructions per second.
const DEFAULT_TICK_RATE = 1000.0

// Emulator state. VM + source listing + pacing + tape.
type Emulator struct {
	Verbose bool         // If set, enables verbose logging.
	*vm.Vm               // Reference to the VM simulation.
	Program *asm.Program // Source listing, or nil for machine code.

	Pacer Pacer // Wall clock pacing for Run.
	Tape  Tape  // Headless display recorder.
}

// NewEmulator loads an image into a new machine.
func NewEmulator(image *loader.Image) (emu *Emulator, err error) {
	machine, err := vm.NewVm(image.Instructions)
	if err != nil {
		err = &ErrImage{Name: image.Name, Err: err}
		return
	}

	emu = &Emulator{
		Vm:      machine,
		Program: image.Program,
		Pacer:   Pacer{TickRate: DEFAULT_TICK_RATE},
	}

	emu.Tape.Prime(&emu.Vm.Io)

	return
}

// Ticks returns the total instructions executed.
func (emu *Emulator) Ticks() int {
	return emu.Vm.Ticks
}

// Ip returns current program counter.
func (emu *Emulator) Ip() int {
	return int(emu.Vm.Pc)
}

// Code returns the instruction at the program counter, or nil past the
// end of the program.
func (emu *Emulator) Code() isa.Instruction {
	if int(emu.Vm.Pc) >= len(emu.Vm.Program) {
		return nil
	}
	return emu.Vm.Program[emu.Vm.Pc]
}

// LineNo returns the source line number for the executing instruction,
// or 0 if there is no listing.
func (emu *Emulator) LineNo() int {
	if emu.Program == nil {
		return 0
	}
	return emu.Program.LineNo(emu.Vm.Pc)
}

// Tick performs a single step of the emulator, and reports if the
// machine has halted.
func (emu *Emulator) Tick() (done bool) {
	emu.Vm.Verbose = emu.Verbose

	if emu.Verbose {
		if lineno := emu.LineNo(); lineno != 0 {
			log.Printf("line %d: %v\n", lineno, emu.Code())
		}
	}

	emu.Vm.Step()

	done = emu.Vm.Halted()
	return
}

// Run paces the machine up to now, records display changes on the tape,
// and returns the number of steps executed.
func (emu *Emulator) Run(now time.Time) (steps int, err error) {
	emu.Vm.Verbose = emu.Verbose

	steps = emu.Pacer.Advance(emu.Vm, now)

	err = emu.Tape.Observe(&emu.Vm.Io)
	return
}

// RunFor steps without pacing until halted or limit steps have run.
// A limit of zero or less runs until halted. Every step is observed by
// the tape.
func (emu *Emulator) RunFor(limit int) (steps int, err error) {
	for limit <= 0 || steps < limit {
		if emu.Vm.Halted() {
			break
		}
		emu.Tick()
		steps++

		err = emu.Tape.Observe(&emu.Vm.Io)
		if err != nil {
			return
		}
	}

	return
}
