package vm

import (
	"fmt"
	"log"
	"slices"
	"strings"

	"github.com/ezrec/batpu2/io"
	"github.com/ezrec/batpu2/isa"
)

const (
	PROGRAM_SIZE = isa.PROGRAM_SIZE   // Words of program memory.
	MEMORY_SIZE  = int(io.PORT_BASE) // Bytes of RAM below the peripheral ports.
)

// Vm is the simulation context for a single BatPU-2 program.
type Vm struct {
	Verbose bool // Set to enable verbose logging.

	Program  []isa.Instruction         // Program memory.
	Pc       uint16                    // Program counter.
	Register [isa.REGISTER_COUNT]uint8 // Register bank; Register[0] stays zero.
	Zero     bool                      // Zero flag.
	Carry    bool                      // Carry flag.
	Return   uint16                    // Single return address slot.
	Memory   [MEMORY_SIZE]uint8        // Data RAM.
	Io       io.Bus                    // Peripheral bus.

	Ticks int // Instructions executed.

	halted bool
}

// NewVm creates a machine with the program loaded at address 0.
func NewVm(program []isa.Instruction) (vm *Vm, err error) {
	if len(program) > PROGRAM_SIZE {
		err = ErrProgramSize(len(program))
		return
	}

	vm = &Vm{
		Program: slices.Clone(program),
	}

	return
}

// Halted returns true once a halt has executed.
func (vm *Vm) Halted() bool {
	return vm.halted
}

// Reg reads a register. Register 0 always reads as zero.
func (vm *Vm) Reg(r isa.Reg) uint8 {
	if r == 0 {
		return 0
	}
	return vm.Register[r&0xf]
}

// setReg writes a register, discarding writes to register 0.
func (vm *Vm) setReg(r isa.Reg, value uint8) {
	if r == 0 {
		return
	}
	vm.Register[r&0xf] = value
}

// setFlags updates Zero from the result and Carry as given.
func (vm *Vm) setFlags(result uint8, carry bool) {
	vm.Zero = result == 0
	vm.Carry = carry
}

// load reads data memory, routing the top addresses to the bus.
func (vm *Vm) load(addr uint8) (value uint8, ok bool) {
	if io.IsPort(addr) {
		return vm.Io.Load(addr)
	}
	return vm.Memory[addr], true
}

// store writes data memory, routing the top addresses to the bus.
func (vm *Vm) store(addr uint8, value uint8) {
	if io.IsPort(addr) {
		vm.Io.Store(addr, value)
		return
	}
	vm.Memory[addr] = value
}

// Step executes one instruction, returning the number of steps taken:
// zero when halted, else one. Fetching past the end of the program is
// an implicit halt.
func (vm *Vm) Step() int {
	if vm.halted {
		return 0
	}

	if int(vm.Pc) >= len(vm.Program) {
		if vm.Verbose {
			log.Printf("%03x: end of program", vm.Pc)
		}
		vm.halted = true
		vm.Ticks++
		return 1
	}

	vm.Execute(vm.Program[vm.Pc])

	return 1
}

// StepN executes up to n instructions, stopping early on halt, and
// returns the number executed.
func (vm *Vm) StepN(n int) (steps int) {
	for steps < n && !vm.halted {
		steps += vm.Step()
	}
	return
}

// Execute executes a single decoded instruction at the current program counter.
func (vm *Vm) Execute(in isa.Instruction) {
	if vm.Verbose {
		log.Printf("%03x: %v", vm.Pc, in)
	}

	next_pc := (vm.Pc + 1) % PROGRAM_SIZE

	switch in := in.(type) {
	case isa.Nop:
		// pass
	case isa.Hlt:
		vm.halted = true
	case isa.Add:
		sum := uint(vm.Reg(in.A)) + uint(vm.Reg(in.B))
		vm.setReg(in.C, uint8(sum))
		vm.setFlags(uint8(sum), sum > 0xff)
	case isa.Sub:
		a, b := vm.Reg(in.A), vm.Reg(in.B)
		vm.setReg(in.C, a-b)
		vm.setFlags(a-b, a < b)
	case isa.Nor:
		result := ^(vm.Reg(in.A) | vm.Reg(in.B))
		vm.setReg(in.C, result)
		vm.setFlags(result, false)
	case isa.And:
		result := vm.Reg(in.A) & vm.Reg(in.B)
		vm.setReg(in.C, result)
		vm.setFlags(result, false)
	case isa.Xor:
		result := vm.Reg(in.A) ^ vm.Reg(in.B)
		vm.setReg(in.C, result)
		vm.setFlags(result, false)
	case isa.Rsh:
		result := vm.Reg(in.A) >> 1
		vm.setReg(in.C, result)
		vm.setFlags(result, false)
	case isa.Ldi:
		vm.setReg(in.A, in.Imm)
	case isa.Adi:
		sum := uint(vm.Reg(in.A)) + uint(in.Imm)
		vm.setReg(in.A, uint8(sum))
		vm.setFlags(uint8(sum), sum > 0xff)
	case isa.Jmp:
		next_pc = uint16(in.Addr)
	case isa.Brh:
		if in.Cond.Test(vm.Zero, vm.Carry) {
			next_pc = uint16(in.Addr)
		}
	case isa.Cal:
		// A nested call overwrites the outer return address.
		vm.Return = next_pc
		next_pc = uint16(in.Addr)
	case isa.Ret:
		next_pc = vm.Return
	case isa.Lod:
		value, ok := vm.load(vm.Reg(in.A) + in.Offset)
		if ok {
			vm.setReg(in.B, value)
		}
	case isa.Str:
		vm.store(vm.Reg(in.A)+in.Offset, vm.Reg(in.B))
	default:
		panic(fmt.Sprintf("vm: unknown instruction %T", in))
	}

	if !vm.halted {
		vm.Pc = next_pc
	}

	vm.Ticks++
}

// String returns the current machine state as a string.
func (vm *Vm) String() (text string) {
	var sb strings.Builder

	state := "run"
	if vm.halted {
		state = "halt"
	}
	fmt.Fprintf(&sb, "   pc: %03x (%v)\n", vm.Pc, state)
	fmt.Fprintf(&sb, "flags: z=%v c=%v\n", vm.Zero, vm.Carry)
	fmt.Fprintf(&sb, "  ret: %03x\n", vm.Return)
	for n := range vm.Register {
		fmt.Fprintf(&sb, "% 5s: %02X", fmt.Sprintf("r%d", n), vm.Reg(isa.Reg(n)))
		if n%4 == 3 {
			sb.WriteString("\n")
		} else {
			sb.WriteString("  ")
		}
	}

	return sb.String()
}
