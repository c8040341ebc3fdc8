package isa

import (
	"fmt"
)

// Reg is a register index, 0-15. Register 0 always reads as zero.
type Reg uint8

func (r Reg) String() string {
	return fmt.Sprintf("r%d", uint8(r))
}

// Addr is a program memory address, 0-1023.
type Addr uint16

// Instruction is one of the sixteen canonical instruction variants.
type Instruction interface {
	Opcode() Opcode
	String() string
	instruction()
}

type (
	Nop struct{}
	Hlt struct{}
	Add struct{ A, B, C Reg }
	Sub struct{ A, B, C Reg }
	Nor struct{ A, B, C Reg }
	And struct{ A, B, C Reg }
	Xor struct{ A, B, C Reg }
	Rsh struct{ A, C Reg }
	Ldi struct {
		A   Reg
		Imm uint8
	}
	Adi struct {
		A   Reg
		Imm uint8
	}
	Jmp struct{ Addr Addr }
	Brh struct {
		Cond Cond
		Addr Addr
	}
	Cal struct{ Addr Addr }
	Ret struct{}
	Lod struct {
		A, B   Reg
		Offset uint8
	}
	Str struct {
		A, B   Reg
		Offset uint8
	}
)

func (Nop) Opcode() Opcode { return OP_NOP }
func (Hlt) Opcode() Opcode { return OP_HLT }
func (Add) Opcode() Opcode { return OP_ADD }
func (Sub) Opcode() Opcode { return OP_SUB }
func (Nor) Opcode() Opcode { return OP_NOR }
func (And) Opcode() Opcode { return OP_AND }
func (Xor) Opcode() Opcode { return OP_XOR }
func (Rsh) Opcode() Opcode { return OP_RSH }
func (Ldi) Opcode() Opcode { return OP_LDI }
func (Adi) Opcode() Opcode { return OP_ADI }
func (Jmp) Opcode() Opcode { return OP_JMP }
func (Brh) Opcode() Opcode { return OP_BRH }
func (Cal) Opcode() Opcode { return OP_CAL }
func (Ret) Opcode() Opcode { return OP_RET }
func (Lod) Opcode() Opcode { return OP_LOD }
func (Str) Opcode() Opcode { return OP_STR }

func (Nop) instruction() {}
func (Hlt) instruction() {}
func (Add) instruction() {}
func (Sub) instruction() {}
func (Nor) instruction() {}
func (And) instruction() {}
func (Xor) instruction() {}
func (Rsh) instruction() {}
func (Ldi) instruction() {}
func (Adi) instruction() {}
func (Jmp) instruction() {}
func (Brh) instruction() {}
func (Cal) instruction() {}
func (Ret) instruction() {}
func (Lod) instruction() {}
func (Str) instruction() {}

func abc(op Opcode, a, b, c Reg) string {
	return fmt.Sprintf("%v %v, %v, %v", op, a, b, c)
}

func (in Nop) String() string { return in.Opcode().String() }
func (in Hlt) String() string { return in.Opcode().String() }
func (in Add) String() string { return abc(in.Opcode(), in.A, in.B, in.C) }
func (in Sub) String() string { return abc(in.Opcode(), in.A, in.B, in.C) }
func (in Nor) String() string { return abc(in.Opcode(), in.A, in.B, in.C) }
func (in And) String() string { return abc(in.Opcode(), in.A, in.B, in.C) }
func (in Xor) String() string { return abc(in.Opcode(), in.A, in.B, in.C) }
func (in Rsh) String() string { return fmt.Sprintf("%v %v, %v", in.Opcode(), in.A, in.C) }
func (in Ldi) String() string { return fmt.Sprintf("%v %v, %d", in.Opcode(), in.A, in.Imm) }
func (in Adi) String() string { return fmt.Sprintf("%v %v, %d", in.Opcode(), in.A, in.Imm) }
func (in Jmp) String() string { return fmt.Sprintf("%v %d", in.Opcode(), in.Addr) }
func (in Brh) String() string { return fmt.Sprintf("%v %v, %d", in.Opcode(), in.Cond, in.Addr) }
func (in Cal) String() string { return fmt.Sprintf("%v %d", in.Opcode(), in.Addr) }
func (in Ret) String() string { return in.Opcode().String() }
func (in Lod) String() string {
	return fmt.Sprintf("%v %v, %v, %d", in.Opcode(), in.A, in.B, in.Offset)
}
func (in Str) String() string {
	return fmt.Sprintf("%v %v, %v, %d", in.Opcode(), in.A, in.B, in.Offset)
}

// word packs an opcode and three nibbles.
func word(op Opcode, a, b, c uint8) uint16 {
	return uint16(op&0xf)<<12 | uint16(a&0xf)<<8 | uint16(b&0xf)<<4 | uint16(c&0xf)
}

// Encode returns the machine word for an instruction.
func Encode(in Instruction) uint16 {
	switch in := in.(type) {
	case Nop:
		return word(OP_NOP, 0, 0, 0)
	case Hlt:
		return word(OP_HLT, 0, 0, 0)
	case Add:
		return word(OP_ADD, uint8(in.A), uint8(in.B), uint8(in.C))
	case Sub:
		return word(OP_SUB, uint8(in.A), uint8(in.B), uint8(in.C))
	case Nor:
		return word(OP_NOR, uint8(in.A), uint8(in.B), uint8(in.C))
	case And:
		return word(OP_AND, uint8(in.A), uint8(in.B), uint8(in.C))
	case Xor:
		return word(OP_XOR, uint8(in.A), uint8(in.B), uint8(in.C))
	case Rsh:
		return word(OP_RSH, uint8(in.A), 0, uint8(in.C))
	case Ldi:
		return word(OP_LDI, uint8(in.A), 0, 0) | uint16(in.Imm)
	case Adi:
		return word(OP_ADI, uint8(in.A), 0, 0) | uint16(in.Imm)
	case Jmp:
		return word(OP_JMP, 0, 0, 0) | uint16(in.Addr)&0x3ff
	case Brh:
		return word(OP_BRH, 0, 0, 0) | uint16(in.Cond&3)<<10 | uint16(in.Addr)&0x3ff
	case Cal:
		return word(OP_CAL, 0, 0, 0) | uint16(in.Addr)&0x3ff
	case Ret:
		return word(OP_RET, 0, 0, 0)
	case Lod:
		return word(OP_LOD, uint8(in.A), uint8(in.B), in.Offset)
	case Str:
		return word(OP_STR, uint8(in.A), uint8(in.B), in.Offset)
	}

	panic(fmt.Sprintf("isa: unknown instruction %T", in))
}

// Decode returns the instruction for a machine word. Every word decodes.
func Decode(w uint16) Instruction {
	a := Reg((w >> 8) & 0xf)
	b := Reg((w >> 4) & 0xf)
	c := Reg(w & 0xf)
	imm := uint8(w & 0xff)
	addr := Addr(w & 0x3ff)

	switch Opcode(w >> 12) {
	case OP_NOP:
		return Nop{}
	case OP_HLT:
		return Hlt{}
	case OP_ADD:
		return Add{A: a, B: b, C: c}
	case OP_SUB:
		return Sub{A: a, B: b, C: c}
	case OP_NOR:
		return Nor{A: a, B: b, C: c}
	case OP_AND:
		return And{A: a, B: b, C: c}
	case OP_XOR:
		return Xor{A: a, B: b, C: c}
	case OP_RSH:
		return Rsh{A: a, C: c}
	case OP_LDI:
		return Ldi{A: a, Imm: imm}
	case OP_ADI:
		return Adi{A: a, Imm: imm}
	case OP_JMP:
		return Jmp{Addr: addr}
	case OP_BRH:
		return Brh{Cond: Cond((w >> 10) & 3), Addr: addr}
	case OP_CAL:
		return Cal{Addr: addr}
	case OP_RET:
		return Ret{}
	case OP_LOD:
		return Lod{A: a, B: b, Offset: uint8(c)}
	default:
		return Str{A: a, B: b, Offset: uint8(c)}
	}
}
