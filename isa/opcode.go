package isa

import (
	"fmt"
)

// Opcode is the top nibble of an instruction word.
type Opcode uint8

const (
	OP_NOP = Opcode(0x0) // nop
	OP_HLT = Opcode(0x1) // hlt
	OP_ADD = Opcode(0x2) // add
	OP_SUB = Opcode(0x3) // sub
	OP_NOR = Opcode(0x4) // nor
	OP_AND = Opcode(0x5) // and
	OP_XOR = Opcode(0x6) // xor
	OP_RSH = Opcode(0x7) // rsh
	OP_LDI = Opcode(0x8) // ldi
	OP_ADI = Opcode(0x9) // adi
	OP_JMP = Opcode(0xA) // jmp
	OP_BRH = Opcode(0xB) // brh
	OP_CAL = Opcode(0xC) // cal
	OP_RET = Opcode(0xD) // ret
	OP_LOD = Opcode(0xE) // lod
	OP_STR = Opcode(0xF) // str
)

var opcodeNames = [16]string{
	"nop", "hlt", "add", "sub", "nor", "and", "xor", "rsh",
	"ldi", "adi", "jmp", "brh", "cal", "ret", "lod", "str",
}

func (op Opcode) String() string {
	if int(op) < len(opcodeNames) {
		return opcodeNames[op]
	}
	return fmt.Sprintf("Opcode(%d)", uint8(op))
}

// Cond is the 2-bit branch condition code.
type Cond uint8

const (
	COND_ZERO      = Cond(0) // zero
	COND_NOT_ZERO  = Cond(1) // notzero
	COND_CARRY     = Cond(2) // carry
	COND_NOT_CARRY = Cond(3) // notcarry
)

var condNames = [4]string{"zero", "notzero", "carry", "notcarry"}

func (cond Cond) String() string {
	if int(cond) < len(condNames) {
		return condNames[cond]
	}
	return fmt.Sprintf("Cond(%d)", uint8(cond))
}

// Test evaluates the condition against the zero and carry flags.
func (cond Cond) Test(zero, carry bool) bool {
	switch cond & 3 {
	case COND_ZERO:
		return zero
	case COND_NOT_ZERO:
		return !zero
	case COND_CARRY:
		return carry
	default:
		return !carry
	}
}

// condMap maps source-level condition names to condition codes.
var condMap = map[string]Cond{
	"zero":     COND_ZERO,
	"z":        COND_ZERO,
	"eq":       COND_ZERO,
	"=":        COND_ZERO,
	"notzero":  COND_NOT_ZERO,
	"nz":       COND_NOT_ZERO,
	"ne":       COND_NOT_ZERO,
	"!=":       COND_NOT_ZERO,
	"carry":    COND_CARRY,
	"c":        COND_CARRY,
	"lt":       COND_CARRY,
	"<":        COND_CARRY,
	"notcarry": COND_NOT_CARRY,
	"nc":       COND_NOT_CARRY,
	"ge":       COND_NOT_CARRY,
	">=":       COND_NOT_CARRY,
}

// CondOf returns the condition code for a source-level name.
func CondOf(name string) (cond Cond, ok bool) {
	cond, ok = condMap[name]
	return
}

// Field is the kind of an instruction operand.
type Field int

const (
	FIELD_REG    = Field(0) // register
	FIELD_IMM    = Field(1) // immediate
	FIELD_ADDR   = Field(2) // address
	FIELD_COND   = Field(3) // condition
	FIELD_OFFSET = Field(4) // offset
)

var fieldNames = [...]string{"register", "immediate", "address", "condition", "offset"}

func (field Field) String() string {
	if int(field) < len(fieldNames) {
		return fieldNames[field]
	}
	return fmt.Sprintf("Field(%d)", int(field))
}

// Range returns the inclusive range of source values accepted for the field.
// Immediates accept -128..-1 as their two's complement byte.
func (field Field) Range() (lo, hi int) {
	switch field {
	case FIELD_REG, FIELD_OFFSET:
		return 0, 15
	case FIELD_IMM:
		return -128, 255
	case FIELD_ADDR:
		return 0, PROGRAM_SIZE - 1
	case FIELD_COND:
		return 0, 3
	}
	return 0, 0
}

// Bits returns the width of the field in the instruction word.
func (field Field) Bits() int {
	switch field {
	case FIELD_REG, FIELD_OFFSET:
		return 4
	case FIELD_IMM:
		return 8
	case FIELD_ADDR:
		return 10
	case FIELD_COND:
		return 2
	}
	return 0
}

const (
	PROGRAM_SIZE   = 1024 // Words of program memory.
	REGISTER_COUNT = 16   // General purpose registers.
)
