package isa

import (
	"slices"
	"strings"
)

// Signature declares the operand fields of a canonical mnemonic.
type Signature struct {
	Opcode Opcode
	Name   string
	Fields []Field
}

var (
	fieldsABC    = []Field{FIELD_REG, FIELD_REG, FIELD_REG}
	fieldsAC     = []Field{FIELD_REG, FIELD_REG}
	fieldsAImm   = []Field{FIELD_REG, FIELD_IMM}
	fieldsAddr   = []Field{FIELD_ADDR}
	fieldsBranch = []Field{FIELD_COND, FIELD_ADDR}
	fieldsMemory = []Field{FIELD_REG, FIELD_REG, FIELD_OFFSET}
)

// catalogue is indexed by opcode.
var catalogue = [16]Signature{
	{OP_NOP, "nop", nil},
	{OP_HLT, "hlt", nil},
	{OP_ADD, "add", fieldsABC},
	{OP_SUB, "sub", fieldsABC},
	{OP_NOR, "nor", fieldsABC},
	{OP_AND, "and", fieldsABC},
	{OP_XOR, "xor", fieldsABC},
	{OP_RSH, "rsh", fieldsAC},
	{OP_LDI, "ldi", fieldsAImm},
	{OP_ADI, "adi", fieldsAImm},
	{OP_JMP, "jmp", fieldsAddr},
	{OP_BRH, "brh", fieldsBranch},
	{OP_CAL, "cal", fieldsAddr},
	{OP_RET, "ret", nil},
	{OP_LOD, "lod", fieldsMemory},
	{OP_STR, "str", fieldsMemory},
}

// Long form spellings of canonical mnemonics.
var synonyms = map[string]Opcode{
	"noop":           OP_NOP,
	"halt":           OP_HLT,
	"subtract":       OP_SUB,
	"shift-right":    OP_RSH,
	"load-immediate": OP_LDI,
	"add-immediate":  OP_ADI,
	"jump":           OP_JMP,
	"branch":         OP_BRH,
	"call":           OP_CAL,
	"return":         OP_RET,
	"load":           OP_LOD,
	"store":          OP_STR,
}

// Signatures returns the canonical catalogue in opcode order.
func Signatures() []Signature {
	return slices.Clone(catalogue[:])
}

// SignatureOf returns the canonical signature of an opcode.
func SignatureOf(op Opcode) Signature {
	return catalogue[op&0xf]
}

// Lookup finds the canonical signature for a mnemonic name.
// Names are case insensitive.
func Lookup(name string) (sig Signature, ok bool) {
	name = strings.ToLower(name)
	for _, s := range catalogue {
		if s.Name == name {
			return s, true
		}
	}
	op, ok := synonyms[name]
	if ok {
		sig = catalogue[op]
	}
	return
}

// Build validates operands against the signature and constructs the instruction.
func (sig Signature) Build(operands ...int) (in Instruction, err error) {
	if len(operands) != len(sig.Fields) {
		err = ErrOperandCount{Mnemonic: sig.Name, Expected: len(sig.Fields), Actual: len(operands)}
		return
	}

	v := make([]int, len(operands))
	for n, field := range sig.Fields {
		lo, hi := field.Range()
		value := operands[n]
		if value < lo || value > hi {
			err = ErrOperandRange{Mnemonic: sig.Name, Field: field, Value: value}
			return
		}
		v[n] = value & ((1 << field.Bits()) - 1)
	}

	switch sig.Opcode {
	case OP_NOP:
		in = Nop{}
	case OP_HLT:
		in = Hlt{}
	case OP_ADD:
		in = Add{A: Reg(v[0]), B: Reg(v[1]), C: Reg(v[2])}
	case OP_SUB:
		in = Sub{A: Reg(v[0]), B: Reg(v[1]), C: Reg(v[2])}
	case OP_NOR:
		in = Nor{A: Reg(v[0]), B: Reg(v[1]), C: Reg(v[2])}
	case OP_AND:
		in = And{A: Reg(v[0]), B: Reg(v[1]), C: Reg(v[2])}
	case OP_XOR:
		in = Xor{A: Reg(v[0]), B: Reg(v[1]), C: Reg(v[2])}
	case OP_RSH:
		in = Rsh{A: Reg(v[0]), C: Reg(v[1])}
	case OP_LDI:
		in = Ldi{A: Reg(v[0]), Imm: uint8(v[1])}
	case OP_ADI:
		in = Adi{A: Reg(v[0]), Imm: uint8(v[1])}
	case OP_JMP:
		in = Jmp{Addr: Addr(v[0])}
	case OP_BRH:
		in = Brh{Cond: Cond(v[0]), Addr: Addr(v[1])}
	case OP_CAL:
		in = Cal{Addr: Addr(v[0])}
	case OP_RET:
		in = Ret{}
	case OP_LOD:
		in = Lod{A: Reg(v[0]), B: Reg(v[1]), Offset: uint8(v[2])}
	case OP_STR:
		in = Str{A: Reg(v[0]), B: Reg(v[1]), Offset: uint8(v[2])}
	}

	return
}
