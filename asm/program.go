package asm

import (
	"iter"

	"github.com/ezrec/batpu2/isa"
)

// Line is one assembled source line.
type Line struct {
	LineNo      int                     // Source line number.
	Ip          int                     // Program address.
	Words       []string                // Mnemonic and operand tokens.
	Resolved    isa.ResolvedInstruction // Operands after symbol resolution.
	Instruction isa.Instruction         // Canonical instruction.
}

// Program is the output of the assembler.
type Program struct {
	File  string
	Lines []Line
}

// Instructions returns the program image.
func (prog *Program) Instructions() (code []isa.Instruction) {
	code = make([]isa.Instruction, 0, len(prog.Lines))
	for _, line := range prog.Lines {
		code = append(code, line.Instruction)
	}
	return
}

// Binary returns the machine words of the program.
func (prog *Program) Binary() (words []uint16) {
	for _, in := range prog.Codes() {
		words = append(words, isa.Encode(in))
	}
	return
}

// Codes iterates over the program by address.
func (prog *Program) Codes() iter.Seq2[uint16, isa.Instruction] {
	return func(yield func(ip uint16, in isa.Instruction) bool) {
		for _, line := range prog.Lines {
			if !yield(uint16(line.Ip), line.Instruction) {
				return
			}
		}
	}
}

// Debug returns the source line assembled at an address, or nil.
func (prog *Program) Debug(ip uint16) *Line {
	for n := range prog.Lines {
		if prog.Lines[n].Ip == int(ip) {
			return &prog.Lines[n]
		}
	}
	return nil
}

// LineNo returns the source line number for an address, or 0.
func (prog *Program) LineNo(ip uint16) int {
	line := prog.Debug(ip)
	if line == nil {
		return 0
	}
	return line.LineNo
}
