// Package isa defines the BatPU-2 instruction set.
//
// Every instruction is a single 16-bit word: the opcode sits in the top
// nibble and the remaining twelve bits are packed per opcode. The opcode
// space is fully populated, so Decode is total over all 16-bit words.
//
// The assembler-facing side of the package is the mnemonic catalogue:
// canonical signatures (one per opcode), alias mnemonics that rewrite
// their operands onto a canonical target, and the 30 entry glyph table
// used by character literals and the character display.
package isa
