// Package asm implements the two-pass BatPU-2 assembler.
//
// Source is line oriented. A line holds an optional 'label:', then an
// equate ('.equ NAME VALUE' or 'define NAME VALUE') or an instruction
// ('MNEMONIC op, op, ...'). Comments start with ';', '//' or '#'.
//
// Operands are registers (r0-r15), condition names (zero, notzero,
// carry, notcarry and their eq/ne/lt/ge spellings), integers (decimal,
// 0x hex, 0b binary, 0o octal, negative; a leading zero is still
// decimal), character literals ('A') resolved through the glyph table,
// labels, equates, and $(...) compile-time expressions over equates and
// labels. Comment markers inside $(...) are part of the expression, so
// '$(WIDTH // 2)' divides.
//
// Labels and equates share one namespace: a label may not reuse the
// name of a system, peripheral, predefined or source equate.
//
// The first pass assigns addresses and collects labels and equates; the
// second pass resolves operands, expands aliases and encodes.
package asm
