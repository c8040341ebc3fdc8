// Package vm implements the BatPU-2 execution engine.
//
// The machine has a program counter over 1024 words of program memory,
// sixteen 8-bit registers (r0 reads as zero and discards writes), Zero
// and Carry flags, a single return address slot, 240 bytes of RAM, and
// the peripheral bus mapped over the top sixteen data addresses.
//
// Execution is total: once a Vm is constructed no instruction can fail.
package vm
