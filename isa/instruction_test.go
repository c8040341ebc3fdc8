package isa

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var encodeTable = []struct {
	in   Instruction
	word uint16
}{
	{Nop{}, 0x0000},
	{Hlt{}, 0x1000},
	{Add{A: 0x3, B: 0x4, C: 0x5}, 0x2345},
	{Sub{A: 0x9, B: 0x3, C: 0x9}, 0x3939},
	{Nor{A: 0xE, B: 0xE, C: 0xF}, 0x4EEF},
	{And{A: 0x4, B: 0x0, C: 0x5}, 0x5405},
	{Xor{A: 0x1, B: 0x2, C: 0x3}, 0x6123},
	{Rsh{A: 0xA, C: 0xB}, 0x7A0B},
	{Ldi{A: 0x9, Imm: 0xFF}, 0x89FF},
	{Adi{A: 0x8, Imm: 0x42}, 0x9842},
	{Jmp{Addr: 0x3FF}, 0xA3FF},
	{Brh{Cond: COND_ZERO, Addr: 0x222}, 0xB222},
	{Brh{Cond: COND_NOT_ZERO, Addr: 0x123}, 0xB523},
	{Brh{Cond: COND_CARRY, Addr: 0x009}, 0xB809},
	{Brh{Cond: COND_NOT_CARRY, Addr: 0x3FF}, 0xBFFF},
	{Cal{Addr: 0x137}, 0xC137},
	{Ret{}, 0xD000},
	{Lod{A: 0x1, B: 0x2, Offset: 0x3}, 0xE123},
	{Str{A: 0xF, B: 0xF, Offset: 0xF}, 0xFFFF},
}

func TestEncode(t *testing.T) {
	assert := assert.New(t)

	for _, entry := range encodeTable {
		assert.Equal(entry.word, Encode(entry.in), entry.in.String())
	}
}

func TestDecode(t *testing.T) {
	assert := assert.New(t)

	for _, entry := range encodeTable {
		assert.Equal(entry.in, Decode(entry.word), "0x%04x", entry.word)
	}
}

func TestDecodeTotal(t *testing.T) {
	assert := assert.New(t)

	seen := map[Opcode]int{}
	for w := range 0x10000 {
		in := Decode(uint16(w))
		if !assert.NotNil(in) {
			return
		}
		assert.Equal(Opcode(w>>12), in.Opcode())
		seen[in.Opcode()]++

		// Every valid instruction value is the decode of its own encoding.
		if in != Decode(Encode(in)) {
			t.Fatalf("0x%04x: %v does not round trip", w, in)
		}
	}

	assert.Equal(16, len(seen))
	for op, count := range seen {
		assert.Equal(0x1000, count, op.String())
	}
}

func TestBranchAddressHighBits(t *testing.T) {
	assert := assert.New(t)

	for cond := range Cond(4) {
		w := Encode(Brh{Cond: cond, Addr: 0x3ff})
		assert.Equal(uint16(0xB000)|uint16(cond)<<10|0x3ff, w)
		assert.Equal(Brh{Cond: cond, Addr: 0x3ff}, Decode(w))
	}

	// Jump and call leave bits 10-11 clear.
	assert.Equal(uint16(0), Encode(Jmp{Addr: 0x3ff})&0x0c00)
	assert.Equal(uint16(0), Encode(Cal{Addr: 0x3ff})&0x0c00)
}

func TestInstructionString(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("add r3, r4, r5", Add{A: 3, B: 4, C: 5}.String())
	assert.Equal("rsh r10, r11", Rsh{A: 10, C: 11}.String())
	assert.Equal("ldi r9, 255", Ldi{A: 9, Imm: 255}.String())
	assert.Equal("brh notcarry, 12", Brh{Cond: COND_NOT_CARRY, Addr: 12}.String())
	assert.Equal("lod r1, r2, 3", Lod{A: 1, B: 2, Offset: 3}.String())
	assert.Equal("hlt", Hlt{}.String())
}

func TestCondTest(t *testing.T) {
	assert := assert.New(t)

	assert.True(COND_ZERO.Test(true, false))
	assert.False(COND_NOT_ZERO.Test(true, false))
	assert.True(COND_CARRY.Test(false, true))
	assert.False(COND_NOT_CARRY.Test(false, true))
	assert.True(COND_NOT_CARRY.Test(true, false))

	cond, ok := CondOf(">=")
	assert.True(ok)
	assert.Equal(COND_NOT_CARRY, cond)
	_, ok = CondOf("sometimes")
	assert.False(ok)
}

func FuzzDecode(f *testing.F) {
	f.Add(uint16(0))
	f.Add(uint16(0xffff))
	f.Add(uint16(0xb523))

	f.Fuzz(func(t *testing.T, w uint16) {
		assert := assert.New(t)

		in := Decode(w)
		assert.Equal(Opcode(w>>12), in.Opcode())

		again := Encode(in)
		assert.Equal(in, Decode(again))
		assert.Equal(again, Encode(Decode(again)))

		// Operand bits the variant does not use are dropped.
		switch in.(type) {
		case Nop, Hlt, Ret:
			assert.Equal(w&0xf000, again)
		case Rsh:
			assert.Equal(w&0xff0f, again)
		default:
			assert.Equal(w, again)
		}
	})
}
