package asm

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/batpu2/isa"
)

func assemble(t *testing.T, program ...string) (prog *Program) {
	asm := &Assembler{File: "test.as"}
	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	if err != nil {
		t.Fatal(err)
	}
	return
}

func TestAssembler(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	prog, err := asm.Parse(strings.NewReader(""))
	assert.NoError(err)
	assert.Equal(0, len(prog.Lines))

	assert.Equal("0", asm.Equate["LINENO"])
	assert.Equal(fmt.Sprintf("%d", isa.PROGRAM_SIZE), asm.Equate["PROGRAM_SIZE"])
	assert.Equal("240", asm.Equate["PIXEL_X"])
	assert.Equal("255", asm.Equate["CONTROLLER_INPUT"])
	assert.Equal("128", asm.Equate["BUTTON_START"])
}

func TestAssemblerForwardLabel(t *testing.T) {
	assert := assert.New(t)

	prog := assemble(t,
		"jmp L",
		"L: hlt",
	)

	assert.Equal([]isa.Instruction{isa.Jmp{Addr: 1}, isa.Hlt{}}, prog.Instructions())
}

func TestAssemblerProgram(t *testing.T) {
	assert := assert.New(t)

	prog := assemble(t,
		"; count down, then say hi",
		".equ COUNT 3",
		"define ZERO r0",
		"",
		"start:",
		"  ldi r1, COUNT       // 3",
		"loop: dec r1          # adi r1, 255",
		"  brh notzero, loop",
		"  ldi r2, 'H'",
		"  ldi r3 PIXEL_X",
		"  str r3, r2, $(WRITE_CHAR - PIXEL_X)",
		"  cmp r1, ZERO",
		"  jmp done",
		"done: hlt",
	)

	expected := []isa.Instruction{
		isa.Ldi{A: 1, Imm: 3},
		isa.Adi{A: 1, Imm: 0xff},
		isa.Brh{Cond: isa.COND_NOT_ZERO, Addr: 1},
		isa.Ldi{A: 2, Imm: 8},
		isa.Ldi{A: 3, Imm: 240},
		isa.Str{A: 3, B: 2, Offset: 7},
		isa.Sub{A: 1, B: 0, C: 0},
		isa.Jmp{Addr: 8},
		isa.Hlt{},
	}
	assert.Equal(expected, prog.Instructions())

	assert.Equal(6, prog.LineNo(0))
	assert.Equal(14, prog.LineNo(8))
	assert.Equal(0, prog.LineNo(9))
	assert.Nil(prog.Debug(100))

	line := prog.Debug(6)
	assert.NotNil(line)
	assert.Equal([]string{"cmp", "r1", "ZERO"}, line.Words)
	assert.Equal("cmp", line.Resolved.Mnemonic)
	assert.Equal([]int{1, 0}, line.Resolved.Operands)

	var ips []uint16
	for ip, in := range prog.Codes() {
		ips = append(ips, ip)
		assert.Equal(expected[ip], in)
	}
	assert.Equal(len(expected), len(ips))

	binary := prog.Binary()
	assert.Equal(len(expected), len(binary))
	assert.Equal(uint16(0x1000), binary[8])
}

func TestAssemblerOperands(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		line        string
		instruction isa.Instruction
	}){
		{"ldi r1, 0x1f", isa.Ldi{A: 1, Imm: 0x1f}},
		{"ldi r1, 0b101", isa.Ldi{A: 1, Imm: 5}},
		{"ldi r1, 010", isa.Ldi{A: 1, Imm: 10}},
		{"ldi r1, 09", isa.Ldi{A: 1, Imm: 9}},
		{"ldi r1, 0o17", isa.Ldi{A: 1, Imm: 15}},
		{"ldi r1, 0XFF", isa.Ldi{A: 1, Imm: 255}},
		{"ldi r1, -010", isa.Ldi{A: 1, Imm: 0xf6}},
		{"ldi r1, $(SCREEN_WIDTH // 2) // half the screen", isa.Ldi{A: 1, Imm: 16}},
		{"ldi r1, $(7 // 2)  ; floor", isa.Ldi{A: 1, Imm: 3}},
		{"ldi r1, -1", isa.Ldi{A: 1, Imm: 0xff}},
		{"ldi r1, ' '", isa.Ldi{A: 1, Imm: 0}},
		{"ldi r1, 'z'", isa.Ldi{A: 1, Imm: 26}},
		{"ldi r1, '?'", isa.Ldi{A: 1, Imm: 29}},
		{"LDI R15, 255", isa.Ldi{A: 15, Imm: 255}},
		{"add r1 r2 r3", isa.Add{A: 1, B: 2, C: 3}},
		{"add r1,r2,r3", isa.Add{A: 1, B: 2, C: 3}},
		{"brh eq, 0", isa.Brh{Cond: isa.COND_ZERO, Addr: 0}},
		{"brh !=, 0", isa.Brh{Cond: isa.COND_NOT_ZERO, Addr: 0}},
		{"brh <, 0", isa.Brh{Cond: isa.COND_CARRY, Addr: 0}},
		{"brh ge, 0", isa.Brh{Cond: isa.COND_NOT_CARRY, Addr: 0}},
		{"ldi r1, $(LINENO)", isa.Ldi{A: 1, Imm: 1}},
		{"ldi r1, $((1 << 4) | 2)", isa.Ldi{A: 1, Imm: 0x12}},
		{"jmp $(PROGRAM_SIZE - 1)", isa.Jmp{Addr: 1023}},
		{"lod r1, r2, 15", isa.Lod{A: 1, B: 2, Offset: 15}},
	}

	for _, entry := range table {
		prog := assemble(t, entry.line)
		assert.Equal([]isa.Instruction{entry.instruction}, prog.Instructions(), entry.line)
	}
}

func TestAssemblerAlias(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		alias     string
		canonical string
	}){
		{"cmp r1, r2", "sub r1, r2, r0"},
		{"mov r1, r2", "add r1, r0, r2"},
		{"lsh r1, r2", "add r1, r1, r2"},
		{"inc r1", "adi r1, 1"},
		{"dec r1", "adi r1, -1"},
		{"not r1, r2", "nor r1, r0, r2"},
		{"neg r1, r2", "sub r0, r1, r2"},
		{"increment r3", "add-immediate r3, 1"},
	}

	for _, entry := range table {
		alias := assemble(t, entry.alias)
		canonical := assemble(t, entry.canonical)
		assert.Equal(canonical.Instructions(), alias.Instructions(), entry.alias)
	}
}

func TestAssemblerLabelAsEquate(t *testing.T) {
	assert := assert.New(t)

	prog := assemble(t,
		"define TARGET end",
		"cal TARGET",
		"ldi r1, $(end + 1)",
		"end: ret",
	)

	assert.Equal([]isa.Instruction{
		isa.Cal{Addr: 2},
		isa.Ldi{A: 1, Imm: 3},
		isa.Ret{},
	}, prog.Instructions())
}

func TestAssemblerLabelBeatsEquateLookup(t *testing.T) {
	assert := assert.New(t)

	prog := assemble(t,
		"jmp random",
		"nop",
		"random: ldi r1, RNG",
		"hlt",
	)

	assert.Equal([]isa.Instruction{
		isa.Jmp{Addr: 2},
		isa.Nop{},
		isa.Ldi{A: 1, Imm: 254},
		isa.Hlt{},
	}, prog.Instructions())
}

func TestAssemblerPredefineLabelClash(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	asm.Predefine("START", "0")

	_, err := asm.Parse(strings.NewReader("START: hlt"))
	assert.ErrorIs(err, ErrLabelInvalid)
}

func TestParseNumber(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		word  string
		value int64
	}){
		{"0", 0},
		{"007", 7},
		{"-1", -1},
		{"0x1f", 31},
		{"0b1010", 10},
		{"0o777", 511},
	}

	for _, entry := range table {
		value, err := parseNumber(entry.word)
		assert.NoError(err, entry.word)
		assert.Equal(entry.value, value, entry.word)
	}

	for _, word := range []string{"", "-", "--1", "+1", "0x", "0b2", "1_000", "x10"} {
		_, err := parseNumber(word)
		assert.Error(err, word)
	}
}

func TestStripComment(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("nop", stripComment("nop ; rest"))
	assert.Equal("nop", stripComment("nop // rest"))
	assert.Equal("nop", stripComment("nop # rest"))
	assert.Equal("", stripComment("   ; only"))
	assert.Equal("ldi r1, $(8 // 2)", stripComment("ldi r1, $(8 // 2) // four"))
	assert.Equal("ldi r1, $((1 + 2) * 3)", stripComment("ldi r1, $((1 + 2) * 3) # nine"))
	assert.Equal("ldi r1, ' '", stripComment("ldi r1, ' ' ; blank"))
}

func TestAssemblerPredefine(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	asm.Predefine("SPEED", "4")
	asm.Predefine("SPEED", "5")

	prog, err := asm.Parse(strings.NewReader("ldi r1, SPEED"))
	assert.NoError(err)
	assert.Equal([]isa.Instruction{isa.Ldi{A: 1, Imm: 5}}, prog.Instructions())
}

func TestAssemblerErrors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		program []string
		lineNo  int
		err     error
	}){
		{[]string{"nop", "jmp nowhere"}, 2, ErrLabelMissing("nowhere")},
		{[]string{"a: nop", "a: nop"}, 2, ErrLabelDuplicate("a")},
		{[]string{"r1: nop"}, 1, ErrLabelInvalid},
		{[]string{".equ X 1", "define X 2"}, 2, ErrEquateDuplicate},
		{[]string{".equ X"}, 1, ErrEquateSyntax},
		{[]string{".equ A B", ".equ B A", "ldi r1, A"}, 3, ErrEquateLoop},
		{[]string{"ldi r1, '@'"}, 1, isa.ErrCharInvalid('@')},
		{[]string{"ldi r1, 'ab'"}, 1, ErrParseCharacter("'ab'")},
		{[]string{"nop", "frob r1"}, 2, isa.ErrMnemonicUnknown("frob")},
		{[]string{"add r1, r2"}, 1, isa.ErrOperandCount{Mnemonic: "add", Expected: 3, Actual: 2}},
		{[]string{"ldi r1, 256"}, 1, isa.ErrOperandRange{Mnemonic: "ldi", Field: isa.FIELD_IMM, Value: 256}},
		{[]string{"jmp 1024"}, 1, isa.ErrOperandRange{Mnemonic: "jmp", Field: isa.FIELD_ADDR, Value: 1024}},
		{[]string{"add r1, r2, r16"}, 1, ErrRegisterInvalid},
		{[]string{"ldi r1, 12z"}, 1, ErrParseValue("12z")},
		{[]string{"ldi r1, --5"}, 1, ErrParseValue("--5")},
		{[]string{"jmp RNG", "nop", "RNG: hlt"}, 3, ErrLabelInvalid},
		{[]string{"LINENO: hlt"}, 1, ErrLabelInvalid},
		{[]string{"define SPOT 3", "SPOT: hlt"}, 2, ErrLabelInvalid},
		{[]string{"SPOT: hlt", ".equ SPOT 3"}, 2, ErrEquateDuplicate},
	}

	for _, entry := range table {
		asm := &Assembler{File: "bad.as"}
		prog, err := asm.Parse(strings.NewReader(strings.Join(entry.program, "\n")))
		assert.Nil(prog, entry.program)

		var se *ErrSyntax
		if !assert.True(errors.As(err, &se), entry.program) {
			continue
		}
		assert.Equal("bad.as", se.File)
		assert.Equal(entry.lineNo, se.LineNo, entry.program)
		assert.ErrorIs(err, entry.err, entry.program)
	}
}

func TestAssemblerErrorExpression(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	_, err := asm.Parse(strings.NewReader("ldi r1, $(1 +)"))
	var pe ErrParseExpression
	assert.True(errors.As(err, &pe))
	assert.Equal(ErrParseExpression("1 +"), pe)

	_, err = asm.Parse(strings.NewReader(`ldi r1, $("x")`))
	assert.ErrorIs(err, ErrParseExpression(`"x"`))
}

func TestAssemblerProgramFull(t *testing.T) {
	assert := assert.New(t)

	lines := make([]string, isa.PROGRAM_SIZE+1)
	for n := range lines {
		lines[n] = "nop"
	}

	asm := &Assembler{}
	_, err := asm.Parse(strings.NewReader(strings.Join(lines[:isa.PROGRAM_SIZE], "\n")))
	assert.NoError(err)

	_, err = asm.Parse(strings.NewReader(strings.Join(lines, "\n")))
	assert.ErrorIs(err, ErrProgramFull)
}

func TestErrSyntax(t *testing.T) {
	assert := assert.New(t)

	err := &ErrSyntax{LineNo: 3, Line: "frob", Err: isa.ErrMnemonicUnknown("frob")}
	assert.Contains(err.Error(), "line 3")

	err.File = "x.as"
	assert.Contains(err.Error(), "x.as:3")
}

func FuzzAssembler(f *testing.F) {
	f.Add("ldi r1, 3\nloop: dec r1\nbrh ne, loop\nhlt")
	f.Add("jmp L\nL: hlt")
	f.Add(".equ X $(1+2)\nldi r1, X")

	f.Fuzz(func(t *testing.T, text string) {
		asm := &Assembler{}
		prog, err := asm.Parse(strings.NewReader(text))
		if err != nil {
			var se *ErrSyntax
			assert.True(t, errors.As(err, &se))
			assert.Nil(t, prog)
			return
		}
		for ip, in := range prog.Codes() {
			assert.Equal(t, in, isa.Decode(isa.Encode(in)), "ip %d", ip)
		}
	})
}
