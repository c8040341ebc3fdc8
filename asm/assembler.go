// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package asm

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/batpu2/internal"
	bpio "github.com/ezrec/batpu2/io"
	"github.com/ezrec/batpu2/isa"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":       "0",
	"PROGRAM_SIZE": fmt.Sprintf("%d", isa.PROGRAM_SIZE),
	"SCREEN_SIZE":  fmt.Sprintf("%d", bpio.SCREEN_WIDTH),
}

const (
	equateDepth        = 16      // Bounds equate-to-equate indirection.
	maxExpressionSteps = 1 << 20 // Bounds a single $(...) evaluation.
)

var (
	reCharacter = regexp.MustCompile(`'[^']*'`)
	reLabel     = regexp.MustCompile(`^[A-Za-z_.][A-Za-z0-9_.]*$`)
	reRegister  = regexp.MustCompile(`^[rR][0-9]+$`)
)

// Assembler for BatPU-2 programs.
type Assembler struct {
	Verbose bool   // If set, verbosely log the assembly.
	File    string // Source name used in errors.

	predefine map[string]string // Predefines
	Label     map[string]int    // Map of labels to program addresses.
	Equate    map[string]string // Map of equates.

	defined map[string]bool // Equates defined by the source.
}

// pending is a first pass line waiting for its operands to be resolved.
type pending struct {
	lineNo int
	text   string
	words  []string
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// splitWords breaks a line on whitespace and commas, keeping $(...)
// expressions whole.
func splitWords(line string) (words []string) {
	var word strings.Builder
	depth := 0
	flush := func() {
		if word.Len() > 0 {
			words = append(words, word.String())
			word.Reset()
		}
	}
	for _, r := range line {
		switch {
		case r == '(':
			depth++
		case r == ')' && depth > 0:
			depth--
		case depth == 0 && (r == ',' || r == ' ' || r == '\t'):
			flush()
			continue
		}
		word.WriteRune(r)
	}
	flush()
	return
}

// stripComment removes ';', '//' and '#' comments. Markers inside
// character literals and $(...) expressions are kept.
func stripComment(text string) string {
	depth := 0
	quoted := false
	for n := 0; n < len(text); n++ {
		switch c := text[n]; {
		case c == '\'':
			quoted = !quoted
		case quoted:
		case c == '(':
			depth++
		case c == ')' && depth > 0:
			depth--
		case depth > 0:
		case c == ';', c == '#', strings.HasPrefix(text[n:], "//"):
			return strings.TrimSpace(text[:n])
		}
	}
	return strings.TrimSpace(text)
}

// parseNumber parses a decimal, 0x hex, 0b binary or 0o octal integer,
// with an optional leading '-'. Leading zeros do not select octal.
func parseNumber(word string) (value int64, err error) {
	digits, negative := strings.CutPrefix(word, "-")
	if len(digits) == 0 || digits[0] == '-' || digits[0] == '+' {
		err = strconv.ErrSyntax
		return
	}

	base := 10
	if len(digits) > 2 && digits[0] == '0' {
		switch digits[1] {
		case 'x', 'X':
			base = 16
		case 'b', 'B':
			base = 2
		case 'o', 'O':
			base = 8
		}
		if base != 10 {
			digits = digits[2:]
		}
	}

	value, err = strconv.ParseInt(digits, base, 32)
	if negative {
		value = -value
	}
	return
}

// isReserved is true for words that can never be labels or equates.
func isReserved(word string) bool {
	if reRegister.MatchString(word) {
		return true
	}
	_, ok := isa.CondOf(strings.ToLower(word))
	return ok
}

// valueOf resolves an operand word to an integer.
func (asm *Assembler) valueOf(word string, depth int) (value int, err error) {
	if depth > equateDepth {
		err = ErrEquateLoop
		return
	}

	if len(word) == 0 {
		err = ErrParseValue(word)
		return
	}

	if reRegister.MatchString(word) {
		value, err = strconv.Atoi(word[1:])
		if err != nil || value >= isa.REGISTER_COUNT {
			err = fmt.Errorf("%w: %v", ErrRegisterInvalid, word)
		}
		return
	}

	if cond, ok := isa.CondOf(strings.ToLower(word)); ok {
		value = int(cond)
		return
	}

	if strings.HasPrefix(word, "$(") && strings.HasSuffix(word, ")") {
		value, err = asm.parenEval(word[2:len(word)-1], depth)
		return
	}

	if word[0] == '\'' {
		// Character quotes should have been expanded into
		// values in parseLine()
		err = ErrParseCharacter(word)
		return
	}

	v64, perr := parseNumber(word)
	if perr == nil {
		value = int(v64)
		return
	}

	if ip, ok := asm.Label[word]; ok {
		value = ip
		return
	}

	if equate, ok := asm.Equate[word]; ok {
		value, err = asm.valueOf(equate, depth+1)
		return
	}

	if reLabel.MatchString(word) {
		err = ErrLabelMissing(word)
		return
	}

	err = ErrParseValue(word)
	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string, depth int) (value int, err error) {
	thread := starlark.Thread{}
	thread.SetMaxExecutionSteps(maxExpressionSteps)
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		if !strings.Contains(expr, key) {
			continue
		}
		var v int
		v, err = asm.valueOf(str, depth+1)
		if err != nil {
			// Ignore non-integer equates.
			err = nil
			continue
		}
		pred[key] = starlark.MakeInt(v)
	}
	for key, ip := range asm.Label {
		if _, ok := pred[key]; !ok && strings.Contains(expr, key) {
			pred[key] = starlark.MakeInt(ip)
		}
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrParseExpression(expr), err)
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = int(st_int64)
	return
}

// parseLine splits a line into words, expanding character literals.
func (asm *Assembler) parseLine(line string) (words []string, err error) {
	line = reCharacter.ReplaceAllStringFunc(line, func(word string) string {
		runes := []rune(word[1 : len(word)-1])
		if len(runes) != 1 {
			err = ErrParseCharacter(word)
			return word
		}
		ch, cerr := isa.CharFrom(runes[0])
		if cerr != nil {
			err = cerr
			return word
		}
		return fmt.Sprintf("%d", ch)
	})
	if err != nil {
		return
	}

	words = splitWords(line)
	return
}

// define handles an equate line.
func (asm *Assembler) define(words []string) (err error) {
	if len(words) != 3 {
		err = ErrEquateSyntax
		return
	}
	name := words[1]
	if !reLabel.MatchString(name) || isReserved(name) {
		err = fmt.Errorf("%w: %v", ErrEquateSyntax, name)
		return
	}
	if _, ok := asm.Label[name]; ok || asm.defined[name] {
		err = fmt.Errorf("%w: %v", ErrEquateDuplicate, name)
		return
	}
	asm.defined[name] = true
	asm.Equate[name] = words[2]
	return
}

// Parse assembles an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{File: asm.File, LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.Label = map[string]int{}
	asm.defined = map[string]bool{}
	asm.Equate = maps.Clone(sysEquate)
	for name, value := range bpio.Defines() {
		asm.Equate[name] = value
	}
	for attr, val := range internal.Sorted(asm.predefine) {
		asm.Equate[attr] = val
	}

	// First pass: addresses, labels and equates.
	var lines []pending
	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1
		line = text

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		var words []string
		words, err = asm.parseLine(stripComment(text))
		if err != nil {
			return
		}

		for len(words) > 0 && strings.HasSuffix(words[0], ":") {
			label := strings.TrimSuffix(words[0], ":")
			words = words[1:]
			if !reLabel.MatchString(label) || isReserved(label) {
				err = fmt.Errorf("%w: %v", ErrLabelInvalid, label)
				return
			}
			if _, ok := asm.Equate[label]; ok {
				// System, peripheral and source equates own their names.
				err = fmt.Errorf("%w: %v is an equate", ErrLabelInvalid, label)
				return
			}
			if _, ok := asm.Label[label]; ok {
				err = ErrLabelDuplicate(label)
				return
			}
			asm.Label[label] = len(lines)
		}

		if len(words) == 0 {
			continue
		}

		switch strings.ToLower(words[0]) {
		case ".equ", "define":
			err = asm.define(words)
			if err != nil {
				return
			}
			continue
		}

		if !isa.Known(words[0]) {
			err = isa.ErrMnemonicUnknown(words[0])
			return
		}

		if len(lines) >= isa.PROGRAM_SIZE {
			err = ErrProgramFull
			return
		}

		lines = append(lines, pending{lineNo: lineno, text: text, words: words})
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	// Second pass: resolve and encode.
	prog = &Program{File: asm.File}
	for ip, pend := range lines {
		lineno = pend.lineNo
		line = pend.text
		asm.Equate["LINENO"] = fmt.Sprintf("%d", lineno)

		resolved := isa.ResolvedInstruction{Mnemonic: pend.words[0]}
		for _, word := range pend.words[1:] {
			var value int
			value, err = asm.valueOf(word, 0)
			if err != nil {
				prog = nil
				return
			}
			resolved.Operands = append(resolved.Operands, value)
		}

		var in isa.Instruction
		in, err = resolved.Instruction()
		if err != nil {
			prog = nil
			return
		}

		if asm.Verbose {
			log.Printf("%03x: %v\n", ip, in)
		}

		prog.Lines = append(prog.Lines, Line{
			LineNo:      pend.lineNo,
			Ip:          ip,
			Words:       pend.words,
			Resolved:    resolved,
			Instruction: in,
		})
	}

	return
}

// ParseString assembles source text.
func (asm *Assembler) ParseString(text string) (prog *Program, err error) {
	return asm.Parse(strings.NewReader(text))
}
