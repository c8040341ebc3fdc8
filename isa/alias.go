package isa

import (
	"strings"
)

// Alias is a source-level mnemonic that rewrites its operands onto a
// canonical target. Aliases never reach the decoded instruction stream.
type Alias struct {
	Name    string
	Target  Opcode
	Arity   int
	Rewrite func(ops []int) []int
}

// aliasMap maps alias names (and their long spellings) to rewrites.
var aliasMap = map[string]Alias{
	// cmp a, b => sub a, b, r0
	"cmp": {"cmp", OP_SUB, 2, func(o []int) []int { return []int{o[0], o[1], 0} }},
	// mov a, c => add a, r0, c
	"mov": {"mov", OP_ADD, 2, func(o []int) []int { return []int{o[0], 0, o[1]} }},
	// lsh a, c => add a, a, c
	"lsh": {"lsh", OP_ADD, 2, func(o []int) []int { return []int{o[0], o[0], o[1]} }},
	// inc a => adi a, 1
	"inc": {"inc", OP_ADI, 1, func(o []int) []int { return []int{o[0], 1} }},
	// dec a => adi a, 255
	"dec": {"dec", OP_ADI, 1, func(o []int) []int { return []int{o[0], 0xff} }},
	// not a, c => nor a, r0, c
	"not": {"not", OP_NOR, 2, func(o []int) []int { return []int{o[0], 0, o[1]} }},
	// neg a, c => sub r0, a, c
	"neg": {"neg", OP_SUB, 2, func(o []int) []int { return []int{0, o[0], o[1]} }},
}

var aliasSynonyms = map[string]string{
	"compare":     "cmp",
	"move":        "mov",
	"shift-left":  "lsh",
	"increment":   "inc",
	"decrement":   "dec",
	"bitwise-not": "not",
	"negate":      "neg",
}

// LookupAlias finds an alias by name. Names are case insensitive.
func LookupAlias(name string) (alias Alias, ok bool) {
	name = strings.ToLower(name)
	if short, found := aliasSynonyms[name]; found {
		name = short
	}
	alias, ok = aliasMap[name]
	return
}

// Expand checks the alias arity and rewrites the operands for the target.
func (alias Alias) Expand(operands []int) (sig Signature, rewritten []int, err error) {
	if len(operands) != alias.Arity {
		err = ErrOperandCount{Mnemonic: alias.Name, Expected: alias.Arity, Actual: len(operands)}
		return
	}
	sig = SignatureOf(alias.Target)
	rewritten = alias.Rewrite(operands)
	return
}

// ResolvedInstruction is a mnemonic with fully resolved numeric operands.
type ResolvedInstruction struct {
	Mnemonic string
	Operands []int
}

// Instruction applies alias rewriting, then validates and builds the
// canonical instruction.
func (ri ResolvedInstruction) Instruction() (in Instruction, err error) {
	if sig, ok := Lookup(ri.Mnemonic); ok {
		return sig.Build(ri.Operands...)
	}

	alias, ok := LookupAlias(ri.Mnemonic)
	if !ok {
		err = ErrMnemonicUnknown(ri.Mnemonic)
		return
	}

	sig, operands, err := alias.Expand(ri.Operands)
	if err != nil {
		return
	}

	return sig.Build(operands...)
}

// Known returns true if the name is a canonical or alias mnemonic.
func Known(name string) bool {
	if _, ok := Lookup(name); ok {
		return true
	}
	_, ok := LookupAlias(name)
	return ok
}
