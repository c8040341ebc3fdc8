// Package loader turns program text into an executable image, sniffing
// whether the text is machine code or assembly.
package loader

import (
	"fmt"
	"io/fs"
	"log"
	"strings"

	"github.com/ezrec/batpu2/asm"
	"github.com/ezrec/batpu2/isa"
	"github.com/ezrec/batpu2/mc"
)

// Image is a loaded program.
type Image struct {
	Name         string
	Instructions []isa.Instruction
	Program      *asm.Program // Source mapping; nil for machine code.
}

// Loader holds the assembler options used for assembly input.
type Loader struct {
	Verbose bool
	Defines map[string]string // Extra equates for the assembler.
}

// Load builds an image from text, using the default loader.
func Load(name string, text string) (image *Image, err error) {
	return (&Loader{}).Load(name, text)
}

// LoadFile reads and loads a file.
func LoadFile(fsys fs.FS, name string) (image *Image, err error) {
	return (&Loader{}).LoadFile(fsys, name)
}

// Load builds an image from text.
func (ld *Loader) Load(name string, text string) (image *Image, err error) {
	image = &Image{Name: name}

	if mc.Is(text) {
		if ld.Verbose {
			log.Printf("%v: machine code\n", name)
		}
		image.Instructions, err = mc.Decode(strings.NewReader(text))
		if err != nil {
			image = nil
			err = fmt.Errorf("%v: %w", name, err)
		}
		return
	}

	if ld.Verbose {
		log.Printf("%v: assembly\n", name)
	}

	assembler := &asm.Assembler{Verbose: ld.Verbose, File: name}
	for equ, value := range ld.Defines {
		assembler.Predefine(equ, value)
	}

	image.Program, err = assembler.Parse(strings.NewReader(text))
	if err != nil {
		// asm.ErrSyntax already carries the file name.
		image = nil
		return
	}

	image.Instructions = image.Program.Instructions()
	return
}

// LoadFile reads and loads a file.
func (ld *Loader) LoadFile(fsys fs.FS, name string) (image *Image, err error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return
	}

	return ld.Load(name, string(data))
}
