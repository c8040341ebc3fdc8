// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/ezrec/batpu2/emulator"
	bpio "github.com/ezrec/batpu2/io"
	"github.com/ezrec/batpu2/loader"
	"github.com/ezrec/batpu2/mc"
)

var errOutputUnused = errors.New("-o is only used with -c or -headless")

// options are the command line settings.
type options struct {
	compile  bool
	output   string
	rate     float64
	seed     string
	limit    int
	headless bool
	kitty    bool
	verbose  bool
}

// writesOutput is true when the -o file is written.
func (opt *options) writesOutput() bool {
	return opt.compile || opt.headless
}

func (opt *options) validate() error {
	if opt.output != "-" && !opt.writesOutput() {
		return errOutputUnused
	}
	return nil
}

// clearMask selects the controller release policy. Without key release
// events every button is released once the program reads it.
func (opt *options) clearMask() uint8 {
	if opt.kitty {
		return bpio.BUTTON_NONE
	}
	return bpio.BUTTON_ALL
}

func main() {
	var opt options

	flag.BoolVar(&opt.compile, "c", false, "Assemble to machine code, do not execute")
	flag.StringVar(&opt.output, "o", "-", "Machine code output with -c, tape output with -headless")
	flag.Float64Var(&opt.rate, "r", emulator.DEFAULT_TICK_RATE, "Instructions per second")
	flag.StringVar(&opt.seed, "seed", "", "Random number seed (default is the current time)")
	flag.IntVar(&opt.limit, "n", 0, "Headless step limit (0 runs until halted)")
	flag.BoolVar(&opt.headless, "headless", false, "Run without a terminal, writing display changes to the tape output")
	flag.BoolVar(&opt.kitty, "kitty", false, "Use the kitty keyboard protocol for key release events")
	flag.BoolVar(&opt.verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatalf("%v: usage: %v [flags] program", os.Args[0], os.Args[0])
	}
	if err := opt.validate(); err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}
	name := flag.Arg(0)

	dir, base := filepath.Split(name)
	if len(dir) == 0 {
		dir = "."
	}

	ld := &loader.Loader{Verbose: opt.verbose}
	image, err := ld.LoadFile(os.DirFS(dir), base)
	if err != nil {
		log.Fatal(err)
	}

	ouf := io.Writer(os.Stdout)
	if opt.writesOutput() && opt.output != "-" {
		file, err := os.Create(opt.output)
		if err != nil {
			log.Fatalf("%v: %v", opt.output, err)
		}
		defer file.Close()
		ouf = file
	}

	if opt.compile {
		err = mc.Encode(ouf, image.Instructions)
		if err != nil {
			log.Fatalf("%v: %v", opt.output, err)
		}
		return
	}

	emu, err := emulator.NewEmulator(image)
	if err != nil {
		log.Fatal(err)
	}
	emu.Verbose = opt.verbose
	emu.Pacer.TickRate = opt.rate

	seed := opt.seed
	if len(seed) == 0 {
		seed = time.Now().String()
	}
	emu.Io.Random.SeedFrom([]byte(seed))

	if opt.headless {
		emu.Tape.Output = ouf
		_, err = emu.RunFor(opt.limit)
		if err != nil {
			log.Fatalf("%v: %v", opt.output, err)
		}
		if opt.verbose {
			log.Printf("%v", emu.Vm)
		}
		return
	}

	emu.Io.Controller.ClearMask = opt.clearMask()

	err = interactive(emu, os.Stdin, os.Stdout, opt.kitty)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("halted after %d instructions\n", emu.Ticks())
}
