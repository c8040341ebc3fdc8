package main

import (
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/ezrec/batpu2/emulator"
)

// FRAME_RATE is the terminal refresh rate.
const FRAME_RATE = 60

// interactive runs the emulator on a raw terminal until Ctrl-C. With
// kitty set, the terminal is asked for key release events.
func interactive(emu *emulator.Emulator, in *os.File, out *os.File, kitty bool) (err error) {
	restore, err := enterRawTerm(in)
	if err != nil {
		return
	}
	defer restore()

	if kitty {
		_, err = io.WriteString(out, kittyPush)
		if err != nil {
			return
		}
		defer io.WriteString(out, kittyPop)
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt)
	defer signal.Stop(sigs)

	// The reader may stay blocked in Read until the next key arrives,
	// but never on the channel.
	keys := make(chan []byte)
	done := make(chan struct{})
	defer close(done)
	go readKeys(in, keys, done)

	disp := &display{Output: out}
	defer disp.Close()

	ticker := time.NewTicker(time.Second / FRAME_RATE)
	defer ticker.Stop()

	for {
		select {
		case <-sigs:
			return
		case buf, ok := <-keys:
			if !ok {
				return
			}
			events, quit := decodeKeys(buf)
			if quit {
				return
			}
			applyKeys(&emu.Io.Controller, events)
		case now := <-ticker.C:
			_, err = emu.Run(now)
			if err != nil {
				return
			}
			err = disp.Draw(&emu.Io, emu.Halted())
			if err != nil {
				return
			}
		}
	}
}
