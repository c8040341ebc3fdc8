package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	bpio "github.com/ezrec/batpu2/io"
)

func TestRenderScreen(t *testing.T) {
	assert := assert.New(t)

	var output [bpio.SCREEN_HEIGHT]uint32
	output[31] = 1 << 0 // top left
	output[30] = 1 << 1
	output[1] = 1 << 2
	output[0] = 1<<2 | 1<<31 // bottom right

	lines := renderScreen(output)
	assert.Equal(bpio.SCREEN_HEIGHT/2, len(lines))
	assert.True(strings.HasPrefix(lines[0], "▀▄ "))
	assert.True(strings.HasPrefix(lines[15], "  █"))
	assert.True(strings.HasSuffix(lines[15], "▄"))
	assert.Equal(strings.Repeat(" ", bpio.SCREEN_WIDTH), lines[7])
}

func TestRenderButtons(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("◁ ▽ ▷ △ b a select start", renderButtons(0))
	assert.Equal("◀ ▽ ▷ △ b A select START", renderButtons(1<<bpio.BUTTON_BIT_LEFT|1<<bpio.BUTTON_BIT_A|1<<bpio.BUTTON_BIT_START))
}

func TestDisplayDraw(t *testing.T) {
	assert := assert.New(t)

	var out bytes.Buffer
	disp := &display{Output: &out}
	bus := &bpio.Bus{}

	assert.NoError(disp.Draw(bus, false))
	assert.Contains(out.String(), ansiClear)

	out.Reset()
	assert.NoError(disp.Draw(bus, false))
	assert.Equal("", out.String())

	bus.Chars.Write(8)
	bus.Chars.Commit()
	bus.Number.Show(42)
	assert.NoError(disp.Draw(bus, true))
	assert.Contains(out.String(), "H         ")
	assert.Contains(out.String(), "42")
	assert.Contains(out.String(), "halted")
}
