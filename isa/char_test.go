package isa

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCharFrom(t *testing.T) {
	assert := assert.New(t)

	for n, r := range CharTable {
		ch, err := CharFrom(r)
		assert.NoError(err)
		assert.Equal(Char(n), ch)

		back, ok := ch.Rune()
		assert.True(ok)
		assert.Equal(r, back)
	}

	ch, err := CharFrom('q')
	assert.NoError(err)
	assert.Equal(Char(17), ch)
	assert.Equal("Q", ch.String())

	for _, r := range []rune{'0', ',', '\n', 'é', '_'} {
		_, err = CharFrom(r)
		assert.Equal(ErrCharInvalid(r), err)
	}
}

func TestCharValid(t *testing.T) {
	assert := assert.New(t)

	assert.True(Char(29).Valid())
	assert.False(Char(30).Valid())
	assert.Equal("<30>", Char(30).String())
	_, ok := Char(31).Rune()
	assert.False(ok)
}
