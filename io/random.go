package io

import (
	"math/rand/v2"

	"lukechampine.com/blake3"
)

// Random is the seeded pseudo-random byte source. The same seed always
// yields the same stream.
type Random struct {
	seed   [32]byte
	source *rand.ChaCha8
}

// Seed restarts the stream from a 32-byte seed.
func (rn *Random) Seed(seed [32]byte) {
	rn.seed = seed
	rn.source = rand.NewChaCha8(seed)
}

// SeedFrom derives the seed from arbitrary material, such as a user
// supplied string or the current time.
func (rn *Random) SeedFrom(material []byte) {
	rn.Seed(blake3.Sum256(material))
}

// Reset restarts the stream from the current seed.
func (rn *Random) Reset() {
	rn.Seed(rn.seed)
}

// Next returns the next byte of the stream.
func (rn *Random) Next() uint8 {
	if rn.source == nil {
		rn.Reset()
	}
	return uint8(rn.source.Uint64())
}
