// Package pcg implements the PCG32 (XSH-RR) pseudo-random generator.
//
// It is small, fast and fully deterministic for a given seed, which makes it
// a good fit for filling scratch buffers in tests and benchmarks. It is not
// suitable for cryptographic use.
package pcg

import "math/bits"

const multiplier = 6364136223846793005

// Default seed used by Default.
const (
	DefaultState uint64 = 0x853c49e6748fea9b
	DefaultInc   uint64 = 0xda3e39cb94b95bdb
)

// PCG32 is a 64-bit state generator producing 32-bit outputs.
// The zero value is not seeded; use New or Default.
type PCG32 struct {
	state uint64
	inc   uint64
}

// Default returns a generator with the reference default state.
func Default() *PCG32 {
	return &PCG32{state: DefaultState, inc: DefaultInc}
}

// New seeds a generator with an initial state and a stream selector.
// Generators with different seq values produce independent streams.
func New(state, seq uint64) *PCG32 {
	p := &PCG32{inc: seq<<1 | 1}
	p.Uint32()
	p.state += state
	p.Uint32()
	return p
}

// Uint32 returns the next 32 random bits.
func (p *PCG32) Uint32() uint32 {
	old := p.state
	p.state = old*multiplier + p.inc
	xorshifted := uint32(((old >> 18) ^ old) >> 27)
	rot := int(old >> 59)
	return bits.RotateLeft32(xorshifted, -rot)
}

// Float32 returns a value in [0, 1].
func (p *PCG32) Float32() float32 {
	return float32(p.Uint32()) / float32(^uint32(0))
}
