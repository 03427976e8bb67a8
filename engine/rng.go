package engine

import "github.com/lixenwraith/vt-tetris/piece"

// LCG constants (Numerical Recipes)
const (
	lcgMul uint32 = 1664525
	lcgInc uint32 = 1013904223
)

// RNG is a deterministic 32-bit linear congruential generator for piece kinds
type RNG struct {
	state uint32
}

// NewRNG seeds a generator. Equal seeds produce equal sequences.
func NewRNG(seed uint32) *RNG {
	return &RNG{state: seed}
}

// Next returns the next kind in [0, piece.Count)
func (r *RNG) Next() piece.Kind {
	r.state = r.state*lcgMul + lcgInc
	// Low bits of an LCG cycle quickly; use the upper ones
	return piece.Kind((r.state >> 13) % piece.Count)
}
