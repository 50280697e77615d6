package particle

import "math/rand/v2"

// Particle is a single simulated point in the fine coordinate space.
type Particle struct {
	X, Y   int
	VX, VY int
	TTL    int
	Hue    uint8
	Alive  bool
}

// Live reports whether p should be integrated and rendered.
func (p *Particle) Live() bool {
	return p.Alive && p.TTL > 0
}

// Bounds is the size of the fine coordinate space.
type Bounds struct {
	MaxX, MaxY int
	Oversample int
}

// NewBounds returns the fine space for a width x height display oversampled
// by factor in each axis.
func NewBounds(width, height, factor int) Bounds {
	if factor < 1 {
		factor = 1
	}
	return Bounds{MaxX: width * factor, MaxY: height * factor, Oversample: factor}
}

// Center returns the middle of the fine space.
func (b Bounds) Center() (x, y int) {
	return b.MaxX / 2, b.MaxY / 2
}

// Rand is the random source used by emitters. *rand.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

// NewRand returns a seeded PCG source.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
}

// between draws a uniform integer in [lo, hi).
func between(r Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.IntN(hi-lo)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
