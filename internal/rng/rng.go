package rng

import (
	"math/rand/v2"
	"time"
)

// RNG is a seedable random source threaded through the simulation so a
// fixed seed replays the same particle evolution.
type RNG struct {
	r    *rand.Rand
	seed int64
}

// New returns a PCG-backed RNG. A zero seed picks one from the clock.
func New(seed int64) *RNG {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0)), seed: seed}
}

// Seed returns the seed the generator was created with.
func (r *RNG) Seed() int64 { return r.seed }

// Bool returns true or false with equal probability.
func (r *RNG) Bool() bool {
	return r.r.IntN(2) == 1
}

// IntN returns a value in [0, n). n <= 0 yields 0.
func (r *RNG) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return r.r.IntN(n)
}

// Between returns a value in [lo, hi].
func (r *RNG) Between(lo, hi int) int {
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo + r.r.IntN(hi-lo+1)
}
