// Package random provides the injectable source of randomness used by card selection and
// option shuffling.
package random

import (
	"math/rand/v2"
	"time"
)

// Source is the subset of *rand.Rand the drill needs.
type Source interface {
	IntN(n int) int
	Float64() float64
	Shuffle(n int, swap func(i, j int))
}

// New returns a PCG backed source. A zero seed is replaced with the current time so every run
// differs unless a seed is configured.
func New(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
