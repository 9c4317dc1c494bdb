package services

import "math/rand/v2"

// RandSource is the subset of math/rand/v2 the resolvers draw from. Tests
// inject a scripted implementation to pin outcomes; production wiring
// uses the shared top-level generator, which is safe for concurrent use.
type RandSource interface {
	Float64() float64
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

type globalRand struct{}

func (globalRand) Float64() float64                   { return rand.Float64() }
func (globalRand) Intn(n int) int                     { return rand.IntN(n) }
func (globalRand) Shuffle(n int, swap func(i, j int)) { rand.Shuffle(n, swap) }

// DefaultRand returns the process-wide random source.
func DefaultRand() RandSource {
	return globalRand{}
}
