package rng

import "math/rand"

// Seeded is a deterministic generator backed by math/rand
// It is intended for tests and replayable simulations, never for real play
type Seeded struct {
	rng *rand.Rand
}

// NewSeeded returns a deterministic generator for the seed
func NewSeeded(seed int64) *Seeded {
	return &Seeded{
		rng: rand.New(rand.NewSource(seed)), // nolint:gosec
	}
}

// Intn returns a random number from 0 <= x < n
func (s *Seeded) Intn(n int) int {
	return s.rng.Intn(n)
}
