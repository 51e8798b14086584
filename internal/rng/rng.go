// Package rng provides the seeded random source used by game rules.
// All draws for an episode go through one PCG stream, so replaying the same
// seed with the same call order reproduces the episode exactly.
package rng

import (
	"fmt"
	"math/rand/v2"
)

// streamSalt derives the second PCG word from the seed.
const streamSalt = 0x9e3779b97f4a7c15

// Source is a deterministic random source whose state can be saved and restored.
type Source struct {
	pcg *rand.PCG
	r   *rand.Rand
}

// New creates a source seeded with seed.
func New(seed int64) *Source {
	pcg := rand.NewPCG(uint64(seed), uint64(seed)^streamSalt)
	return &Source{pcg: pcg, r: rand.New(pcg)}
}

// Seed resets the source to the start of the stream for seed.
func (s *Source) Seed(seed int64) {
	s.pcg.Seed(uint64(seed), uint64(seed)^streamSalt)
}

// Randn returns a uniform integer in [0, n). Returns 0 when n <= 0.
func (s *Source) Randn(n int) int {
	if n <= 0 {
		return 0
	}
	return s.r.IntN(n)
}

// Rand01 returns a uniform float in [0, 1).
func (s *Source) Rand01() float64 {
	return s.r.Float64()
}

// RandBool returns true or false with equal probability.
func (s *Source) RandBool() bool {
	return s.r.IntN(2) == 1
}

// Int63 returns a non-negative 63-bit integer, used to derive follow-up seeds.
func (s *Source) Int63() int64 {
	return s.r.Int64()
}

// SimpleChoose returns k distinct integers from [0, n) in draw order.
// If k exceeds n, all n values are returned.
func (s *Source) SimpleChoose(n, k int) []int {
	if k > n {
		k = n
	}
	if k <= 0 {
		return nil
	}

	pool := make([]int, n)
	for i := range pool {
		pool[i] = i
	}

	// Partial Fisher-Yates: only the first k slots are shuffled.
	for i := range k {
		j := i + s.Randn(n-i)
		pool[i], pool[j] = pool[j], pool[i]
	}

	out := make([]int, k)
	copy(out, pool[:k])
	return out
}

// MarshalBinary returns the generator state.
func (s *Source) MarshalBinary() ([]byte, error) {
	b, err := s.pcg.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("rng: marshal state: %w", err)
	}
	return b, nil
}

// UnmarshalBinary restores a state produced by MarshalBinary.
func (s *Source) UnmarshalBinary(data []byte) error {
	if err := s.pcg.UnmarshalBinary(data); err != nil {
		return fmt.Errorf("rng: unmarshal state: %w", err)
	}
	return nil
}
