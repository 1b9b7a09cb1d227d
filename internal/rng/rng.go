// Package rng provides the seedable random stream consumed by the level
// generators. Every generation call owns its own Stream: sharing one
// across concurrent generations would break reproducibility.
package rng

import "math/rand"

// Stream is a deterministic random number source seeded per generation call
type Stream struct {
	r *rand.Rand
}

// New creates a stream seeded with the given value
func New(seed int64) *Stream {
	return &Stream{r: rand.New(rand.NewSource(seed))}
}

// IntN returns a uniform integer in [0, n). n must be positive.
func (s *Stream) IntN(n int) int {
	return s.r.Intn(n)
}

// Range returns a uniform integer in [min, max] inclusive.
// If max < min the arguments are swapped.
func (s *Stream) Range(min, max int) int {
	if max < min {
		min, max = max, min
	}
	return min + s.r.Intn(max-min+1)
}

// Float64 returns a uniform real in [0, 1)
func (s *Stream) Float64() float64 {
	return s.r.Float64()
}

// OneIn returns true with probability 1/n
func (s *Stream) OneIn(n int) bool {
	if n <= 1 {
		return true
	}
	return s.r.Intn(n) == 0
}

// Percent returns true with probability p/100
func (s *Stream) Percent(p int) bool {
	if p <= 0 {
		return false
	}
	if p >= 100 {
		return true
	}
	return s.r.Intn(100) < p
}

// Offset returns a uniform integer in [-magnitude, magnitude]
func (s *Stream) Offset(magnitude int) int {
	if magnitude <= 0 {
		return 0
	}
	return s.r.Intn(2*magnitude+1) - magnitude
}

// Shuffle pseudo-randomizes the order of n elements
func (s *Stream) Shuffle(n int, swap func(i, j int)) {
	s.r.Shuffle(n, swap)
}

// Seed returns a fresh seed value drawn from the stream, used to give
// placed sites their own independent generation seed
func (s *Stream) Seed() int64 {
	return s.r.Int63()
}
