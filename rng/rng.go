// Package rng is the seedable pseudo-random source shared by the pattern
// generators. Same seed + same call sequence gives the same stream.
//
// A Source is not safe for concurrent use; each owner keeps its own.
package rng

import "time"

// LCG constants (state = state*mul + inc mod 2^31)
const (
	multiplier = 1103515245
	increment  = 12345
	mask       = 0x7fffffff
	scale      = 1 << 31

	DefaultSeed uint32 = 12345
)

// Source is a linear-congruential generator with a 31-bit state
type Source struct {
	seed  uint32
	state uint32
}

// New creates a source with the given seed. Any value, including 0, is valid.
func New(seed uint32) *Source {
	s := &Source{}
	s.SetSeed(seed)
	return s
}

// NewFromClock creates a source seeded from the wall clock
func NewFromClock() *Source {
	s := &Source{}
	s.ReseedFromClock()
	return s
}

// SetSeed resets the stream
func (s *Source) SetSeed(seed uint32) {
	s.seed = seed
	s.state = seed
}

// ReseedFromClock seeds from the current time and returns the chosen seed
// so callers can log or replay it
func (s *Source) ReseedFromClock() uint32 {
	seed := uint32(time.Now().UnixNano())
	s.SetSeed(seed)
	return seed
}

// Seed returns the seed the stream was last reset with
func (s *Source) Seed() uint32 {
	return s.seed
}

// Next returns the next value in [0, 1)
func (s *Source) Next() float64 {
	s.state = (s.state*multiplier + increment) & mask
	return float64(s.state) / scale
}

// Intn returns a value in [0, n). n <= 0 returns 0 without drawing.
func (s *Source) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	i := int(s.Next() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}

// Bool draws once and reports whether the draw fell below p
func (s *Source) Bool(p float64) bool {
	return s.Next() < p
}

// Sign returns -1 or 1 with equal probability
func (s *Source) Sign() int {
	if s.Next() < 0.5 {
		return -1
	}
	return 1
}
