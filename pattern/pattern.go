// Package pattern holds the step-pattern type and the processor that varies,
// morphs and blends patterns kept in a named bank.
//
// Step values are 0 (off), 1 (on) and 0.5 (ghost). Operators preserve that
// range; interpolating operators threshold back to 0/1.
package pattern

import (
	"strings"

	"golang.org/x/exp/constraints"
)

// Step values
const (
	Off   = 0.0
	Ghost = 0.5
	On    = 1.0
)

// Pattern is an ordered list of step values. Index order is time.
type Pattern []float64

// New returns an all-off pattern of the given length (negative -> 0)
func New(length int) Pattern {
	if length < 0 {
		length = 0
	}
	return make(Pattern, length)
}

// FromBits builds a pattern from 0/1 ints
func FromBits(bits ...int) Pattern {
	p := make(Pattern, len(bits))
	for i, b := range bits {
		if b != 0 {
			p[i] = On
		}
	}
	return p
}

// Parse reads "x" (on), "o" (ghost) and anything else as off. Spaces are skipped.
func Parse(s string) Pattern {
	var p Pattern
	for _, r := range s {
		switch r {
		case ' ':
			continue
		case 'x', 'X', '1':
			p = append(p, On)
		case 'o', 'O':
			p = append(p, Ghost)
		default:
			p = append(p, Off)
		}
	}
	return p
}

// Clone returns an independent copy
func (p Pattern) Clone() Pattern {
	if p == nil {
		return nil
	}
	c := make(Pattern, len(p))
	copy(c, p)
	return c
}

// Len returns the step count
func (p Pattern) Len() int { return len(p) }

// Active reports whether step i sounds (any value > 0)
func (p Pattern) Active(i int) bool {
	return i >= 0 && i < len(p) && p[i] > 0
}

// At returns step i, or 0 outside the pattern
func (p Pattern) At(i int) float64 {
	if i < 0 || i >= len(p) {
		return 0
	}
	return p[i]
}

// Count returns the number of sounding steps
func (p Pattern) Count() int {
	n := 0
	for _, v := range p {
		if v > 0 {
			n++
		}
	}
	return n
}

// Equal compares length and values
func (p Pattern) Equal(q Pattern) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}

// Bits returns the pattern as 0/1 ints (ghosts count as on)
func (p Pattern) Bits() []int {
	out := make([]int, len(p))
	for i, v := range p {
		if v > 0 {
			out[i] = 1
		}
	}
	return out
}

// String renders x for on, o for ghost, . for off
func (p Pattern) String() string {
	var b strings.Builder
	b.Grow(len(p))
	for _, v := range p {
		switch {
		case v >= On:
			b.WriteByte('x')
		case v > 0:
			b.WriteByte('o')
		default:
			b.WriteByte('.')
		}
	}
	return b.String()
}

// Rotate returns p shifted cyclically left by n steps (negative n shifts right)
func Rotate(p Pattern, n int) Pattern {
	l := len(p)
	out := make(Pattern, l)
	if l == 0 {
		return out
	}
	n %= l
	if n < 0 {
		n += l
	}
	for i := range out {
		out[i] = p[(i+n)%l]
	}
	return out
}

func clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxLen(ps ...Pattern) int {
	n := 0
	for _, p := range ps {
		if len(p) > n {
			n = len(p)
		}
	}
	return n
}

func threshold(v, at float64) float64 {
	if v >= at {
		return On
	}
	return Off
}
