package generate

import (
	"go-pattern/pattern"
	"go-pattern/rng"
)

// Chaos turns each step on independently with probability density
func Chaos(src *rng.Source, length int, density float64) pattern.Pattern {
	if density < 0 {
		density = 0
	}
	if density > 1 {
		density = 1
	}
	p := pattern.New(length)
	for i := range p {
		if src.Next() < density {
			p[i] = pattern.On
		}
	}
	return p
}
