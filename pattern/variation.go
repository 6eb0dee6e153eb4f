package pattern

import (
	"fmt"
	"math"
	"strings"
)

// Variation names a single-pattern transform
type Variation string

const (
	VariationFill      Variation = "fill"
	VariationGhost     Variation = "ghost"
	VariationSparse    Variation = "sparse"
	VariationDense     Variation = "dense"
	VariationReverse   Variation = "reverse"
	VariationInvert    Variation = "invert"
	VariationMirror    Variation = "mirror"
	VariationRotate    Variation = "rotate"
	VariationRandomize Variation = "randomize"
	VariationEvolve    Variation = "evolve"
)

// Variations lists every transform in display order
var Variations = []Variation{
	VariationFill, VariationGhost, VariationSparse, VariationDense,
	VariationReverse, VariationInvert, VariationMirror, VariationRotate,
	VariationRandomize, VariationEvolve,
}

// Tunable constants
const (
	fillChance     = 0.5
	ghostThreshold = 0.3
	evolveRate     = 0.2
)

// ParseVariation maps a name to a Variation
func ParseVariation(s string) (Variation, error) {
	v := Variation(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Variations {
		if v == known {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownVariation, s)
}

// Apply mutates pat in place. amount is clamped to [0,1]. Unknown variations
// leave pat untouched.
func (p *Processor) Apply(pat Pattern, v Variation, amount float64) {
	amount = clamp(amount, 0, 1)
	n := len(pat)
	if n == 0 {
		return
	}

	switch v {
	case VariationFill:
		start := int(math.Floor(float64(n) * (1 - amount)))
		for i := start; i < n; i++ {
			if p.src.Next() < fillChance {
				pat[i] = On
			}
		}

	case VariationGhost:
		for i := range pat {
			if pat[i] == Off && p.src.Next() < amount*ghostThreshold {
				pat[i] = Ghost
			}
		}

	case VariationSparse:
		for i := range pat {
			if pat[i] > 0 && p.src.Next() < amount {
				pat[i] = Off
			}
		}

	case VariationDense:
		for i := range pat {
			if pat[i] == Off && p.src.Next() < amount {
				pat[i] = On
			}
		}

	case VariationReverse:
		Reverse(pat)

	case VariationInvert:
		Invert(pat)

	case VariationMirror:
		Mirror(pat)

	case VariationRotate:
		copy(pat, Rotate(pat, int(math.Floor(amount*float64(n)))))

	case VariationRandomize:
		for i := range pat {
			if p.src.Next() < amount {
				if p.src.Next() < 0.5 {
					pat[i] = On
				} else {
					pat[i] = Off
				}
			}
		}

	case VariationEvolve:
		flips := int(math.Ceil(float64(n) * amount * evolveRate))
		for k := 0; k < flips; k++ {
			i := p.src.Intn(n)
			if pat[i] > 0 {
				pat[i] = Off
			} else {
				pat[i] = On
			}
		}
	}
}

// Reverse reverses pat in place
func Reverse(pat Pattern) {
	for i, j := 0, len(pat)-1; i < j; i, j = i+1, j-1 {
		pat[i], pat[j] = pat[j], pat[i]
	}
}

// Invert swaps on and off in place. Ghost steps stay ghosts.
func Invert(pat Pattern) {
	for i, v := range pat {
		pat[i] = On - v
	}
}

// Mirror copies the first half onto the second half, reflected
func Mirror(pat Pattern) {
	n := len(pat)
	for i := 0; i < n/2; i++ {
		pat[n-1-i] = pat[i]
	}
}
