package pattern

import (
	"fmt"
	"strings"
)

// Transition names a bridging strategy between two patterns
type Transition string

const (
	TransitionFill      Transition = "fill"
	TransitionBuildup   Transition = "buildup"
	TransitionBreakdown Transition = "breakdown"
	TransitionDrop      Transition = "drop"
)

var Transitions = []Transition{TransitionFill, TransitionBuildup, TransitionBreakdown, TransitionDrop}

// dropHits is how many leading steps a drop forces on
const dropHits = 4

// ParseTransition maps a name to a Transition
func ParseTransition(s string) (Transition, error) {
	t := Transition(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Transitions {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTransition, s)
}

func (p *Processor) transition(from, to Pattern, t Transition) Pattern {
	n := maxLen(from, to)
	out := make(Pattern, n)
	if n == 0 {
		return out
	}

	// position in [0,1] across the bar
	pos := func(i int) float64 {
		if n == 1 {
			return 1
		}
		return float64(i) / float64(n-1)
	}

	switch t {
	case TransitionFill:
		fillStart := n * 3 / 4
		for i := range out {
			out[i] = from.At(i)
			if i >= fillStart && p.src.Next() < fillChance {
				out[i] = On
			}
		}

	case TransitionBuildup:
		for i := range out {
			if p.src.Next() < pos(i) {
				out[i] = to.At(i)
			} else {
				out[i] = from.At(i)
			}
		}

	case TransitionBreakdown:
		for i := range out {
			if from.At(i) > 0 && p.src.Next() < 1-pos(i) {
				out[i] = from.At(i)
			}
		}

	case TransitionDrop:
		for i := range out {
			if i < dropHits {
				out[i] = On
			} else {
				out[i] = to.At(i)
			}
		}

	default:
		copy(out, to)
	}
	return out
}
