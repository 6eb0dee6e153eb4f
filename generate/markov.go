package generate

import (
	"go-pattern/pattern"
	"go-pattern/rng"
)

// Matrix is a 2x2 row-stochastic transition matrix: Matrix[from][to]
type Matrix [2][2]float64

// DefaultMatrix favors staying put: off stays off 70% of the time, on stays on 50%
var DefaultMatrix = Matrix{
	{0.7, 0.3},
	{0.5, 0.5},
}

// Markov walks a two-state chain for length steps, emitting the current state
// before each transition. A nil matrix uses DefaultMatrix. initial is 0 or 1
// (anything non-zero counts as 1).
func Markov(src *rng.Source, length int, m *Matrix, initial int) pattern.Pattern {
	p := pattern.New(length)
	if m == nil {
		m = &DefaultMatrix
	}

	state := 0
	if initial != 0 {
		state = 1
	}
	for i := range p {
		p[i] = float64(state)
		if src.Next() < m[state][0] {
			state = 0
		} else {
			state = 1
		}
	}
	return p
}
