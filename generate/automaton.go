package generate

import "go-pattern/pattern"

// Automaton runs an elementary cellular automaton (Wolfram rule numbering)
// from a single live centre cell and returns the state after the given number
// of generations. Neighbours wrap around. No randomness.
func Automaton(length, rule, generations int) pattern.Pattern {
	if length < 1 {
		return pattern.New(0)
	}
	rule &= 0xff
	if generations < 0 {
		generations = 0
	}

	cells := make([]uint8, length)
	cells[length/2] = 1
	next := make([]uint8, length)

	for g := 0; g < generations; g++ {
		for i := range cells {
			left := cells[(i-1+length)%length]
			center := cells[i]
			right := cells[(i+1)%length]
			idx := left<<2 | center<<1 | right
			next[i] = uint8(rule>>idx) & 1
		}
		cells, next = next, cells
	}

	p := pattern.New(length)
	for i, c := range cells {
		p[i] = float64(c)
	}
	return p
}
