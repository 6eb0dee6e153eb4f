package generate

import (
	"strings"

	"go-pattern/pattern"
)

// Rules maps a symbol to its replacement
type Rules map[rune]string

// Symbols maps a symbol to a step value
type Symbols map[rune]float64

// DefaultRules is the Fibonacci grammar A -> AB, B -> A
var DefaultRules = Rules{'A': "AB", 'B': "A"}

// DefaultSymbols maps "drawing" symbols to hits and the rest to rests
var DefaultSymbols = Symbols{
	'A': 1, 'F': 1, 'X': 1,
	'B': 0, 'G': 0, 'Y': 0,
}

// maxRewriteLen stops runaway grammars from exhausting memory
const maxRewriteLen = 1 << 16

// Rewrite applies rules to every symbol of axiom, iterations times. Symbols
// without a rule are copied unchanged.
func Rewrite(axiom string, rules Rules, iterations int) string {
	s := axiom
	for i := 0; i < iterations; i++ {
		var b strings.Builder
		for _, r := range s {
			if rep, ok := rules[r]; ok {
				b.WriteString(rep)
			} else {
				b.WriteRune(r)
			}
			if b.Len() > maxRewriteLen {
				break
			}
		}
		s = b.String()
	}
	return s
}

// LSystemPattern maps each symbol of s to a step. Unmapped symbols are off.
// A nil table uses DefaultSymbols.
func LSystemPattern(s string, table Symbols) pattern.Pattern {
	if table == nil {
		table = DefaultSymbols
	}
	var p pattern.Pattern
	for _, r := range s {
		p = append(p, table[r])
	}
	if p == nil {
		p = pattern.New(0)
	}
	return p
}

// LSystem rewrites axiom and maps the result to a pattern
func LSystem(axiom string, rules Rules, iterations int, table Symbols) pattern.Pattern {
	return LSystemPattern(Rewrite(axiom, rules, iterations), table)
}
