package generate

import (
	"errors"
	"fmt"
	"strings"

	"go-pattern/debug"
	"go-pattern/notify"
	"go-pattern/pattern"
	"go-pattern/rng"
)

// Algorithm names a generator
type Algorithm string

const (
	AlgoEuclidean Algorithm = "euclidean"
	AlgoMarkov    Algorithm = "markov"
	AlgoAutomaton Algorithm = "automaton"
	AlgoLSystem   Algorithm = "lsystem"
	AlgoGenetic   Algorithm = "genetic"
	AlgoChaos     Algorithm = "chaos"
)

var Algorithms = []Algorithm{AlgoEuclidean, AlgoMarkov, AlgoAutomaton, AlgoLSystem, AlgoGenetic, AlgoChaos}

var ErrUnknownAlgorithm = errors.New("unknown algorithm")

// ParseAlgorithm maps a name to an Algorithm
func ParseAlgorithm(s string) (Algorithm, error) {
	a := Algorithm(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Algorithms {
		if a == known {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, s)
}

// Engine owns one random source and publishes each generated pattern.
// Not safe for concurrent use.
type Engine struct {
	src       *rng.Source
	listeners *notify.Registry[pattern.Pattern]
}

// NewEngine creates an engine drawing from src (nil -> default seed)
func NewEngine(src *rng.Source) *Engine {
	if src == nil {
		src = rng.New(rng.DefaultSeed)
	}
	return &Engine{
		src:       src,
		listeners: notify.NewRegistry[pattern.Pattern]("generate"),
	}
}

// Source returns the engine's random source
func (e *Engine) Source() *rng.Source { return e.src }

// SetSeed restarts the random stream
func (e *Engine) SetSeed(seed uint32) { e.src.SetSeed(seed) }

// Seed returns the current seed
func (e *Engine) Seed() uint32 { return e.src.Seed() }

// Subscribe registers fn for every generated pattern
func (e *Engine) Subscribe(fn func(pattern.Pattern)) (unsubscribe func()) {
	return e.listeners.Subscribe(fn)
}

func (e *Engine) publish(algo Algorithm, p pattern.Pattern) pattern.Pattern {
	debug.Log("gen", "%s seed=%d -> %s", algo, e.src.Seed(), p)
	if e.listeners.Len() > 0 {
		e.listeners.Emit(p.Clone())
	}
	return p
}

func (e *Engine) Euclidean(pulses, steps, rotation int) pattern.Pattern {
	return e.publish(AlgoEuclidean, Euclidean(pulses, steps, rotation))
}

func (e *Engine) Markov(length int, m *Matrix, initial int) pattern.Pattern {
	return e.publish(AlgoMarkov, Markov(e.src, length, m, initial))
}

func (e *Engine) Automaton(length, rule, generations int) pattern.Pattern {
	return e.publish(AlgoAutomaton, Automaton(length, rule, generations))
}

// LSystem rewrites axiom and maps it to steps. A length > 0 truncates or
// cycles the result to exactly that many steps.
func (e *Engine) LSystem(axiom string, rules Rules, iterations int, table Symbols, length int) pattern.Pattern {
	p := LSystem(axiom, rules, iterations, table)
	if length > 0 {
		p = fit(p, length)
	}
	return e.publish(AlgoLSystem, p)
}

// Genetic evolves toward target and publishes the fittest pattern
func (e *Engine) Genetic(target pattern.Pattern, populationSize, generations int, mutationRate float64) GeneticResult {
	res := Genetic(e.src, target, populationSize, generations, mutationRate)
	e.publish(AlgoGenetic, res.Best.Pattern())
	return res
}

func (e *Engine) Chaos(length int, density float64) pattern.Pattern {
	return e.publish(AlgoChaos, Chaos(e.src, length, density))
}

// Generate runs algo with representative parameters for a pattern of the
// given length. density in [0,1] steers pulse count, rule choice and so on.
// Used by the terminal host and the CLI.
func (e *Engine) Generate(algo Algorithm, length int, density float64) pattern.Pattern {
	if length < 1 {
		length = 1
	}
	switch algo {
	case AlgoEuclidean:
		return e.Euclidean(int(density*float64(length)+0.5), length, 0)
	case AlgoMarkov:
		return e.Markov(length, nil, 1)
	case AlgoAutomaton:
		rules := []int{30, 90, 110, 150, 184}
		return e.Automaton(length, rules[e.src.Intn(len(rules))], 1+e.src.Intn(length))
	case AlgoLSystem:
		return e.LSystem("A", DefaultRules, 6, nil, length)
	case AlgoGenetic:
		target := Euclidean(int(density*float64(length)+0.5), length, 0)
		return e.Genetic(target, 16, 10, 0.05).Best.Pattern()
	default:
		return e.Chaos(length, density)
	}
}

func fit(p pattern.Pattern, length int) pattern.Pattern {
	out := pattern.New(length)
	if len(p) == 0 {
		return out
	}
	for i := range out {
		out[i] = p[i%len(p)]
	}
	return out
}
