package generate

import (
	"errors"
	"testing"

	"go-pattern/pattern"
	"go-pattern/rng"
)

func TestEnginePublishes(t *testing.T) {
	e := NewEngine(rng.New(1))
	var got []pattern.Pattern
	e.Subscribe(func(p pattern.Pattern) { got = append(got, p) })

	out := e.Euclidean(3, 8, 0)
	e.Chaos(8, 0.5)
	e.Genetic(pattern.Parse("x.x."), 4, 2, 0)

	if len(got) != 3 {
		t.Fatalf("published %d, want 3", len(got))
	}
	got[0][1] = pattern.On
	if out.String() != "..x..x.x" {
		t.Errorf("listener copy aliased the result: %s", out)
	}
}

func TestEngineSeedReproducible(t *testing.T) {
	e := NewEngine(rng.New(0))
	e.SetSeed(2024)
	a := e.Markov(32, nil, 0)
	e.SetSeed(2024)
	b := e.Markov(32, nil, 0)
	if !a.Equal(b) {
		t.Errorf("%s != %s", a, b)
	}
}

func TestEngineGenerateLengths(t *testing.T) {
	e := NewEngine(rng.New(3))
	for _, algo := range Algorithms {
		if got := e.Generate(algo, 16, 0.4); got.Len() != 16 {
			t.Errorf("%s len = %d", algo, got.Len())
		}
	}
}

func TestEngineLSystemFit(t *testing.T) {
	e := NewEngine(nil)
	if got := e.LSystem("A", DefaultRules, 3, nil, 8).String(); got != "x.xx.x.x" {
		t.Errorf("cycled = %s", got)
	}
	if got := e.LSystem("A", DefaultRules, 3, nil, 0).String(); got != "x.xx." {
		t.Errorf("unfit = %s", got)
	}
}

func TestParseAlgorithm(t *testing.T) {
	if a, err := ParseAlgorithm("Euclidean"); err != nil || a != AlgoEuclidean {
		t.Errorf("ParseAlgorithm = %v, %v", a, err)
	}
	if _, err := ParseAlgorithm("fractal"); !errors.Is(err, ErrUnknownAlgorithm) {
		t.Errorf("err = %v", err)
	}
}
