package generate

import (
	"testing"

	"go-pattern/pattern"
	"go-pattern/rng"
)

func TestEuclideanPulseCount(t *testing.T) {
	for steps := 1; steps <= 32; steps++ {
		for pulses := 0; pulses <= steps; pulses++ {
			p := Euclidean(pulses, steps, 0)
			if p.Len() != steps {
				t.Fatalf("E(%d,%d) len = %d", pulses, steps, p.Len())
			}
			if p.Count() != pulses {
				t.Fatalf("E(%d,%d) has %d pulses: %s", pulses, steps, p.Count(), p)
			}
		}
	}
}

func TestEuclideanMaximallyEven(t *testing.T) {
	// bucket starts at 0, so the first overflow lands late
	for _, c := range []struct {
		pulses, steps int
		want          string
	}{
		{5, 8, ".x.xx.xx"},
		{3, 8, "..x..x.x"},
		{1, 4, "...x"},
	} {
		if got := Euclidean(c.pulses, c.steps, 0).String(); got != c.want {
			t.Errorf("E(%d,%d) = %s, want %s", c.pulses, c.steps, got, c.want)
		}
	}

	// gaps between consecutive pulses (cyclic) differ by at most one
	for _, c := range [][2]int{{5, 8}, {3, 8}, {7, 16}, {5, 13}, {4, 12}} {
		p := Euclidean(c[0], c[1], 0)
		var idx []int
		for i := range p {
			if p.Active(i) {
				idx = append(idx, i)
			}
		}
		minGap, maxGap := c[1], 0
		for k := range idx {
			gap := (idx[(k+1)%len(idx)] - idx[k] + c[1]) % c[1]
			if gap == 0 {
				gap = c[1]
			}
			minGap = min(minGap, gap)
			maxGap = max(maxGap, gap)
		}
		if maxGap-minGap > 1 {
			t.Errorf("E(%d,%d) = %s: gaps range %d..%d", c[0], c[1], p, minGap, maxGap)
		}
	}
}

func TestEuclideanRotation(t *testing.T) {
	base := Euclidean(3, 8, 0)
	for k := 0; k < 8; k++ {
		rotated := Euclidean(3, 8, k)
		back := pattern.Rotate(rotated, 8-k)
		if !back.Equal(base) {
			t.Errorf("rotation %d then %d = %s, want %s", k, 8-k, back, base)
		}
	}
	if !Euclidean(3, 8, 11).Equal(Euclidean(3, 8, 3)) {
		t.Error("rotation not taken mod steps")
	}
}

func TestEuclideanEdges(t *testing.T) {
	if got := Euclidean(0, 8, 0).String(); got != "........" {
		t.Errorf("zero pulses = %s", got)
	}
	if got := Euclidean(12, 8, 0).String(); got != "xxxxxxxx" {
		t.Errorf("pulses > steps = %s", got)
	}
	if got := Euclidean(-3, 4, 0).String(); got != "...." {
		t.Errorf("negative pulses = %s", got)
	}
	if got := Euclidean(1, 0, 0); got.Len() != 1 {
		t.Errorf("zero steps len = %d", got.Len())
	}
}

func TestMarkovIdentityMatrix(t *testing.T) {
	identity := Matrix{{1, 0}, {0, 1}}
	for _, seed := range []uint32{0, 1, 99, 123456} {
		p := Markov(rng.New(seed), 32, &identity, 0)
		if p.Count() != 0 {
			t.Errorf("seed %d: %s", seed, p)
		}
		p = Markov(rng.New(seed), 32, &identity, 1)
		if p.Count() != 32 {
			t.Errorf("seed %d from on: %s", seed, p)
		}
	}
}

func TestMarkovDeterministic(t *testing.T) {
	a := Markov(rng.New(5), 64, nil, 0)
	b := Markov(rng.New(5), 64, nil, 0)
	if !a.Equal(b) {
		t.Errorf("%s != %s", a, b)
	}
	if a[0] != 0 {
		t.Errorf("first step should be the initial state")
	}
}

func TestAutomaton(t *testing.T) {
	if got := Automaton(7, 90, 0).String(); got != "...x..." {
		t.Errorf("rule 90 gen 0 = %s", got)
	}
	if got := Automaton(7, 90, 1).String(); got != "..x.x.." {
		t.Errorf("rule 90 gen 1 = %s", got)
	}
	if got := Automaton(7, 90, 2).String(); got != ".x...x." {
		t.Errorf("rule 90 gen 2 = %s", got)
	}
	// wrap-around: gen 3 reaches the edges and neighbours wrap
	if got := Automaton(7, 90, 3).String(); got != "x.x.x.x" {
		t.Errorf("rule 90 gen 3 = %s", got)
	}
	if !Automaton(16, 30, 9).Equal(Automaton(16, 30, 9)) {
		t.Error("automaton not deterministic")
	}
	if got := Automaton(5, 0, 1).Count(); got != 0 {
		t.Errorf("rule 0 should clear everything, got %d", got)
	}
}

func TestLSystem(t *testing.T) {
	got := Rewrite("A", Rules{'A': "AB", 'B': "A"}, 3)
	if got != "ABAAB" {
		t.Errorf("Rewrite = %q, want ABAAB", got)
	}
	if got := Rewrite("AC", DefaultRules, 1); got != "ABC" {
		t.Errorf("unmapped symbol not copied: %q", got)
	}
	if got := Rewrite("A", DefaultRules, 0); got != "A" {
		t.Errorf("0 iterations = %q", got)
	}

	p := LSystemPattern("ABAAB", nil)
	if p.String() != "x.xx." {
		t.Errorf("pattern = %s", p)
	}
	if p := LSystemPattern("A?Z", Symbols{'Z': 1}); p.String() != "..x" {
		t.Errorf("custom table = %s", p)
	}
}

func TestGeneticElitism(t *testing.T) {
	target := pattern.Parse("x..x..x...x.x...x..x..x...x.x...")
	for seed := uint32(0); seed < 10; seed++ {
		res := Genetic(rng.New(seed), target, 20, 30, 0.05)
		if len(res.History) != 31 {
			t.Fatalf("history len = %d", len(res.History))
		}
		for g := 1; g < len(res.History); g++ {
			if res.History[g] < res.History[g-1] {
				t.Fatalf("seed %d: fitness dropped at gen %d: %v", seed, g, res.History)
			}
		}
		if res.Best.Fitness != res.History[len(res.History)-1] {
			t.Errorf("best %v != last history %v", res.Best.Fitness, res.History[len(res.History)-1])
		}
		if got := Fitness(res.Best.Genes, target); got != res.Best.Fitness {
			t.Errorf("reported fitness %v, recomputed %v", res.Best.Fitness, got)
		}
	}
}

func TestGeneticZeroGenerations(t *testing.T) {
	target := pattern.Parse("x.x.x.x.")

	// rebuild the initial population with the same draws
	src := rng.New(42)
	best := -1.0
	for i := 0; i < 6; i++ {
		genes := make([]uint8, len(target))
		for g := range genes {
			if src.Next() < 0.5 {
				genes[g] = 1
			}
		}
		best = max(best, Fitness(genes, target))
	}

	res := Genetic(rng.New(42), target, 6, 0, 0.1)
	if res.Best.Fitness != best {
		t.Errorf("best = %v, want %v", res.Best.Fitness, best)
	}
	if len(res.History) != 1 {
		t.Errorf("history = %v", res.History)
	}
}

func TestGeneticDeterministicAndClamped(t *testing.T) {
	target := pattern.Parse("xx..xx..")
	a := Genetic(rng.New(8), target, 3, 5, 0.2)
	b := Genetic(rng.New(8), target, 3, 5, 0.2)
	if !a.Best.Pattern().Equal(b.Best.Pattern()) {
		t.Errorf("%s != %s", a.Best.Pattern(), b.Best.Pattern())
	}
}

func TestChaos(t *testing.T) {
	if got := Chaos(rng.New(1), 16, 0).Count(); got != 0 {
		t.Errorf("density 0: %d hits", got)
	}
	if got := Chaos(rng.New(1), 16, 1).Count(); got != 16 {
		t.Errorf("density 1: %d hits", got)
	}
	hits := Chaos(rng.New(1), 4000, 0.25).Count()
	if hits < 800 || hits > 1200 {
		t.Errorf("density 0.25 over 4000 steps: %d hits", hits)
	}
}
