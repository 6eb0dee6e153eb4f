package pattern

import (
	"errors"
	"testing"

	"go-pattern/rng"
)

func TestMorphEndpoints(t *testing.T) {
	from := Parse("xxxx....")
	to := Parse("....xxxx")

	steps := Morph(from, to, 4)
	if len(steps) != 5 {
		t.Fatalf("len = %d, want 5", len(steps))
	}
	if !steps[0].Equal(from) {
		t.Errorf("first = %s, want %s", steps[0], from)
	}
	if !steps[4].Equal(to) {
		t.Errorf("last = %s, want %s", steps[4], to)
	}
	// at t=0.5 both sides weigh 0.5 and the threshold is inclusive
	if got := steps[2].String(); got != "xxxxxxxx" {
		t.Errorf("midpoint = %s", got)
	}
}

func TestMorphKeepsGhostEndpoints(t *testing.T) {
	from := Parse("xoo.")
	to := Parse("..ox")

	steps := Morph(from, to, 2)
	if !steps[0].Equal(from) {
		t.Errorf("first = %s, want %s", steps[0], from)
	}
	if !steps[2].Equal(to) {
		t.Errorf("last = %s, want %s", steps[2], to)
	}
	// interior steps are thresholded to on/off
	if got := steps[1].String(); got != "x.xx" {
		t.Errorf("midpoint = %s, want x.xx", got)
	}
}

func TestMorphZeroStepsClamped(t *testing.T) {
	if got := Morph(Parse("x."), Parse(".x"), 0); len(got) != 2 {
		t.Errorf("len = %d, want 2", len(got))
	}
}

func TestCrossfadePadsShorter(t *testing.T) {
	got := Crossfade(Parse("xx"), Parse("...x"), 1)
	if got.String() != "...x" {
		t.Errorf("crossfade = %s", got)
	}
}

func TestBlend(t *testing.T) {
	a := Parse("xx..")
	b := Parse("x.x.")

	tests := []struct {
		name    string
		weights []float64
		want    string
	}{
		{"equal", nil, "xxx."},
		{"favor_a", []float64{3, 1}, "xx.."},
		{"favor_b", []float64{1, 3}, "x.x."},
		{"zero_total", []float64{0, 0}, "...."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Blend([]Pattern{a, b}, tt.weights); got.String() != tt.want {
				t.Errorf("Blend = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestNamedOperationsFailFast(t *testing.T) {
	proc := NewProcessor(rng.New(1))
	proc.Bank().Save("a", Parse("x..."))

	if _, err := proc.MorphNamed("a", "missing", 2); !errors.Is(err, ErrPatternNotFound) {
		t.Errorf("MorphNamed err = %v", err)
	}
	if _, err := proc.CrossfadeNamed("missing", "a", 0.5); !errors.Is(err, ErrPatternNotFound) {
		t.Errorf("CrossfadeNamed err = %v", err)
	}
	if _, err := proc.Blend([]string{"a", "missing"}, nil); !errors.Is(err, ErrPatternNotFound) {
		t.Errorf("Blend err = %v", err)
	}
	if _, err := proc.VariationNamed("missing", VariationReverse, 1); !errors.Is(err, ErrPatternNotFound) {
		t.Errorf("VariationNamed err = %v", err)
	}
	if _, err := proc.TransitionNamed("a", "missing", TransitionDrop); !errors.Is(err, ErrPatternNotFound) {
		t.Errorf("TransitionNamed err = %v", err)
	}
}

func TestVariationNamedStoresResult(t *testing.T) {
	proc := NewProcessor(rng.New(1))
	proc.Bank().Save("a", Parse("xx.."))

	if _, err := proc.VariationNamed("a", VariationReverse, 1); err != nil {
		t.Fatal(err)
	}
	got, _ := proc.Bank().Get("a")
	if got.String() != "..xx" {
		t.Errorf("bank entry = %s", got)
	}
}

func TestProcessorEmitsCopies(t *testing.T) {
	proc := NewProcessor(rng.New(1))
	var got []Pattern
	unsub := proc.Subscribe(func(p Pattern) {
		got = append(got, p)
		p[0] = Ghost // must not leak back
	})

	out := proc.Variation(Parse("x..."), VariationReverse, 1)
	proc.Morph(Parse("x."), Parse(".x"), 2)
	unsub()
	proc.Variation(Parse("x..."), VariationReverse, 1)

	if len(got) != 4 {
		t.Fatalf("emitted %d patterns, want 4", len(got))
	}
	if out.String() != "...x" {
		t.Errorf("listener mutated returned pattern: %s", out)
	}
}
