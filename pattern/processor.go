package pattern

import (
	"go-pattern/debug"
	"go-pattern/notify"
	"go-pattern/rng"
)

// Processor turns existing patterns into variations, morphs and transitions.
// It owns a bank and a random source; it is meant for a single goroutine.
type Processor struct {
	src       *rng.Source
	bank      *Bank
	listeners *notify.Registry[Pattern]
}

// NewProcessor creates a processor drawing from src with an empty bank
func NewProcessor(src *rng.Source) *Processor {
	if src == nil {
		src = rng.New(rng.DefaultSeed)
	}
	return &Processor{
		src:       src,
		bank:      NewBank(),
		listeners: notify.NewRegistry[Pattern]("pattern"),
	}
}

// Bank returns the processor's pattern bank
func (p *Processor) Bank() *Bank {
	return p.bank
}

// Source returns the random source used for probabilistic operators
func (p *Processor) Source() *rng.Source {
	return p.src
}

// Subscribe registers fn for every pattern the processor produces. Listeners
// get their own copy.
func (p *Processor) Subscribe(fn func(Pattern)) (unsubscribe func()) {
	return p.listeners.Subscribe(fn)
}

func (p *Processor) emit(pat Pattern) {
	if p.listeners.Len() == 0 {
		return
	}
	p.listeners.Emit(pat.Clone())
}

// Variation applies v to a copy of pat and returns the copy
func (p *Processor) Variation(pat Pattern, v Variation, amount float64) Pattern {
	out := pat.Clone()
	p.Apply(out, v, amount)
	p.emit(out)
	return out
}

// VariationNamed varies the bank entry name and stores the result back
func (p *Processor) VariationNamed(name string, v Variation, amount float64) (Pattern, error) {
	pat, err := p.bank.Get(name)
	if err != nil {
		return nil, err
	}
	p.Apply(pat, v, amount)
	p.bank.Save(name, pat)
	debug.Log("pattern", "variation %s(%.2f) on %q -> %s", v, amount, name, pat)
	p.emit(pat)
	return pat, nil
}

// MorphNamed morphs between two bank entries
func (p *Processor) MorphNamed(from, to string, steps int) ([]Pattern, error) {
	a, err := p.bank.Get(from)
	if err != nil {
		return nil, err
	}
	b, err := p.bank.Get(to)
	if err != nil {
		return nil, err
	}
	return p.Morph(a, b, steps), nil
}

// Morph returns steps+1 patterns stepping from `from` to `to`
func (p *Processor) Morph(from, to Pattern, steps int) []Pattern {
	out := Morph(from, to, steps)
	for _, pat := range out {
		p.emit(pat)
	}
	return out
}

// CrossfadeNamed crossfades two bank entries
func (p *Processor) CrossfadeNamed(from, to string, mix float64) (Pattern, error) {
	a, err := p.bank.Get(from)
	if err != nil {
		return nil, err
	}
	b, err := p.bank.Get(to)
	if err != nil {
		return nil, err
	}
	return p.Crossfade(a, b, mix), nil
}

// Crossfade interpolates once at mix
func (p *Processor) Crossfade(from, to Pattern, mix float64) Pattern {
	out := Crossfade(from, to, mix)
	p.emit(out)
	return out
}

// Blend averages the named bank patterns by weight. Missing weights count as 1.
func (p *Processor) Blend(names []string, weights []float64) (Pattern, error) {
	pats := make([]Pattern, 0, len(names))
	for _, name := range names {
		pat, err := p.bank.Get(name)
		if err != nil {
			return nil, err
		}
		pats = append(pats, pat)
	}
	out := Blend(pats, weights)
	p.emit(out)
	return out, nil
}

// Transition builds a bridging pattern from `from` into `to`
func (p *Processor) Transition(from, to Pattern, t Transition) Pattern {
	out := p.transition(from, to, t)
	debug.Log("pattern", "transition %s: %s -> %s = %s", t, from, to, out)
	p.emit(out)
	return out
}

// TransitionNamed builds a transition between two bank entries
func (p *Processor) TransitionNamed(from, to string, t Transition) (Pattern, error) {
	a, err := p.bank.Get(from)
	if err != nil {
		return nil, err
	}
	b, err := p.bank.Get(to)
	if err != nil {
		return nil, err
	}
	return p.Transition(a, b, t), nil
}
