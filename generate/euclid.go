// Package generate holds the pattern generators: Euclidean, Markov,
// elementary cellular automaton, L-system, genetic search and chaos.
//
// Every generator is a plain function of its inputs and, where it needs
// randomness, an explicit *rng.Source. Engine bundles them with one source
// and publishes results to subscribers.
package generate

import "go-pattern/pattern"

// Euclidean spreads pulses as evenly as possible over steps, then rotates
// left by rotation. pulses is clamped to [0, steps], steps to >= 1.
func Euclidean(pulses, steps, rotation int) pattern.Pattern {
	if steps < 1 {
		steps = 1
	}
	if pulses < 0 {
		pulses = 0
	}
	if pulses > steps {
		pulses = steps
	}

	p := pattern.New(steps)
	if pulses == 0 {
		return p
	}

	// Bucket accumulation from 0. The final remainder is pulses*steps mod
	// steps = 0, so exactly `pulses` steps overflow.
	bucket := 0
	for i := 0; i < steps; i++ {
		bucket += pulses
		if bucket >= steps {
			bucket -= steps
			p[i] = pattern.On
		}
	}

	if rotation < 0 {
		rotation = 0
	}
	return pattern.Rotate(p, rotation%steps)
}
