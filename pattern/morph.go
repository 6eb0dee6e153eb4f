package pattern

const blendThreshold = 0.4

// Morph returns steps+1 patterns interpolating linearly from `from` to `to`,
// each thresholded at 0.5. steps < 1 is treated as 1. The shorter input is
// padded with off steps. The first and last patterns are the inputs
// themselves, ghosts included.
func Morph(from, to Pattern, steps int) []Pattern {
	if steps < 1 {
		steps = 1
	}
	out := make([]Pattern, 0, steps+1)
	for s := 0; s <= steps; s++ {
		out = append(out, Crossfade(from, to, float64(s)/float64(steps)))
	}
	return out
}

// Crossfade interpolates at mix (clamped to [0,1]) and thresholds at 0.5.
// At mix 0 or 1 the matching input is returned unthresholded (padded).
func Crossfade(from, to Pattern, mix float64) Pattern {
	mix = clamp(mix, 0, 1)
	n := maxLen(from, to)
	out := make(Pattern, n)
	switch mix {
	case 0:
		copy(out, from)
		return out
	case 1:
		copy(out, to)
		return out
	}
	for i := range out {
		v := from.At(i)*(1-mix) + to.At(i)*mix
		out[i] = threshold(v, 0.5)
	}
	return out
}

// Blend takes the weighted average of pats and turns steps above 0.4 on.
// Missing weights count as 1; negative weights count as 0.
func Blend(pats []Pattern, weights []float64) Pattern {
	n := maxLen(pats...)
	out := make(Pattern, n)

	total := 0.0
	w := make([]float64, len(pats))
	for i := range pats {
		w[i] = 1
		if i < len(weights) {
			w[i] = weights[i]
		}
		if w[i] < 0 {
			w[i] = 0
		}
		total += w[i]
	}
	if total <= 0 {
		return out
	}

	for i := range out {
		sum := 0.0
		for k, pat := range pats {
			sum += pat.At(i) * w[k]
		}
		if sum/total > blendThreshold {
			out[i] = On
		}
	}
	return out
}
