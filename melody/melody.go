// Package melody turns a scale and a root into pitch sequences.
package melody

import (
	"math"
	"strings"

	"go-pattern/debug"
	"go-pattern/rng"
)

// Style picks the melodic shape
type Style string

const (
	StyleRandom      Style = "random"
	StyleScalar      Style = "scalar"
	StyleArpeggiated Style = "arpeggiated"
	StyleContour     Style = "contour"
)

var Styles = []Style{StyleRandom, StyleScalar, StyleArpeggiated, StyleContour}

// ParseStyle maps a name to a Style. Unknown names return StyleRandom and false.
func ParseStyle(s string) (Style, bool) {
	st := Style(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Styles {
		if st == known {
			return st, true
		}
	}
	return StyleRandom, false
}

// scalar walks span this many octaves of the scale
const scalarOctaves = 2

// Generator produces melodies and remembers the last note so consecutive
// calls continue smoothly. Not safe for concurrent use.
type Generator struct {
	src      *rng.Source
	lastNote int
	hasLast  bool
}

// New creates a generator drawing from src (nil -> default seed)
func New(src *rng.Source) *Generator {
	if src == nil {
		src = rng.New(rng.DefaultSeed)
	}
	return &Generator{src: src}
}

// LastNote returns the last generated pitch and whether there is one
func (g *Generator) LastNote() (int, bool) {
	return g.lastNote, g.hasLast
}

// Reset forgets the last note
func (g *Generator) Reset() {
	g.lastNote = 0
	g.hasLast = false
}

// Generate returns length MIDI pitches built from scale offsets above root.
// An empty scale is treated as a single root pitch class.
func (g *Generator) Generate(length int, scale []int, root int, style Style) []int {
	if length <= 0 {
		return []int{}
	}
	if len(scale) == 0 {
		scale = []int{0}
	}
	n := len(scale)
	notes := make([]int, length)

	switch style {
	case StyleScalar:
		idx := g.startIndex(scale, root)
		top := n*scalarOctaves - 1
		for i := range notes {
			if i > 0 || g.hasLast {
				step := 1 + g.src.Intn(2)
				idx += g.src.Sign() * step
				if idx < 0 {
					idx = -idx
				}
				if idx > top {
					idx = 2*top - idx
				}
				idx = max(0, min(idx, top))
			}
			notes[i] = g.emit(root + degree(scale, idx))
		}

	case StyleArpeggiated:
		for i := range notes {
			notes[i] = g.emit(root + degree(scale, i))
		}

	case StyleContour:
		for i := range notes {
			v := math.Sin(float64(i) / float64(length) * math.Pi)
			idx := int(math.Round(v * float64(n-1)))
			notes[i] = g.emit(root + scale[idx])
		}

	default:
		if style != StyleRandom {
			debug.Warn("melody", "unknown style %q, using random", style)
		}
		for i := range notes {
			octave := 0
			if g.src.Next() >= 0.5 {
				octave = 12
			}
			notes[i] = g.emit(root + scale[g.src.Intn(n)] + octave)
		}
	}
	return notes
}

func (g *Generator) emit(pitch int) int {
	pitch = max(0, min(pitch, 127))
	g.lastNote = pitch
	g.hasLast = true
	return pitch
}

// startIndex finds the scale degree nearest the last note, or 0
func (g *Generator) startIndex(scale []int, root int) int {
	if !g.hasLast {
		return 0
	}
	best, bestDist := 0, math.MaxInt
	for idx := 0; idx < len(scale)*scalarOctaves; idx++ {
		d := root + degree(scale, idx) - g.lastNote
		if d < 0 {
			d = -d
		}
		if d < bestDist {
			best, bestDist = idx, d
		}
	}
	return best
}

// degree returns the semitone offset of scale index idx, adding an octave for
// each full pass through the scale
func degree(scale []int, idx int) int {
	n := len(scale)
	return scale[idx%n] + 12*(idx/n)
}
