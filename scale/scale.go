// Package scale supplies ordered pitch-class offsets for named scales.
package scale

import (
	"sort"
	"strings"

	"go-pattern/debug"
)

// Fallback is used when a name is unknown
const Fallback = "major"

// Provider returns the offsets for a scale name. Implementations never fail:
// unknown names get a fallback scale.
type Provider interface {
	Scale(name string) []int
}

// Intervals from root (semitones)
var builtin = map[string][]int{
	"chromatic":         {0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11},
	"major":             {0, 2, 4, 5, 7, 9, 11},
	"minor":             {0, 2, 3, 5, 7, 8, 10},
	"pentatonic":        {0, 2, 4, 7, 9},
	"minor-pentatonic":  {0, 3, 5, 7, 10},
	"dorian":            {0, 2, 3, 5, 7, 9, 10},
	"phrygian":          {0, 1, 3, 5, 7, 8, 10},
	"lydian":            {0, 2, 4, 6, 7, 9, 11},
	"mixolydian":        {0, 2, 4, 5, 7, 9, 10},
	"locrian":           {0, 1, 3, 5, 6, 8, 10},
	"harmonic-minor":    {0, 2, 3, 5, 7, 8, 11},
	"melodic-minor":     {0, 2, 3, 5, 7, 9, 11},
	"blues":             {0, 3, 5, 6, 7, 10},
	"whole-tone":        {0, 2, 4, 6, 8, 10},
	"diminished-hw":     {0, 1, 3, 4, 6, 7, 9, 10},
	"diminished-wh":     {0, 2, 3, 5, 6, 8, 9, 11},
	"hungarian-minor":   {0, 2, 3, 6, 7, 8, 11},
	"double-harmonic":   {0, 1, 4, 5, 7, 8, 11},
	"phrygian-dominant": {0, 1, 4, 5, 7, 8, 10},
	"hirajoshi":         {0, 2, 3, 7, 8},
	"in-sen":            {0, 1, 5, 7, 10},
	"yo":                {0, 2, 5, 7, 9},
}

// Table is the built-in provider. The zero value is ready to use.
type Table struct{}

// Default is the shared built-in table
var Default Provider = Table{}

// Scale returns a copy of the named scale. Lookup ignores case and treats
// spaces and underscores as dashes. Unknown names log a warning and return
// the fallback scale.
func (Table) Scale(name string) []int {
	key := normalize(name)
	s, ok := builtin[key]
	if !ok {
		debug.Warn("scale", "unknown scale %q, using %s", name, Fallback)
		s = builtin[Fallback]
	}
	out := make([]int, len(s))
	copy(out, s)
	return out
}

// Has reports whether name is a built-in scale
func (Table) Has(name string) bool {
	_, ok := builtin[normalize(name)]
	return ok
}

// Names returns the built-in scale names, sorted
func Names() []string {
	names := make([]string, 0, len(builtin))
	for name := range builtin {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func normalize(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, "_", "-")
	return strings.ReplaceAll(name, " ", "-")
}
