package arp

import (
	"strings"
	"time"

	"golang.org/x/exp/constraints"
)

// Mode picks which held note plays on each step
type Mode string

const (
	ModeUp       Mode = "up"
	ModeDown     Mode = "down"
	ModeUpDown   Mode = "updown"
	ModeRandom   Mode = "random"
	ModeConverge Mode = "converge"
	ModeChord    Mode = "chord"
	ModeStep     Mode = "step"
)

var Modes = []Mode{ModeUp, ModeDown, ModeUpDown, ModeRandom, ModeConverge, ModeChord, ModeStep}

// Pattern is a rhythmic gate applied on top of the mode
type Pattern string

const (
	PatternStraight Pattern = "straight"
	PatternDotted   Pattern = "dotted"
	PatternTriplet  Pattern = "triplet"
	PatternPulse    Pattern = "pulse"
	PatternEcho     Pattern = "echo"
	PatternRandom   Pattern = "random"
)

var Patterns = []Pattern{PatternStraight, PatternDotted, PatternTriplet, PatternPulse, PatternEcho, PatternRandom}

// Gate tables, indexed by step modulo length. A 0 silences that step.
// PatternRandom has no table and gates by chance instead.
var gateTables = map[Pattern][]int{
	PatternStraight: {1},
	PatternDotted:   {1, 0, 0, 1, 0, 0, 1, 0},
	PatternTriplet:  {1, 1, 0},
	PatternPulse:    {1, 0},
	PatternEcho:     {1, 0, 1, 1, 0, 0, 1, 0},
	PatternRandom:   {},
}

// randomGateSkip is the chance a step is silenced under PatternRandom
const randomGateSkip = 0.3

// Speed is the step subdivision
type Speed string

const (
	SpeedQuarter          Speed = "1/4"
	SpeedEighth           Speed = "1/8"
	SpeedSixteenth        Speed = "1/16"
	SpeedThirtySecond     Speed = "1/32"
	SpeedEighthTriplet    Speed = "1/8t"
	SpeedSixteenthTriplet Speed = "1/16t"
)

var Speeds = []Speed{SpeedQuarter, SpeedEighth, SpeedSixteenth, SpeedThirtySecond, SpeedEighthTriplet, SpeedSixteenthTriplet}

// beats per step
var speedBeats = map[Speed]float64{
	SpeedQuarter:          1,
	SpeedEighth:           1.0 / 2,
	SpeedSixteenth:        1.0 / 4,
	SpeedThirtySecond:     1.0 / 8,
	SpeedEighthTriplet:    1.0 / 3,
	SpeedSixteenthTriplet: 1.0 / 6,
}

// Tempo limits (BPM)
const (
	MinBPM     = 20
	MaxBPM     = 300
	DefaultBPM = 120
)

// Limits
const (
	MinOctaves = 1
	MaxOctaves = 4
	minGate    = 0.01
)

// Config is the arpeggiator's tunable state. Read on every tick.
type Config struct {
	Mode        Mode
	Pattern     Pattern
	OctaveRange int
	Speed       Speed
	Gate        float64 // fraction of the step the note sounds, (0,1]
	Swing       float64 // [0,1], delays odd steps by up to half a step
	Humanize    float64 // [0,1], velocity jitter
	Retrigger   bool    // restart at step 0 when starting
	Hold        bool    // latch notes after release
}

// DefaultConfig is up, straight 16ths over one octave
func DefaultConfig() Config {
	return Config{
		Mode:        ModeUp,
		Pattern:     PatternStraight,
		OctaveRange: 1,
		Speed:       SpeedSixteenth,
		Gate:        0.8,
		Retrigger:   true,
	}
}

// Normalize clamps numbers into range and replaces unknown enums with defaults
func (c Config) Normalize() Config {
	def := DefaultConfig()
	if !known(Modes, c.Mode) {
		c.Mode = def.Mode
	}
	if !known(Patterns, c.Pattern) {
		c.Pattern = def.Pattern
	}
	if !known(Speeds, c.Speed) {
		c.Speed = def.Speed
	}
	c.OctaveRange = clamp(c.OctaveRange, MinOctaves, MaxOctaves)
	c.Gate = clamp(c.Gate, minGate, 1)
	c.Swing = clamp(c.Swing, 0, 1)
	c.Humanize = clamp(c.Humanize, 0, 1)
	return c
}

// ParseMode, ParsePattern and ParseSpeed map names to enums, reporting
// whether the name was known. Unknown names return the default.
func ParseMode(s string) (Mode, bool) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if known(Modes, m) {
		return m, true
	}
	return DefaultConfig().Mode, false
}

func ParsePattern(s string) (Pattern, bool) {
	p := Pattern(strings.ToLower(strings.TrimSpace(s)))
	if known(Patterns, p) {
		return p, true
	}
	return DefaultConfig().Pattern, false
}

func ParseSpeed(s string) (Speed, bool) {
	sp := Speed(strings.ToLower(strings.TrimSpace(s)))
	if known(Speeds, sp) {
		return sp, true
	}
	return DefaultConfig().Speed, false
}

// StepDuration is the length of one step at bpm (clamped) and speed
func StepDuration(bpm float64, speed Speed) time.Duration {
	bpm = clamp(bpm, MinBPM, MaxBPM)
	beats, ok := speedBeats[speed]
	if !ok {
		beats = speedBeats[SpeedSixteenth]
	}
	return time.Duration(float64(time.Minute) / bpm * beats)
}

func known[T comparable](list []T, v T) bool {
	for _, k := range list {
		if k == v {
			return true
		}
	}
	return false
}

func clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
