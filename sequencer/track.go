package sequencer

import "go-pattern/pattern"

// NumTracks is the number of pattern tracks in a session
const NumTracks = 8

// Track plays one step pattern as a single repeated note.
// A track with an empty pattern is silent.
type Track struct {
	Name    string          `json:"name"`
	Channel uint8           `json:"channel"` // MIDI output channel (1-16)
	Note    uint8           `json:"note"`
	Muted   bool            `json:"muted"`
	Pattern pattern.Pattern `json:"pattern"`
}

// NewTrack creates a new empty track with the given name, MIDI channel and note.
func NewTrack(name string, channel, note uint8) *Track {
	return &Track{
		Name:    name,
		Channel: channel,
		Note:    note,
	}
}

// HasPattern returns true if this track has steps to play.
func (t *Track) HasPattern() bool {
	return len(t.Pattern) > 0
}

// StepValue returns the value at the global step, wrapping over the track's
// own length. Muted and empty tracks return 0.
func (t *Track) StepValue(step int) float64 {
	if t.Muted || len(t.Pattern) == 0 {
		return 0
	}
	return t.Pattern.At(step % len(t.Pattern))
}

func (t *Track) clone() Track {
	c := *t
	c.Pattern = t.Pattern.Clone()
	return c
}
