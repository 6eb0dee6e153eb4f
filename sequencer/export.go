package sequencer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"go-pattern/pattern"
)

// Export resolution: 960 ticks per quarter, 16th-note steps
const (
	ticksPerQuarter = 960
	ticksPerStep    = ticksPerQuarter / 4
)

// PatternSnapshot lays patterns out on the default tracks, in order, for
// export without a running Manager. Extra patterns are dropped.
func PatternSnapshot(tempo int, patterns []pattern.Pattern) Snapshot {
	s := NewState()
	s.Tempo = clamp(tempo, MinTempo, MaxTempo)
	for i, p := range patterns {
		if i == NumTracks {
			break
		}
		s.Tracks[i].Pattern = p.Clone()
	}
	return s.snapshot()
}

// LoopSteps is the number of steps after which every track lines up again
// (the LCM of the pattern lengths), capped at maxLoopSteps
func (s Snapshot) LoopSteps() int {
	loop := 1
	for _, t := range s.Tracks {
		if n := len(t.Pattern); n > 0 {
			loop = lcm(loop, n)
			if loop > maxLoopSteps {
				return maxLoopSteps
			}
		}
	}
	return loop
}

const maxLoopSteps = 1024

// SMF renders steps steps of the snapshot as a format 1 Standard MIDI File:
// a tempo track plus one track per pattern track. Ghost steps keep their
// lower velocity; every hit lasts half a step.
func (s Snapshot) SMF(steps int) (*smf.SMF, error) {
	if steps < 1 {
		steps = s.LoopSteps()
	}

	sm := smf.New()
	sm.TimeFormat = smf.MetricTicks(ticksPerQuarter)

	var tempo smf.Track
	tempo.Add(0, smf.MetaMeter(4, 4))
	tempo.Add(0, smf.MetaTempo(float64(s.Tempo)))
	tempo.Close(0)
	if err := sm.Add(tempo); err != nil {
		return nil, fmt.Errorf("add tempo track: %w", err)
	}

	end := uint32(steps) * ticksPerStep
	for i, t := range s.Tracks {
		var track smf.Track
		track.Add(0, smf.MetaTrackSequenceName(t.Name))

		var pos uint32 // absolute tick of the last event
		if !t.Muted && len(t.Pattern) > 0 {
			ch := clamp(t.Channel, 1, 16) - 1
			for step := 0; step < steps; step++ {
				v := t.StepValue(step)
				if v <= 0 {
					continue
				}
				on := uint32(step) * ticksPerStep
				off := on + ticksPerStep/2
				track.Add(on-pos, gomidi.NoteOn(ch, t.Note, exportVelocity(v)))
				track.Add(off-on, gomidi.NoteOff(ch, t.Note))
				pos = off
			}
		}
		track.Close(end - pos)
		if err := sm.Add(track); err != nil {
			return nil, fmt.Errorf("add track %d: %w", i+1, err)
		}
	}
	return sm, nil
}

// WriteSMF writes the rendered file to w
func (s Snapshot) WriteSMF(w io.Writer, steps int) error {
	sm, err := s.SMF(steps)
	if err != nil {
		return err
	}
	if _, err := sm.WriteTo(w); err != nil {
		return fmt.Errorf("write smf: %w", err)
	}
	return nil
}

// ExportMIDI writes the current tracks, one full loop, to path
func (m *Manager) ExportMIDI(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := m.Snapshot().WriteSMF(f, 0); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func exportVelocity(v float64) uint8 {
	n := int(v*127 + 0.5)
	return uint8(clamp(n, 1, 127))
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func lcm(a, b int) int {
	return a / gcd(a, b) * b
}
