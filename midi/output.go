package midi

import (
	"math"
	"sync"

	"go-pattern/debug"

	gomidi "gitlab.com/gomidi/midi/v2"
)

// Backend consumes note and parameter events from the pattern host.
// Velocities and parameter values are normalized to [0,1].
type Backend interface {
	NoteOn(pitch int, velocity float64)
	NoteOff(pitch int)
	SetParam(id int, value float64)
}

// Sender writes one MIDI message to a port
type Sender func(gomidi.Message) error

// Output is a Backend that turns events into MIDI messages on one channel.
// Send errors are logged, not returned.
type Output struct {
	mu      sync.Mutex
	send    Sender
	channel uint8 // 1-16
}

// NewOutput creates an output on channel (1-16, clamped)
func NewOutput(send Sender, channel uint8) *Output {
	return &Output{send: send, channel: clampChannel(channel)}
}

// Channel returns an output on another channel sharing the same sender
func (o *Output) Channel(channel uint8) *Output {
	return NewOutput(o.send, channel)
}

// MIDIChannel returns the 1-based channel
func (o *Output) MIDIChannel() uint8 {
	return o.channel
}

func (o *Output) NoteOn(pitch int, velocity float64) {
	note, ok := noteNumber(pitch)
	if !ok {
		return
	}
	o.write(gomidi.NoteOn(o.channel-1, note, scaleVelocity(velocity)))
}

func (o *Output) NoteOff(pitch int) {
	note, ok := noteNumber(pitch)
	if !ok {
		return
	}
	o.write(gomidi.NoteOff(o.channel-1, note))
}

// SetParam sends a control change; id is the controller number
func (o *Output) SetParam(id int, value float64) {
	if id < 0 || id > 127 {
		debug.Warn("midi", "param id %d out of CC range", id)
		return
	}
	o.write(gomidi.ControlChange(o.channel-1, uint8(id), scaleCC(value)))
}

func (o *Output) write(msg gomidi.Message) {
	if o.send == nil {
		return
	}
	o.mu.Lock()
	err := o.send(msg)
	o.mu.Unlock()
	if err != nil {
		debug.Log("midi", "send %v: %v", msg, err)
	}
}

// scaleVelocity maps [0,1] to 1..127 so a note-on is never read as note-off
func scaleVelocity(v float64) uint8 {
	n := int(math.Round(v * 127))
	if n < 1 {
		n = 1
	}
	if n > 127 {
		n = 127
	}
	return uint8(n)
}

// scaleCC maps [0,1] to 0..127
func scaleCC(v float64) uint8 {
	n := int(math.Round(v * 127))
	if n < 0 {
		n = 0
	}
	if n > 127 {
		n = 127
	}
	return uint8(n)
}

func noteNumber(pitch int) (uint8, bool) {
	if pitch < 0 || pitch > 127 {
		return 0, false
	}
	return uint8(pitch), true
}

func clampChannel(ch uint8) uint8 {
	if ch < 1 {
		return 1
	}
	if ch > 16 {
		return 16
	}
	return ch
}
