package arp

import (
	"fmt"
	"time"
)

// EventType distinguishes note-on from note-off
type EventType int

const (
	NoteOn EventType = iota
	NoteOff
)

func (t EventType) String() string {
	if t == NoteOn {
		return "on"
	}
	return "off"
}

// NoteEvent is emitted to subscribers. Velocity is 0 for note-off.
type NoteEvent struct {
	Type      EventType
	Pitch     int
	Velocity  float64
	Timestamp time.Time
}

func (e NoteEvent) String() string {
	if e.Type == NoteOn {
		return fmt.Sprintf("on %d %.2f", e.Pitch, e.Velocity)
	}
	return fmt.Sprintf("off %d", e.Pitch)
}

// State is Idle or Running
type State int

const (
	Idle State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "idle"
}
