package midi

import "errors"

// ErrPortNotFound is returned when a named port is not present
var ErrPortNotFound = errors.New("midi port not found")

// NoteEvent is sent when a note is played or released on a keyboard.
// Velocity 0 means note-off.
type NoteEvent struct {
	Note     uint8
	Velocity uint8
	Channel  uint8
}

// IsOff reports whether the event releases the note
func (e NoteEvent) IsOff() bool {
	return e.Velocity == 0
}
