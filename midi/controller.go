package midi

// ControllerType identifies the kind of controller
type ControllerType int

const (
	ControllerUnknown ControllerType = iota
	ControllerKeyboard
)

// Controller is the interface for MIDI input devices
type Controller interface {
	ID() string
	Type() ControllerType

	// Note presses and releases from the device
	NoteEvents() <-chan NoteEvent

	// Lifecycle
	Close() error
}
