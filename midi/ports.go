package midi

import (
	"fmt"
	"strings"

	gomidi "gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver
)

// ListOutPorts returns the names of the available output ports
func ListOutPorts() []string {
	var names []string
	for _, p := range gomidi.GetOutPorts() {
		names = append(names, p.String())
	}
	return names
}

// ListInPorts returns the names of the available input ports
func ListInPorts() []string {
	var names []string
	for _, p := range gomidi.GetInPorts() {
		names = append(names, p.String())
	}
	return names
}

// OpenOutput opens the output port whose name contains name (case-insensitive).
// An exact match wins over a substring match.
func OpenOutput(name string) (Sender, error) {
	ports := gomidi.GetOutPorts()
	names := make([]string, len(ports))
	for i, p := range ports {
		names[i] = p.String()
	}

	idx := matchPort(names, name)
	if idx < 0 {
		return nil, fmt.Errorf("open output %q: %w", name, ErrPortNotFound)
	}

	send, err := gomidi.SendTo(ports[idx])
	if err != nil {
		return nil, fmt.Errorf("open output %q: %w", names[idx], err)
	}
	return send, nil
}

// Close releases the MIDI driver
func Close() {
	gomidi.CloseDriver()
}

// matchPort returns the index of the best port for name, -1 if none
func matchPort(names []string, name string) int {
	want := strings.ToLower(strings.TrimSpace(name))
	if want == "" {
		return -1
	}
	for i, n := range names {
		if strings.ToLower(n) == want {
			return i
		}
	}
	for i, n := range names {
		if strings.Contains(strings.ToLower(n), want) {
			return i
		}
	}
	return -1
}
