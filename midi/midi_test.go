package midi

import (
	"errors"
	"testing"

	gomidi "gitlab.com/gomidi/midi/v2"
)

type sentLog struct {
	msgs []gomidi.Message
	err  error
}

func (s *sentLog) send(msg gomidi.Message) error {
	s.msgs = append(s.msgs, msg)
	return s.err
}

func TestOutputNoteOnOff(t *testing.T) {
	log := &sentLog{}
	out := NewOutput(log.send, 3)

	out.NoteOn(60, 1)
	out.NoteOn(62, 0) // still audible
	out.NoteOff(60)
	out.NoteOn(200, 1) // ignored

	if len(log.msgs) != 3 {
		t.Fatalf("sent %d messages, want 3", len(log.msgs))
	}

	var ch, key, vel uint8
	if !log.msgs[0].GetNoteOn(&ch, &key, &vel) || ch != 2 || key != 60 || vel != 127 {
		t.Errorf("msg0 = %v (ch=%d key=%d vel=%d)", log.msgs[0], ch, key, vel)
	}
	if !log.msgs[1].GetNoteOn(&ch, &key, &vel) || vel != 1 {
		t.Errorf("zero velocity should map to 1, got %d", vel)
	}
	if !log.msgs[2].GetNoteEnd(&ch, &key) || key != 60 {
		t.Errorf("msg2 = %v, want note-off 60", log.msgs[2])
	}
}

func TestOutputSetParam(t *testing.T) {
	log := &sentLog{}
	out := NewOutput(log.send, 1)

	out.SetParam(74, 0.5)
	out.SetParam(300, 1) // out of CC range

	if len(log.msgs) != 1 {
		t.Fatalf("sent %d messages, want 1", len(log.msgs))
	}
	var ch, cc, val uint8
	if !log.msgs[0].GetControlChange(&ch, &cc, &val) || cc != 74 || val != 64 {
		t.Errorf("cc = %d val = %d", cc, val)
	}
}

func TestOutputSendErrorIsSwallowed(t *testing.T) {
	log := &sentLog{err: errors.New("port gone")}
	out := NewOutput(log.send, 1)
	out.NoteOn(60, 1)
	if len(log.msgs) != 1 {
		t.Error("message was not attempted")
	}
}

func TestOutputChannel(t *testing.T) {
	log := &sentLog{}
	base := NewOutput(log.send, 0)
	if base.MIDIChannel() != 1 {
		t.Errorf("channel 0 should clamp to 1, got %d", base.MIDIChannel())
	}
	ten := base.Channel(10)
	ten.NoteOff(36)

	var ch, key uint8
	if !log.msgs[0].GetNoteEnd(&ch, &key) || ch != 9 {
		t.Errorf("channel byte = %d, want 9", ch)
	}
}

func TestParseNote(t *testing.T) {
	tests := []struct {
		name string
		msg  gomidi.Message
		want NoteEvent
		ok   bool
	}{
		{"note on", gomidi.NoteOn(0, 60, 100), NoteEvent{Note: 60, Velocity: 100}, true},
		{"note off", gomidi.NoteOff(1, 64), NoteEvent{Note: 64, Channel: 1}, true},
		{"note on zero velocity", gomidi.NoteOn(0, 67, 0), NoteEvent{Note: 67}, true},
		{"control change", gomidi.ControlChange(0, 1, 10), NoteEvent{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseNote(tt.msg)
			if ok != tt.ok || got != tt.want {
				t.Errorf("parseNote = %+v, %v; want %+v, %v", got, ok, tt.want, tt.ok)
			}
			if ok && got.IsOff() != (tt.want.Velocity == 0) {
				t.Error("IsOff mismatch")
			}
		})
	}
}

func TestMatchPort(t *testing.T) {
	names := []string{"Midi Through Port-0", "IAC Driver Bus 1", "IAC Driver Bus 10"}
	tests := []struct {
		name string
		want int
	}{
		{"iac driver bus 10", 2},
		{"bus 1", 1},
		{"through", 0},
		{"missing", -1},
		{"", -1},
	}
	for _, tt := range tests {
		if got := matchPort(names, tt.name); got != tt.want {
			t.Errorf("matchPort(%q) = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestDeviceFilter(t *testing.T) {
	all := NewDeviceManager("")
	if all.accepts("Midi Through Port-0") {
		t.Error("loopback port accepted")
	}
	if !all.accepts("Arturia KeyStep 37") {
		t.Error("keyboard rejected")
	}

	only := NewDeviceManager("KeyStep")
	if only.accepts("Launchkey Mini") || !only.accepts("Arturia KeyStep 37") {
		t.Error("filter not applied")
	}
}
