package sequencer

import (
	"bytes"
	"path/filepath"
	"testing"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"go-pattern/pattern"
)

func TestLoopSteps(t *testing.T) {
	tests := []struct {
		name    string
		lengths []int
		want    int
	}{
		{"empty", nil, 1},
		{"single", []int{16}, 16},
		{"polymeter", []int{16, 12}, 48},
		{"coprime", []int{5, 7, 3}, 105},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var snap Snapshot
			for i, n := range tt.lengths {
				snap.Tracks[i].Pattern = pattern.New(n)
			}
			if got := snap.LoopSteps(); got != tt.want {
				t.Errorf("LoopSteps() = %d, want %d", got, tt.want)
			}
		})
	}
}

type exportedNote struct {
	tick uint32
	ch   uint8
	key  uint8
	vel  uint8
}

// readNotes decodes the note-ons of every track with absolute ticks
func readNotes(t *testing.T, data []byte) (ntracks int, notes []exportedNote, offs int) {
	t.Helper()
	sm, err := smf.ReadFrom(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("read smf: %v", err)
	}
	for _, track := range sm.Tracks {
		var tick uint32
		for _, ev := range track {
			tick += ev.Delta
			var ch, key, vel uint8
			msg := gomidi.Message(ev.Message)
			switch {
			case msg.GetNoteStart(&ch, &key, &vel):
				notes = append(notes, exportedNote{tick, ch, key, vel})
			case msg.GetNoteEnd(&ch, &key):
				offs++
			}
		}
	}
	return len(sm.Tracks), notes, offs
}

func TestSnapshotSMF(t *testing.T) {
	h := newHarness(t)
	h.m.SetPattern(0, pattern.Parse("x.o."))
	h.m.SetPattern(1, pattern.Parse("..x.....")) // 8 steps, loop is 8

	var buf bytes.Buffer
	if err := h.m.Snapshot().WriteSMF(&buf, 0); err != nil {
		t.Fatal(err)
	}
	ntracks, notes, offs := readNotes(t, buf.Bytes())

	if ntracks != NumTracks+1 {
		t.Errorf("tracks = %d, want %d", ntracks, NumTracks+1)
	}
	want := []exportedNote{
		{0, 9, 36, 127},
		{2 * ticksPerStep, 9, 36, 64},
		{4 * ticksPerStep, 9, 36, 127},
		{6 * ticksPerStep, 9, 36, 64},
		{2 * ticksPerStep, 9, 38, 127},
	}
	if len(notes) != len(want) {
		t.Fatalf("notes = %+v, want %+v", notes, want)
	}
	for i := range want {
		if notes[i] != want[i] {
			t.Errorf("note %d = %+v, want %+v", i, notes[i], want[i])
		}
	}
	if offs != len(want) {
		t.Errorf("note offs = %d, want %d", offs, len(want))
	}
}

func TestSMFSkipsMutedTracks(t *testing.T) {
	h := newHarness(t)
	h.m.SetPattern(0, pattern.Parse("xxxx"))
	h.m.ToggleMute(0)

	var buf bytes.Buffer
	if err := h.m.Snapshot().WriteSMF(&buf, 16); err != nil {
		t.Fatal(err)
	}
	if _, notes, _ := readNotes(t, buf.Bytes()); len(notes) != 0 {
		t.Errorf("muted track exported %d notes", len(notes))
	}
}

func TestExportMIDI(t *testing.T) {
	h := newHarness(t)
	h.m.SetPattern(2, pattern.Parse("x.x.x.x."))
	path := filepath.Join(t.TempDir(), "sub", "out.mid")

	if err := h.m.ExportMIDI(path); err != nil {
		t.Fatalf("ExportMIDI: %v", err)
	}
	sm, err := smf.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	var bpm float64
	for _, ev := range sm.Tracks[0] {
		if ev.Message.GetMetaTempo(&bpm) {
			break
		}
	}
	if bpm != 120 {
		t.Errorf("tempo = %v, want 120", bpm)
	}
}

func TestPatternSnapshot(t *testing.T) {
	pats := make([]pattern.Pattern, NumTracks+2)
	for i := range pats {
		pats[i] = pattern.Parse("x...")
	}
	snap := PatternSnapshot(500, pats)
	if snap.Tempo != MaxTempo {
		t.Errorf("tempo = %d, want %d", snap.Tempo, MaxTempo)
	}
	for i, tr := range snap.Tracks {
		if tr.Pattern.String() != "x..." {
			t.Errorf("track %d pattern = %s", i, tr.Pattern)
		}
	}
	pats[0][1] = 1
	if snap.Tracks[0].Pattern.String() != "x..." {
		t.Error("snapshot shares pattern storage with caller")
	}
}
