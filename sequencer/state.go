package sequencer

// GM drum notes for the default track layout
var defaultNotes = [NumTracks]uint8{36, 38, 42, 46, 41, 43, 45, 49}

var defaultNames = [NumTracks]string{"kick", "snare", "hat", "open", "tom lo", "tom mid", "tom hi", "crash"}

// DefaultDrumChannel is the GM percussion channel
const DefaultDrumChannel = 10

// State is the transport and track state owned by a Manager
type State struct {
	Tempo   int               `json:"tempo"`
	Step    int               `json:"step"`
	Playing bool              `json:"playing"`
	Tracks  [NumTracks]*Track `json:"tracks"`
}

// NewState creates a new state with defaults
func NewState() *State {
	s := &State{
		Tempo: 120,
	}

	// Initialize all 8 tracks
	for i := 0; i < NumTracks; i++ {
		s.Tracks[i] = NewTrack(defaultNames[i], DefaultDrumChannel, defaultNotes[i])
	}

	return s
}

// Snapshot is a read-only copy of State for the UI
type Snapshot struct {
	Tempo   int
	Step    int
	Playing bool
	Tracks  [NumTracks]Track
}

func (s *State) snapshot() Snapshot {
	snap := Snapshot{Tempo: s.Tempo, Step: s.Step, Playing: s.Playing}
	for i, t := range s.Tracks {
		snap.Tracks[i] = t.clone()
	}
	return snap
}
