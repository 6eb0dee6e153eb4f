package sequencer

import (
	"sync"
	"time"

	"golang.org/x/exp/constraints"

	"go-pattern/arp"
	"go-pattern/clock"
	"go-pattern/debug"
	"go-pattern/midi"
	"go-pattern/pattern"
)

// Tempo limits, shared with the arpeggiator
const (
	MinTempo = arp.MinBPM
	MaxTempo = arp.MaxBPM
)

// Transport steps are 16th notes
const stepSpeed = arp.SpeedSixteenth

// BackendFactory returns the output for a MIDI channel (1-16)
type BackendFactory func(channel uint8) midi.Backend

// Manager orchestrates pattern playback and routes the arpeggiator to MIDI
type Manager struct {
	clk   clock.Clock
	arp   *arp.Arpeggiator
	state *State
	mu    sync.Mutex

	arpChannel uint8

	// Per-channel outputs, created lazily
	newBackend BackendFactory
	backends   map[uint8]midi.Backend
	backendsMu sync.RWMutex

	tickTimer   clock.Timer
	run         uint64 // bumped on play/stop so stale ticks bail out
	unsubscribe func()

	// MIDI input
	midiInputChan     chan midi.NoteEvent
	midiInputStopChan chan struct{}

	// Notify TUI of updates
	UpdateChan chan struct{}
}

// outgoing is a note queued under the lock and sent after it is released
type outgoing struct {
	channel  uint8
	pitch    int
	velocity float64
}

// NewManager creates a stopped transport driving a on clk. A nil clock uses
// the wall clock.
func NewManager(clk clock.Clock, a *arp.Arpeggiator) *Manager {
	if clk == nil {
		clk = clock.Real{}
	}
	m := &Manager{
		clk:               clk,
		arp:               a,
		state:             NewState(),
		arpChannel:        1,
		backends:          make(map[uint8]midi.Backend),
		midiInputChan:     make(chan midi.NoteEvent, 32),
		midiInputStopChan: make(chan struct{}),
		UpdateChan:        make(chan struct{}, 1),
	}
	m.unsubscribe = a.Subscribe(m.forwardArp)
	a.SetBPM(float64(m.state.Tempo))
	return m
}

// Arp returns the arpeggiator driven by this manager
func (m *Manager) Arp() *arp.Arpeggiator {
	return m.arp
}

// SetBackend sets how outputs are created. Existing outputs are dropped.
func (m *Manager) SetBackend(f BackendFactory) {
	m.backendsMu.Lock()
	defer m.backendsMu.Unlock()
	m.newBackend = f
	m.backends = make(map[uint8]midi.Backend)
}

// SetArpChannel sets the MIDI channel for arpeggiator notes
func (m *Manager) SetArpChannel(ch uint8) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.arpChannel = clamp(ch, 1, 16)
}

// getBackend returns the output for a channel, lazily creating it
func (m *Manager) getBackend(ch uint8) midi.Backend {
	m.backendsMu.RLock()
	if b, ok := m.backends[ch]; ok {
		m.backendsMu.RUnlock()
		return b
	}
	m.backendsMu.RUnlock()

	m.backendsMu.Lock()
	defer m.backendsMu.Unlock()

	// Double-check after acquiring write lock
	if b, ok := m.backends[ch]; ok {
		return b
	}
	if m.newBackend == nil {
		return nil
	}
	b := m.newBackend(ch)
	if b != nil {
		m.backends[ch] = b
	}
	return b
}

// forwardArp sends arpeggiator events to the arp channel
func (m *Manager) forwardArp(e arp.NoteEvent) {
	m.mu.Lock()
	ch := m.arpChannel
	m.mu.Unlock()

	b := m.getBackend(ch)
	if b == nil {
		return
	}
	switch e.Type {
	case arp.NoteOn:
		b.NoteOn(e.Pitch, e.Velocity)
	case arp.NoteOff:
		b.NoteOff(e.Pitch)
	}
}

// Play starts playback from step 0
func (m *Manager) Play() {
	m.mu.Lock()
	if m.state.Playing {
		m.mu.Unlock()
		return
	}

	m.state.Playing = true
	m.state.Step = 0
	m.run++
	debug.Log("seq", "play tempo=%d", m.state.Tempo)
	notes := m.tickLocked()
	m.mu.Unlock()

	m.sendNotes(notes)
	m.notifyUpdate()
}

// Stop stops playback. Notes already sounding still get their note-off.
func (m *Manager) Stop() {
	m.mu.Lock()
	if !m.state.Playing {
		m.mu.Unlock()
		return
	}
	m.state.Playing = false
	m.run++
	if m.tickTimer != nil {
		m.tickTimer.Stop()
		m.tickTimer = nil
	}
	debug.Log("seq", "stop at step %d", m.state.Step)
	m.mu.Unlock()

	m.notifyUpdate()
}

// tickLocked collects the notes for the current step and schedules the next
func (m *Manager) tickLocked() []outgoing {
	stepDur := arp.StepDuration(float64(m.state.Tempo), stepSpeed)
	step := m.state.Step

	var notes []outgoing
	for _, t := range m.state.Tracks {
		v := t.StepValue(step)
		if v <= 0 {
			continue
		}
		notes = append(notes, outgoing{channel: t.Channel, pitch: int(t.Note), velocity: v})

		ch, pitch := t.Channel, int(t.Note)
		m.clk.AfterFunc(stepDur/2, func() { m.noteOff(ch, pitch) })
	}

	m.state.Step++
	run := m.run
	m.tickTimer = m.clk.AfterFunc(stepDur, func() { m.onTick(run) })
	debug.LogEvery(64, "seq", "step=%d notes=%d", step, len(notes))
	return notes
}

func (m *Manager) onTick(run uint64) {
	m.mu.Lock()
	if run != m.run || !m.state.Playing {
		m.mu.Unlock()
		return
	}
	notes := m.tickLocked()
	m.mu.Unlock()

	m.sendNotes(notes)
	m.notifyUpdate()
}

func (m *Manager) sendNotes(notes []outgoing) {
	for _, n := range notes {
		if b := m.getBackend(n.channel); b != nil {
			b.NoteOn(n.pitch, n.velocity)
		}
	}
}

func (m *Manager) noteOff(ch uint8, pitch int) {
	if b := m.getBackend(ch); b != nil {
		b.NoteOff(pitch)
	}
}

// SetTempo sets the BPM (clamped to 20-300) for the transport and the
// arpeggiator. Takes effect on the next step.
func (m *Manager) SetTempo(bpm int) {
	bpm = clamp(bpm, MinTempo, MaxTempo)
	m.mu.Lock()
	m.state.Tempo = bpm
	m.mu.Unlock()

	m.arp.SetBPM(float64(bpm))
	m.notifyUpdate()
}

// GetState returns the current sequencer state
func (m *Manager) GetState() (step int, playing bool, tempo int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Step, m.state.Playing, m.state.Tempo
}

// Snapshot returns a copy of the transport and tracks
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.snapshot()
}

// Track management

// SetPattern assigns a copy of p to track idx
func (m *Manager) SetPattern(idx int, p pattern.Pattern) {
	if idx < 0 || idx >= NumTracks {
		return
	}
	m.mu.Lock()
	m.state.Tracks[idx].Pattern = p.Clone()
	m.mu.Unlock()
	m.notifyUpdate()
}

// Pattern returns a copy of track idx's pattern
func (m *Manager) Pattern(idx int) pattern.Pattern {
	if idx < 0 || idx >= NumTracks {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Tracks[idx].Pattern.Clone()
}

// ToggleMute flips the mute flag on track idx
func (m *Manager) ToggleMute(idx int) {
	if idx < 0 || idx >= NumTracks {
		return
	}
	m.mu.Lock()
	t := m.state.Tracks[idx]
	t.Muted = !t.Muted
	m.mu.Unlock()
	m.notifyUpdate()
}

// SetTrackOutput sets the MIDI channel and note for track idx
func (m *Manager) SetTrackOutput(idx int, channel, note uint8) {
	if idx < 0 || idx >= NumTracks {
		return
	}
	m.mu.Lock()
	t := m.state.Tracks[idx]
	t.Channel = clamp(channel, 1, 16)
	t.Note = clamp(note, 0, 127)
	m.mu.Unlock()
}

// MIDI input

// StartRuntime starts the input goroutine (called once at startup)
func (m *Manager) StartRuntime() {
	go m.midiInputLoop()
}

// midiInputLoop consumes MIDI keyboard input and routes it to the arpeggiator
func (m *Manager) midiInputLoop() {
	for {
		select {
		case <-m.midiInputStopChan:
			return
		case evt := <-m.midiInputChan:
			m.HandleNote(evt.Note, evt.Velocity)
		}
	}
}

// SetMIDIInput starts forwarding notes from ctrl until its channel closes
func (m *Manager) SetMIDIInput(ctrl midi.Controller) {
	if ctrl == nil {
		return
	}
	go func() {
		for evt := range ctrl.NoteEvents() {
			select {
			case m.midiInputChan <- evt:
			default:
				// Drop if channel full
			}
		}
	}()
}

// HandleNote handles live input: velocity 0 releases the note
func (m *Manager) HandleNote(note uint8, velocity uint8) {
	if velocity == 0 {
		m.arp.NoteOff(int(note))
	} else {
		m.arp.NoteOn(int(note))
	}
	m.notifyUpdate()
}

// Close stops playback and the arpeggiator and detaches from it
func (m *Manager) Close() {
	m.Stop()
	m.arp.Stop()
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
	select {
	case <-m.midiInputStopChan:
	default:
		close(m.midiInputStopChan)
	}
}

// notifyUpdate notifies the TUI without blocking
func (m *Manager) notifyUpdate() {
	select {
	case m.UpdateChan <- struct{}{}:
	default:
	}
}

func clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// StepDuration returns the length of one transport step at the current tempo
func (m *Manager) StepDuration() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return arp.StepDuration(float64(m.state.Tempo), stepSpeed)
}
