// Package arp is a timer-driven arpeggiator. It turns a set of held pitches
// into a stream of note-on/note-off events on its own clock.
package arp

import (
	"sort"
	"sync"
	"time"

	"go-pattern/clock"
	"go-pattern/debug"
	"go-pattern/notify"
	"go-pattern/rng"
)

// Velocity shaping
const (
	baseVelocity   = 0.8
	humanizeSpread = 0.4 // full jitter width at humanize=1, i.e. +-0.2
	minVelocity    = 0.3
	maxVelocity    = 1.0
	swingAmount    = 0.5 // odd steps are delayed by swing*step*0.5
)

// Arpeggiator owns its held notes, config and the single pending tick.
// Methods are safe to call from any goroutine. Listeners are called without
// the internal lock held, one event at a time in the order events were made;
// a call that finds delivery in progress on another goroutine leaves its
// events to that goroutine.
type Arpeggiator struct {
	mu  sync.Mutex
	clk clock.Clock
	src *rng.Source
	cfg Config
	bpm float64

	held  []int // press order
	state State
	step  int

	tickTimer clock.Timer
	gateTimer clock.Timer
	run       uint64 // bumped on start/stop so stale callbacks bail out
	noteSeq   uint64

	lastPitch int
	hasLast   bool // a note-on has been sent since start
	sounding  bool // lastPitch has not been released yet

	outbox    []NoteEvent // made under mu, not yet delivered
	draining  bool        // a goroutine is delivering outbox
	listeners *notify.Registry[NoteEvent]
}

// New creates an idle arpeggiator. A nil clock uses the wall clock; a nil
// source uses the default seed.
func New(clk clock.Clock, src *rng.Source, cfg Config) *Arpeggiator {
	if clk == nil {
		clk = clock.Real{}
	}
	if src == nil {
		src = rng.New(rng.DefaultSeed)
	}
	return &Arpeggiator{
		clk:       clk,
		src:       src,
		cfg:       cfg.Normalize(),
		bpm:       DefaultBPM,
		listeners: notify.NewRegistry[NoteEvent]("arp"),
	}
}

// Subscribe registers fn for every emitted note event
func (a *Arpeggiator) Subscribe(fn func(NoteEvent)) (unsubscribe func()) {
	return a.listeners.Subscribe(fn)
}

// Config returns the current config
func (a *Arpeggiator) Config() Config {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cfg
}

// SetConfig replaces the config. It takes effect on the next tick.
func (a *Arpeggiator) SetConfig(cfg Config) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cfg = cfg.Normalize()
	debug.Log("arp", "config %+v", a.cfg)
}

// SetBPM sets the tempo, clamped to [20, 300]. The pending tick keeps its
// time; the new tempo applies from the next scheduled tick.
func (a *Arpeggiator) SetBPM(bpm float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.bpm = clamp(bpm, MinBPM, MaxBPM)
}

// BPM returns the current tempo
func (a *Arpeggiator) BPM() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.bpm
}

// State reports Idle or Running
func (a *Arpeggiator) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Step returns the step counter (the index of the next tick)
func (a *Arpeggiator) Step() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.step
}

// HeldNotes returns the held pitches in press order
func (a *Arpeggiator) HeldNotes() []int {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]int, len(a.held))
	copy(out, a.held)
	return out
}

// NoteOn adds pitch to the held set and starts the arpeggiator if idle
func (a *Arpeggiator) NoteOn(pitch int) {
	a.mu.Lock()
	if !contains(a.held, pitch) {
		a.held = append(a.held, pitch)
	}
	var events []NoteEvent
	if a.state == Idle {
		events = a.startLocked()
	}
	a.unlockAndEmit(events)
}

// NoteOff releases pitch. With hold on the note stays latched. Releasing the
// last note stops the arpeggiator.
func (a *Arpeggiator) NoteOff(pitch int) {
	a.mu.Lock()
	var events []NoteEvent
	if !a.cfg.Hold {
		a.held = remove(a.held, pitch)
		if len(a.held) == 0 {
			events = a.stopLocked()
		}
	}
	a.unlockAndEmit(events)
}

// SetHeldNotes replaces the held set (duplicates dropped, order kept). An
// empty set stops the arpeggiator, hold or not.
func (a *Arpeggiator) SetHeldNotes(pitches []int) {
	a.mu.Lock()
	a.held = a.held[:0]
	for _, p := range pitches {
		if !contains(a.held, p) {
			a.held = append(a.held, p)
		}
	}
	var events []NoteEvent
	switch {
	case len(a.held) > 0 && a.state == Idle:
		events = a.startLocked()
	case len(a.held) == 0:
		events = a.stopLocked()
	}
	a.unlockAndEmit(events)
}

// ClearNotes empties the held set (including latched notes) and stops
func (a *Arpeggiator) ClearNotes() {
	a.mu.Lock()
	a.held = nil
	events := a.stopLocked()
	a.unlockAndEmit(events)
}

// Start begins arpeggiating if there are held notes. No-op when running.
func (a *Arpeggiator) Start() {
	a.mu.Lock()
	var events []NoteEvent
	if a.state == Idle && len(a.held) > 0 {
		events = a.startLocked()
	}
	a.unlockAndEmit(events)
}

// Stop cancels the pending tick and gate, and sends a note-off for the last
// note-on. Safe to call repeatedly.
func (a *Arpeggiator) Stop() {
	a.mu.Lock()
	events := a.stopLocked()
	a.unlockAndEmit(events)
}

func (a *Arpeggiator) startLocked() []NoteEvent {
	a.state = Running
	a.run++
	if a.cfg.Retrigger {
		a.step = 0
	}
	debug.Log("arp", "start held=%v step=%d", a.held, a.step)
	return a.tickLocked()
}

func (a *Arpeggiator) stopLocked() []NoteEvent {
	if a.tickTimer != nil {
		a.tickTimer.Stop()
		a.tickTimer = nil
	}
	if a.gateTimer != nil {
		a.gateTimer.Stop()
		a.gateTimer = nil
	}
	a.run++

	var events []NoteEvent
	if a.hasLast {
		events = append(events, a.noteOff(a.lastPitch))
	}
	if a.state == Running {
		debug.Log("arp", "stop at step %d", a.step)
	}
	a.hasLast = false
	a.sounding = false
	a.state = Idle
	return events
}

// tickLocked plays the current step and schedules the next one
func (a *Arpeggiator) tickLocked() []NoteEvent {
	if a.state != Running {
		return nil
	}
	cfg := a.cfg
	stepDur := StepDuration(a.bpm, cfg.Speed)

	var events []NoteEvent
	if len(a.held) > 0 && a.gateOpen(cfg.Pattern) {
		pitch := a.selectNote(cfg)

		if a.sounding {
			if a.gateTimer != nil {
				a.gateTimer.Stop()
				a.gateTimer = nil
			}
			events = append(events, a.noteOff(a.lastPitch))
		}

		events = append(events, a.noteOn(pitch, a.velocity(cfg.Humanize)))
		a.lastPitch = pitch
		a.hasLast = true
		a.sounding = true
		a.noteSeq++

		run, seq := a.run, a.noteSeq
		gateDur := time.Duration(float64(stepDur) * cfg.Gate)
		a.gateTimer = a.clk.AfterFunc(gateDur, func() { a.onGate(run, seq) })
	}

	next := stepDur
	if a.step%2 == 1 {
		next += time.Duration(cfg.Swing * float64(stepDur) * swingAmount)
	}
	a.step++

	run := a.run
	a.tickTimer = a.clk.AfterFunc(next, func() { a.onTick(run) })
	debug.LogEvery(64, "arp", "tick step=%d next=%v", a.step, next)
	return events
}

func (a *Arpeggiator) onTick(run uint64) {
	a.mu.Lock()
	if run != a.run {
		a.mu.Unlock()
		return
	}
	events := a.tickLocked()
	a.unlockAndEmit(events)
}

func (a *Arpeggiator) onGate(run, seq uint64) {
	a.mu.Lock()
	if run != a.run || seq != a.noteSeq || !a.sounding {
		a.mu.Unlock()
		return
	}
	a.sounding = false
	a.gateTimer = nil
	a.unlockAndEmit([]NoteEvent{a.noteOff(a.lastPitch)})
}

// gateOpen consults the pattern's gate table for the current step
func (a *Arpeggiator) gateOpen(p Pattern) bool {
	table := gateTables[p]
	if len(table) == 0 {
		return a.src.Next() >= randomGateSkip
	}
	return table[a.step%len(table)] != 0
}

// noteList is the held set sorted ascending and repeated up each octave
func (a *Arpeggiator) noteList(octaves int) []int {
	sorted := make([]int, len(a.held))
	copy(sorted, a.held)
	sort.Ints(sorted)

	notes := make([]int, 0, len(sorted)*octaves)
	for o := 0; o < octaves; o++ {
		for _, p := range sorted {
			notes = append(notes, p+12*o)
		}
	}
	return notes
}

func (a *Arpeggiator) selectNote(cfg Config) int {
	if cfg.Mode == ModeStep {
		return a.held[a.step%len(a.held)]
	}

	notes := a.noteList(cfg.OctaveRange)
	n := len(notes)
	s := a.step

	switch cfg.Mode {
	case ModeDown:
		return notes[n-1-s%n]
	case ModeUpDown:
		if n == 1 {
			return notes[0]
		}
		period := 2*n - 2
		pos := s % period
		if pos >= n {
			pos = period - pos
		}
		return notes[pos]
	case ModeRandom:
		return notes[a.src.Intn(n)]
	case ModeConverge:
		pos := s % n
		if pos%2 == 0 {
			return notes[pos/2]
		}
		return notes[n-1-pos/2]
	case ModeChord:
		return notes[0]
	default:
		return notes[s%n]
	}
}

func (a *Arpeggiator) velocity(humanize float64) float64 {
	v := baseVelocity
	if humanize > 0 {
		v += (a.src.Next() - 0.5) * humanizeSpread * humanize
	}
	return clamp(v, minVelocity, maxVelocity)
}

func (a *Arpeggiator) noteOn(pitch int, velocity float64) NoteEvent {
	return NoteEvent{Type: NoteOn, Pitch: pitch, Velocity: velocity, Timestamp: a.clk.Now()}
}

func (a *Arpeggiator) noteOff(pitch int) NoteEvent {
	return NoteEvent{Type: NoteOff, Pitch: pitch, Timestamp: a.clk.Now()}
}

// unlockAndEmit queues events in creation order, releases a.mu and delivers
// the queue unless another goroutine is already delivering it. Listeners see
// events in the order they were made, even when a tick and a Stop race.
func (a *Arpeggiator) unlockAndEmit(events []NoteEvent) {
	a.outbox = append(a.outbox, events...)
	if a.draining || len(a.outbox) == 0 {
		a.mu.Unlock()
		return
	}
	a.draining = true
	a.mu.Unlock()

	for {
		a.mu.Lock()
		if len(a.outbox) == 0 {
			a.draining = false
			a.mu.Unlock()
			return
		}
		e := a.outbox[0]
		a.outbox = a.outbox[1:]
		a.mu.Unlock()

		a.listeners.Emit(e)
	}
}

func contains(list []int, v int) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

func remove(list []int, v int) []int {
	for i, x := range list {
		if x == v {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}
