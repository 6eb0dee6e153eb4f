package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"go-pattern/arp"
	"go-pattern/config"
	"go-pattern/debug"
	"go-pattern/generate"
	"go-pattern/melody"
	"go-pattern/midi"
	"go-pattern/pattern"
	"go-pattern/scale"
	"go-pattern/sequencer"
	"go-pattern/theme"
	"go-pattern/widgets"
)

// Deps are the long-lived pieces the model drives
type Deps struct {
	Manager   *sequencer.Manager
	DeviceMgr *midi.DeviceManager // may be nil (no MIDI input)
	Engine    *generate.Engine
	Processor *pattern.Processor
	Melody    *melody.Generator
	Config    *config.Config
	Theme     *theme.Theme
}

// lastResult is written by engine/processor listeners and read by View
type lastResult struct {
	source string
	pat    pattern.Pattern
}

type Model struct {
	Deps

	selected   int
	algo       int
	variation  int
	transition int
	style      int
	density    float64
	amount     float64

	last       *lastResult
	status     string
	quitting   bool
	showHelp   bool
	help       help.Model
	exportPath string          // empty = pattern.mid in the config dir
	keyboard   midi.Controller // current keyboard (may be nil)
}

type UpdateMsg struct{}

type DeviceEventMsg midi.DeviceEvent

func NewModel(d Deps) Model {
	m := Model{
		Deps:     d,
		selected: clampIndex(d.Config.UI.LastTrack, sequencer.NumTracks),
		density:  0.5,
		amount:   0.5,
		last:     &lastResult{},
		help:     help.New(),
	}
	last := m.last
	d.Engine.Subscribe(func(p pattern.Pattern) {
		last.source, last.pat = "generate", p
	})
	d.Processor.Subscribe(func(p pattern.Pattern) {
		last.source, last.pat = "process", p
	})
	return m
}

func ListenForUpdates(manager *sequencer.Manager) tea.Cmd {
	return func() tea.Msg {
		<-manager.UpdateChan
		return UpdateMsg{}
	}
}

func ListenForDevices(deviceMgr *midi.DeviceManager) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-deviceMgr.Events()
		if !ok {
			return nil
		}
		return DeviceEventMsg(event)
	}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{ListenForUpdates(m.Manager)}
	if m.DeviceMgr != nil {
		cmds = append(cmds, ListenForDevices(m.DeviceMgr))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case UpdateMsg:
		return m, ListenForUpdates(m.Manager)

	case DeviceEventMsg:
		event := midi.DeviceEvent(msg)
		switch event.Type {
		case midi.DeviceConnected:
			m.keyboard = event.Controller
			m.Manager.SetMIDIInput(event.Controller)
			m.status = "keyboard: " + event.ID
		case midi.DeviceDisconnected:
			if m.keyboard != nil && m.keyboard.ID() == event.ID {
				m.keyboard = nil
				m.status = "keyboard disconnected"
			}
		}
		return m, ListenForDevices(m.DeviceMgr)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		m.Manager.Stop()
		m.saveConfig()
		return m, tea.Quit

	case key.Matches(msg, keys.Help):
		m.showHelp = !m.showHelp

	case key.Matches(msg, keys.Play):
		_, playing, _ := m.Manager.GetState()
		if playing {
			m.Manager.Stop()
		} else {
			m.Manager.Play()
		}

	case key.Matches(msg, keys.TempoUp):
		_, _, tempo := m.Manager.GetState()
		m.Manager.SetTempo(tempo + 5)

	case key.Matches(msg, keys.TempoDown):
		_, _, tempo := m.Manager.GetState()
		m.Manager.SetTempo(tempo - 5)

	case key.Matches(msg, keys.Track):
		m.selected = int(msg.String()[0] - '1')

	case key.Matches(msg, keys.NextTrack):
		m.selected = (m.selected + 1) % sequencer.NumTracks

	case key.Matches(msg, keys.PrevTrack):
		m.selected = (m.selected + sequencer.NumTracks - 1) % sequencer.NumTracks

	case key.Matches(msg, keys.Mute):
		m.Manager.ToggleMute(m.selected)

	case key.Matches(msg, keys.Export):
		m.exportMIDI()

	// Generation
	case key.Matches(msg, keys.NextAlgo):
		m.algo = (m.algo + 1) % len(generate.Algorithms)
	case key.Matches(msg, keys.Generate):
		algo := generate.Algorithms[m.algo]
		p := m.Engine.Generate(algo, m.patternLength(), m.density)
		m.Manager.SetPattern(m.selected, p)
		m.status = fmt.Sprintf("%s -> track %d", algo, m.selected+1)
	case key.Matches(msg, keys.DensityDown):
		m.density = clampUnit(m.density - 0.1)
	case key.Matches(msg, keys.DensityUp):
		m.density = clampUnit(m.density + 0.1)

	// Processing
	case key.Matches(msg, keys.NextVariation):
		m.variation = (m.variation + 1) % len(pattern.Variations)
	case key.Matches(msg, keys.Vary):
		v := pattern.Variations[m.variation]
		p := m.Processor.Variation(m.Manager.Pattern(m.selected), v, m.amount)
		m.Manager.SetPattern(m.selected, p)
		m.status = fmt.Sprintf("%s %.1f -> track %d", v, m.amount, m.selected+1)
	case key.Matches(msg, keys.AmountDown):
		m.amount = clampUnit(m.amount - 0.1)
	case key.Matches(msg, keys.AmountUp):
		m.amount = clampUnit(m.amount + 0.1)
	case key.Matches(msg, keys.BankSave):
		name := trackName(m.selected)
		m.Processor.Bank().Save(name, m.Manager.Pattern(m.selected))
		m.status = "saved " + name
	case key.Matches(msg, keys.BankLoad):
		name := trackName(m.selected)
		p, err := m.Processor.Bank().Get(name)
		if err != nil {
			m.status = err.Error()
			break
		}
		m.Manager.SetPattern(m.selected, p)
		m.status = "loaded " + name
	case key.Matches(msg, keys.NextTrans):
		m.transition = (m.transition + 1) % len(pattern.Transitions)
	case key.Matches(msg, keys.Transition):
		m.applyTransition()
	case key.Matches(msg, keys.Blend):
		m.blendBank()

	// Arpeggiator
	case key.Matches(msg, keys.Melody):
		m.seedArp()
	case key.Matches(msg, keys.NextStyle):
		m.style = (m.style + 1) % len(melody.Styles)
	case key.Matches(msg, keys.ClearArp):
		m.Manager.Arp().ClearNotes()
	case key.Matches(msg, keys.NextMode):
		cfg := m.Manager.Arp().Config()
		cfg.Mode = next(arp.Modes, cfg.Mode)
		m.Manager.Arp().SetConfig(cfg)
	case key.Matches(msg, keys.NextPattern):
		cfg := m.Manager.Arp().Config()
		cfg.Pattern = next(arp.Patterns, cfg.Pattern)
		m.Manager.Arp().SetConfig(cfg)
	case key.Matches(msg, keys.Hold):
		cfg := m.Manager.Arp().Config()
		cfg.Hold = !cfg.Hold
		m.Manager.Arp().SetConfig(cfg)
	}
	return m, nil
}

// exportMIDI writes the tracks as a Standard MIDI File next to the config
func (m *Model) exportMIDI() {
	path := m.exportPath
	if path == "" {
		dir, err := config.ConfigDir()
		if err != nil {
			m.status = err.Error()
			return
		}
		path = filepath.Join(dir, "pattern.mid")
	}
	if err := m.Manager.ExportMIDI(path); err != nil {
		m.status = "export: " + err.Error()
		return
	}
	m.status = "wrote " + path
}

// applyTransition bridges the selected track to the next one, using the
// banked patterns for both
func (m *Model) applyTransition() {
	t := pattern.Transitions[m.transition]
	to := (m.selected + 1) % sequencer.NumTracks
	p, err := m.Processor.TransitionNamed(trackName(m.selected), trackName(to), t)
	if err != nil {
		m.status = err.Error()
		return
	}
	m.Manager.SetPattern(m.selected, p)
	m.status = fmt.Sprintf("%s %s -> %s", t, trackName(m.selected), trackName(to))
}

// blendBank blends every banked pattern into the selected track
func (m *Model) blendBank() {
	names := m.Processor.Bank().Names()
	if len(names) == 0 {
		m.status = "bank is empty"
		return
	}
	p, err := m.Processor.Blend(names, nil)
	if err != nil {
		m.status = err.Error()
		return
	}
	m.Manager.SetPattern(m.selected, p)
	m.status = fmt.Sprintf("blend of %d -> track %d", len(names), m.selected+1)
}

// seedArp generates a short melody and holds it on the arpeggiator
func (m *Model) seedArp() {
	style := melody.Styles[m.style]
	sc := scale.Default.Scale(m.Config.Scale)
	notes := m.Melody.Generate(4, sc, m.Config.Root, style)
	m.Manager.Arp().SetHeldNotes(notes)
	m.status = fmt.Sprintf("%s melody on arp", style)
}

func (m *Model) saveConfig() {
	_, _, tempo := m.Manager.GetState()
	m.Config.Tempo = tempo
	m.Config.UI.LastTrack = m.selected
	m.Config.Arp.SetArpConfig(m.Manager.Arp().Config())
	if err := m.Config.Save(); err != nil {
		debug.Log("config", "save: %v", err)
	}
}

func (m Model) patternLength() int {
	if n := m.Config.UI.PatternLength; n > 0 {
		return n
	}
	return 16
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	snap := m.Manager.Snapshot()
	arpCfg := m.Manager.Arp().Config()

	// Styles
	headerStyle := lipgloss.NewStyle().Foreground(m.Theme.Accent())
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())
	labelStyle := lipgloss.NewStyle().Foreground(m.Theme.FG())
	statusStyle := lipgloss.NewStyle().
		Foreground(m.Theme.FG()).
		Background(m.Theme.Muted()).
		Padding(0, 1)

	playState := "STOP"
	if snap.Playing {
		playState = "PLAY"
	}
	deviceStatus := ""
	if m.keyboard != nil {
		deviceStatus = "  KB"
	}
	header := headerStyle.Render(fmt.Sprintf("go-pattern  %s  %3dbpm  step:%03d  seed:%d%s",
		playState, snap.Tempo, snap.Step, m.Engine.Seed(), deviceStatus))

	// Tracks
	rows := make([]widgets.TrackRow, sequencer.NumTracks)
	for i, t := range snap.Tracks {
		rows[i] = widgets.TrackRow{Name: t.Name, Pattern: t.Pattern, Muted: t.Muted, Selected: i == m.selected}
	}
	playhead := -1
	if snap.Playing {
		playhead = snap.Step - 1
	}
	tracks := widgets.RenderTracks(m.Theme, rows, playhead)

	// Tools
	tools := labelStyle.Render(fmt.Sprintf("gen %-10s dens %.1f   var %-10s amt %.1f   trans %s",
		generate.Algorithms[m.algo], m.density, pattern.Variations[m.variation], m.amount, pattern.Transitions[m.transition]))

	hold := ""
	if arpCfg.Hold {
		hold = " hold"
	}
	arpLine := labelStyle.Render(fmt.Sprintf("arp %s %s %s oct%d%s  melody %s  ",
		arpCfg.Mode, arpCfg.Pattern, arpCfg.Speed, arpCfg.OctaveRange, hold, melody.Styles[m.style])) +
		widgets.RenderHeld(m.Theme, m.Manager.Arp().HeldNotes())

	lastLine := ""
	if m.last.pat != nil {
		lastLine = dimStyle.Render(m.last.source+": ") + widgets.RenderPattern(m.Theme, m.last.pat, -1)
	}

	helpView := m.help.ShortHelpView(keys.ShortHelp())
	if m.showHelp {
		helpView = dimStyle.Render(widgets.RenderKeyHelp(keys.helpSections()))
	}

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n\n")
	out.WriteString(tracks)
	out.WriteString("\n\n")
	out.WriteString(tools)
	out.WriteString("\n")
	out.WriteString(arpLine)
	if lastLine != "" {
		out.WriteString("\n")
		out.WriteString(lastLine)
	}
	out.WriteString("\n\n")
	out.WriteString(helpView)

	if m.status != "" {
		out.WriteString("\n")
		out.WriteString(statusStyle.Render(m.status))
	}

	return out.String()
}

func trackName(idx int) string {
	return fmt.Sprintf("track%d", idx+1)
}

func next[T comparable](list []T, cur T) T {
	for i, v := range list {
		if v == cur {
			return list[(i+1)%len(list)]
		}
	}
	return list[0]
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clampIndex(i, n int) int {
	if i < 0 || i >= n {
		return 0
	}
	return i
}
