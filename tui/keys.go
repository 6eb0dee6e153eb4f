package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"go-pattern/widgets"
)

func binding(desc string, ks ...string) key.Binding {
	return key.NewBinding(key.WithKeys(ks...), key.WithHelp(ks[0], desc))
}

type keyMap struct {
	Quit key.Binding
	Help key.Binding

	// Transport
	Play      key.Binding
	TempoUp   key.Binding
	TempoDown key.Binding
	Track     key.Binding
	NextTrack key.Binding
	PrevTrack key.Binding
	Mute      key.Binding
	Export    key.Binding

	// Generation
	NextAlgo    key.Binding
	Generate    key.Binding
	DensityDown key.Binding
	DensityUp   key.Binding

	// Processing
	NextVariation key.Binding
	Vary          key.Binding
	AmountDown    key.Binding
	AmountUp      key.Binding
	BankSave      key.Binding
	BankLoad      key.Binding
	NextTrans     key.Binding
	Transition    key.Binding
	Blend         key.Binding

	// Arpeggiator
	Melody      key.Binding
	NextStyle   key.Binding
	ClearArp    key.Binding
	NextMode    key.Binding
	NextPattern key.Binding
	Hold        key.Binding
}

var keys = keyMap{
	Quit: binding("quit", "q", "ctrl+c"),
	Help: binding("help", "?"),

	Play:      key.NewBinding(key.WithKeys(" ", "p"), key.WithHelp("space", "play/stop")),
	TempoUp:   binding("tempo +5", "+", "="),
	TempoDown: binding("tempo -5", "-", "_"),
	Track:     key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8"), key.WithHelp("1-8", "select track")),
	NextTrack: binding("next track", "j", "down"),
	PrevTrack: binding("previous track", "k", "up"),
	Mute:      binding("mute track", "m"),
	Export:    binding("export .mid", "w"),

	NextAlgo:    binding("next algorithm", "a"),
	Generate:    binding("generate", "g"),
	DensityDown: binding("density -0.1", "["),
	DensityUp:   binding("density +0.1", "]"),

	NextVariation: binding("next variation", "V"),
	Vary:          binding("apply variation", "v"),
	AmountDown:    binding("amount -0.1", "{"),
	AmountUp:      binding("amount +0.1", "}"),
	BankSave:      binding("save to bank", "s"),
	BankLoad:      binding("load from bank", "l"),
	NextTrans:     binding("next transition", "T"),
	Transition:    binding("transition to next track", "t"),
	Blend:         binding("blend bank", "b"),

	Melody:      binding("melody to arp", "e"),
	NextStyle:   binding("next melody style", "y"),
	ClearArp:    binding("clear arp", "c"),
	NextMode:    binding("next arp mode", "o"),
	NextPattern: binding("next arp pattern", "O"),
	Hold:        binding("hold", "h"),
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Play, k.Track, k.Generate, k.Vary, k.Melody, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Play, k.TempoUp, k.TempoDown, k.Track, k.NextTrack, k.PrevTrack, k.Mute, k.Export},
		{k.NextAlgo, k.Generate, k.DensityDown, k.DensityUp},
		{k.NextVariation, k.Vary, k.AmountDown, k.AmountUp, k.BankSave, k.BankLoad, k.NextTrans, k.Transition, k.Blend},
		{k.Melody, k.NextStyle, k.ClearArp, k.NextMode, k.NextPattern, k.Hold},
		{k.Help, k.Quit},
	}
}

var sectionTitles = []string{"Transport", "Generate", "Process", "Arpeggiator", ""}

// helpSections converts the full key map for widgets.RenderKeyHelp
func (k keyMap) helpSections() []widgets.KeySection {
	groups := k.FullHelp()
	sections := make([]widgets.KeySection, len(groups))
	for i, group := range groups {
		sections[i].Title = sectionTitles[i]
		for _, b := range group {
			h := b.Help()
			sections[i].Keys = append(sections[i].Keys, widgets.KeyBinding{Key: h.Key, Desc: h.Desc})
		}
	}
	return sections
}
