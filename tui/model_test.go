package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"go-pattern/arp"
	"go-pattern/clock"
	"go-pattern/config"
	"go-pattern/generate"
	"go-pattern/melody"
	"go-pattern/pattern"
	"go-pattern/rng"
	"go-pattern/sequencer"
	"go-pattern/theme"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	clk := clock.NewManual(time.Unix(0, 0))
	mgr := sequencer.NewManager(clk, arp.New(clk, rng.New(3), arp.DefaultConfig()))
	t.Cleanup(mgr.Close)
	return NewModel(Deps{
		Manager:   mgr,
		Engine:    generate.NewEngine(rng.New(1)),
		Processor: pattern.NewProcessor(rng.New(2)),
		Melody:    melody.New(rng.New(4)),
		Config:    config.DefaultConfig(),
		Theme:     theme.New(nil),
	})
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case " ":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func TestGenerateIntoSelectedTrack(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "3", "g")

	p := m.Manager.Pattern(2)
	if p.Len() != 16 {
		t.Fatalf("track 3 pattern length = %d, want 16", p.Len())
	}
	if m.last.source != "generate" || !m.last.pat.Equal(p) {
		t.Errorf("last result = %s %v", m.last.source, m.last.pat)
	}
	if !strings.Contains(m.status, "euclidean") {
		t.Errorf("status = %q", m.status)
	}
}

func TestBankSaveLoad(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "g", "s")
	saved := m.Manager.Pattern(0)

	m.Manager.SetPattern(0, pattern.New(16))
	m = press(t, m, "l")
	if !m.Manager.Pattern(0).Equal(saved) {
		t.Errorf("loaded %v, want %v", m.Manager.Pattern(0), saved)
	}

	m = press(t, m, "2", "l")
	if !strings.Contains(m.status, "not found") {
		t.Errorf("missing bank entry status = %q", m.status)
	}
}

func TestVariationUsesProcessor(t *testing.T) {
	m := newTestModel(t)
	m.Manager.SetPattern(0, pattern.Parse("x..."))
	// cycle to reverse
	for pattern.Variations[m.variation] != pattern.VariationReverse {
		m = press(t, m, "V")
	}
	m = press(t, m, "v")
	if got := m.Manager.Pattern(0).String(); got != "...x" {
		t.Errorf("reversed = %s", got)
	}
	if m.last.source != "process" {
		t.Errorf("last source = %s", m.last.source)
	}
}

func TestArpControls(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "o", "h", "e")

	cfg := m.Manager.Arp().Config()
	if cfg.Mode != arp.ModeDown || !cfg.Hold {
		t.Errorf("arp config = %+v", cfg)
	}
	if len(m.Manager.Arp().HeldNotes()) == 0 || m.Manager.Arp().State() != arp.Running {
		t.Error("melody did not seed the arpeggiator")
	}

	m = press(t, m, "c")
	if m.Manager.Arp().State() != arp.Idle {
		t.Error("clear did not stop the arpeggiator")
	}
}

func TestTransportKeys(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, " ", "+")
	_, playing, tempo := m.Manager.GetState()
	if !playing || tempo != 125 {
		t.Errorf("playing=%v tempo=%d", playing, tempo)
	}
	m = press(t, m, "p")
	if _, playing, _ := m.Manager.GetState(); playing {
		t.Error("p did not stop")
	}
}

func TestViewRenders(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "g")
	out := m.View()
	for _, want := range []string{"go-pattern", "kick", "euclidean", "arp up"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestHelpToggle(t *testing.T) {
	m := newTestModel(t)
	if out := m.View(); strings.Contains(out, "Arpeggiator") {
		t.Error("full help shown before ?")
	}
	m = press(t, m, "?")
	out := m.View()
	for _, want := range []string{"Transport", "Arpeggiator", "export .mid"} {
		if !strings.Contains(out, want) {
			t.Errorf("full help missing %q", want)
		}
	}
}

func TestExportKey(t *testing.T) {
	m := newTestModel(t)
	m.exportPath = filepath.Join(t.TempDir(), "out.mid")
	m = press(t, m, "g", "w")

	info, err := os.Stat(m.exportPath)
	if err != nil {
		t.Fatalf("export not written: %v", err)
	}
	if info.Size() == 0 {
		t.Error("export is empty")
	}
	if !strings.HasPrefix(m.status, "wrote ") {
		t.Errorf("status = %q", m.status)
	}
}
