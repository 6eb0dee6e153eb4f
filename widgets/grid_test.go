package widgets

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"go-pattern/pattern"
	"go-pattern/theme"
)

func TestRenderPatternSymbols(t *testing.T) {
	th := theme.New(nil)
	out := RenderPattern(th, pattern.Parse("x.o.x..."), 4)

	for _, want := range []string{"●", "○", "·", "▶"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in %q", want, out)
		}
	}
	if w := lipgloss.Width(out); w != 9 {
		t.Errorf("width = %d, want 9 (8 steps + group gap)", w)
	}
}

func TestRenderPatternEmpty(t *testing.T) {
	if out := RenderPattern(theme.New(nil), nil, 0); !strings.Contains(out, "empty") {
		t.Errorf("empty pattern = %q", out)
	}
}

func TestNoteName(t *testing.T) {
	tests := []struct {
		pitch int
		want  string
	}{
		{60, "C4"},
		{61, "C#4"},
		{21, "A0"},
		{0, "C-1"},
		{-3, "?"},
	}
	for _, tt := range tests {
		if got := NoteName(tt.pitch); got != tt.want {
			t.Errorf("NoteName(%d) = %q, want %q", tt.pitch, got, tt.want)
		}
	}
}

func TestRenderKeyHelp(t *testing.T) {
	out := RenderKeyHelp([]KeySection{{Title: "Transport", Keys: []KeyBinding{{"space", "play/stop"}}}})
	if !strings.Contains(out, "Transport") || !strings.Contains(out, "space") {
		t.Errorf("help = %q", out)
	}
}
