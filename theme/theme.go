package theme

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	Palette *Palette
	Symbols Symbols
}

type Symbols struct {
	// Pattern steps
	StepOff   rune // · silent step
	StepOn    rune // ● full hit
	StepGhost rune // ○ ghost note

	// Steps under the playhead
	PlayOff   rune // ▷ playhead on silent step
	PlayOn    rune // ▶ playhead on hit
	PlayGhost rune // ▹ playhead on ghost

	Muted rune // ✕ muted track marker
	Held  rune // ♪ held arp note
}

func New(palette *Palette) *Theme {
	if palette == nil || len(palette.Colors) == 0 {
		palette = Plasma()
	}
	return &Theme{
		Palette: palette,
		Symbols: Symbols{
			StepOff:   '·',
			StepOn:    '●',
			StepGhost: '○',

			PlayOff:   '▷',
			PlayOn:    '▶',
			PlayGhost: '▹',

			Muted: '✕',
			Held:  '♪',
		},
	}
}

// StepRune picks the symbol for a step value, with or without the playhead
func (t *Theme) StepRune(v float64, playhead bool) rune {
	switch {
	case v >= 1:
		if playhead {
			return t.Symbols.PlayOn
		}
		return t.Symbols.StepOn
	case v > 0:
		if playhead {
			return t.Symbols.PlayGhost
		}
		return t.Symbols.StepGhost
	default:
		if playhead {
			return t.Symbols.PlayOff
		}
		return t.Symbols.StepOff
	}
}

// Color roles mapped to palette positions (0-1)
const (
	RoleBG      = 0.0 // deep purple
	RoleSurface = 0.1 // dark purple
	RoleMuted   = 0.2 // purple-magenta
	RoleFG      = 0.4 // pink-purple (readable)
	RoleAccent  = 0.5 // vivid magenta
	RoleCursor  = 0.6 // rose pink
	RoleActive  = 0.7 // soft red
	RoleWarning = 0.8 // orange
	RoleSuccess = 1.0 // bright yellow
)

// Style helpers

func (t *Theme) BG() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleBG))
}

func (t *Theme) FG() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleFG))
}

func (t *Theme) Accent() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleAccent))
}

func (t *Theme) Muted() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleMuted))
}

func (t *Theme) Active() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleActive))
}

func (t *Theme) Cursor() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleCursor))
}

func (t *Theme) Warning() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleWarning))
}

func (t *Theme) Success() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleSuccess))
}

// Color returns lipgloss color for any normalized value 0-1
func (t *Theme) Color(norm float64) lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(norm))
}

func rgbToLipgloss(c RGB) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2]))
}
