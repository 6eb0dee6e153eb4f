package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"go-pattern/pattern"
	"go-pattern/theme"
)

// RenderStep renders a single step, colored by value
func RenderStep(th *theme.Theme, v float64, playhead bool) string {
	color := th.Muted()
	switch {
	case playhead:
		color = th.Cursor()
	case v >= 1:
		color = th.Active()
	case v > 0:
		color = th.Accent()
	}
	style := lipgloss.NewStyle().Foreground(color)
	return style.Render(string(th.StepRune(v, playhead)))
}

// RenderPattern renders a pattern as one row of steps. playhead < 0 hides it;
// otherwise it wraps over the pattern length. A space separates each group of 4.
func RenderPattern(th *theme.Theme, p pattern.Pattern, playhead int) string {
	if len(p) == 0 {
		return lipgloss.NewStyle().Foreground(th.Muted()).Render("(empty)")
	}
	at := -1
	if playhead >= 0 {
		at = playhead % len(p)
	}

	var out strings.Builder
	for i, v := range p {
		if i > 0 && i%4 == 0 {
			out.WriteString(" ")
		}
		out.WriteString(RenderStep(th, v, i == at))
	}
	return out.String()
}

// TrackRow is one line of the track list
type TrackRow struct {
	Name     string
	Pattern  pattern.Pattern
	Muted    bool
	Selected bool
}

// RenderTracks renders the track list with the playhead at step
func RenderTracks(th *theme.Theme, rows []TrackRow, step int) string {
	nameStyle := lipgloss.NewStyle().Foreground(th.FG()).Width(10)
	selStyle := nameStyle.Foreground(th.Success()).Bold(true)

	var lines []string
	for i, r := range rows {
		style := nameStyle
		marker := " "
		if r.Selected {
			style = selStyle
			marker = ">"
		}
		mute := " "
		if r.Muted {
			mute = string(th.Symbols.Muted)
		}
		lines = append(lines, fmt.Sprintf("%s%d %s%s %s", marker, i+1, style.Render(r.Name), mute, RenderPattern(th, r.Pattern, step)))
	}
	return strings.Join(lines, "\n")
}

// RenderHeld renders held arp notes as note names
func RenderHeld(th *theme.Theme, notes []int) string {
	if len(notes) == 0 {
		return lipgloss.NewStyle().Foreground(th.Muted()).Render("-")
	}
	names := make([]string, len(notes))
	for i, n := range notes {
		names[i] = NoteName(n)
	}
	return lipgloss.NewStyle().Foreground(th.Accent()).Render(string(th.Symbols.Held) + " " + strings.Join(names, " "))
}

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// NoteName formats a MIDI pitch as e.g. C4 (60)
func NoteName(pitch int) string {
	if pitch < 0 {
		return "?"
	}
	return fmt.Sprintf("%s%d", noteNames[pitch%12], pitch/12-1)
}

// RenderKeyHelp formats key bindings in a friendly way
func RenderKeyHelp(sections []KeySection) string {
	var lines []string
	for _, sec := range sections {
		if sec.Title != "" {
			lines = append(lines, sec.Title)
		}
		for _, k := range sec.Keys {
			lines = append(lines, fmt.Sprintf("  %-12s %s", k.Key, k.Desc))
		}
	}
	return strings.Join(lines, "\n")
}

// KeySection groups related key bindings
type KeySection struct {
	Title string
	Keys  []KeyBinding
}

// KeyBinding is a single key and its description
type KeyBinding struct {
	Key  string
	Desc string
}
