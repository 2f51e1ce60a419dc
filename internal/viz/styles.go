package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const statsWidth = 46

type styles struct {
	canvas      lipgloss.Style
	stats       lipgloss.Style
	header      lipgloss.Style
	label       lipgloss.Style
	value       lipgloss.Style
	activeParam lipgloss.Style
	graph       lipgloss.Style
	help        lipgloss.Style
	running     lipgloss.Style
	paused      lipgloss.Style
	title       lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		canvas: lipgloss.NewStyle().Padding(0, 1),
		stats: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(t.Muted).
			Padding(0, 2).
			Width(statsWidth),
		header:      lipgloss.NewStyle().Foreground(t.Secondary).Bold(true).MarginBottom(1),
		label:       lipgloss.NewStyle().Foreground(t.Muted).Width(12),
		value:       lipgloss.NewStyle().Foreground(t.Text),
		activeParam: lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		graph:       lipgloss.NewStyle().Foreground(t.Secondary),
		help:        lipgloss.NewStyle().Foreground(t.Muted).Italic(true).MarginTop(1),
		running:     lipgloss.NewStyle().Foreground(t.Secondary).Bold(true),
		paused:      lipgloss.NewStyle().Foreground(t.Warning).Bold(true),
		title:       lipgloss.NewStyle().Foreground(t.Highlight).Bold(true),
	}
}

// paramBar draws val relative to twice its initial value.
func paramBar(val, initial float64, width int) string {
	if initial == 0 {
		initial = 1e-6
	}
	ratio := val / (2 * initial)
	if ratio > 1 {
		ratio = 1
	} else if ratio < 0 {
		ratio = 0
	}
	filled := int(ratio * float64(width))
	return "[" + strings.Repeat("=", filled) + strings.Repeat("-", width-filled) + "]"
}

// swatch renders a coloured block for a node colour.
func swatch(color string) string {
	if color == "" {
		return " "
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("●")
}

// wrap breaks s into lines of at most width runes on spaces.
func wrap(s string, width int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}
	var (
		lines []string
		line  strings.Builder
	)
	for _, w := range words {
		if line.Len() > 0 && len([]rune(line.String()))+1+len([]rune(w)) > width {
			lines = append(lines, line.String())
			line.Reset()
		}
		if line.Len() > 0 {
			line.WriteByte(' ')
		}
		line.WriteString(w)
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	return lines
}
