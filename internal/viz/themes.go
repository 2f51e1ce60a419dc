package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the colour scheme of the live view. Node colours come from
// the data; a theme only colours chrome, links and the selection.
type Theme struct {
	Name      string
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Edge      lipgloss.Color
	Highlight lipgloss.Color
	Warning   lipgloss.Color
}

var (
	ThemeNebula = Theme{
		Name:      "nebula",
		Primary:   lipgloss.Color("#7c4dff"),
		Secondary: lipgloss.Color("#00e5ff"),
		Accent:    lipgloss.Color("#ff4081"),
		Text:      lipgloss.Color("#eceff1"),
		Muted:     lipgloss.Color("#607d8b"),
		Edge:      lipgloss.Color("#37474f"),
		Highlight: lipgloss.Color("#ffeb3b"),
		Warning:   lipgloss.Color("#ff9100"),
	}

	ThemeOcean = Theme{
		Name:      "ocean",
		Primary:   lipgloss.Color("#0077be"),
		Secondary: lipgloss.Color("#00a8cc"),
		Accent:    lipgloss.Color("#ffd700"),
		Text:      lipgloss.Color("#e0f0ff"),
		Muted:     lipgloss.Color("#4488aa"),
		Edge:      lipgloss.Color("#1f4e6b"),
		Highlight: lipgloss.Color("#ffd700"),
		Warning:   lipgloss.Color("#ffcc00"),
	}

	ThemeMono = Theme{
		Name:      "mono",
		Primary:   lipgloss.Color("#ffffff"),
		Secondary: lipgloss.Color("#cccccc"),
		Accent:    lipgloss.Color("#0088ff"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#888888"),
		Edge:      lipgloss.Color("#444444"),
		Highlight: lipgloss.Color("#0088ff"),
		Warning:   lipgloss.Color("#ffaa00"),
	}

	Themes = []Theme{
		ThemeNebula,
		ThemeOcean,
		ThemeMono,
	}
)

// GetTheme returns a theme by name, falling back to nebula.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeNebula
}

// NextTheme returns the theme after t in Themes, wrapping around.
func NextTheme(t Theme) Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

func (t Theme) Palette() Palette {
	return Palette{Edge: string(t.Edge), Highlight: string(t.Highlight)}
}
