package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the palette for grid and chrome.
type Theme struct {
	Name   string
	Walker lipgloss.Color
	Cell   lipgloss.Color
	Border lipgloss.Color
	Title  lipgloss.Color
	Muted  lipgloss.Color
}

var (
	ThemeClassic = Theme{
		Name:   "classic",
		Walker: lipgloss.Color("#ff3333"), // red on white, like the notebook plot
		Cell:   lipgloss.Color("#dddddd"),
		Border: lipgloss.Color("#444466"),
		Title:  lipgloss.Color("#00ffff"),
		Muted:  lipgloss.Color("#666688"),
	}

	ThemeRetro = Theme{
		Name:   "retro",
		Walker: lipgloss.Color("#88ff88"),
		Cell:   lipgloss.Color("#005500"),
		Border: lipgloss.Color("#00cc00"),
		Title:  lipgloss.Color("#00ff00"),
		Muted:  lipgloss.Color("#005500"),
	}

	ThemeOcean = Theme{
		Name:   "ocean",
		Walker: lipgloss.Color("#ffd700"),
		Cell:   lipgloss.Color("#4488aa"),
		Border: lipgloss.Color("#0077be"),
		Title:  lipgloss.Color("#00a8cc"),
		Muted:  lipgloss.Color("#4488aa"),
	}

	CurrentTheme = ThemeClassic

	Themes = []Theme{ThemeClassic, ThemeRetro, ThemeOcean}
)

// GetTheme returns a theme by name, falling back to classic.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeClassic
}

func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// NextTheme switches to the theme after the current one.
func NextTheme() {
	names := ThemeNames()
	for i, name := range names {
		if name == CurrentTheme.Name {
			SetTheme(names[(i+1)%len(names)])
			return
		}
	}
	SetTheme(names[0])
}
