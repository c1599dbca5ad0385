package viz

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

// Theme colours the live view. Series is the profile plot colour.
type Theme struct {
	Name   string
	Accent lipgloss.Color
	Muted  lipgloss.Color
	Warm   lipgloss.Color
	Cold   lipgloss.Color
	Series asciigraph.AnsiColor
}

var (
	ThemeEmber = Theme{
		Name:   "ember",
		Accent: lipgloss.Color("#ff9f43"),
		Muted:  lipgloss.Color("#8b6b5c"),
		Warm:   lipgloss.Color("#ff4757"),
		Cold:   lipgloss.Color("#48dbfb"),
		Series: asciigraph.Orange,
	}

	ThemeGlacier = Theme{
		Name:   "glacier",
		Accent: lipgloss.Color("#00a8cc"),
		Muted:  lipgloss.Color("#4488aa"),
		Warm:   lipgloss.Color("#ffd700"),
		Cold:   lipgloss.Color("#0077be"),
		Series: asciigraph.Cyan,
	}

	ThemeMinimal = Theme{
		Name:   "minimal",
		Accent: lipgloss.Color("#ffffff"),
		Muted:  lipgloss.Color("#888888"),
		Warm:   lipgloss.Color("#cccccc"),
		Cold:   lipgloss.Color("#666666"),
		Series: asciigraph.Default,
	}

	CurrentTheme = ThemeEmber

	Themes = []Theme{ThemeEmber, ThemeGlacier, ThemeMinimal}
)

// GetTheme returns a theme by name, or the default.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeEmber
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
}
