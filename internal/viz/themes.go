package viz

import "github.com/charmbracelet/lipgloss"

// Theme colors the panel around the LED preview.
type Theme struct {
	Name    string
	Primary lipgloss.Color
	Accent  lipgloss.Color
	Border  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	// Socket is drawn for unlit LEDs.
	Socket lipgloss.Color
}

var (
	ThemeEmber = Theme{
		Name:    "ember",
		Primary: lipgloss.Color("#ff8c1a"),
		Accent:  lipgloss.Color("#ffd24d"),
		Border:  lipgloss.Color("#553322"),
		Text:    lipgloss.Color("#fff2e6"),
		Muted:   lipgloss.Color("#8c6d5a"),
		Socket:  lipgloss.Color("#140c08"),
	}

	ThemeIce = Theme{
		Name:    "ice",
		Primary: lipgloss.Color("#00ccff"),
		Accent:  lipgloss.Color("#b3f0ff"),
		Border:  lipgloss.Color("#224455"),
		Text:    lipgloss.Color("#e6faff"),
		Muted:   lipgloss.Color("#5a7f8c"),
		Socket:  lipgloss.Color("#080f14"),
	}

	ThemeMono = Theme{
		Name:    "mono",
		Primary: lipgloss.Color("#ffffff"),
		Accent:  lipgloss.Color("#cccccc"),
		Border:  lipgloss.Color("#444444"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#888888"),
		Socket:  lipgloss.Color("#000000"),
	}

	CurrentTheme = ThemeEmber

	Themes = []Theme{
		ThemeEmber,
		ThemeIce,
		ThemeMono,
	}
)

// GetTheme returns a theme by name
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeEmber
}

// SetTheme changes the current theme
func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

// NextTheme switches to the theme after the current one.
func NextTheme() {
	for i, t := range Themes {
		if t.Name == CurrentTheme.Name {
			CurrentTheme = Themes[(i+1)%len(Themes)]
			return
		}
	}
	CurrentTheme = ThemeEmber
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
