// Package theme defines the color themes shared by colest's terminal output.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme defines the color roles used by the CLI tables and the TUI.
type Theme struct {
	Name         string
	Surface      lipgloss.Color // card and panel backgrounds
	Border       lipgloss.Color
	BorderAccent lipgloss.Color // focused field, result card
	TextDim      lipgloss.Color // hints, table rules
	TextMuted    lipgloss.Color // labels
	TextPrimary  lipgloss.Color
	Accent       lipgloss.Color // headers, totals
	Increase     lipgloss.Color // a step that raises the estimate
	Decrease     lipgloss.Color // a step that lowers it
	Warn         lipgloss.Color
	Error        lipgloss.Color
	Bar          lipgloss.Color // category share bars
}

// Active is the currently selected theme.
var Active = FlexokiDark

// FlexokiDark is the default warm dark theme.
var FlexokiDark = Theme{
	Name:         "flexoki-dark",
	Surface:      lipgloss.Color("#1C1B1A"),
	Border:       lipgloss.Color("#403E3C"),
	BorderAccent: lipgloss.Color("#3AA99F"),
	TextDim:      lipgloss.Color("#575653"),
	TextMuted:    lipgloss.Color("#878580"),
	TextPrimary:  lipgloss.Color("#FFFCF0"),
	Accent:       lipgloss.Color("#3AA99F"),
	Increase:     lipgloss.Color("#DA702C"),
	Decrease:     lipgloss.Color("#879A39"),
	Warn:         lipgloss.Color("#D0A215"),
	Error:        lipgloss.Color("#D14D41"),
	Bar:          lipgloss.Color("#4385BE"),
}

// CatppuccinMocha is a soft pastel theme.
var CatppuccinMocha = Theme{
	Name:         "catppuccin-mocha",
	Surface:      lipgloss.Color("#313244"),
	Border:       lipgloss.Color("#585B70"),
	BorderAccent: lipgloss.Color("#89B4FA"),
	TextDim:      lipgloss.Color("#6C7086"),
	TextMuted:    lipgloss.Color("#A6ADC8"),
	TextPrimary:  lipgloss.Color("#CDD6F4"),
	Accent:       lipgloss.Color("#89B4FA"),
	Increase:     lipgloss.Color("#FAB387"),
	Decrease:     lipgloss.Color("#A6E3A1"),
	Warn:         lipgloss.Color("#F9E2AF"),
	Error:        lipgloss.Color("#F38BA8"),
	Bar:          lipgloss.Color("#94E2D5"),
}

// Terminal uses ANSI 16 colors only.
var Terminal = Theme{
	Name:         "terminal",
	Surface:      lipgloss.Color("0"),
	Border:       lipgloss.Color("8"),
	BorderAccent: lipgloss.Color("6"),
	TextDim:      lipgloss.Color("8"),
	TextMuted:    lipgloss.Color("7"),
	TextPrimary:  lipgloss.Color("15"),
	Accent:       lipgloss.Color("6"),
	Increase:     lipgloss.Color("3"),
	Decrease:     lipgloss.Color("2"),
	Warn:         lipgloss.Color("3"),
	Error:        lipgloss.Color("1"),
	Bar:          lipgloss.Color("4"),
}

// All available themes.
var All = []Theme{FlexokiDark, CatppuccinMocha, Terminal}

// Names returns the names of all themes in display order.
func Names() []string {
	names := make([]string, len(All))
	for i, t := range All {
		names[i] = t.Name
	}
	return names
}

// ByName returns a theme by its name, defaulting to FlexokiDark.
func ByName(name string) Theme {
	for _, t := range All {
		if t.Name == name {
			return t
		}
	}
	return FlexokiDark
}

// SetActive sets the active theme by name.
func SetActive(name string) {
	Active = ByName(name)
}

// Delta picks Increase or Decrease for a signed amount.
func (t Theme) Delta(amount float64) lipgloss.Color {
	if amount < 0 {
		return t.Decrease
	}
	return t.Increase
}
