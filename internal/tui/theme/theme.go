// Package theme defines color themes for the wayfarer TUI.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme defines the color roles used throughout the TUI.
type Theme struct {
	Name         string
	Background   lipgloss.Color
	Surface      lipgloss.Color // card/panel backgrounds
	Border       lipgloss.Color // subtle borders
	BorderAccent lipgloss.Color // focused borders
	TextDim      lipgloss.Color // hints, disabled
	TextMuted    lipgloss.Color // labels, metadata
	TextPrimary  lipgloss.Color // content
	Accent       lipgloss.Color // active states
	Green        lipgloss.Color // money, success
	Orange       lipgloss.Color // warnings
	Red          lipgloss.Color // errors, destructive
	Yellow       lipgloss.Color
	Blue         lipgloss.Color
}

// Active is the currently selected theme.
var Active = FlexokiDark

// FlexokiDark is the default theme.
var FlexokiDark = Theme{
	Name:         "flexoki-dark",
	Background:   lipgloss.Color("#100F0F"),
	Surface:      lipgloss.Color("#1C1B1A"),
	Border:       lipgloss.Color("#403E3C"),
	BorderAccent: lipgloss.Color("#3AA99F"),
	TextDim:      lipgloss.Color("#575653"),
	TextMuted:    lipgloss.Color("#878580"),
	TextPrimary:  lipgloss.Color("#FFFCF0"),
	Accent:       lipgloss.Color("#3AA99F"),
	Green:        lipgloss.Color("#879A39"),
	Orange:       lipgloss.Color("#DA702C"),
	Red:          lipgloss.Color("#D14D41"),
	Yellow:       lipgloss.Color("#D0A215"),
	Blue:         lipgloss.Color("#4385BE"),
}

// CatppuccinMocha is a soft pastel alternative.
var CatppuccinMocha = Theme{
	Name:         "catppuccin-mocha",
	Background:   lipgloss.Color("#1E1E2E"),
	Surface:      lipgloss.Color("#313244"),
	Border:       lipgloss.Color("#585B70"),
	BorderAccent: lipgloss.Color("#89B4FA"),
	TextDim:      lipgloss.Color("#6C7086"),
	TextMuted:    lipgloss.Color("#A6ADC8"),
	TextPrimary:  lipgloss.Color("#CDD6F4"),
	Accent:       lipgloss.Color("#89B4FA"),
	Green:        lipgloss.Color("#A6E3A1"),
	Orange:       lipgloss.Color("#FAB387"),
	Red:          lipgloss.Color("#F38BA8"),
	Yellow:       lipgloss.Color("#F9E2AF"),
	Blue:         lipgloss.Color("#89DCEB"),
}

// All lists the available themes.
var All = []Theme{FlexokiDark, CatppuccinMocha}

// SetActive selects a theme by name, keeping the current one if unknown.
func SetActive(name string) {
	for _, t := range All {
		if t.Name == name {
			Active = t
			return
		}
	}
}
