// Package components holds small shared render helpers for the TUI.
package components

import (
	"github.com/charmbracelet/lipgloss"

	"wayfarer/internal/tui/theme"
)

// RenderStatusBar renders the bottom status bar: key hints on the left,
// session identity on the right.
func RenderStatusBar(width int, hints, who string) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Width(width)

	left := " " + hints
	right := ""
	if who != "" {
		right = who + " "
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	bar := left
	for i := 0; i < padding; i++ {
		bar += " "
	}
	bar += right

	return style.Render(bar)
}

// RenderAlert renders a blocking, dismissible error overlay.
func RenderAlert(msg string, width int) string {
	t := theme.Active

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Red).
		Padding(1, 2).
		Width(min(width-4, 60))

	body := lipgloss.NewStyle().Foreground(t.TextPrimary).Render(msg)
	hint := lipgloss.NewStyle().Foreground(t.TextDim).Render("press esc or enter to dismiss")

	return box.Render(body + "\n\n" + hint)
}

// RenderBanner renders a non-blocking inline error banner.
func RenderBanner(msg string, width int) string {
	t := theme.Active

	return lipgloss.NewStyle().
		Foreground(t.Red).
		Width(width).
		Padding(0, 1).
		Render("! " + msg)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
