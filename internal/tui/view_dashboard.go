package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"wayfarer/internal/api"
	"wayfarer/internal/cli"
	"wayfarer/internal/tui/components"
	"wayfarer/internal/tui/theme"
)

// dashboardState holds the trip list view.
type dashboardState struct {
	loading       bool
	trips         []api.Trip
	cursor        int
	banner        string // inline load-failure banner
	confirmDelete *int   // armed trip id awaiting y/n
}

func (a App) updateDashboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tripsLoadedMsg:
		a.dash.loading = false
		if msg.err != nil {
			if cmd := a.authCheck(msg.err); cmd != nil {
				return a, cmd
			}
			a.dash.banner = "Failed to load trips"
			return a, nil
		}
		a.dash.banner = ""
		a.dash.trips = msg.trips
		a.clampDashCursor()
		return a, nil

	case tripDeletedMsg:
		if msg.err != nil {
			return a, a.fail("delete trip", msg.err)
		}
		// Terminal per-item action: drop the row locally, no re-fetch.
		kept := a.dash.trips[:0]
		for _, t := range a.dash.trips {
			if t.ID != msg.id {
				kept = append(kept, t)
			}
		}
		a.dash.trips = kept
		a.clampDashCursor()
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		// Armed delete confirmation: y fires, anything else disarms with
		// no request sent.
		if a.dash.confirmDelete != nil {
			id := *a.dash.confirmDelete
			a.dash.confirmDelete = nil
			if key == "y" || key == "Y" {
				return a, a.deleteTripCmd(id)
			}
			return a, nil
		}

		switch key {
		case "q":
			return a, tea.Quit
		case "esc":
			a.dash.banner = ""
			return a, nil
		case "j", "down":
			if a.dash.cursor < len(a.dash.trips)-1 {
				a.dash.cursor++
			}
			return a, nil
		case "k", "up":
			if a.dash.cursor > 0 {
				a.dash.cursor--
			}
			return a, nil
		case "g":
			a.dash.cursor = 0
			return a, nil
		case "G":
			if len(a.dash.trips) > 0 {
				a.dash.cursor = len(a.dash.trips) - 1
			}
			return a, nil
		case "n":
			return a.openCreate()
		case "r":
			a.dash.loading = true
			return a, tea.Batch(a.spinner.Tick, a.loadTripsCmd())
		case "d":
			if t := a.selectedTrip(); t != nil {
				id := t.ID
				a.dash.confirmDelete = &id
			}
			return a, nil
		case "enter", "l":
			if t := a.selectedTrip(); t != nil {
				return a, a.openDetail(t.ID)
			}
			return a, nil
		}
	}
	return a, nil
}

// authCheck quits the program on auth failures and returns nil otherwise.
func (a *App) authCheck(err error) tea.Cmd {
	if cmd := a.fail("", err); cmd != nil {
		return cmd
	}
	return nil
}

func (a *App) clampDashCursor() {
	if a.dash.cursor >= len(a.dash.trips) {
		a.dash.cursor = len(a.dash.trips) - 1
	}
	if a.dash.cursor < 0 {
		a.dash.cursor = 0
	}
}

func (a App) selectedTrip() *api.Trip {
	if a.dash.cursor < 0 || a.dash.cursor >= len(a.dash.trips) {
		return nil
	}
	return &a.dash.trips[a.dash.cursor]
}

func (a App) viewDashboard() string {
	t := theme.Active

	titleStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	var b strings.Builder
	b.WriteString("\n ")
	b.WriteString(titleStyle.Render("My Trips"))
	b.WriteString("  ")
	b.WriteString(mutedStyle.Render("plan and manage your travel"))
	b.WriteString("\n\n")

	if a.dash.banner != "" {
		b.WriteString(components.RenderBanner(a.dash.banner, a.width))
		b.WriteString("\n\n")
	}

	switch {
	case a.dash.loading:
		b.WriteString(" ")
		b.WriteString(a.spinner.View())
		b.WriteString(mutedStyle.Render(" Loading trips..."))
		b.WriteString("\n")

	case len(a.dash.trips) == 0:
		b.WriteString(mutedStyle.Render(" No trips yet. Press "))
		b.WriteString(lipgloss.NewStyle().Foreground(t.Accent).Render("n"))
		b.WriteString(mutedStyle.Render(" to plan your first adventure."))
		b.WriteString("\n")

	default:
		for i, trip := range a.dash.trips {
			b.WriteString(a.renderTripCard(trip, i == a.dash.cursor))
			b.WriteString("\n")
		}
	}

	if a.dash.confirmDelete != nil {
		if tr := a.selectedTrip(); tr != nil {
			b.WriteString("\n ")
			b.WriteString(lipgloss.NewStyle().Foreground(t.Red).Render(
				fmt.Sprintf("Delete trip %q and everything in it? (y/N)", tr.Title)))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(components.RenderStatusBar(a.width,
		"[enter]open  [n]ew  [d]elete  [r]eload  [q]uit", a.whoami()))

	return b.String()
}

func (a App) renderTripCard(trip api.Trip, selected bool) string {
	t := theme.Active

	border := t.Border
	if selected {
		border = t.BorderAccent
	}

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(minInt(a.width-4, 70))

	title := lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(selected).Render(trip.Title)
	dates := lipgloss.NewStyle().Foreground(t.TextMuted).
		Render(cli.FormatDateRange(trip.StartDate, trip.EndDate))

	desc := trip.Description
	if desc == "" {
		desc = "No description"
	}
	descLine := lipgloss.NewStyle().Foreground(t.TextDim).
		Render(cli.Truncate(desc, 64))

	return indent(card.Render(title + "\n" + dates + "\n" + descLine))
}

// indent shifts a multi-line block one column right.
func indent(block string) string {
	return " " + strings.ReplaceAll(block, "\n", "\n ")
}

func (a App) whoami() string {
	if a.user == nil {
		return ""
	}
	return a.user.Email
}

func (a App) overlayAlert(string) string {
	alert := components.RenderAlert(a.alert, a.width)
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, alert)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
