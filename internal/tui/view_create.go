package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"wayfarer/internal/api"
	"wayfarer/internal/trips"
	"wayfarer/internal/tui/components"
	"wayfarer/internal/tui/theme"
)

// createState holds the create-trip form view.
type createState struct {
	form       *huh.Form
	vals       *tripFormValues
	submitting bool
	banner     string // server detail (or generic) on failure
}

func (a App) openCreate() (tea.Model, tea.Cmd) {
	a.view = viewCreateTrip
	vals := &tripFormValues{}
	form := newTripForm(vals)
	if a.width > 0 {
		form = form.WithWidth(a.width)
	}
	a.create = createState{form: form, vals: vals}
	return a, form.Init()
}

func (a App) updateCreate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tripCreatedMsg); ok {
		a.create.submitting = false
		if msg.err != nil {
			if cmd := a.authCheck(msg.err); cmd != nil {
				return a, cmd
			}
			a.create.banner = api.Detail(msg.err)
			if a.create.banner == "" {
				a.create.banner = "Failed to create trip"
			}
			// Re-open the form with the entered values intact.
			form := newTripForm(a.create.vals)
			if a.width > 0 {
				form = form.WithWidth(a.width)
			}
			a.create.form = form
			return a, form.Init()
		}
		return a, a.openDetail(msg.trip.ID)
	}

	if a.create.submitting || a.create.form == nil {
		return a, nil
	}

	form, cmd := a.create.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.create.form = f
	}

	switch a.create.form.State {
	case huh.StateCompleted:
		v := a.create.vals
		start, _ := trips.DateToTimestamp(v.startDate)
		end, _ := trips.DateToTimestamp(v.endDate)
		a.create.submitting = true
		a.create.banner = ""
		return a, tea.Batch(a.spinner.Tick, a.createTripCmd(api.TripCreate{
			Title:       strings.TrimSpace(v.title),
			Description: strings.TrimSpace(v.description),
			StartDate:   start,
			EndDate:     end,
		}))
	case huh.StateAborted:
		a.view = viewDashboard
		a.create = createState{}
		return a, nil
	}

	return a, cmd
}

func (a App) viewCreate() string {
	t := theme.Active

	var b strings.Builder
	b.WriteString("\n ")
	b.WriteString(lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true).Render("Create New Trip"))
	b.WriteString("\n\n")

	if a.create.banner != "" {
		b.WriteString(components.RenderBanner(a.create.banner, a.width))
		b.WriteString("\n\n")
	}

	if a.create.submitting {
		b.WriteString(" ")
		b.WriteString(a.spinner.View())
		b.WriteString(lipgloss.NewStyle().Foreground(t.TextMuted).Render(" Creating trip..."))
		b.WriteString("\n")
	} else if a.create.form != nil {
		b.WriteString(indent(a.create.form.View()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(components.RenderStatusBar(a.width, "[esc]cancel", a.whoami()))
	return b.String()
}
