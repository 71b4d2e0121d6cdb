package tui

import (
	"fmt"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"wayfarer/internal/api"
	"wayfarer/internal/cli"
	"wayfarer/internal/trips"
	"wayfarer/internal/tui/components"
	"wayfarer/internal/tui/theme"
)

// deleteTarget is an armed confirmation for an irreversible delete.
type deleteTarget struct {
	kind  string // "stop" or "activity"
	id    int
	label string
}

// detailState holds the trip-detail view: the nested itinerary, its budget,
// the two add-forms, and any armed delete confirmation.
type detailState struct {
	tripID     int
	gen        int // load generation; stale responses are dropped
	loading    bool
	refreshing bool

	trip   *api.Trip
	budget *api.Budget

	cursor int // index into rows()

	stopForm *huh.Form
	stopVals *stopFormValues

	// At most one stop's add-activity form is open at a time; opening it
	// for another stop replaces this value.
	activityForm     *huh.Form
	activityVals     *activityFormValues
	activityFormStop *int

	confirm *deleteTarget
}

// detailRow flattens the itinerary for cursor navigation: one row per stop,
// one per activity. actIdx is -1 on stop rows.
type detailRow struct {
	stopIdx int
	actIdx  int
}

func (a App) detailRows() []detailRow {
	if a.detail.trip == nil {
		return nil
	}
	var rows []detailRow
	for si, stop := range a.detail.trip.Stops {
		rows = append(rows, detailRow{stopIdx: si, actIdx: -1})
		for ai := range stop.Activities {
			rows = append(rows, detailRow{stopIdx: si, actIdx: ai})
		}
	}
	return rows
}

func (a App) updateDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tripLoadedMsg:
		if msg.gen != a.detail.gen {
			return a, nil // superseded load, drop it
		}
		a.detail.loading = false
		a.detail.refreshing = false
		if msg.err != nil {
			if cmd := a.authCheck(msg.err); cmd != nil {
				return a, cmd
			}
			// Trip and budget failures share one path: log it and leave
			// the view trip-absent.
			slog.Error("loading trip", "trip_id", a.detail.tripID, "err", msg.err)
			a.detail.trip = nil
			a.detail.budget = nil
			return a, nil
		}
		a.detail.trip = msg.trip
		a.detail.budget = msg.budget
		a.clampDetailCursor()
		return a, nil

	case mutationMsg:
		if msg.err != nil {
			// Nothing was applied locally, so nothing rolls back.
			return a, a.fail(msg.op, msg.err)
		}
		return a, a.reloadDetail()

	case tea.KeyMsg:
		key := msg.String()

		// Armed confirmation intercepts everything: y fires the delete,
		// anything else disarms without a request.
		if a.detail.confirm != nil {
			target := *a.detail.confirm
			a.detail.confirm = nil
			if key == "y" || key == "Y" {
				if target.kind == "stop" {
					return a, a.deleteStopCmd(target.id)
				}
				return a, a.deleteActivityCmd(target.id)
			}
			return a, nil
		}

		// An open form owns the keyboard; the activity form wins focus
		// when both are open.
		if a.detail.activityForm != nil {
			return a.updateActivityForm(msg)
		}
		if a.detail.stopForm != nil {
			return a.updateStopForm(msg)
		}

		return a.detailKeys(key)
	}

	// Cursor blinks and other form internals.
	if a.detail.activityForm != nil {
		return a.updateActivityForm(msg)
	}
	if a.detail.stopForm != nil {
		return a.updateStopForm(msg)
	}
	return a, nil
}

func (a App) detailKeys(key string) (tea.Model, tea.Cmd) {
	rows := a.detailRows()

	switch key {
	case "q", "esc", "b":
		a.view = viewDashboard
		return a, nil

	case "j", "down":
		if a.detail.cursor < len(rows)-1 {
			a.detail.cursor++
		}
		return a, nil

	case "k", "up":
		if a.detail.cursor > 0 {
			a.detail.cursor--
		}
		return a, nil

	case "r":
		return a, a.reloadDetail()

	case "s":
		// Trip-level toggle, independent of the per-stop activity form.
		if a.detail.stopForm != nil {
			a.detail.stopForm = nil
			a.detail.stopVals = nil
			return a, nil
		}
		vals := &stopFormValues{}
		form := newStopForm(vals)
		if a.width > 0 {
			form = form.WithWidth(a.width)
		}
		a.detail.stopForm = form
		a.detail.stopVals = vals
		return a, form.Init()

	case "a":
		stop := a.selectedStop(rows)
		if stop == nil {
			return a, nil
		}
		// Reopening for the same stop closes it; a different stop steals
		// the single slot.
		if a.detail.activityFormStop != nil && *a.detail.activityFormStop == stop.ID {
			a.closeActivityForm()
			return a, nil
		}
		id := stop.ID
		vals := &activityFormValues{}
		form := newActivityForm(vals)
		if a.width > 0 {
			form = form.WithWidth(a.width)
		}
		a.detail.activityForm = form
		a.detail.activityVals = vals
		a.detail.activityFormStop = &id
		return a, form.Init()

	case "d":
		if a.detail.cursor >= len(rows) {
			return a, nil
		}
		row := rows[a.detail.cursor]
		stop := a.detail.trip.Stops[row.stopIdx]
		if row.actIdx == -1 {
			a.detail.confirm = &deleteTarget{
				kind:  "stop",
				id:    stop.ID,
				label: fmt.Sprintf("stop %s and all its activities", stop.CityName),
			}
		} else {
			act := stop.Activities[row.actIdx]
			a.detail.confirm = &deleteTarget{
				kind:  "activity",
				id:    act.ID,
				label: "activity " + act.Name,
			}
		}
		return a, nil
	}

	return a, nil
}

// reloadDetail re-fetches the whole trip aggregate (trip + budget) so the
// itinerary and the total are always mutually consistent after a mutation.
func (a *App) reloadDetail() tea.Cmd {
	a.detail.gen++
	a.detail.refreshing = true
	return tea.Batch(a.spinner.Tick, a.loadTripCmd(a.detail.gen, a.detail.tripID))
}

func (a *App) closeActivityForm() {
	a.detail.activityForm = nil
	a.detail.activityVals = nil
	a.detail.activityFormStop = nil
}

// selectedStop returns the stop the cursor is on or within.
func (a App) selectedStop(rows []detailRow) *api.Stop {
	if a.detail.trip == nil || a.detail.cursor < 0 || a.detail.cursor >= len(rows) {
		return nil
	}
	return &a.detail.trip.Stops[rows[a.detail.cursor].stopIdx]
}

func (a *App) clampDetailCursor() {
	n := len(a.detailRows())
	if a.detail.cursor >= n {
		a.detail.cursor = n - 1
	}
	if a.detail.cursor < 0 {
		a.detail.cursor = 0
	}
}

func (a App) updateStopForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.detail.stopForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.detail.stopForm = f
	}

	switch a.detail.stopForm.State {
	case huh.StateCompleted:
		v := a.detail.stopVals
		start, _ := trips.DateToTimestamp(v.startDate)
		end, _ := trips.DateToTimestamp(v.endDate)
		in := api.StopCreate{
			TripID:    a.detail.tripID,
			CityName:  strings.TrimSpace(v.cityName),
			Country:   strings.TrimSpace(v.country),
			StartDate: start,
			EndDate:   end,
			Order:     0, // server ordering; the client never sequences
		}
		a.detail.stopForm = nil
		a.detail.stopVals = nil
		return a, a.addStopCmd(a.detail.tripID, in)
	case huh.StateAborted:
		a.detail.stopForm = nil
		a.detail.stopVals = nil
		return a, nil
	}

	return a, cmd
}

func (a App) updateActivityForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.detail.activityForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.detail.activityForm = f
	}

	switch a.detail.activityForm.State {
	case huh.StateCompleted:
		v := a.detail.activityVals
		stopID := *a.detail.activityFormStop
		in := api.ActivityCreate{
			StopID:   stopID,
			Name:     strings.TrimSpace(v.name),
			Cost:     trips.ParseCost(v.cost),
			Duration: trips.ParseDuration(v.duration),
			Category: v.category,
		}
		a.closeActivityForm()
		return a, a.addActivityCmd(stopID, in)
	case huh.StateAborted:
		a.closeActivityForm()
		return a, nil
	}

	return a, cmd
}

func (a App) viewDetail() string {
	t := theme.Active
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	if a.detail.loading {
		var b strings.Builder
		b.WriteString("\n ")
		b.WriteString(a.spinner.View())
		b.WriteString(mutedStyle.Render(" Loading trip..."))
		return b.String()
	}

	if a.detail.trip == nil {
		var b strings.Builder
		b.WriteString("\n ")
		b.WriteString(lipgloss.NewStyle().Foreground(t.Red).Render("Trip not found"))
		b.WriteString("\n\n")
		b.WriteString(components.RenderStatusBar(a.width, "[esc]back  [r]etry", a.whoami()))
		return b.String()
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(a.renderTripHeader())
	b.WriteString("\n")

	if a.detail.stopForm != nil {
		b.WriteString(indent(a.renderFormBox("Add New Stop", a.detail.stopForm.View())))
		b.WriteString("\n")
	}

	b.WriteString(a.renderItinerary())

	if a.detail.confirm != nil {
		b.WriteString("\n ")
		b.WriteString(lipgloss.NewStyle().Foreground(t.Red).Render(
			fmt.Sprintf("Delete %s? This can't be undone. (y/N)", a.detail.confirm.label)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	hints := "[j/k]move  [s]top  [a]ctivity  [d]elete  [r]eload  [esc]back"
	if a.detail.refreshing {
		hints = a.spinner.View() + " syncing..."
	}
	b.WriteString(components.RenderStatusBar(a.width, hints, a.whoami()))

	return b.String()
}

func (a App) renderTripHeader() string {
	t := theme.Active
	trip := a.detail.trip

	title := lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true).Render(trip.Title)

	lines := []string{title}
	if trip.Description != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(t.TextMuted).
			Render(cli.Truncate(trip.Description, 70)))
	}

	total := "—"
	if a.detail.budget != nil {
		total = cli.FormatMoney(a.detail.budget.TotalCost)
	}
	meta := fmt.Sprintf("%s   %s total   %d stops",
		cli.FormatDateRange(trip.StartDate, trip.EndDate),
		total,
		len(trip.Stops),
	)
	lines = append(lines, lipgloss.NewStyle().Foreground(t.Green).Render(meta))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1).
		Width(minInt(a.width-4, 70))

	return indent(box.Render(strings.Join(lines, "\n")))
}

func (a App) renderItinerary() string {
	t := theme.Active
	trip := a.detail.trip
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	if len(trip.Stops) == 0 {
		return mutedStyle.Render(" No stops yet. Press s to add your first destination.") + "\n"
	}

	var b strings.Builder
	rowIdx := 0

	// Stops render in server order; the client never re-sorts.
	for si, stop := range trip.Stops {
		selected := rowIdx == a.detail.cursor
		b.WriteString(a.renderStopLine(si, stop, selected))
		rowIdx++

		if a.detail.activityFormStop != nil && *a.detail.activityFormStop == stop.ID &&
			a.detail.activityForm != nil {
			b.WriteString(indent(a.renderFormBox("Add New Activity", a.detail.activityForm.View())))
			b.WriteString("\n")
		}

		for _, act := range stop.Activities {
			selected := rowIdx == a.detail.cursor
			b.WriteString(a.renderActivityLine(act, selected))
			rowIdx++
		}
	}

	return b.String()
}

func (a App) renderStopLine(idx int, stop api.Stop, selected bool) string {
	t := theme.Active

	marker := "  "
	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true)
	if selected {
		marker = lipgloss.NewStyle().Foreground(t.Accent).Render("› ")
		nameStyle = nameStyle.Foreground(t.Accent)
	}

	head := nameStyle.Render(fmt.Sprintf("%d. %s, %s", idx+1, stop.CityName, stop.Country))
	dates := lipgloss.NewStyle().Foreground(t.TextDim).
		Render("  " + cli.FormatDateRange(stop.StartDate, stop.EndDate))

	return " " + marker + head + dates + "\n"
}

func (a App) renderActivityLine(act api.Activity, selected bool) string {
	t := theme.Active

	marker := "    "
	nameStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	if selected {
		marker = "  " + lipgloss.NewStyle().Foreground(t.Accent).Render("› ")
		nameStyle = lipgloss.NewStyle().Foreground(t.Accent)
	}

	parts := []string{nameStyle.Render(act.Name)}
	if act.Category != "" {
		parts = append(parts, lipgloss.NewStyle().Foreground(t.Blue).Render("["+act.Category+"]"))
	}
	parts = append(parts, lipgloss.NewStyle().Foreground(t.Green).Render(cli.FormatMoney(act.Cost)))
	if act.Duration > 0 {
		parts = append(parts, lipgloss.NewStyle().Foreground(t.TextDim).Render(cli.FormatMinutes(act.Duration)))
	}

	return " " + marker + strings.Join(parts, "  ") + "\n"
}

func (a App) renderFormBox(title, body string) string {
	t := theme.Active

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(0, 1).
		Width(minInt(a.width-6, 60))

	head := lipgloss.NewStyle().Foreground(t.Accent).Bold(true).Render(title)
	return box.Render(head + "\n" + body)
}
