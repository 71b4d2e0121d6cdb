// Package tui provides the interactive Bubble Tea client: a trip dashboard,
// a create-trip form, and the trip-detail itinerary view.
package tui

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"wayfarer/internal/api"
	"wayfarer/internal/trips"
	"wayfarer/internal/tui/theme"
)

const opTimeout = 30 * time.Second

// view identifies the active screen.
type view int

const (
	viewDashboard view = iota
	viewCreateTrip
	viewTripDetail
)

// tripsLoadedMsg is sent when the dashboard trip list fetch settles.
type tripsLoadedMsg struct {
	trips []api.Trip
	err   error
}

// tripDeletedMsg is sent when a dashboard delete settles.
type tripDeletedMsg struct {
	id  int
	err error
}

// tripCreatedMsg is sent when the create-trip submission settles.
type tripCreatedMsg struct {
	trip *api.Trip
	err  error
}

// tripLoadedMsg is sent when the detail view's combined trip+budget fetch
// settles. gen guards against a late response from a superseded load being
// applied to newer view state.
type tripLoadedMsg struct {
	gen    int
	trip   *api.Trip
	budget *api.Budget
	err    error
}

// mutationMsg is sent when a stop/activity create or delete settles.
// op names the operation generically for the failure alert.
type mutationMsg struct {
	op  string
	err error
}

// App is the root Bubble Tea model.
type App struct {
	svc  *trips.Service
	user *api.User

	width  int
	height int
	view   view

	alert string // blocking dismissible error, "" when none
	fatal string // set before quitting on auth failure

	spinner spinner.Model

	dash   dashboardState
	create createState
	detail detailState
}

// NewApp creates the TUI model. user may be nil when the cached profile was
// absent or malformed; the session token is what authenticates requests.
func NewApp(svc *trips.Service, user *api.User) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent)

	return App{
		svc:     svc,
		user:    user,
		view:    viewDashboard,
		spinner: sp,
		dash:    dashboardState{loading: true},
	}
}

// Fatal returns the message to print after the program exits, or "".
func (a App) Fatal() string {
	return a.fatal
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(a.spinner.Tick, a.loadTripsCmd())
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.create.form != nil {
			a.create.form = a.create.form.WithWidth(msg.Width)
		}
		if a.detail.stopForm != nil {
			a.detail.stopForm = a.detail.stopForm.WithWidth(msg.Width)
		}
		if a.detail.activityForm != nil {
			a.detail.activityForm = a.detail.activityForm.WithWidth(msg.Width)
		}
		return a, nil

	case spinner.TickMsg:
		if a.busy() {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		// The blocking alert swallows all keys until dismissed.
		if a.alert != "" {
			if k := msg.String(); k == "esc" || k == "enter" || k == "q" {
				a.alert = ""
			}
			return a, nil
		}

	case tripsLoadedMsg, tripDeletedMsg:
		return a.updateDashboard(msg)
	case tripCreatedMsg:
		return a.updateCreate(msg)
	case tripLoadedMsg, mutationMsg:
		return a.updateDetail(msg)
	}

	switch a.view {
	case viewDashboard:
		return a.updateDashboard(msg)
	case viewCreateTrip:
		return a.updateCreate(msg)
	case viewTripDetail:
		return a.updateDetail(msg)
	}
	return a, nil
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	var body string
	switch a.view {
	case viewDashboard:
		body = a.viewDashboard()
	case viewCreateTrip:
		body = a.viewCreate()
	case viewTripDetail:
		body = a.viewDetail()
	}

	if a.alert != "" {
		return a.overlayAlert(body)
	}
	return body
}

// busy reports whether any view is waiting on the network.
func (a App) busy() bool {
	return a.dash.loading || a.create.submitting || a.detail.loading || a.detail.refreshing
}

// fail routes an operation error: auth failures end the session, everything
// else becomes the generic blocking alert for that operation.
func (a *App) fail(op string, err error) tea.Cmd {
	if errors.Is(err, api.ErrUnauthorized) {
		a.fatal = "Session expired or invalid. Run `wayfarer login` to sign in again."
		return tea.Quit
	}
	slog.Error("operation failed", "op", op, "err", err)
	if op != "" {
		a.alert = "Failed to " + op
	}
	return nil
}

// openDetail switches to the trip-detail view and starts its combined load.
func (a *App) openDetail(tripID int) tea.Cmd {
	a.view = viewTripDetail
	a.detail = detailState{tripID: tripID, loading: true, gen: a.detail.gen + 1}
	return tea.Batch(a.spinner.Tick, a.loadTripCmd(a.detail.gen, tripID))
}

func (a App) loadTripsCmd() tea.Cmd {
	svc := a.svc
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		ts, err := svc.ListTrips(ctx)
		return tripsLoadedMsg{trips: ts, err: err}
	}
}

func (a App) deleteTripCmd(id int) tea.Cmd {
	svc := a.svc
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		return tripDeletedMsg{id: id, err: svc.DeleteTrip(ctx, id)}
	}
}

func (a App) createTripCmd(in api.TripCreate) tea.Cmd {
	svc := a.svc
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		t, err := svc.CreateTrip(ctx, in)
		return tripCreatedMsg{trip: t, err: err}
	}
}

// loadTripCmd fetches the trip and its budget concurrently and settles once
// both have. Either failing resolves to the combined failure path.
func (a App) loadTripCmd(gen, tripID int) tea.Cmd {
	svc := a.svc
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		var (
			trip      *api.Trip
			budget    *api.Budget
			tripErr   error
			budgetErr error
			wg        sync.WaitGroup
		)

		wg.Add(2)
		go func() {
			defer wg.Done()
			trip, tripErr = svc.GetTrip(ctx, tripID)
		}()
		go func() {
			defer wg.Done()
			budget, budgetErr = svc.GetBudget(ctx, tripID)
		}()
		wg.Wait()

		err := tripErr
		if err == nil {
			err = budgetErr
		}
		return tripLoadedMsg{gen: gen, trip: trip, budget: budget, err: err}
	}
}

func (a App) addStopCmd(tripID int, in api.StopCreate) tea.Cmd {
	svc := a.svc
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		_, err := svc.AddStop(ctx, tripID, in)
		return mutationMsg{op: "add stop", err: err}
	}
}

func (a App) deleteStopCmd(stopID int) tea.Cmd {
	svc := a.svc
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		return mutationMsg{op: "delete stop", err: svc.DeleteStop(ctx, stopID)}
	}
}

func (a App) addActivityCmd(stopID int, in api.ActivityCreate) tea.Cmd {
	svc := a.svc
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		_, err := svc.AddActivity(ctx, stopID, in)
		return mutationMsg{op: "add activity", err: err}
	}
}

func (a App) deleteActivityCmd(activityID int) tea.Cmd {
	svc := a.svc
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		return mutationMsg{op: "delete activity", err: svc.DeleteActivity(ctx, activityID)}
	}
}
