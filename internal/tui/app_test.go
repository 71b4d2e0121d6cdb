package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"wayfarer/internal/api"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func asApp(t *testing.T, m tea.Model) App {
	t.Helper()
	a, ok := m.(App)
	if !ok {
		t.Fatalf("model is %T, want App", m)
	}
	return a
}

func sampleTrip() *api.Trip {
	return &api.Trip{
		ID:    5,
		Title: "Europe",
		Stops: []api.Stop{
			{ID: 9, TripID: 5, CityName: "Paris", Country: "France",
				Activities: []api.Activity{{ID: 21, StopID: 9, Name: "Louvre", Cost: 17.5}}},
			{ID: 10, TripID: 5, CityName: "Rome", Country: "Italy"},
		},
	}
}

func detailApp() App {
	a := NewApp(nil, &api.User{ID: 1, Email: "ada@example.com"})
	a.width = 100
	a.height = 40
	a.view = viewTripDetail
	a.detail = detailState{tripID: 5, gen: 1, trip: sampleTrip(), budget: &api.Budget{TripID: 5, TotalCost: 17.5}}
	return a
}

func TestDetail_LoadSettlesBothOrNeither(t *testing.T) {
	a := NewApp(nil, nil)
	a.width = 100
	a.view = viewTripDetail
	a.detail = detailState{tripID: 5, gen: 1, loading: true}

	m, _ := a.Update(tripLoadedMsg{gen: 1, trip: sampleTrip(), budget: &api.Budget{TotalCost: 17.5}})
	a = asApp(t, m)

	if a.detail.loading {
		t.Error("still loading after both fetches settled")
	}
	if a.detail.trip == nil || a.detail.budget == nil {
		t.Error("trip and budget should land together")
	}
}

func TestDetail_CombinedFailureLeavesTripAbsent(t *testing.T) {
	a := NewApp(nil, nil)
	a.width = 100
	a.view = viewTripDetail
	a.detail = detailState{tripID: 5, gen: 1, loading: true}

	m, _ := a.Update(tripLoadedMsg{gen: 1, trip: sampleTrip(), err: errors.New("budget fetch failed")})
	a = asApp(t, m)

	if a.detail.loading {
		t.Error("failure should end the loading state")
	}
	if a.detail.trip != nil {
		t.Error("partial result applied; combined failure must leave the trip absent")
	}
}

func TestDetail_StaleLoadDropped(t *testing.T) {
	a := NewApp(nil, nil)
	a.view = viewTripDetail
	a.detail = detailState{tripID: 5, gen: 2, loading: true}

	m, _ := a.Update(tripLoadedMsg{gen: 1, trip: sampleTrip(), budget: &api.Budget{}})
	a = asApp(t, m)

	if !a.detail.loading || a.detail.trip != nil {
		t.Error("response from a superseded load must be dropped")
	}
}

func TestDetail_MutationSuccessTriggersRefetch(t *testing.T) {
	a := detailApp()

	m, cmd := a.Update(mutationMsg{op: "add stop"})
	a = asApp(t, m)

	if !a.detail.refreshing {
		t.Error("successful mutation must re-fetch the aggregate")
	}
	if a.detail.gen != 2 {
		t.Errorf("gen = %d, want bumped to 2", a.detail.gen)
	}
	if cmd == nil {
		t.Error("no reload command issued")
	}
}

func TestDetail_MutationFailureAlertsAndKeepsState(t *testing.T) {
	a := detailApp()
	before := len(a.detail.trip.Stops)

	m, _ := a.Update(mutationMsg{op: "add stop", err: errors.New("boom")})
	a = asApp(t, m)

	if a.alert != "Failed to add stop" {
		t.Errorf("alert = %q", a.alert)
	}
	if a.detail.refreshing || len(a.detail.trip.Stops) != before {
		t.Error("failed mutation must leave view state unchanged")
	}
}

func TestDetail_SingleOpenActivityForm(t *testing.T) {
	a := detailApp()

	// Cursor on Paris (row 0); open its activity form.
	m, _ := a.detailKeys("a")
	a = asApp(t, m)
	if a.detail.activityFormStop == nil || *a.detail.activityFormStop != 9 {
		t.Fatalf("activityFormStop = %v, want 9", a.detail.activityFormStop)
	}

	// Rows: Paris, Louvre, Rome. Move the cursor onto Rome and open there:
	// the single slot moves, Paris's form is implicitly closed.
	a.detail.cursor = 2
	m, _ = a.detailKeys("a")
	a = asApp(t, m)
	if a.detail.activityFormStop == nil || *a.detail.activityFormStop != 10 {
		t.Fatalf("activityFormStop = %v, want 10 (stop B steals the slot)", a.detail.activityFormStop)
	}

	// Reopening for the same stop closes it.
	m, _ = a.detailKeys("a")
	a = asApp(t, m)
	if a.detail.activityFormStop != nil {
		t.Error("toggling the same stop should close the form")
	}
}

func TestDetail_StopFormToggle(t *testing.T) {
	a := detailApp()

	m, _ := a.detailKeys("s")
	a = asApp(t, m)
	if a.detail.stopForm == nil {
		t.Fatal("s should open the add-stop form")
	}

	m, _ = a.detailKeys("s")
	a = asApp(t, m)
	if a.detail.stopForm != nil {
		t.Error("s should toggle the add-stop form closed")
	}
}

func TestDetail_DeclinedConfirmSendsNothing(t *testing.T) {
	a := detailApp()

	m, _ := a.Update(keyMsg("d"))
	a = asApp(t, m)
	if a.detail.confirm == nil || a.detail.confirm.kind != "stop" {
		t.Fatalf("confirm = %+v, want armed stop delete", a.detail.confirm)
	}

	m, cmd := a.Update(keyMsg("n"))
	a = asApp(t, m)
	if a.detail.confirm != nil {
		t.Error("declining should disarm the confirmation")
	}
	if cmd != nil {
		t.Error("declined confirmation must send no request")
	}
}

func TestDetail_ConfirmedDeleteIssuesCommand(t *testing.T) {
	a := detailApp()
	a.detail.cursor = 1 // the Louvre activity row

	m, _ := a.Update(keyMsg("d"))
	a = asApp(t, m)
	if a.detail.confirm == nil || a.detail.confirm.kind != "activity" || a.detail.confirm.id != 21 {
		t.Fatalf("confirm = %+v, want armed activity 21", a.detail.confirm)
	}

	m, cmd := a.Update(keyMsg("y"))
	a = asApp(t, m)
	if cmd == nil {
		t.Error("confirmed delete should issue the request command")
	}
	if a.detail.confirm != nil {
		t.Error("confirmation should disarm after firing")
	}
}

func TestDashboard_DeleteRemovesRowLocally(t *testing.T) {
	a := NewApp(nil, nil)
	a.width = 100
	a.dash.trips = []api.Trip{{ID: 1, Title: "A"}, {ID: 2, Title: "B"}}
	a.dash.cursor = 1

	m, _ := a.Update(tripDeletedMsg{id: 2})
	a = asApp(t, m)

	if len(a.dash.trips) != 1 || a.dash.trips[0].ID != 1 {
		t.Errorf("trips = %+v, want only trip 1", a.dash.trips)
	}
	if a.dash.cursor != 0 {
		t.Errorf("cursor = %d, want clamped to 0", a.dash.cursor)
	}
}

func TestDashboard_ConfirmDisarmWithoutRequest(t *testing.T) {
	a := NewApp(nil, nil)
	a.width = 100
	a.dash.trips = []api.Trip{{ID: 1, Title: "A"}}

	m, _ := a.Update(keyMsg("d"))
	a = asApp(t, m)
	if a.dash.confirmDelete == nil {
		t.Fatal("d should arm the delete confirmation")
	}

	m, cmd := a.Update(keyMsg("x"))
	a = asApp(t, m)
	if a.dash.confirmDelete != nil || cmd != nil {
		t.Error("any key but y must disarm with no request")
	}
}

func TestAlert_SwallowsKeysUntilDismissed(t *testing.T) {
	a := detailApp()
	a.alert = "Failed to add stop"

	m, _ := a.Update(keyMsg("j"))
	a = asApp(t, m)
	if a.detail.cursor != 0 {
		t.Error("keys behind the alert should be swallowed")
	}
	if a.alert == "" {
		t.Error("j should not dismiss the alert")
	}

	m, _ = a.Update(keyMsg("esc"))
	a = asApp(t, m)
	if a.alert != "" {
		t.Error("esc should dismiss the alert")
	}
}

func TestDashboard_LoadFailureShowsBanner(t *testing.T) {
	a := NewApp(nil, nil)
	a.width = 100
	a.dash.loading = true

	m, _ := a.Update(tripsLoadedMsg{err: errors.New("connection refused")})
	a = asApp(t, m)

	if a.dash.loading {
		t.Error("load failure should end loading")
	}
	if a.dash.banner == "" {
		t.Error("load failure should show the inline banner")
	}
	if a.alert != "" {
		t.Error("load failure must not raise the blocking alert")
	}
}

func TestUnauthorizedQuitsWithMessage(t *testing.T) {
	a := NewApp(nil, nil)
	a.width = 100
	a.dash.loading = true

	m, cmd := a.Update(tripsLoadedMsg{err: api.ErrUnauthorized})
	a = asApp(t, m)

	if a.Fatal() == "" {
		t.Error("auth failure should set the fatal message")
	}
	if cmd == nil {
		t.Error("auth failure should quit the program")
	}
}
