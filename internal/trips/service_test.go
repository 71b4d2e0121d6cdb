package trips

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"wayfarer/internal/api"
)

// fakeAPI records the last request and serves canned JSON per route.
type fakeAPI struct {
	t          *testing.T
	mux        *http.ServeMux
	lastMethod string
	lastPath   string
	lastBody   map[string]any
}

func newFakeAPI(t *testing.T) (*fakeAPI, *Service) {
	t.Helper()
	f := &fakeAPI{t: t, mux: http.NewServeMux()}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.lastMethod = r.Method
		f.lastPath = r.URL.Path
		f.lastBody = nil
		if r.Body != nil {
			var body map[string]any
			if err := json.NewDecoder(r.Body).Decode(&body); err == nil {
				f.lastBody = body
			}
		}
		f.mux.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)

	client := api.NewClient(srv.URL, func() string { return "test-token" })
	return f, NewService(client)
}

func (f *fakeAPI) respond(pattern, body string) {
	f.mux.HandleFunc(pattern, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	})
}

func TestListTrips(t *testing.T) {
	f, svc := newFakeAPI(t)
	f.respond("/api/trips", `[{"id":1,"title":"Europe"},{"id":2,"title":"Asia"}]`)

	ts, err := svc.ListTrips(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(ts) != 2 || ts[0].Title != "Europe" {
		t.Errorf("trips = %+v", ts)
	}
	if f.lastMethod != "GET" || f.lastPath != "/api/trips" {
		t.Errorf("called %s %s", f.lastMethod, f.lastPath)
	}
}

func TestGetTrip_NestedStops(t *testing.T) {
	f, svc := newFakeAPI(t)
	f.respond("/api/trips/5", `{
		"id":5,"title":"Europe","start_date":"2026-06-01T00:00:00Z","end_date":"2026-06-20T00:00:00Z",
		"stops":[{"id":9,"trip_id":5,"city_name":"Paris","country":"France","order":0,
			"activities":[{"id":3,"stop_id":9,"name":"Louvre","cost":17.5,"duration":180,"category":"sightseeing"}]}]
	}`)

	trip, err := svc.GetTrip(context.Background(), 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(trip.Stops) != 1 || len(trip.Stops[0].Activities) != 1 {
		t.Fatalf("trip = %+v", trip)
	}
	if a := trip.Stops[0].Activities[0]; a.Cost != 17.5 || a.Name != "Louvre" {
		t.Errorf("activity = %+v", a)
	}
}

func TestCreateTrip(t *testing.T) {
	f, svc := newFakeAPI(t)
	f.respond("/api/trips", `{"id":11,"title":"Europe"}`)

	trip, err := svc.CreateTrip(context.Background(), api.TripCreate{
		Title:     "Europe",
		StartDate: "2026-06-01T00:00:00Z",
		EndDate:   "2026-06-20T00:00:00Z",
	})
	if err != nil {
		t.Fatal(err)
	}
	if trip.ID != 11 {
		t.Errorf("ID = %d, want 11", trip.ID)
	}
	if f.lastMethod != "POST" {
		t.Errorf("method = %s, want POST", f.lastMethod)
	}
	if f.lastBody["title"] != "Europe" {
		t.Errorf("body = %v", f.lastBody)
	}
}

func TestUpdateTrip_OmitsUnsetFields(t *testing.T) {
	f, svc := newFakeAPI(t)
	f.respond("/api/trips/3", `{"id":3,"title":"Renamed"}`)

	title := "Renamed"
	if _, err := svc.UpdateTrip(context.Background(), 3, api.TripUpdate{Title: &title}); err != nil {
		t.Fatal(err)
	}
	if f.lastMethod != "PUT" || f.lastPath != "/api/trips/3" {
		t.Errorf("called %s %s", f.lastMethod, f.lastPath)
	}
	if _, present := f.lastBody["start_date"]; present {
		t.Errorf("unset start_date serialized: %v", f.lastBody)
	}
	if f.lastBody["title"] != "Renamed" {
		t.Errorf("body = %v", f.lastBody)
	}
}

func TestDeleteTrip(t *testing.T) {
	f, svc := newFakeAPI(t)
	f.respond("/api/trips/4", `{}`)

	if err := svc.DeleteTrip(context.Background(), 4); err != nil {
		t.Fatal(err)
	}
	if f.lastMethod != "DELETE" || f.lastPath != "/api/trips/4" {
		t.Errorf("called %s %s", f.lastMethod, f.lastPath)
	}
}

func TestStopRoutes(t *testing.T) {
	f, svc := newFakeAPI(t)
	f.respond("/api/trips/5/stops", `{"id":9,"trip_id":5,"city_name":"Paris"}`)
	f.respond("/api/trips/stops/9", `{"id":9,"trip_id":5,"city_name":"Lyon"}`)

	stop, err := svc.AddStop(context.Background(), 5, api.StopCreate{
		TripID:    5,
		CityName:  "Paris",
		Country:   "France",
		StartDate: "2026-06-01T00:00:00Z",
		EndDate:   "2026-06-05T00:00:00Z",
	})
	if err != nil {
		t.Fatal(err)
	}
	if stop.ID != 9 || f.lastPath != "/api/trips/5/stops" {
		t.Errorf("stop = %+v via %s", stop, f.lastPath)
	}
	if f.lastBody["order"] != float64(0) {
		t.Errorf("order = %v, want literal 0", f.lastBody["order"])
	}

	city := "Lyon"
	if _, err := svc.UpdateStop(context.Background(), 9, api.StopUpdate{CityName: &city}); err != nil {
		t.Fatal(err)
	}
	if f.lastMethod != "PUT" || f.lastPath != "/api/trips/stops/9" {
		t.Errorf("called %s %s", f.lastMethod, f.lastPath)
	}

	if err := svc.DeleteStop(context.Background(), 9); err != nil {
		t.Fatal(err)
	}
	if f.lastMethod != "DELETE" || f.lastPath != "/api/trips/stops/9" {
		t.Errorf("called %s %s", f.lastMethod, f.lastPath)
	}
}

func TestActivityRoutes(t *testing.T) {
	f, svc := newFakeAPI(t)
	f.respond("/api/trips/stops/9/activities", `{"id":21,"stop_id":9,"name":"Louvre","cost":17.5}`)
	f.respond("/api/trips/activities/21", `{"id":21,"stop_id":9,"name":"Louvre","cost":20}`)

	act, err := svc.AddActivity(context.Background(), 9, api.ActivityCreate{
		StopID:   9,
		Name:     "Louvre",
		Cost:     17.5,
		Category: "sightseeing",
	})
	if err != nil {
		t.Fatal(err)
	}
	if act.ID != 21 || f.lastPath != "/api/trips/stops/9/activities" {
		t.Errorf("activity = %+v via %s", act, f.lastPath)
	}

	cost := 20.0
	if _, err := svc.UpdateActivity(context.Background(), 21, api.ActivityUpdate{Cost: &cost}); err != nil {
		t.Fatal(err)
	}
	if f.lastMethod != "PUT" || f.lastPath != "/api/trips/activities/21" {
		t.Errorf("called %s %s", f.lastMethod, f.lastPath)
	}

	if err := svc.DeleteActivity(context.Background(), 21); err != nil {
		t.Fatal(err)
	}
	if f.lastMethod != "DELETE" || f.lastPath != "/api/trips/activities/21" {
		t.Errorf("called %s %s", f.lastMethod, f.lastPath)
	}
}

func TestGetBudget(t *testing.T) {
	f, svc := newFakeAPI(t)
	f.respond("/api/trips/5/budget", `{"trip_id":5,"total_cost":137.25,
		"stops_breakdown":[{"stop_id":9,"city_name":"Paris","total_cost":137.25}]}`)

	b, err := svc.GetBudget(context.Background(), 5)
	if err != nil {
		t.Fatal(err)
	}
	if b.TotalCost != 137.25 || len(b.StopsBreakdown) != 1 {
		t.Errorf("budget = %+v", b)
	}
}
