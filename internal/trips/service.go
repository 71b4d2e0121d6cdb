// Package trips is the typed service layer over the trip, stop, activity,
// and budget endpoints. Each method is a pass-through: build the path,
// attach the body, unwrap the payload. No caching, no local state.
package trips

import (
	"context"
	"fmt"

	"wayfarer/internal/api"
)

// Service exposes one method per remote operation.
type Service struct {
	api *api.Client
}

// NewService creates a trip service over the given gateway client.
func NewService(client *api.Client) *Service {
	return &Service{api: client}
}

// ListTrips returns the current user's trips, without nested stops.
func (s *Service) ListTrips(ctx context.Context) ([]api.Trip, error) {
	var ts []api.Trip
	if err := s.api.Get(ctx, "/api/trips", &ts); err != nil {
		return nil, err
	}
	return ts, nil
}

// GetTrip returns a single trip with its stops and their activities.
func (s *Service) GetTrip(ctx context.Context, tripID int) (*api.Trip, error) {
	var t api.Trip
	if err := s.api.Get(ctx, fmt.Sprintf("/api/trips/%d", tripID), &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// CreateTrip creates a trip and returns it.
func (s *Service) CreateTrip(ctx context.Context, in api.TripCreate) (*api.Trip, error) {
	var t api.Trip
	if err := s.api.Post(ctx, "/api/trips", in, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// UpdateTrip updates the set fields of a trip and returns the result.
func (s *Service) UpdateTrip(ctx context.Context, tripID int, in api.TripUpdate) (*api.Trip, error) {
	var t api.Trip
	if err := s.api.Put(ctx, fmt.Sprintf("/api/trips/%d", tripID), in, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// DeleteTrip deletes a trip and everything under it.
func (s *Service) DeleteTrip(ctx context.Context, tripID int) error {
	return s.api.Delete(ctx, fmt.Sprintf("/api/trips/%d", tripID))
}

// AddStop adds a stop to a trip.
func (s *Service) AddStop(ctx context.Context, tripID int, in api.StopCreate) (*api.Stop, error) {
	var st api.Stop
	if err := s.api.Post(ctx, fmt.Sprintf("/api/trips/%d/stops", tripID), in, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

// UpdateStop updates the set fields of a stop.
func (s *Service) UpdateStop(ctx context.Context, stopID int, in api.StopUpdate) (*api.Stop, error) {
	var st api.Stop
	if err := s.api.Put(ctx, fmt.Sprintf("/api/trips/stops/%d", stopID), in, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

// DeleteStop deletes a stop; the server cascades to its activities.
func (s *Service) DeleteStop(ctx context.Context, stopID int) error {
	return s.api.Delete(ctx, fmt.Sprintf("/api/trips/stops/%d", stopID))
}

// AddActivity adds an activity to a stop.
func (s *Service) AddActivity(ctx context.Context, stopID int, in api.ActivityCreate) (*api.Activity, error) {
	var a api.Activity
	if err := s.api.Post(ctx, fmt.Sprintf("/api/trips/stops/%d/activities", stopID), in, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// UpdateActivity updates the set fields of an activity.
func (s *Service) UpdateActivity(ctx context.Context, activityID int, in api.ActivityUpdate) (*api.Activity, error) {
	var a api.Activity
	if err := s.api.Put(ctx, fmt.Sprintf("/api/trips/activities/%d", activityID), in, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// DeleteActivity deletes a single activity.
func (s *Service) DeleteActivity(ctx context.Context, activityID int) error {
	return s.api.Delete(ctx, fmt.Sprintf("/api/trips/activities/%d", activityID))
}

// GetBudget returns the server-computed cost aggregate for a trip.
func (s *Service) GetBudget(ctx context.Context, tripID int) (*api.Budget, error) {
	var b api.Budget
	if err := s.api.Get(ctx, fmt.Sprintf("/api/trips/%d/budget", tripID), &b); err != nil {
		return nil, err
	}
	return &b, nil
}
