package tui

import (
	"errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"wayfarer/internal/trips"
)

// tripFormValues backs the create-trip form. Heap-allocated so the form's
// bound pointers survive model copies.
type tripFormValues struct {
	title       string
	description string
	startDate   string
	endDate     string
}

// stopFormValues backs the add-stop form.
type stopFormValues struct {
	cityName  string
	country   string
	startDate string
	endDate   string
}

// activityFormValues backs the add-activity form.
type activityFormValues struct {
	name     string
	cost     string
	duration string
	category string
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(field + " is required")
		}
		return nil
	}
}

func requiredDate(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(field + " is required")
		}
		if !trips.ValidDate(s) {
			return errors.New("use YYYY-MM-DD")
		}
		return nil
	}
}

func newTripForm(v *tripFormValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Trip title").
				Placeholder("Europe Summer Adventure").
				Value(&v.title).
				Validate(required("title")),
			huh.NewInput().
				Title("Description").
				Placeholder("optional").
				Value(&v.description),
			huh.NewInput().
				Title("Start date").
				Placeholder("YYYY-MM-DD").
				Value(&v.startDate).
				Validate(requiredDate("start date")),
			huh.NewInput().
				Title("End date").
				Placeholder("YYYY-MM-DD").
				Value(&v.endDate).
				Validate(requiredDate("end date")),
		),
	).WithShowHelp(false)
}

func newStopForm(v *stopFormValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("City").
				Value(&v.cityName).
				Validate(required("city")),
			huh.NewInput().
				Title("Country").
				Value(&v.country).
				Validate(required("country")),
			huh.NewInput().
				Title("Arrive").
				Placeholder("YYYY-MM-DD").
				Value(&v.startDate).
				Validate(requiredDate("arrival date")),
			huh.NewInput().
				Title("Depart").
				Placeholder("YYYY-MM-DD").
				Value(&v.endDate).
				Validate(requiredDate("departure date")),
		),
	).WithShowHelp(false)
}

func newActivityForm(v *activityFormValues) *huh.Form {
	v.category = trips.Categories[0] // sightseeing

	options := make([]huh.Option[string], len(trips.Categories))
	for i, c := range trips.Categories {
		options[i] = huh.NewOption(c, c)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Activity name").
				Placeholder("Visit Eiffel Tower").
				Value(&v.name).
				Validate(required("name")),
			huh.NewInput().
				Title("Cost ($)").
				Placeholder("25.50").
				Value(&v.cost).
				Validate(validCost),
			huh.NewInput().
				Title("Duration (minutes)").
				Placeholder("optional").
				Value(&v.duration).
				Validate(validDuration),
			huh.NewSelect[string]().
				Title("Category").
				Options(options...).
				Value(&v.category),
		),
	).WithShowHelp(false)
}

// validCost rejects garbage in the interactive form. The submission path
// still runs through the lenient ParseCost, so non-interactive callers keep
// the parse-to-zero contract.
func validCost(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return errors.New("cost is required")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return errors.New("enter a number")
	}
	if v < 0 {
		return errors.New("cost can't be negative")
	}
	return nil
}

func validDuration(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return errors.New("enter whole minutes")
	}
	if v < 0 {
		return errors.New("duration can't be negative")
	}
	return nil
}
