package trips

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Categories lists the activity categories the API accepts, in form order.
// The first entry is the form default.
var Categories = []string{
	"sightseeing",
	"food",
	"transport",
	"accommodation",
	"activity",
	"shopping",
	"other",
}

// DateToTimestamp normalizes a date-only form value ("2006-01-02") to the
// midnight-UTC RFC 3339 timestamp the API expects. Values already carrying
// a time component pass through re-encoded.
func DateToTimestamp(date string) (string, error) {
	date = strings.TrimSpace(date)
	if t, err := time.Parse("2006-01-02", date); err == nil {
		return t.UTC().Format(time.RFC3339), nil
	}
	if t, err := time.Parse(time.RFC3339, date); err == nil {
		return t.UTC().Format(time.RFC3339), nil
	}
	return "", fmt.Errorf("trips: invalid date %q (want YYYY-MM-DD)", date)
}

// ValidDate reports whether DateToTimestamp would accept the value.
// Used by form validation.
func ValidDate(date string) bool {
	_, err := DateToTimestamp(date)
	return err == nil
}

// ParseCost parses a cost form field. Empty or unparseable input yields 0
// rather than a rejection; negatives clamp to 0. Costs are non-negative
// decimals per the API contract.
func ParseCost(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// ParseDuration parses a duration form field (whole minutes). Empty or
// unparseable input yields 0; negatives clamp to 0.
func ParseDuration(s string) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 0 {
		return 0
	}
	return v
}
