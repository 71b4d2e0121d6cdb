package cli

import "testing"

func TestFormatDate(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"2026-06-01T00:00:00Z", "Jun 01, 2026"},
		{"2026-06-01T00:00:00", "Jun 01, 2026"}, // no zone offset
		{"2026-06-01", "Jun 01, 2026"},
		{"not a date", "not a date"}, // pass-through
	}
	for _, tt := range tests {
		if got := FormatDate(tt.in); got != tt.want {
			t.Errorf("FormatDate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0.00"},
		{17.5, "$17.50"},
		{1234.567, "$1,234.57"},
		{1234567, "$1,234,567.00"},
		{-42.1, "-$42.10"},
	}
	for _, tt := range tests {
		if got := FormatMoney(tt.in); got != tt.want {
			t.Errorf("FormatMoney(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "–"},
		{45, "45m"},
		{60, "1h"},
		{150, "2h 30m"},
	}
	for _, tt := range tests {
		if got := FormatMinutes(tt.in); got != tt.want {
			t.Errorf("FormatMinutes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("Amsterdam", 6); got != "Amste…" {
		t.Errorf("Truncate = %q", got)
	}
	if got := Truncate("Rome", 10); got != "Rome" {
		t.Errorf("Truncate = %q", got)
	}
}
