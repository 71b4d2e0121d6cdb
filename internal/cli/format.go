package cli

import (
	"fmt"
	"strings"
	"time"
)

// timestampLayouts covers the date encodings the API has been seen to emit:
// RFC 3339 with a zone, ISO 8601 without one, and bare dates.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseTimestamp parses a wire timestamp leniently.
func parseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDate renders a wire timestamp as "Jun 01, 2026". Unparseable values
// pass through unchanged so something is always shown.
func FormatDate(s string) string {
	t, ok := parseTimestamp(s)
	if !ok {
		return s
	}
	return t.Format("Jan 02, 2006")
}

// FormatDateRange renders "Jun 01 → Jun 20, 2026" style ranges.
func FormatDateRange(start, end string) string {
	return FormatDate(start) + " → " + FormatDate(end)
}

// FormatMoney renders a cost as "$1,234.56".
func FormatMoney(v float64) string {
	s := fmt.Sprintf("%.2f", v)

	dot := strings.IndexByte(s, '.')
	whole, frac := s[:dot], s[dot:]

	neg := false
	if strings.HasPrefix(whole, "-") {
		neg = true
		whole = whole[1:]
	}

	var b strings.Builder
	rem := len(whole) % 3
	if rem > 0 {
		b.WriteString(whole[:rem])
	}
	for i := rem; i < len(whole); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(whole[i : i+3])
	}

	out := "$" + b.String() + frac
	if neg {
		out = "-" + out
	}
	return out
}

// FormatMinutes renders a duration in minutes as "2h 30m" or "45m".
// Zero renders as "–" since the field is optional.
func FormatMinutes(mins int) string {
	if mins <= 0 {
		return "–"
	}
	if mins >= 60 {
		if mins%60 == 0 {
			return fmt.Sprintf("%dh", mins/60)
		}
		return fmt.Sprintf("%dh %dm", mins/60, mins%60)
	}
	return fmt.Sprintf("%dm", mins)
}

// Truncate shortens s to maxLen runes with an ellipsis.
func Truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 1 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-1]) + "…"
}
