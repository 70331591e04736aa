package service

import (
	"math"
	"strings"
	"time"
)

// dateLayouts covers what the row store hands back (date and
// timestamptz columns cast to text) plus plain ISO input.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05.999999999-07",
	"2006-01-02 15:04:05-07",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseDate is lenient by contract: a missing or malformed value is
// "absent", never an error. Rows with absent dates are excluded from
// date-dependent rules rather than failing the request.
func parseDate(raw *string) (time.Time, bool) {
	if raw == nil {
		return time.Time{}, false
	}
	value := strings.TrimSpace(*raw)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// diffDays is the day-granularity signed difference a-b, rounded up.
// Every day-windowed rule in this package depends on this exact
// rounding: diffDays(t, t) == 0, diffDays(t+1.2d, t) == 2.
func diffDays(a, b time.Time) int {
	return int(math.Ceil(a.Sub(b).Hours() / 24))
}

// present reports whether an optional text column actually carries a
// value; the store may surface absent dates as NULL or empty text.
func present(value *string) bool {
	return value != nil && strings.TrimSpace(*value) != ""
}

func numberOrZero(value *float64) float64 {
	if value == nil {
		return 0
	}
	return *value
}
