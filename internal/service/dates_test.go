package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestParseDateLayouts(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want time.Time
	}{
		{"rfc3339", "2024-06-15T10:30:00Z", time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)},
		{"date only", "2024-06-15", time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)},
		{"pg timestamptz text", "2024-06-15 10:30:00+00", time.Date(2024, 6, 15, 10, 30, 0, 0, time.FixedZone("", 0))},
		{"no zone", "2024-06-15T10:30:00", time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			parsed, ok := parseDate(strPtr(tc.raw))
			require.True(t, ok)
			require.True(t, parsed.Equal(tc.want))
		})
	}
}

func TestParseDateAbsent(t *testing.T) {
	_, ok := parseDate(nil)
	require.False(t, ok)

	_, ok = parseDate(strPtr(""))
	require.False(t, ok)

	_, ok = parseDate(strPtr("   "))
	require.False(t, ok)

	_, ok = parseDate(strPtr("not-a-date"))
	require.False(t, ok)
}

func TestDiffDaysCeiling(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	require.Equal(t, 0, diffDays(now, now))
	require.Equal(t, 1, diffDays(now.Add(24*time.Hour), now))
	// 1.2 days rounds up to 2.
	require.Equal(t, 2, diffDays(now.Add(time.Duration(1.2*24*float64(time.Hour))), now))
	require.Equal(t, 1, diffDays(now.Add(time.Minute), now))
	require.Equal(t, -1, diffDays(now.Add(-30*time.Hour), now))
	require.Equal(t, 0, diffDays(now.Add(-time.Minute), now))
}

func TestPresent(t *testing.T) {
	require.False(t, present(nil))
	require.False(t, present(strPtr("")))
	require.False(t, present(strPtr("  ")))
	require.True(t, present(strPtr("2024-06-15")))
}
