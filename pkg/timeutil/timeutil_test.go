package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartOfDay_ConvertsToCampusZone(t *testing.T) {
	// 22:30 UTC is already 03:30 the next day on campus (UTC+5).
	utc := time.Date(2026, 9, 14, 22, 30, 0, 0, time.UTC)

	start := StartOfDay(utc)

	assert.Equal(t, Date(2026, 9, 15), start)
}

func TestDaysBetween(t *testing.T) {
	cases := []struct {
		name string
		t1   time.Time
		t2   time.Time
		want int
	}{
		{"same day", DateTime(2026, 9, 14, 9, 0, 0), DateTime(2026, 9, 14, 23, 0, 0), 0},
		{"next day", DateTime(2026, 9, 14, 23, 0, 0), DateTime(2026, 9, 15, 1, 0, 0), 1},
		{"a week apart", Date(2026, 9, 14), Date(2026, 9, 21), 7},
		{"negative when reversed", Date(2026, 9, 21), Date(2026, 9, 14), -7},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DaysBetween(tc.t1, tc.t2))
		})
	}
}

func TestIsSameDay_AcrossZones(t *testing.T) {
	// Midnight boundary: 20:00 UTC on the 14th is 01:00 on the 15th campus time.
	late := time.Date(2026, 9, 14, 20, 0, 0, 0, time.UTC)
	morning := Date(2026, 9, 15)

	assert.True(t, IsSameDay(late, morning))
	assert.False(t, IsSameDay(late, Date(2026, 9, 14)))
}

func TestSemesterOf(t *testing.T) {
	assert.Equal(t, "Spring 2026", SemesterOf(Date(2026, 3, 10)))
	assert.Equal(t, "Spring 2026", SemesterOf(Date(2026, 5, 31)))
	assert.Equal(t, "Summer 2026", SemesterOf(Date(2026, 6, 15)))
	assert.Equal(t, "Fall 2026", SemesterOf(Date(2026, 8, 1)))
	assert.Equal(t, "Fall 2026", SemesterOf(Date(2026, 12, 20)))
}

func TestFormatDateStr(t *testing.T) {
	assert.Equal(t, "2026-09-14", FormatDateStr(DateTime(2026, 9, 14, 10, 0, 0)))
}

func TestParseDate_RoundTrip(t *testing.T) {
	parsed, err := ParseDate("2026-09-14")
	require.NoError(t, err)

	assert.Equal(t, Date(2026, 9, 14), parsed)
	assert.Equal(t, "2026-09-14", FormatDateStr(parsed))

	_, err = ParseDate("14.09.2026")
	assert.Error(t, err)
}

func TestFormatRelative(t *testing.T) {
	now := Now()

	assert.Equal(t, "today", FormatRelative(now))
	assert.Equal(t, "tomorrow", FormatRelative(now.AddDate(0, 0, 1)))
	assert.Equal(t, "yesterday", FormatRelative(now.AddDate(0, 0, -1)))
	assert.Equal(t, "in 3 days", FormatRelative(now.AddDate(0, 0, 3)))
	assert.Equal(t, "5 days ago", FormatRelative(now.AddDate(0, 0, -5)))
}
