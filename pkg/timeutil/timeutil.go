// Package timeutil provides campus-calendar time utilities: semester naming,
// day arithmetic for lecture schedules, and human-readable formatting.
// No external dependencies - uses only standard library.
package timeutil

import (
	"fmt"
	"time"
)

// CampusTZ is the campus timezone. Lecture dates entered by professors are
// interpreted in this zone; storage stays in UTC.
var CampusTZ = time.FixedZone("Campus", 5*60*60)

// Now returns the current time in campus timezone.
func Now() time.Time {
	return time.Now().In(CampusTZ)
}

// ToCampus converts a time to campus timezone.
func ToCampus(t time.Time) time.Time {
	return t.In(CampusTZ)
}

// Date creates a time in campus timezone with the given date.
func Date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, CampusTZ)
}

// DateTime creates a time in campus timezone with the given date and time.
func DateTime(year, month, day, hour, min, sec int) time.Time {
	return time.Date(year, time.Month(month), day, hour, min, sec, 0, CampusTZ)
}

// StartOfDay returns the start of the day (00:00:00) in campus timezone.
func StartOfDay(t time.Time) time.Time {
	c := ToCampus(t)
	return time.Date(c.Year(), c.Month(), c.Day(), 0, 0, 0, 0, CampusTZ)
}

// EndOfDay returns the end of the day (23:59:59.999999999) in campus timezone.
func EndOfDay(t time.Time) time.Time {
	c := ToCampus(t)
	return time.Date(c.Year(), c.Month(), c.Day(), 23, 59, 59, 999999999, CampusTZ)
}

// IsSameDay checks if two times fall on the same campus-timezone day.
func IsSameDay(t1, t2 time.Time) bool {
	c1, c2 := ToCampus(t1), ToCampus(t2)
	return c1.Year() == c2.Year() && c1.Month() == c2.Month() && c1.Day() == c2.Day()
}

// DaysBetween returns the number of whole days between two times.
// Positive when t2 is after t1.
func DaysBetween(t1, t2 time.Time) int {
	d1, d2 := StartOfDay(t1), StartOfDay(t2)
	return int(d2.Sub(d1).Hours() / 24)
}

// DaysSince returns the number of whole days since the given time.
func DaysSince(t time.Time) int {
	return DaysBetween(t, Now())
}

// IsUpcoming reports whether a lecture date is still in the future.
func IsUpcoming(t time.Time) bool {
	return t.After(time.Now())
}

// SemesterOf returns the conventional semester name for a date,
// e.g. "Spring 2026" or "Fall 2026".
func SemesterOf(t time.Time) string {
	c := ToCampus(t)
	switch {
	case c.Month() <= time.May:
		return fmt.Sprintf("Spring %d", c.Year())
	case c.Month() <= time.July:
		return fmt.Sprintf("Summer %d", c.Year())
	default:
		return fmt.Sprintf("Fall %d", c.Year())
	}
}

// FormatDateStr formats a time as YYYY-MM-DD in campus timezone.
func FormatDateStr(t time.Time) string {
	return ToCampus(t).Format("2006-01-02")
}

// FormatDateTimeStr formats a time as YYYY-MM-DD HH:MM in campus timezone.
func FormatDateTimeStr(t time.Time) string {
	return ToCampus(t).Format("2006-01-02 15:04")
}

// FormatRelative formats a time relative to now ("today", "in 3 days",
// "5 days ago"). Used for lecture schedules and feedback reminders.
func FormatRelative(t time.Time) string {
	days := DaysBetween(Now(), t)
	switch {
	case days == 0:
		return "today"
	case days == 1:
		return "tomorrow"
	case days == -1:
		return "yesterday"
	case days > 1:
		return fmt.Sprintf("in %d days", days)
	default:
		return fmt.Sprintf("%d days ago", -days)
	}
}

// ParseDate parses a YYYY-MM-DD date in campus timezone.
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", value, CampusTZ)
}

// ParseDateTime parses a YYYY-MM-DD HH:MM datetime in campus timezone.
func ParseDateTime(value string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", value, CampusTZ)
}
