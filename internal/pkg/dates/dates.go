// Package dates provides day-granularity arithmetic. All streak and
// completion-rate math must work on calendar days, never on raw timestamps,
// so every comparison here goes through Normalize first.
package dates

import "time"

// Normalize strips the time-of-day and timezone from t, returning midnight UTC
// of the same calendar date.
func Normalize(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	return Normalize(a).Equal(Normalize(b))
}

// DaysBetween returns the number of calendar days from a to b (b - a).
// Negative when b is before a.
func DaysBetween(a, b time.Time) int {
	return int(Normalize(b).Sub(Normalize(a)).Hours() / 24)
}

// NextDay reports whether cur is exactly one calendar day after prev.
func NextDay(prev, cur time.Time) bool {
	return DaysBetween(prev, cur) == 1
}
