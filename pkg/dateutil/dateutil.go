// Package dateutil provides the calendar arithmetic shared by the fetch
// engine: day boundaries, day keys, and the sliding fetch window.
package dateutil

import "time"

// DayKeyLayout is the canonical per-day grouping key format.
const DayKeyLayout = "2006-01-02"

// DayKey returns the grouping key for the calendar date of t, in t's zone.
func DayKey(t time.Time) string {
	return t.Format(DayKeyLayout)
}

// StartOfDay returns midnight at the start of t's calendar date.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last representable instant of t's calendar date.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// StartOfWeek returns midnight on the Monday of the week containing t.
func StartOfWeek(t time.Time) time.Time {
	day := StartOfDay(t)
	// time.Weekday counts Sunday as 0; shift so Monday is the pivot.
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}
