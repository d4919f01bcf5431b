package dateutil

import "time"

// Window is the date range one fetch covers. It is derived from a selected
// date, never persisted, and valid only for the lifetime of that fetch.
type Window struct {
	Start time.Time
	End   time.Time
}

// ComputeWindow returns the five calendar weeks around the selected date:
// two weeks back from the start of the selected week through the end of the
// week two weeks forward. Wide enough to paint indicator dots for adjacent
// weeks without refetching on every swipe, narrow enough to bound payload
// size.
func ComputeWindow(selected time.Time) Window {
	weekStart := StartOfWeek(selected)
	return Window{
		Start: weekStart.AddDate(0, 0, -14),
		End:   EndOfDay(weekStart.AddDate(0, 0, 14+6)),
	}
}

// Contains reports whether t falls inside the window, inclusive both ends.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}
