// Package agenda derives the calendar view data from one window's fetched
// tasks: per-day indicator counts and the lists scoped to the selected day.
// Everything here is pure; results are rebuilt wholesale every fetch cycle.
package agenda

import (
	"fmt"
	"sort"
	"time"

	"github.com/verdantlabs/growcal/pkg/dateutil"
	"github.com/verdantlabs/growcal/pkg/task"
)

// Agenda is the aggregate of one fetch cycle.
type Agenda struct {
	// Counts maps yyyy-MM-dd day keys to the number of tasks due that day,
	// pending and completed counted once each.
	Counts map[string]int

	// DayPending and DayCompleted hold the tasks due on the selected day,
	// ordered by due time.
	DayPending   []task.Task
	DayCompleted []task.Task
}

// Aggregate groups the union of pending and completed tasks by the calendar
// date of their due time (each task's own zone) and filters both lists to
// the selected day, inclusive of the day's first and last instants. A task
// with an unparsable due datetime is the caller's contract violation; the
// parse error propagates.
func Aggregate(pending, completed []task.Task, selected time.Time) (Agenda, error) {
	ag := Agenda{Counts: make(map[string]int, len(pending)+len(completed))}

	dayStart := dateutil.StartOfDay(selected)
	dayEnd := dateutil.EndOfDay(selected)

	add := func(tasks []task.Task, day *[]task.Task) error {
		for _, t := range tasks {
			due, err := t.DueAt()
			if err != nil {
				return fmt.Errorf("agenda: task %s: %w", t.ID, err)
			}
			ag.Counts[dateutil.DayKey(due)]++
			if !due.Before(dayStart) && !due.After(dayEnd) {
				*day = append(*day, t)
			}
		}
		return nil
	}

	if err := add(pending, &ag.DayPending); err != nil {
		return Agenda{}, err
	}
	if err := add(completed, &ag.DayCompleted); err != nil {
		return Agenda{}, err
	}

	sortByDue(ag.DayPending)
	sortByDue(ag.DayCompleted)
	return ag, nil
}

func sortByDue(tasks []task.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		left, _ := tasks[i].DueAt()
		right, _ := tasks[j].DueAt()
		if left.Equal(right) {
			return tasks[i].ID < tasks[j].ID
		}
		return left.Before(right)
	})
}
