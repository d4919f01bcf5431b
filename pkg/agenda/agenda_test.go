package agenda

import (
	"testing"
	"time"

	"github.com/verdantlabs/growcal/pkg/task"
)

func at(id, due string) task.Task {
	return task.Task{ID: id, DueAtLocal: due}
}

func TestAggregateCounts(t *testing.T) {
	selected := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)
	pending := []task.Task{
		at("t1", "2025-01-15T09:00:00"),
		at("t2", "2025-01-15T17:00:00"),
		at("t3", "2025-01-16T09:00:00"),
	}
	completed := []task.Task{
		at("t4", "2025-01-15T08:00:00"),
	}

	ag, err := Aggregate(pending, completed, selected)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ag.Counts["2025-01-15"] != 3 {
		t.Fatalf("counts[2025-01-15] = %d, want 3", ag.Counts["2025-01-15"])
	}
	if ag.Counts["2025-01-16"] != 1 {
		t.Fatalf("counts[2025-01-16] = %d, want 1", ag.Counts["2025-01-16"])
	}
	if len(ag.DayPending) != 2 {
		t.Fatalf("day pending = %d, want 2", len(ag.DayPending))
	}
	if len(ag.DayCompleted) != 1 {
		t.Fatalf("day completed = %d, want 1", len(ag.DayCompleted))
	}
}

func TestAggregateDayBoundariesInclusive(t *testing.T) {
	selected := time.Date(2025, time.January, 15, 12, 0, 0, 0, time.UTC)
	pending := []task.Task{
		at("start", "2025-01-15T00:00:00"),
		at("end", "2025-01-15T23:59:59.999999999"),
		at("before", "2025-01-14T23:59:59.999999999"),
		at("after", "2025-01-16T00:00:00"),
	}

	ag, err := Aggregate(pending, nil, selected)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ag.DayPending) != 2 {
		t.Fatalf("expected exactly the boundary tasks, got %d", len(ag.DayPending))
	}
	if ag.DayPending[0].ID != "start" || ag.DayPending[1].ID != "end" {
		t.Fatalf("unexpected day tasks: %v, %v", ag.DayPending[0].ID, ag.DayPending[1].ID)
	}
}

func TestAggregateOrdersByDueTime(t *testing.T) {
	selected := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)
	pending := []task.Task{
		at("late", "2025-01-15T18:00:00"),
		at("early", "2025-01-15T06:00:00"),
		at("noon", "2025-01-15T12:00:00"),
	}
	ag, err := Aggregate(pending, nil, selected)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"early", "noon", "late"}
	for i, id := range want {
		if ag.DayPending[i].ID != id {
			t.Fatalf("position %d = %s, want %s", i, ag.DayPending[i].ID, id)
		}
	}
}

func TestAggregateZoneAwareKeys(t *testing.T) {
	if _, err := time.LoadLocation("America/New_York"); err != nil {
		t.Skipf("zone database unavailable: %v", err)
	}
	selected := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)
	pending := []task.Task{
		{ID: "ny", DueAtLocal: "2025-01-15T09:00:00", Timezone: "America/New_York"},
	}
	ag, err := Aggregate(pending, nil, selected)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Grouped by the task's own wall-clock date, not a converted instant.
	if ag.Counts["2025-01-15"] != 1 {
		t.Fatalf("counts = %v, want key 2025-01-15", ag.Counts)
	}
}

func TestAggregateMalformedDue(t *testing.T) {
	selected := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)
	if _, err := Aggregate([]task.Task{at("bad", "garbage")}, nil, selected); err == nil {
		t.Fatal("expected parse error to propagate")
	}
}

func TestAggregateEmpty(t *testing.T) {
	ag, err := Aggregate(nil, nil, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ag.Counts) != 0 || len(ag.DayPending) != 0 || len(ag.DayCompleted) != 0 {
		t.Fatalf("expected empty agenda, got %+v", ag)
	}
}
