package task

import (
	"testing"
	"time"
)

func TestDueAtDefaultsUTC(t *testing.T) {
	due, err := Task{ID: "t1", DueAtLocal: "2025-01-15T09:00:00"}.DueAt()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)
	if !due.Equal(want) {
		t.Fatalf("expected %v, got %v", want, due)
	}
}

func TestDueAtInZone(t *testing.T) {
	due, err := Task{
		ID:         "t1",
		DueAtLocal: "2025-01-15T09:00:00",
		Timezone:   "America/New_York",
	}.DueAt()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	loc, _ := time.LoadLocation("America/New_York")
	want := time.Date(2025, 1, 15, 9, 0, 0, 0, loc)
	if !due.Equal(want) {
		t.Fatalf("expected %v, got %v", want, due)
	}
}

func TestDueAtShortLayout(t *testing.T) {
	due, err := Task{ID: "t1", DueAtLocal: "2025-01-15T09:00"}.DueAt()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if due.Hour() != 9 || due.Minute() != 0 {
		t.Fatalf("unexpected parse: %v", due)
	}
}

func TestDueAtMalformed(t *testing.T) {
	if _, err := (Task{ID: "t1", DueAtLocal: "not a date"}).DueAt(); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestDueAtBadZone(t *testing.T) {
	if _, err := (Task{ID: "t1", DueAtLocal: "2025-01-15T09:00:00", Timezone: "Mars/Olympus"}).DueAt(); err == nil {
		t.Fatal("expected timezone error")
	}
}
