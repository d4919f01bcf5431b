package store

import (
	"context"
	"testing"
	"time"

	"github.com/verdantlabs/growcal/pkg/plant"
	"github.com/verdantlabs/growcal/pkg/task"
)

func awaitEvent(t *testing.T, events <-chan Event, want EventType) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				t.Fatal("event channel closed before expected event")
			}
			if ev.Type == want {
				return
			}
		case <-deadline:
			t.Fatalf("timed out waiting for event type %d", want)
		}
	}
}

func TestWatchReportsTaskChanges(t *testing.T) {
	s := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := s.Watch(ctx)
	if err != nil {
		t.Fatalf("Watch() returned error: %v", err)
	}

	tk := task.Task{Title: "water", DueAtLocal: "2025-03-10T09:00:00"}
	if err := s.StoreTask(&tk); err != nil {
		t.Fatalf("StoreTask() returned error: %v", err)
	}

	awaitEvent(t, events, EventTasksChanged)
}

func TestWatchReportsPlantChanges(t *testing.T) {
	s := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := s.Watch(ctx)
	if err != nil {
		t.Fatalf("Watch() returned error: %v", err)
	}

	p := plant.Record{Name: "Blue Dream"}
	if err := s.StorePlant(&p); err != nil {
		t.Fatalf("StorePlant() returned error: %v", err)
	}

	awaitEvent(t, events, EventPlantsChanged)
}

func TestWatchCoalescesBursts(t *testing.T) {
	s := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := s.Watch(ctx)
	if err != nil {
		t.Fatalf("Watch() returned error: %v", err)
	}

	for i := 0; i < 10; i++ {
		tk := task.Task{Title: "water", DueAtLocal: "2025-03-10T09:00:00", Meta: task.Meta{Notes: string(rune('a' + i))}}
		if err := s.StoreTask(&tk); err != nil {
			t.Fatalf("StoreTask() returned error: %v", err)
		}
	}

	awaitEvent(t, events, EventTasksChanged)

	// The burst should collapse into far fewer notifications than writes.
	settle := time.After(500 * time.Millisecond)
	count := 1
	for {
		select {
		case _, ok := <-events:
			if !ok {
				t.Fatal("event channel closed unexpectedly")
			}
			count++
		case <-settle:
			if count >= 10 {
				t.Errorf("expected coalesced events, got %d", count)
			}
			return
		}
	}
}

func TestWatchClosesOnCancel(t *testing.T) {
	s := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())

	events, err := s.Watch(ctx)
	if err != nil {
		t.Fatalf("Watch() returned error: %v", err)
	}

	cancel()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-events:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("event channel not closed after cancel")
		}
	}
}
