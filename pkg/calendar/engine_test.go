package calendar

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/verdantlabs/growcal/pkg/dateutil"
	"github.com/verdantlabs/growcal/pkg/task"
)

// fetchScript describes one scripted primary fetch: its result, an optional
// error, and an optional channel the call blocks on before returning.
type fetchScript struct {
	tasks []task.Task
	err   error
	block chan struct{}
}

type scriptedRepo struct {
	mu      sync.Mutex
	windows []dateutil.Window
	script  []fetchScript
}

func (r *scriptedRepo) TasksByDateRange(_ context.Context, start, end time.Time) ([]task.Task, error) {
	r.mu.Lock()
	idx := len(r.windows)
	r.windows = append(r.windows, dateutil.Window{Start: start, End: end})
	var s fetchScript
	if len(r.script) > 0 {
		if idx >= len(r.script) {
			idx = len(r.script) - 1
		}
		s = r.script[idx]
	}
	r.mu.Unlock()

	if s.block != nil {
		<-s.block
	}
	return s.tasks, s.err
}

func (r *scriptedRepo) CompletedTasksByDateRange(context.Context, time.Time, time.Time) ([]task.Task, error) {
	return nil, nil
}

func (r *scriptedRepo) calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.windows)
}

func (r *scriptedRepo) lastWindow() dateutil.Window {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.windows[len(r.windows)-1]
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		if cond() {
			return
		}
		select {
		case <-deadline:
			t.Fatalf("timed out waiting for %s", what)
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func newTestEngine(repo TaskRepository) *Engine {
	return New(repo, nil, nil, Config{Debounce: 20 * time.Millisecond})
}

func TestSelectionBurstFetchesOnce(t *testing.T) {
	ctx := context.Background()
	repo := &scriptedRepo{}
	e := newTestEngine(repo)
	defer e.Close()

	e.SetEnabled(ctx, true)
	base := repo.calls()

	// Three selection changes inside the quiet period: one fetch, scoped
	// to the window of the final selection.
	e.Select(ctx, day(2025, time.January, 14))
	e.Select(ctx, day(2025, time.January, 15))
	final := day(2025, time.February, 20)
	e.Select(ctx, final)

	waitFor(t, "debounced fetch", func() bool { return repo.calls() == base+1 })
	time.Sleep(60 * time.Millisecond)
	if got := repo.calls(); got != base+1 {
		t.Fatalf("expected one fetch after the burst, got %d", got-base)
	}
	want := dateutil.ComputeWindow(final)
	got := repo.lastWindow()
	if !got.Start.Equal(want.Start) || !got.End.Equal(want.End) {
		t.Fatalf("fetched window %+v, want window of final selection %+v", got, want)
	}
}

func TestStaleResultDoesNotOverwrite(t *testing.T) {
	ctx := context.Background()
	selected := day(2025, time.January, 15)
	taskA := task.Task{ID: "a", DueAtLocal: "2025-01-15T09:00:00"}
	taskB := task.Task{ID: "b", DueAtLocal: "2025-01-15T10:00:00"}

	blockA := make(chan struct{})
	repo := &scriptedRepo{script: []fetchScript{
		{},                              // enable fetch
		{tasks: []task.Task{taskA}, block: blockA}, // fetch A, slow
		{tasks: []task.Task{taskB}},     // fetch B
	}}
	e := newTestEngine(repo)
	defer e.Close()

	e.Select(ctx, selected)
	e.SetEnabled(ctx, true)

	go e.Refetch(ctx) // fetch A, blocks inside the repository
	waitFor(t, "fetch A to start", func() bool { return repo.calls() == 2 })

	e.Refetch(ctx) // fetch B, publishes immediately
	snap := e.Snapshot()
	if len(snap.DayPending) != 1 || snap.DayPending[0].ID != "b" {
		t.Fatalf("expected fetch B published, got %+v", snap.DayPending)
	}

	// A resolves after B published; its result must be discarded silently.
	close(blockA)
	time.Sleep(50 * time.Millisecond)
	snap = e.Snapshot()
	if len(snap.DayPending) != 1 || snap.DayPending[0].ID != "b" {
		t.Fatalf("stale fetch A overwrote state: %+v", snap.DayPending)
	}
}

func TestDisableMidFetchDiscardsResult(t *testing.T) {
	ctx := context.Background()
	selected := day(2025, time.January, 15)
	block := make(chan struct{})
	repo := &scriptedRepo{script: []fetchScript{
		{tasks: []task.Task{{ID: "x", DueAtLocal: "2025-01-15T09:00:00"}}, block: block},
	}}
	e := newTestEngine(repo)
	defer e.Close()

	e.Select(ctx, selected)
	go e.SetEnabled(ctx, true) // fetch blocks inside the repository
	waitFor(t, "fetch to start", func() bool { return repo.calls() == 1 })
	if !e.Snapshot().Loading {
		t.Fatal("expected loading before disable")
	}

	e.SetEnabled(ctx, false)
	if e.Snapshot().Loading {
		t.Fatal("disable must clear loading immediately")
	}

	close(block)
	time.Sleep(50 * time.Millisecond)
	snap := e.Snapshot()
	if len(snap.DayPending) != 0 {
		t.Fatalf("in-flight result resurrected state after disable: %+v", snap.DayPending)
	}
	if snap.Loading {
		t.Fatal("loading flag resurrected after disable")
	}
}

func TestSelectWhileDisabledSuppressed(t *testing.T) {
	ctx := context.Background()
	repo := &scriptedRepo{}
	e := newTestEngine(repo)
	defer e.Close()

	e.Select(ctx, day(2025, time.January, 15))
	time.Sleep(60 * time.Millisecond)
	if repo.calls() != 0 {
		t.Fatalf("expected no fetch while disabled, got %d", repo.calls())
	}
}

func TestFetchFailureRetainsPriorState(t *testing.T) {
	ctx := context.Background()
	selected := day(2025, time.January, 15)
	good := task.Task{ID: "keep", DueAtLocal: "2025-01-15T09:00:00"}
	repo := &scriptedRepo{script: []fetchScript{
		{tasks: []task.Task{good}},
		{err: errors.New("disk unhappy")},
	}}
	e := newTestEngine(repo)
	defer e.Close()

	e.Select(ctx, selected)
	e.SetEnabled(ctx, true)
	if snap := e.Snapshot(); len(snap.DayPending) != 1 {
		t.Fatalf("expected initial publish, got %+v", snap.DayPending)
	}

	e.Refetch(ctx)
	snap := e.Snapshot()
	if snap.Loading {
		t.Fatal("failure must clear loading")
	}
	if len(snap.DayPending) != 1 || snap.DayPending[0].ID != "keep" {
		t.Fatalf("failure must retain prior state, got %+v", snap.DayPending)
	}
}

func TestPublishAggregatesWindow(t *testing.T) {
	ctx := context.Background()
	selected := day(2025, time.January, 15)
	repo := &scriptedRepo{script: []fetchScript{{tasks: []task.Task{
		{ID: "t1", DueAtLocal: "2025-01-15T09:00:00"},
		{ID: "t2", DueAtLocal: "2025-01-16T09:00:00"},
	}}}}
	e := newTestEngine(repo)
	defer e.Close()

	e.Select(ctx, selected)
	e.SetEnabled(ctx, true)

	snap := e.Snapshot()
	if snap.Counts["2025-01-15"] != 1 || snap.Counts["2025-01-16"] != 1 {
		t.Fatalf("unexpected counts: %v", snap.Counts)
	}
	if len(snap.DayPending) != 1 || snap.DayPending[0].ID != "t1" {
		t.Fatalf("unexpected day list: %+v", snap.DayPending)
	}
	if snap.Loading {
		t.Fatal("loading should clear after publish")
	}
}

func TestEventsEmittedOnPublish(t *testing.T) {
	ctx := context.Background()
	repo := &scriptedRepo{}
	e := newTestEngine(repo)
	defer e.Close()

	e.SetEnabled(ctx, true)

	select {
	case <-e.Events():
	case <-time.After(2 * time.Second):
		t.Fatal("expected an event after publish")
	}
}

func TestRefetchWhileDisabledSuppressed(t *testing.T) {
	ctx := context.Background()
	repo := &scriptedRepo{}
	e := newTestEngine(repo)
	defer e.Close()

	e.Refetch(ctx)
	if repo.calls() != 0 {
		t.Fatalf("expected no fetch while disabled, got %d", repo.calls())
	}
}
