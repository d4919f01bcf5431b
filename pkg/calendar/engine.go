// Package calendar implements the fetch engine behind the task calendar:
// debounced, generation-guarded window fetches whose results are published
// only while still current, so of any overlapping fetches the latest
// selection always wins.
package calendar

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/verdantlabs/growcal/pkg/agenda"
	"github.com/verdantlabs/growcal/pkg/completion"
	"github.com/verdantlabs/growcal/pkg/dateutil"
	"github.com/verdantlabs/growcal/pkg/plant"
	"github.com/verdantlabs/growcal/pkg/task"
)

// DefaultDebounce is the quiet period for collapsing selection changes.
const DefaultDebounce = 300 * time.Millisecond

// TaskRepository fetches the tasks for one window. Implementations must
// tolerate being invoked for a window whose result is later discarded;
// there is no exactly-once guarantee on result application.
type TaskRepository interface {
	TasksByDateRange(ctx context.Context, start, end time.Time) ([]task.Task, error)
	CompletedTasksByDateRange(ctx context.Context, start, end time.Time) ([]task.Task, error)
}

// Snapshot is the published calendar state. The slices and maps are rebuilt
// wholesale every successful fetch and must be treated as immutable.
type Snapshot struct {
	Selected     time.Time
	DayPending   []task.Task
	DayCompleted []task.Task
	Counts       map[string]int
	Plants       map[string]plant.Projection
	Loading      bool
}

// Event signals that the snapshot changed. Consumers re-read Snapshot().
type Event struct{}

// Config adjusts engine behavior; zero values use defaults.
type Config struct {
	Debounce time.Duration
}

// gate is the engine lifecycle value: active at a generation, or disabled.
// Holding both in one guarded value keeps illegal combinations (such as
// loading while disabled) unrepresentable. A fetch result may be applied
// iff the generation it captured is still current and the gate is active.
type gate struct {
	disabled bool
	gen      uint64
}

// Engine coordinates fetching for one calendar view. One engine per active
// view; fetch callbacks may run on any goroutine, so all shared state is
// guarded by the mutex.
type Engine struct {
	tasks    TaskRepository
	plants   plant.Projector
	router   completion.Router
	debounce *Debouncer

	mu       sync.Mutex
	gate     gate
	selected time.Time
	snap     Snapshot

	events chan Event
}

// New creates an engine over the given collaborators. The engine starts
// disabled; call SetEnabled(true) when the view becomes visible.
func New(tasks TaskRepository, plants plant.Repository, svc completion.Service, cfg Config) *Engine {
	delay := cfg.Debounce
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Engine{
		tasks:    tasks,
		plants:   plant.Projector{Repo: plants},
		router:   completion.Router{Service: svc},
		debounce: NewDebouncer(delay),
		gate:     gate{disabled: true},
		selected: dateutil.StartOfDay(time.Now()),
		events:   make(chan Event, 16),
	}
}

// Events exposes change notifications for UI subscriptions. The channel is
// owned by the engine and never closed; notifications are dropped rather
// than blocking when the consumer lags, a later read of Snapshot() always
// sees the newest state.
func (e *Engine) Events() <-chan Event {
	return e.events
}

// Snapshot returns a copy of the current published state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return cloneSnapshot(e.snap)
}

// Select records a new selected date and schedules a debounced fetch.
// Rapid selection changes within the quiet period collapse into a single
// fetch of the latest selection; superseded attempts never issue I/O.
func (e *Engine) Select(ctx context.Context, day time.Time) {
	e.mu.Lock()
	e.selected = day
	e.snap.Selected = day
	disabled := e.gate.disabled
	e.mu.Unlock()
	e.emit()

	if disabled {
		return
	}

	tok := e.debounce.Trigger()
	go func() {
		if tok.Wait(ctx) != Fired {
			// Superseded pre-flight; a no-op by contract.
			return
		}
		e.fetch(ctx)
	}()
}

// Refetch issues a fetch immediately, bypassing the debounce but under the
// same generation discipline. Suppressed while disabled.
func (e *Engine) Refetch(ctx context.Context) {
	e.mu.Lock()
	disabled := e.gate.disabled
	e.mu.Unlock()
	if disabled {
		return
	}
	e.fetch(ctx)
}

// SetEnabled transitions the engine between active and disabled. Disabling
// clears the loading flag immediately and advances the generation so an
// in-flight result arriving later is discarded; enabling refetches.
func (e *Engine) SetEnabled(ctx context.Context, enabled bool) {
	e.mu.Lock()
	if enabled == !e.gate.disabled {
		e.mu.Unlock()
		return
	}
	if enabled {
		e.gate.disabled = false
		e.mu.Unlock()
		e.Refetch(ctx)
		return
	}
	e.gate.disabled = true
	e.gate.gen++
	e.snap.Loading = false
	e.mu.Unlock()

	e.debounce.Stop()
	e.emit()
}

// Complete routes a completion request for a visible task. The engine does
// not refetch on success; callers trigger Refetch once the completion has
// been accepted.
func (e *Engine) Complete(ctx context.Context, t task.Task) error {
	return e.router.Complete(ctx, t)
}

// Close tears the engine down: pending debounced calls cancel and any
// in-flight fetch result becomes inert.
func (e *Engine) Close() {
	e.mu.Lock()
	e.gate.disabled = true
	e.gate.gen++
	e.snap.Loading = false
	e.mu.Unlock()
	e.debounce.Stop()
}

// fetch runs one generation-guarded fetch attempt: tasks for the window,
// then plant projections for the selected day, re-checking currency between
// phases so a slow secondary lookup can never overwrite state invalidated
// by a newer fetch.
func (e *Engine) fetch(ctx context.Context) {
	e.mu.Lock()
	if e.gate.disabled {
		e.mu.Unlock()
		return
	}
	e.gate.gen++
	gen := e.gate.gen
	day := e.selected
	e.snap.Loading = true
	e.mu.Unlock()
	e.emit()

	window := dateutil.ComputeWindow(day)
	pending, err := e.tasks.TasksByDateRange(ctx, window.Start, window.End)
	if err != nil {
		e.fail(gen, err)
		return
	}
	completed, err := e.tasks.CompletedTasksByDateRange(ctx, window.Start, window.End)
	if err != nil {
		e.fail(gen, err)
		return
	}
	if !e.current(gen) {
		return
	}

	ag, err := agenda.Aggregate(pending, completed, day)
	if err != nil {
		e.fail(gen, err)
		return
	}
	if !e.current(gen) {
		return
	}

	plants, err := e.plants.Project(ctx, plant.IDSet(ag.DayPending, ag.DayCompleted))
	if err != nil {
		e.fail(gen, err)
		return
	}

	e.mu.Lock()
	if e.gate.disabled || e.gate.gen != gen {
		// Superseded post-flight; the result is inert, not an error.
		e.mu.Unlock()
		return
	}
	e.snap = Snapshot{
		Selected:     day,
		DayPending:   ag.DayPending,
		DayCompleted: ag.DayCompleted,
		Counts:       ag.Counts,
		Plants:       plants,
		Loading:      false,
	}
	e.mu.Unlock()
	e.emit()
}

// fail logs a fetch failure and clears the loading flag if the attempt is
// still current. Previously published state is retained unchanged; stale
// failures are dropped without logging.
func (e *Engine) fail(gen uint64, err error) {
	e.mu.Lock()
	if e.gate.disabled || e.gate.gen != gen {
		e.mu.Unlock()
		return
	}
	e.snap.Loading = false
	e.mu.Unlock()

	log.Printf("calendar: fetch failed: %v", err)
	e.emit()
}

func (e *Engine) current(gen uint64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return !e.gate.disabled && e.gate.gen == gen
}

func (e *Engine) emit() {
	select {
	case e.events <- Event{}:
	default:
		// Consumer not ready; it will re-read the snapshot on the next
		// event it does receive.
	}
}

func cloneSnapshot(s Snapshot) Snapshot {
	out := s
	out.DayPending = append([]task.Task(nil), s.DayPending...)
	out.DayCompleted = append([]task.Task(nil), s.DayCompleted...)
	out.Counts = make(map[string]int, len(s.Counts))
	for k, v := range s.Counts {
		out.Counts[k] = v
	}
	out.Plants = make(map[string]plant.Projection, len(s.Plants))
	for k, v := range s.Plants {
		out.Plants[k] = v
	}
	return out
}
