package calendar

import (
	"context"
	"sync"
	"time"
)

// Result is the outcome of a debounced trigger.
type Result int

const (
	// Fired means the delay elapsed without the trigger being superseded.
	Fired Result = iota

	// Cancelled means a newer trigger (or Stop) superseded this one before
	// it fired. Cancellation is a normal outcome, never a failure; callers
	// must treat it as a no-op and never log it as an error.
	Cancelled
)

// Token resolves exactly once with the outcome of one debounced trigger.
type Token struct {
	once   sync.Once
	done   chan struct{}
	result Result
}

func newToken() *Token {
	return &Token{done: make(chan struct{})}
}

func (t *Token) resolve(r Result) {
	t.once.Do(func() {
		t.result = r
		close(t.done)
	})
}

// Done is closed once the token has resolved.
func (t *Token) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the token resolves or ctx ends; context cancellation
// counts as Cancelled.
func (t *Token) Wait(ctx context.Context) Result {
	select {
	case <-t.done:
		return t.result
	case <-ctx.Done():
		return Cancelled
	}
}

// Debouncer collapses a burst of triggers into a single firing after a
// quiet period. Each Trigger returns a fresh token and cancels the previous
// pending one, so only the latest trigger of a burst ever fires.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
	token *Token
}

// NewDebouncer creates a debouncer with the given quiet period.
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Trigger arms (or re-arms) the timer. The previous pending token, if any,
// resolves Cancelled without ever firing.
func (d *Debouncer) Trigger() *Token {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	if d.token != nil {
		d.token.resolve(Cancelled)
	}

	tok := newToken()
	d.token = tok
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		if d.token == tok {
			d.token = nil
			d.timer = nil
		}
		d.mu.Unlock()
		tok.resolve(Fired)
	})
	return tok
}

// Stop cancels the pending trigger, if any.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	if d.token != nil {
		d.token.resolve(Cancelled)
		d.token = nil
	}
}
