// Package ui provides the runner logic for the interactive calendar.
package ui

import (
	"context"
	"errors"
	"time"

	"github.com/verdantlabs/growcal/pkg/calendar"
	"github.com/verdantlabs/growcal/pkg/store"
	"github.com/verdantlabs/growcal/pkg/tui/app"
)

// UI wires the persistence layer into a calendar engine and runs the
// Bubble Tea program on top of it.
type UI struct {
	Debounce    time.Duration
	Persistence *store.Store
}

func (n *UI) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not start ui, no persistence")
	}

	engine := calendar.New(n.Persistence, n.Persistence, n.Persistence, calendar.Config{
		Debounce: n.Debounce,
	})

	return app.Run(ctx, engine, n.Persistence)
}
