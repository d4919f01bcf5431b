// Package completion routes a completion request to the right backend
// operation: a stored task is completed by id, a virtual occurrence of a
// recurring series by (series, instant). Routing only; synchronizing the
// calendar afterwards is the caller's job.
package completion

import (
	"context"
	"errors"
	"time"

	"github.com/verdantlabs/growcal/pkg/task"
)

// Service is the completion collaborator. Calls must be safe to retry; the
// router performs no deduplication of its own.
type Service interface {
	CompleteTask(ctx context.Context, id string) error
	CompleteRecurringInstance(ctx context.Context, seriesID string, occurrence time.Time) error
}

// Router dispatches completion requests.
type Router struct {
	Service Service
}

// Complete resolves the task's ref and delegates. An ephemeral task with a
// malformed composite id falls back to direct completion by raw id; that is
// a recovery path, not an error. Collaborator failures propagate unmodified
// and are never retried here.
func (r Router) Complete(ctx context.Context, t task.Task) error {
	if r.Service == nil {
		return errors.New("completion: no service configured")
	}

	ref := task.NewRef(t)
	if !ref.IsOccurrence() {
		return r.Service.CompleteTask(ctx, ref.ID)
	}

	loc, err := t.Location()
	if err != nil {
		return err
	}
	occurrence, err := time.ParseInLocation("2006-01-02", ref.Date, loc)
	if err != nil {
		// The segment count checked out but the date itself is garbage;
		// same fallback as any other malformed composite id.
		return r.Service.CompleteTask(ctx, t.ID)
	}
	return r.Service.CompleteRecurringInstance(ctx, ref.SeriesID, occurrence)
}
