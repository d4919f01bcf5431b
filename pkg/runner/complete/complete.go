// Package complete provides the runner logic for completing tasks by id.
package complete

import (
	"context"
	"errors"
	"fmt"

	"github.com/verdantlabs/growcal/pkg/completion"
	"github.com/verdantlabs/growcal/pkg/store"
	"github.com/verdantlabs/growcal/pkg/task"
)

// Complete routes a completion by id. Composite occurrence ids go to the
// series path, everything else completes directly.
type Complete struct {
	ID          string
	Persistence *store.Store
}

func (n *Complete) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not complete, no persistence")
	}
	if n.ID == "" {
		return errors.New("can not complete, no id")
	}

	router := completion.Router{Service: n.Persistence}
	if err := router.Complete(ctx, task.Task{ID: n.ID}); err != nil {
		return err
	}

	fmt.Printf("completed %s\n", n.ID)
	return nil
}
