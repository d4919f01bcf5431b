// Package add provides the runner logic for creating records.
package add

import (
	"context"
	"errors"
	"fmt"

	"github.com/verdantlabs/growcal/pkg/plant"
	"github.com/verdantlabs/growcal/pkg/printers"
	"github.com/verdantlabs/growcal/pkg/store"
	"github.com/verdantlabs/growcal/pkg/task"
)

// Add persists exactly one of Task, Plant, or Series.
type Add struct {
	Task        *task.Task
	Plant       *plant.Record
	Series      *store.Series
	ShowID      bool
	Persistence *store.Store
}

func (n *Add) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not add, no persistence")
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID}

	switch {
	case n.Task != nil:
		if _, err := n.Task.DueAt(); err != nil {
			return fmt.Errorf("add: %w", err)
		}
		if err := n.Persistence.StoreTask(n.Task); err != nil {
			return err
		}
		fmt.Println("")
		pp.TitleWithCount("added", 1)
		pp.Tasks(nil, *n.Task)

	case n.Plant != nil:
		if err := n.Persistence.StorePlant(n.Plant); err != nil {
			return err
		}
		fmt.Println("")
		pp.Title("plants")
		pp.PlantTable(n.Persistence.Plants(ctx)...)

	case n.Series != nil:
		if err := n.Persistence.StoreSeries(n.Series); err != nil {
			return err
		}
		fmt.Println("")
		pp.Title("added series")
		pp.Tasks(nil, n.Series.FirstOccurrence())

	default:
		return errors.New("nothing to add")
	}

	return nil
}
