// Package agenda provides the runner logic for the one-shot agenda view.
package agenda

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/verdantlabs/growcal/pkg/agenda"
	"github.com/verdantlabs/growcal/pkg/dateutil"
	"github.com/verdantlabs/growcal/pkg/plant"
	"github.com/verdantlabs/growcal/pkg/printers"
	"github.com/verdantlabs/growcal/pkg/store"
)

// Agenda prints the selected day's tasks plus a month overview of pending
// counts.
type Agenda struct {
	On          time.Time
	ShowID      bool
	Persistence *store.Store
}

func (n *Agenda) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not show agenda, no persistence")
	}
	if n.On.IsZero() {
		n.On = time.Now()
	}

	window := dateutil.ComputeWindow(n.On)
	pending, err := n.Persistence.TasksByDateRange(ctx, window.Start, window.End)
	if err != nil {
		return err
	}
	completed, err := n.Persistence.CompletedTasksByDateRange(ctx, window.Start, window.End)
	if err != nil {
		return err
	}

	ag, err := agenda.Aggregate(pending, completed, n.On)
	if err != nil {
		return err
	}

	projector := plant.Projector{Repo: n.Persistence}
	plants, err := projector.Project(ctx, plant.IDSet(ag.DayPending, ag.DayCompleted))
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID}
	fmt.Println("")
	pp.MonthCounts(n.On, ag.Counts)
	pp.TitleWithCount(n.On.Format("January 2, 2006"), len(ag.DayPending))
	pp.Tasks(plants, ag.DayPending...)
	if len(ag.DayCompleted) > 0 {
		pp.Title("completed")
		pp.CompletedTasks(plants, ag.DayCompleted...)
	}

	return nil
}
