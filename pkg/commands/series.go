package commands

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/verdantlabs/growcal/pkg/commands/options"
	"github.com/verdantlabs/growcal/pkg/runner/add"
	"github.com/verdantlabs/growcal/pkg/store"
)

func addSeries(topLevel *cobra.Command) {
	so := &options.SeriesOptions{}
	to := &options.TaskOptions{}
	io := &options.IDOptions{}
	title := ""

	cmd := &cobra.Command{
		Use:   "series",
		Short: "Add a recurring care task.",
		Example: `
growcal add series water plants --every=3 --at=08:00 --plant=171dff69
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a series title")
			}
			title = strings.Join(args, " ")
			return nil
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			start := so.Start
			if start == "" {
				start = time.Now().Format("2006-01-02")
			}

			p, err := store.Load(nil)
			if err != nil {
				return oo.HandleError(err)
			}

			a := add.Add{
				Series: &store.Series{
					Title:        title,
					PlantID:      to.PlantID,
					Timezone:     to.Timezone,
					StartDate:    start,
					TimeOfDay:    to.At,
					IntervalDays: so.Interval,
				},
				ShowID:      io.ShowID,
				Persistence: p,
			}
			return oo.HandleError(a.Do(context.Background()))
		},
	}

	options.AddSeriesArgs(cmd, so)
	options.AddTaskArgs(cmd, to)
	options.AddShowIDArgs(cmd, io)

	topLevel.AddCommand(cmd)
}
