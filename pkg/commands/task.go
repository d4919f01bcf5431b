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
	"github.com/verdantlabs/growcal/pkg/task"
)

func addTask(topLevel *cobra.Command) {
	no := &options.OnOptions{}
	to := &options.TaskOptions{}
	io := &options.IDOptions{}
	title := ""

	cmd := &cobra.Command{
		Use:   "task",
		Short: "Add a one-off care task.",
		Example: `
growcal add task water the tent --on="2025-3-10" --at=08:00 --plant=171dff69
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a task title")
			}
			title = strings.Join(args, " ")
			return nil
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			on, err := no.GetOn()
			if err != nil {
				return oo.HandleError(err)
			}
			day := time.Now()
			if on != nil {
				day = *on
			}

			p, err := store.Load(nil)
			if err != nil {
				return oo.HandleError(err)
			}

			a := add.Add{
				Task: &task.Task{
					Title:      title,
					DueAtLocal: day.Format("2006-01-02") + "T" + to.At + ":00",
					Timezone:   to.Timezone,
					PlantID:    to.PlantID,
					Meta:       task.Meta{Notes: to.Notes},
				},
				ShowID:      io.ShowID,
				Persistence: p,
			}
			return oo.HandleError(a.Do(context.Background()))
		},
	}

	options.AddOnArgs(cmd, no)
	options.AddTaskArgs(cmd, to)
	options.AddShowIDArgs(cmd, io)

	topLevel.AddCommand(cmd)
}
