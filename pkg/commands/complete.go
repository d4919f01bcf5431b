package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/verdantlabs/growcal/pkg/runner/complete"
	"github.com/verdantlabs/growcal/pkg/store"
)

func addComplete(topLevel *cobra.Command) {
	id := ""

	cmd := &cobra.Command{
		Use:     "complete",
		Aliases: []string{"completed", "done"},
		Short:   "Complete a task by id.",
		Example: `
growcal complete <task id>
growcal complete series:<series id>:<yyyy-mm-dd>
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a task id")
			}
			id = strings.Join(args, " ")
			return nil
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			p, err := store.Load(nil)
			if err != nil {
				return oo.HandleError(err)
			}
			s := complete.Complete{
				ID:          id,
				Persistence: p,
			}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	topLevel.AddCommand(cmd)
}
