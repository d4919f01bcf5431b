package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/verdantlabs/growcal/pkg/commands/options"
	"github.com/verdantlabs/growcal/pkg/runner/agenda"
	"github.com/verdantlabs/growcal/pkg/store"
)

func addAgenda(topLevel *cobra.Command) {
	no := &options.OnOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "agenda",
		Aliases: []string{"day", "get"},
		Short:   "Show the day's tasks and the month overview.",
		Example: `
growcal agenda
growcal agenda --on="2025-3-10"
`,
		RunE: func(_ *cobra.Command, _ []string) error {
			on, err := no.GetOn()
			if err != nil {
				return oo.HandleError(err)
			}

			p, err := store.Load(nil)
			if err != nil {
				return oo.HandleError(err)
			}

			a := agenda.Agenda{
				ShowID:      io.ShowID,
				Persistence: p,
			}
			if on != nil {
				a.On = *on
			}
			return oo.HandleError(a.Do(context.Background()))
		},
	}

	options.AddOnArgs(cmd, no)
	options.AddShowIDArgs(cmd, io)

	topLevel.AddCommand(cmd)
}
