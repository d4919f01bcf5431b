package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/verdantlabs/growcal/pkg/runner/ui"
	"github.com/verdantlabs/growcal/pkg/store"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "ui",
		Aliases: []string{"tui"},
		Short:   "Open the interactive calendar.",
		Example: `
growcal ui
`,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := store.LoadConfig()
			if err != nil {
				return oo.HandleError(err)
			}
			p, err := store.Load(cfg)
			if err != nil {
				return oo.HandleError(err)
			}
			u := ui.UI{
				Debounce:    cfg.Debounce(),
				Persistence: p,
			}
			return oo.HandleError(u.Do(context.Background()))
		},
	}

	topLevel.AddCommand(cmd)
}
