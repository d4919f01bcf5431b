package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/verdantlabs/growcal/pkg/commands/options"
	"github.com/verdantlabs/growcal/pkg/plant"
	"github.com/verdantlabs/growcal/pkg/runner/add"
	"github.com/verdantlabs/growcal/pkg/store"
)

func addPlant(topLevel *cobra.Command) {
	po := &options.PlantOptions{}
	io := &options.IDOptions{}
	name := ""

	cmd := &cobra.Command{
		Use:   "plant",
		Short: "Add a plant.",
		Example: `
growcal add plant Blue Dream --strain=hybrid --stage=vegetative
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a plant name")
			}
			name = strings.Join(args, " ")
			return nil
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			p, err := store.Load(nil)
			if err != nil {
				return oo.HandleError(err)
			}

			a := add.Add{
				Plant: &plant.Record{
					Name:     name,
					Strain:   po.Strain,
					Stage:    po.Stage,
					ImageURL: po.ImageURL,
				},
				ShowID:      io.ShowID,
				Persistence: p,
			}
			return oo.HandleError(a.Do(context.Background()))
		},
	}

	options.AddPlantArgs(cmd, po)
	options.AddShowIDArgs(cmd, io)

	topLevel.AddCommand(cmd)
}
