package options

import (
	"github.com/spf13/cobra"
)

// IDOptions carries task id flags.
type IDOptions struct {
	ShowID bool
}

func AddShowIDArgs(cmd *cobra.Command, o *IDOptions) {
	cmd.Flags().BoolVarP(&o.ShowID, "show-id", "k", false,
		"Show the id of each task.")
}
