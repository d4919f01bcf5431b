package options

import (
	"github.com/spf13/cobra"
)

// TaskOptions carries flags shared by task-creating commands.
type TaskOptions struct {
	At       string
	Timezone string
	PlantID  string
	Notes    string
}

func AddTaskArgs(cmd *cobra.Command, o *TaskOptions) {
	cmd.Flags().StringVar(&o.At, "at", "09:00",
		"Time of day, 24h clock, example: --at=16:30.")
	cmd.Flags().StringVar(&o.Timezone, "zone", "",
		"IANA timezone name the task is anchored to, example: --zone=America/New_York.")
	cmd.Flags().StringVarP(&o.PlantID, "plant", "p", "",
		"Id of the plant this task belongs to.")
	cmd.Flags().StringVar(&o.Notes, "notes", "",
		"Free-form notes.")
}

// PlantOptions carries flags for plant-creating commands.
type PlantOptions struct {
	Strain   string
	Stage    string
	ImageURL string
}

func AddPlantArgs(cmd *cobra.Command, o *PlantOptions) {
	cmd.Flags().StringVar(&o.Strain, "strain", "", "Strain name.")
	cmd.Flags().StringVar(&o.Stage, "stage", "", "Growth stage, example: --stage=flowering.")
	cmd.Flags().StringVar(&o.ImageURL, "image", "", "Image URL for the plant.")
}

// SeriesOptions carries flags for series-creating commands.
type SeriesOptions struct {
	Start    string
	Interval int
}

func AddSeriesArgs(cmd *cobra.Command, o *SeriesOptions) {
	cmd.Flags().StringVar(&o.Start, "start", "",
		"First occurrence date, yyyy-mm-dd. Defaults to today.")
	cmd.Flags().IntVar(&o.Interval, "every", 1,
		"Days between occurrences.")
}
