// Package plant holds the minimal plant read model the calendar needs:
// just enough to label a task with the plant it belongs to.
package plant

import "github.com/verdantlabs/growcal/pkg/task"

// Record is the stored plant row.
type Record struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Strain   string `json:"strain,omitempty"`
	Stage    string `json:"stage,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// Projection is the read-only view handed to the calendar UI. It is rebuilt
// every fetch cycle and never merged across cycles.
type Projection struct {
	ID       string
	Name     string
	ImageURL string
}

// IDSet collects the distinct plant ids referenced by the given tasks.
func IDSet(tasks ...[]task.Task) map[string]struct{} {
	ids := make(map[string]struct{})
	for _, list := range tasks {
		for _, t := range list {
			if t.PlantID != "" {
				ids[t.PlantID] = struct{}{}
			}
		}
	}
	return ids
}
