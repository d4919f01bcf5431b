package printers

import (
	"fmt"

	"github.com/gosuri/uitable"

	"github.com/verdantlabs/growcal/pkg/plant"
)

// PlantTable prints plant records in a columnar table.
func (pp *PrettyPrint) PlantTable(records ...plant.Record) {
	if len(records) == 0 {
		pp.list(nil, false)
		return
	}

	table := uitable.New()
	table.MaxColWidth = 50

	table.AddRow("ID", "NAME", "STRAIN", "STAGE")
	for _, r := range records {
		table.AddRow(r.ID, r.Name, r.Strain, r.Stage)
	}
	fmt.Println(table)
	fmt.Println("")
}
