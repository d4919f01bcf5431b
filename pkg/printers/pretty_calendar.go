package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/verdantlabs/growcal/pkg/dateutil"
)

const width = len("11 12 13 14 15 16 17") // an example week

// MonthCounts prints a compact month grid for the month containing
// selected. Days with pending work render bold, selected is highlighted,
// the rest stay faint. Weeks run Monday through Sunday.
func (pp *PrettyPrint) MonthCounts(selected time.Time, counts map[string]int) {
	first := time.Date(selected.Year(), selected.Month(), 1, 0, 0, 0, 0, selected.Location())
	days := first.AddDate(0, 1, -1).Day()

	tf := color.New(color.FgWhite, color.Italic)
	m := selected.Month().String()
	mid := (width - len(m)) / 2
	_, _ = tf.Printf("%s%s%s\n", strings.Repeat(" ", mid), m, strings.Repeat(" ", width-mid-len(m)))

	// Pad out to the weekday of the 1st, Monday in the first column.
	col := int(first.Sub(dateutil.StartOfWeek(first)).Hours() / 24)
	for i := 0; i < col; i++ {
		fmt.Print("   ")
	}

	l1 := color.New(color.Faint, color.FgWhite)
	l2 := color.New(color.Bold, color.FgHiWhite)
	sel := color.New(color.Bold, color.FgHiWhite, color.Underline)

	for i := 0; i < days; i++ {
		day := first.AddDate(0, 0, i)
		printer := l1
		if counts[dateutil.DayKey(day)] > 0 {
			printer = l2
		}
		if day.Day() == selected.Day() {
			printer = sel
		}
		_, _ = printer.Printf("%2d ", i+1)

		col++
		if col > 6 {
			col = 0
			fmt.Print("\n")
		}
	}
	fmt.Print("\n\n")
}
