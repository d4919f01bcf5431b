package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/verdantlabs/growcal/pkg/plant"
	"github.com/verdantlabs/growcal/pkg/task"
)

type PrettyPrint struct {
	ShowID bool
}

var (
	spacing = strings.Repeat(" ", len("171dff69f8b99dca  "))
)

func (pp *PrettyPrint) NewLine() {
	fmt.Println("")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Print(spacing)
	}
	_, _ = t.Println(title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Print(spacing)
	}
	_, _ = t.Print(title)
	_, _ = c.Printf(" - %d", count)

	switch count {
	case 1:
		_, _ = c.Println(" task")
	default:
		_, _ = c.Println(" tasks")
	}
}

// Tasks prints pending tasks, one per line, with their due time and the
// plant they belong to when a projection is known.
func (pp *PrettyPrint) Tasks(plants map[string]plant.Projection, tasks ...task.Task) {
	pp.list(plants, false, tasks...)
}

// CompletedTasks prints completed tasks in the same layout with a crossed
// glyph.
func (pp *PrettyPrint) CompletedTasks(plants map[string]plant.Projection, tasks ...task.Task) {
	pp.list(plants, true, tasks...)
}

func (pp *PrettyPrint) list(plants map[string]plant.Projection, completed bool, tasks ...task.Task) {
	if len(tasks) == 0 {
		f := color.New(color.Faint, color.Italic)
		if pp.ShowID {
			_, _ = f.Print(spacing)
		}
		_, _ = f.Print(" none\n\n")
		return
	}

	t := color.New()
	f := color.New(color.Faint)
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)

	for _, tk := range tasks {
		if pp.ShowID {
			id := tk.ID
			if len(id) > len(spacing)-2 {
				id = id[:len(spacing)-2]
			}
			_, _ = y.Print(id)
			_, _ = y.Print(strings.Repeat(" ", len(spacing)-len(id)))
		}

		_, _ = f.Print(dueClock(tk))
		_, _ = t.Printf(" %s %s", glyph(tk, completed), tk.Title)
		if p, ok := plants[tk.PlantID]; ok {
			_, _ = f.Printf("  (%s)", p.Name)
		}
		_, _ = t.Println("")
	}
	_, _ = t.Println("")
}

func dueClock(tk task.Task) string {
	due, err := tk.DueAt()
	if err != nil {
		return "--:--"
	}
	return due.Format("15:04")
}

func glyph(tk task.Task, completed bool) string {
	if completed {
		return "✘"
	}
	if task.IsEphemeral(tk) {
		return "↻"
	}
	return "·"
}
