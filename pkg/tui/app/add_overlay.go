package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"github.com/verdantlabs/growcal/pkg/task"
	"github.com/verdantlabs/growcal/pkg/tui/theme"
)

type addTaskDoneMsg struct {
	title string
	err   error
}

// addOverlay captures a title for a new task on the selected day.
type addOverlay struct {
	input textinput.Model
}

func newAddOverlay() *addOverlay {
	ti := textinput.New()
	ti.Placeholder = "Describe the task…"
	ti.Prompt = "> "
	ti.Focus()
	return &addOverlay{input: ti}
}

func (o *addOverlay) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	o.input, cmd = o.input.Update(msg)
	return cmd
}

func (o *addOverlay) Value() string {
	return strings.TrimSpace(o.input.Value())
}

func (o *addOverlay) View(th theme.Theme, day string) string {
	title := th.Panel.Title.Render("add task · " + day)
	return th.Panel.Frame.Render(lipgloss.JoinVertical(lipgloss.Left, title, o.input.View()))
}

func (m *Model) addTaskCmd(title string) tea.Cmd {
	day := m.snap.Selected
	return func() tea.Msg {
		tk := task.Task{
			Title:      title,
			DueAtLocal: day.Format("2006-01-02") + "T09:00:00",
		}
		err := m.st.StoreTask(&tk)
		return addTaskDoneMsg{title: title, err: err}
	}
}
