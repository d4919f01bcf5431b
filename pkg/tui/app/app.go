// Package app hosts the interactive calendar UI. The Bubble Tea model owns
// presentation and key handling only; all fetch scheduling, staleness
// rules, and completion routing live in the calendar engine it wraps.
package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"github.com/verdantlabs/growcal/pkg/calendar"
	"github.com/verdantlabs/growcal/pkg/dateutil"
	"github.com/verdantlabs/growcal/pkg/store"
	"github.com/verdantlabs/growcal/pkg/task"
	"github.com/verdantlabs/growcal/pkg/tui/theme"
	monthgrid "github.com/verdantlabs/growcal/pkg/ui/calendar"
)

type engineEventMsg struct {
	ok bool
}

type watchStartedMsg struct {
	ch     <-chan store.Event
	cancel context.CancelFunc
	err    error
}

type watchEventMsg struct {
	event store.Event
	ok    bool
}

type completeDoneMsg struct {
	title string
	err   error
}

// Model renders the calendar engine's snapshot and translates key presses
// into engine calls.
type Model struct {
	ctx    context.Context
	engine *calendar.Engine
	st     *store.Store

	events      <-chan calendar.Event
	watch       <-chan store.Event
	watchCancel context.CancelFunc

	snap    calendar.Snapshot
	cursor  int
	overlay *addOverlay

	width  int
	height int

	status    string
	statusErr bool

	theme theme.Theme
}

// New constructs the root model around a started engine.
func New(ctx context.Context, engine *calendar.Engine, st *store.Store) *Model {
	return &Model{
		ctx:    ctx,
		engine: engine,
		st:     st,
		events: engine.Events(),
		snap:   engine.Snapshot(),
		theme:  theme.Default(),
	}
}

// Run launches the Bubble Tea program and blocks until it exits. The engine
// is closed on the way out.
func Run(ctx context.Context, engine *calendar.Engine, st *store.Store) error {
	m := New(ctx, engine, st)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithReportFocus())
	_, err := p.Run()
	m.stopWatch()
	engine.Close()
	return err
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	m.engine.SetEnabled(m.ctx, true)
	return tea.Batch(m.waitForEngine(), startWatchCmd(m.ctx, m.st))
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch v := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = v.Width
		m.height = v.Height

	case tea.FocusMsg:
		m.engine.SetEnabled(m.ctx, true)

	case tea.BlurMsg:
		m.engine.SetEnabled(m.ctx, false)

	case tea.KeyPressMsg:
		if m.overlay != nil {
			if cmd := m.handleOverlayKey(v); cmd != nil {
				cmds = append(cmds, cmd)
			}
			break
		}
		if cmd, quit := m.handleKeyPress(v); quit {
			return m, tea.Quit
		} else if cmd != nil {
			cmds = append(cmds, cmd)
		}

	case engineEventMsg:
		if v.ok {
			m.snap = m.engine.Snapshot()
			m.clampCursor()
			cmds = append(cmds, m.waitForEngine())
		}

	case watchStartedMsg:
		if v.err != nil {
			m.setError(fmt.Sprintf("watch unavailable: %v", v.err))
			break
		}
		m.watch = v.ch
		m.watchCancel = v.cancel
		cmds = append(cmds, m.waitForWatch())

	case watchEventMsg:
		if v.ok {
			m.engine.Refetch(m.ctx)
			cmds = append(cmds, m.waitForWatch())
		}

	case completeDoneMsg:
		if v.err != nil {
			m.setError(fmt.Sprintf("complete %q: %v", v.title, v.err))
		} else {
			m.setStatus(fmt.Sprintf("completed %q", v.title))
		}

	case addTaskDoneMsg:
		if v.err != nil {
			m.setError(fmt.Sprintf("add %q: %v", v.title, v.err))
		} else {
			m.setStatus(fmt.Sprintf("added %q", v.title))
		}
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleKeyPress(msg tea.KeyPressMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return nil, true
	case "left", "h":
		m.selectDay(m.snap.Selected.AddDate(0, 0, -1))
	case "right", "l":
		m.selectDay(m.snap.Selected.AddDate(0, 0, 1))
	case "[":
		m.selectDay(m.snap.Selected.AddDate(0, 0, -7))
	case "]":
		m.selectDay(m.snap.Selected.AddDate(0, 0, 7))
	case "t":
		m.selectDay(time.Now())
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.snap.DayPending)-1 {
			m.cursor++
		}
	case "r":
		m.engine.Refetch(m.ctx)
	case "a":
		m.overlay = newAddOverlay()
	case "enter", "x":
		return m.completeUnderCursor(), false
	}
	return nil, false
}

func (m *Model) handleOverlayKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.overlay = nil
		return nil
	case "enter":
		title := m.overlay.Value()
		m.overlay = nil
		if title == "" {
			return nil
		}
		return m.addTaskCmd(title)
	}
	return m.overlay.Update(msg)
}

func (m *Model) selectDay(day time.Time) {
	m.cursor = 0
	m.engine.Select(m.ctx, day)
	m.snap = m.engine.Snapshot()
}

func (m *Model) completeUnderCursor() tea.Cmd {
	if m.cursor < 0 || m.cursor >= len(m.snap.DayPending) {
		return nil
	}
	tk := m.snap.DayPending[m.cursor]
	return func() tea.Msg {
		// The persistence watcher notices the completed record and refetches;
		// no explicit refresh here.
		err := m.engine.Complete(m.ctx, tk)
		return completeDoneMsg{title: tk.Title, err: err}
	}
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.snap.DayPending) {
		m.cursor = len(m.snap.DayPending) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(s string) {
	m.status = s
	m.statusErr = true
}

func (m *Model) waitForEngine() tea.Cmd {
	return func() tea.Msg {
		_, ok := <-m.events
		return engineEventMsg{ok: ok}
	}
}

func startWatchCmd(parent context.Context, st *store.Store) tea.Cmd {
	if st == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(parent)
		ch, err := st.Watch(ctx)
		if err != nil {
			cancel()
			return watchStartedMsg{err: err}
		}
		return watchStartedMsg{ch: ch, cancel: cancel}
	}
}

func (m *Model) waitForWatch() tea.Cmd {
	ch := m.watch
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		return watchEventMsg{event: ev, ok: ok}
	}
}

func (m *Model) stopWatch() {
	if m.watchCancel != nil {
		m.watchCancel()
		m.watchCancel = nil
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	left := m.theme.Panel.Frame.Render(m.viewMonth())
	right := m.theme.Panel.Frame.Render(m.viewDay())

	body := lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)
	if m.overlay != nil {
		body = lipgloss.JoinVertical(lipgloss.Left, body,
			m.overlay.View(m.theme, m.snap.Selected.Format("Jan 2")))
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, m.viewFooter())
}

func (m *Model) viewMonth() string {
	selected := m.snap.Selected
	title := m.theme.Panel.Title.Render(selected.Format("January 2006"))

	now := time.Now()
	first := time.Date(selected.Year(), selected.Month(), 1, 0, 0, 0, 0, selected.Location())
	days := make([]monthgrid.Day, 0, 31)
	for d := first; d.Month() == selected.Month(); d = d.AddDate(0, 0, 1) {
		days = append(days, monthgrid.Day{
			Day:        d.Day(),
			Count:      m.snap.Counts[dateutil.DayKey(d)],
			IsToday:    sameDay(d, now),
			IsSelected: sameDay(d, selected),
		})
	}

	grid := monthgrid.Render(selected, days, monthgrid.Options{
		HeaderStyle:   m.theme.Calendar.Header,
		EmptyStyle:    m.theme.Calendar.Empty,
		PendingStyle:  m.theme.Calendar.Pending,
		TodayStyle:    m.theme.Calendar.Today,
		SelectedStyle: m.theme.Calendar.Selected,
		ShowHeader:    true,
	})

	return lipgloss.JoinVertical(lipgloss.Left, title, grid)
}

func (m *Model) viewDay() string {
	var b strings.Builder

	title := m.snap.Selected.Format("Mon Jan 2")
	if m.snap.Loading {
		title += " …"
	}
	b.WriteString(m.theme.Panel.Title.Render(title))
	b.WriteString("\n")

	if len(m.snap.DayPending) == 0 {
		b.WriteString(m.theme.Panel.Faint.Render("nothing pending"))
		b.WriteString("\n")
	}
	for i, tk := range m.snap.DayPending {
		b.WriteString(m.renderTask(tk, i == m.cursor, false))
		b.WriteString("\n")
	}

	if len(m.snap.DayCompleted) > 0 {
		b.WriteString(m.theme.Panel.Faint.Render("done"))
		b.WriteString("\n")
		for _, tk := range m.snap.DayCompleted {
			b.WriteString(m.renderTask(tk, false, true))
			b.WriteString("\n")
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) renderTask(tk task.Task, selected, completed bool) string {
	glyph := "·"
	if task.IsEphemeral(tk) {
		glyph = "↻"
	}
	if completed {
		glyph = "✘"
	}

	line := fmt.Sprintf("%s %s", glyph, tk.Title)
	if p, ok := m.snap.Plants[tk.PlantID]; ok {
		line += m.theme.Panel.Faint.Render("  (" + p.Name + ")")
	}

	style := m.theme.Panel.Body
	if completed {
		style = m.theme.Panel.Faint
	}
	if selected {
		style = style.Reverse(true)
	}
	return style.Render(line)
}

func (m *Model) viewFooter() string {
	help := m.theme.Footer.Help.Render("←/→ day  [/] week  t today  ↑/↓ move  enter complete  a add  r refresh  q quit")
	if m.status == "" {
		return help
	}

	status := m.theme.Footer.Status.Render(m.status)
	if m.statusErr {
		status = m.theme.Footer.Error.Render(m.status)
	}
	return lipgloss.JoinVertical(lipgloss.Left, status, help)
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
