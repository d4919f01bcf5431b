package theme

import "github.com/charmbracelet/lipgloss/v2"

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Calendar CalendarTheme
	Panel    PanelTheme
	Footer   FooterTheme
}

// CalendarTheme styles the month grid.
type CalendarTheme struct {
	Header   lipgloss.Style
	Empty    lipgloss.Style
	Pending  lipgloss.Style
	Today    lipgloss.Style
	Selected lipgloss.Style
}

// PanelTheme styles framed panels and headings.
type PanelTheme struct {
	Frame lipgloss.Style
	Title lipgloss.Style
	Body  lipgloss.Style
	Faint lipgloss.Style
}

// FooterTheme groups styles used by the bottom status bar.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	return Theme{
		Calendar: CalendarTheme{
			Header:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Empty:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
			Pending:  lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true),
			Today:    lipgloss.NewStyle().Foreground(lipgloss.Color("212")),
			Selected: lipgloss.NewStyle().Reverse(true),
		},
		Panel: PanelTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("238")).
				Padding(0, 1),
			Title: lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
			Body:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
			Faint: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		},
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		},
	}
}
