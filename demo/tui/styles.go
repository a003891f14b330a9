package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
const (
	colorAccent  = "#00ADD8"
	colorOK      = "#2EC27E"
	colorError   = "#E01B24"
	colorMuted   = "#8A8A8A"
	colorInverse = "#101018"
	colorBorder  = "#1E8BC3"
)

// Styles for the demo client
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorAccent)).
			MarginTop(1)

	StatusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorOK))

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorError))

	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorMuted))

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color(colorBorder)).
			Padding(0, 2)

	HighlightStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorInverse)).
			Background(lipgloss.Color(colorAccent)).
			Padding(0, 1)

	ResultTitleStyle = lipgloss.NewStyle().
				Bold(true)

	URLStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorMuted)).
			Underline(true)
)
