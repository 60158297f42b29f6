package render

import "github.com/charmbracelet/lipgloss"

const (
	cellW        = 7 // width of each column in characters
	labelVisualW = 7 // visual width of the qubit label area
	barW         = 30
)

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7aa2f7")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff9e64"))

	qubitLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7dcfff"))

	gateStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#73daca"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#565f89"))

	barStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bb9af7"))

	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#9ece6a"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#7dcfff"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#e0af68"))
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f7768e"))
)
