package report

import "github.com/charmbracelet/lipgloss"

// Color palette shared by report rendering and the interactive runner.
var (
	salmonPink  = lipgloss.Color("#FFB3BA") // failures, attention
	mintGreen   = lipgloss.Color("#A8E6CF") // passes, success states
	mutedGray   = lipgloss.Color("#6B7280") // secondary text
	brightWhite = lipgloss.Color("#F9FAFB") // primary text
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(brightWhite).
			Bold(true)

	passStyle = lipgloss.NewStyle().
			Foreground(mintGreen)

	failStyle = lipgloss.NewStyle().
			Foreground(salmonPink).
			Bold(true)

	skipStyle = lipgloss.NewStyle().
			Foreground(mutedGray)

	scenarioStyle = lipgloss.NewStyle().
			Foreground(brightWhite).
			Bold(true)

	detailStyle = lipgloss.NewStyle().
			Foreground(mutedGray)

	summaryBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(mutedGray).
			Padding(0, 1)
)
