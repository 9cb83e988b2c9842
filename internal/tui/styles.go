package tui

import "github.com/charmbracelet/lipgloss"

// Semantic color palette.
var (
	colorPrimary = lipgloss.Color("#00BFFF") // Cyan — headers/accent
	colorSuccess = lipgloss.Color("#00E676") // Green — completed
	colorDanger  = lipgloss.Color("#FF5252") // Red — fatal diagnostics
	colorWarning = lipgloss.Color("#FFD700") // Gold — warnings
	colorMuted   = lipgloss.Color("#636363") // Gray — de-emphasized
	colorWhite   = lipgloss.Color("#EEEEEE") // Off-white — primary text
)

var (
	styleTitle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	styleStatus = lipgloss.NewStyle().
			Foreground(colorWhite)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorWarning)

	styleFatal = lipgloss.NewStyle().
			Foreground(colorDanger).
			Bold(true)

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorSuccess).
			Bold(true)

	styleHelp = lipgloss.NewStyle().
			Foreground(colorMuted)
)
