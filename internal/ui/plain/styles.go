package plain

import "github.com/charmbracelet/lipgloss"

// The original tool's ANSI palette: green correct, red incorrect, yellow
// hints, blue supplementary info.
var (
	correctStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	incorrectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	hintStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	infoStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	boldStyle      = lipgloss.NewStyle().Bold(true)
)
