package tui

import "github.com/charmbracelet/lipgloss"

var (
	appStyle    = lipgloss.NewStyle().Padding(1, 2)
	titleStyle  = lipgloss.NewStyle().Bold(true)
	helpStyle   = lipgloss.NewStyle().Faint(true)
	errorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	secretStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	tableBorder = lipgloss.NewStyle().Border(lipgloss.RoundedBorder())
)
