package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	monthLabelStyle = lipgloss.NewStyle().
			Width(10).
			Foreground(lipgloss.Color("252"))

	outsideTripStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("238"))
)

// cellStyle colours a heatmap cell with the hex value from the timeline scale.
func cellStyle(hex string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
}
