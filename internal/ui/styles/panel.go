package styles

import "github.com/charmbracelet/lipgloss"

// PanelStyle is a rounded border, highlighted when focused.
func PanelStyle(focused bool) lipgloss.Style {
	color := T().Border
	if focused {
		color = T().BorderFocus
	}
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(color)
}
