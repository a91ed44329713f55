package playerbar

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/aurex/internal/ui/styles"
)

func barStyle() lipgloss.Style {
	return styles.PanelStyle(false)
}

func titleStyle() lipgloss.Style {
	return styles.T().S().Title
}

func metaStyle() lipgloss.Style {
	return styles.T().S().Muted
}

func timeStyle() lipgloss.Style {
	return styles.T().S().Muted
}

func emptyStyle() lipgloss.Style {
	return styles.T().S().Subtle
}
