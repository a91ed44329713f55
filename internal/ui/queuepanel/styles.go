package queuepanel

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/aurex/internal/ui/styles"
)

func headerStyle() lipgloss.Style {
	return styles.T().S().Title
}

func trackStyle() lipgloss.Style {
	return styles.T().S().Base
}

func nextStyle() lipgloss.Style {
	return styles.T().S().Playing
}

func cursorStyle() lipgloss.Style {
	return styles.T().S().Cursor
}

func emptyStyle() lipgloss.Style {
	return styles.T().S().Subtle
}
