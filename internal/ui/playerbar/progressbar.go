package playerbar

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/aurex/internal/ui/styles"
)

// ratio is position over duration, within 0..1.
func ratio(position, duration time.Duration) float64 {
	if duration <= 0 {
		return 0
	}
	return min(max(float64(position)/float64(duration), 0), 1)
}

// bar draws a progress line width cells wide with a gradient on the
// elapsed part.
func bar(position, duration time.Duration, width int) string {
	if width <= 0 {
		return ""
	}
	filled := int(float64(width) * ratio(position, duration))
	elapsed := styles.ApplyGradient(strings.Repeat("━", filled), styles.T().Primary, styles.T().Secondary)
	return elapsed + emptyStyle().Render(strings.Repeat("─", width-filled))
}

// RenderProgressBar renders "▶  1:23  ━━━───  4:56" in width cells. When
// too narrow for a bar it falls back to the times alone.
func RenderProgressBar(position, duration time.Duration, width int, playing bool) string {
	status := playSymbol
	if !playing {
		status = pauseSymbol
	}
	pos := formatDuration(position)
	dur := formatDuration(duration)

	fixed := lipgloss.Width(status) + 2 + lipgloss.Width(pos) + 2 + 2 + lipgloss.Width(dur)
	barWidth := width - fixed
	if barWidth < 3 {
		return status + "  " + pos + " / " + dur
	}
	return status + "  " + pos + "  " + bar(position, duration, barWidth) + "  " + dur
}
