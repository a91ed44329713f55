package queuepanel

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/aurex/internal/catalog"
	"github.com/llehouerou/aurex/internal/ui"
	"github.com/llehouerou/aurex/internal/ui/render"
	"github.com/llehouerou/aurex/internal/ui/styles"
)

// View renders the queue panel.
func (m Model) View() string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}

	innerWidth := m.Width() - ui.BorderHeight
	content := m.renderHeader(innerWidth) + "\n" +
		render.Separator(innerWidth) + "\n" +
		m.renderTrackList(innerWidth, m.listHeight())

	return styles.PanelStyle(m.IsFocused()).
		Width(innerWidth).
		Render(content)
}

func (m Model) renderHeader(innerWidth int) string {
	var total int64
	for _, t := range m.queue {
		total += t.Duration
	}
	left := fmt.Sprintf("Up next (%s)", humanize.Comma(int64(len(m.queue))))
	right := ""
	if total > 0 {
		right = catalog.Track{Duration: total}.FormattedDuration()
	}
	return headerStyle().Render(render.Row(render.Truncate(left, innerWidth), right, innerWidth))
}

func (m Model) renderTrackList(innerWidth, listHeight int) string {
	if len(m.queue) == 0 {
		lines := []string{emptyStyle().Render(render.TruncateAndPad("Queue is empty", innerWidth))}
		for range listHeight - 1 {
			lines = append(lines, render.Pad("", innerWidth))
		}
		return strings.Join(lines, "\n")
	}

	lines := make([]string, 0, listHeight)
	for i := range listHeight {
		idx := i + m.offset
		if idx >= len(m.queue) {
			lines = append(lines, render.Pad("", innerWidth))
			continue
		}
		lines = append(lines, m.renderTrackLine(m.queue[idx], idx, innerWidth))
	}
	return strings.Join(lines, "\n")
}

// renderTrackLine lays out "NN. title  artist  m:ss".
func (m Model) renderTrackLine(track catalog.FullTrack, idx, width int) string {
	num := fmt.Sprintf("%2d. ", idx+1)
	dur := " " + track.FormattedDuration()
	content := max(width-lipgloss.Width(num)-lipgloss.Width(dur), 0)

	titleWidth := content / 2
	artistWidth := content - titleWidth
	line := num +
		render.TruncateAndPad(track.Title, titleWidth) +
		render.TruncateAndPad(track.ArtistName, artistWidth) +
		dur

	return m.lineStyle(idx).Render(line)
}

func (m Model) lineStyle(idx int) lipgloss.Style {
	isCursor := idx == m.cursor && m.IsFocused()
	switch {
	case isCursor && idx == 0:
		return cursorStyle().Inherit(nextStyle())
	case isCursor:
		return cursorStyle()
	case idx == 0:
		return nextStyle()
	default:
		return trackStyle()
	}
}
