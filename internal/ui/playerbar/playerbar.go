// Package playerbar renders the single-line transport bar.
package playerbar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/aurex/internal/playback"
	"github.com/llehouerou/aurex/internal/ui/render"
	"github.com/llehouerou/aurex/internal/ui/styles"
)

const (
	playSymbol  = "▶"
	pauseSymbol = "⏸"

	minBarWidth = 10
)

// Height is the number of rows Render produces.
const Height = 3

// State holds everything needed to render the player bar.
type State struct {
	Playing  bool
	Paused   bool
	Title    string
	Artist   string
	Album    string
	Position time.Duration
	Duration time.Duration
	Queued   int
}

// NewState builds a State from a player snapshot and the last reported
// position in seconds.
func NewState(snap playback.Snapshot, position float64) State {
	track := snap.CurrentlyPlaying
	if track == nil {
		return State{Queued: len(snap.Queue)}
	}
	return State{
		Playing:  snap.State == playback.StatePlaying,
		Paused:   snap.State == playback.StatePaused,
		Title:    track.Title,
		Artist:   track.ArtistName,
		Album:    track.AlbumTitle,
		Position: time.Duration(position * float64(time.Second)),
		Duration: time.Duration(track.Duration) * time.Millisecond,
		Queued:   len(snap.Queue),
	}
}

// Render returns the bar for the given width.
func Render(s State, width int) string {
	innerWidth := max(width-6, 0)
	style := barStyle().Padding(0, 2).Width(max(width-2, 0))

	if !s.Playing && !s.Paused {
		return style.Render(styles.T().S().Subtle.Render(render.Truncate("Nothing playing", innerWidth)))
	}

	title := s.Title
	if title == "" {
		title = "Unknown Track"
	}
	var parts []string
	if s.Artist != "" {
		parts = append(parts, s.Artist)
	}
	if s.Album != "" {
		parts = append(parts, s.Album)
	}
	info := strings.Join(parts, " · ")

	queued := ""
	if s.Queued > 0 {
		queued = fmt.Sprintf("+%d", s.Queued)
	}

	const sep = "   "
	timeStr := formatDuration(s.Position) + " / " + formatDuration(s.Duration)
	status := playSymbol
	if s.Paused {
		status = pauseSymbol
	}

	fixed := lipgloss.Width(status) + 2 + lipgloss.Width(timeStr) + 2*len(sep)
	if queued != "" {
		fixed += lipgloss.Width(queued) + len(sep)
	}
	available := max(innerWidth-fixed-minBarWidth, 0)

	text := title
	if info != "" {
		text += sep + info
	}
	text = render.TruncateEllipsis(render.Sanitize(text), available)
	barWidth := max(innerWidth-fixed-lipgloss.Width(text), 3)

	var b strings.Builder
	b.WriteString(titleStyle().Render(text))
	if queued != "" {
		b.WriteString(sep)
		b.WriteString(metaStyle().Render(queued))
	}
	b.WriteString(sep)
	b.WriteString(status)
	b.WriteString("  ")
	b.WriteString(bar(s.Position, s.Duration, barWidth))
	b.WriteString(sep)
	b.WriteString(timeStyle().Render(timeStr))

	return style.Render(b.String())
}

func formatDuration(d time.Duration) string {
	d = max(d, 0)
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", m, s)
}
