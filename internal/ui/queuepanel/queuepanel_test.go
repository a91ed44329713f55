package queuepanel

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/aurex/internal/catalog"
	"github.com/llehouerou/aurex/internal/ui/testutil"
)

func testTrack(n int) catalog.FullTrack {
	return catalog.FullTrack{
		Track: catalog.Track{
			ID:       int64(n),
			Title:    fmt.Sprintf("Song %d", n),
			FilePath: fmt.Sprintf("/music/%d.mp3", n),
			Duration: 60_000,
		},
		ArtistName: fmt.Sprintf("Artist %d", n),
	}
}

func testQueue(n int) []catalog.FullTrack {
	out := make([]catalog.FullTrack, n)
	for i := range n {
		out[i] = testTrack(i + 1)
	}
	return out
}

func newPanel(n, height int) Model {
	m := New()
	m.SetSize(60, height)
	m.SetFocused(true)
	m.SetQueue(testQueue(n))
	return m
}

func press(m Model, keys ...string) (Model, tea.Msg) {
	var msg tea.Msg
	for _, k := range keys {
		var cmd tea.Cmd
		m, cmd = m.Update(testutil.Key(k))
		msg = nil
		if cmd != nil {
			msg = cmd()
		}
	}
	return m, msg
}

func TestView_Empty(t *testing.T) {
	m := newPanel(0, 8)
	out := testutil.Plain(m.View())

	assert.Contains(t, out, "Up next (0)")
	assert.Contains(t, out, "Queue is empty")
	assert.Len(t, strings.Split(out, "\n"), 8)
}

func TestView_ZeroSize(t *testing.T) {
	assert.Empty(t, New().View())
}

func TestView_ListsTracks(t *testing.T) {
	m := newPanel(3, 10)
	out := testutil.Plain(m.View())

	assert.Contains(t, out, "Up next (3)")
	assert.Contains(t, out, "3:00")
	assert.Contains(t, out, " 1. Song 1")
	assert.Contains(t, out, "Artist 2")
	assert.Contains(t, out, " 3. Song 3")
	for _, line := range strings.Split(out, "\n") {
		assert.Equal(t, 60, lipgloss.Width(line))
	}
}

func TestView_ScrollsWithCursor(t *testing.T) {
	m := newPanel(20, 8)
	m, _ = press(m, "G")

	out := testutil.Plain(m.View())
	assert.Equal(t, 19, m.Cursor())
	assert.Contains(t, out, "20. Song 20")
	assert.NotContains(t, out, " 1. Song 1 ")
}

func TestUpdate_Navigation(t *testing.T) {
	m := newPanel(5, 10)

	m, _ = press(m, "j", "j", "down")
	assert.Equal(t, 3, m.Cursor())

	m, _ = press(m, "k", "up")
	assert.Equal(t, 1, m.Cursor())

	m, _ = press(m, "G")
	assert.Equal(t, 4, m.Cursor())

	m, _ = press(m, "j")
	assert.Equal(t, 4, m.Cursor())

	m, _ = press(m, "g")
	assert.Equal(t, 0, m.Cursor())
}

func TestUpdate_IgnoredWhenUnfocused(t *testing.T) {
	m := newPanel(5, 10)
	m.SetFocused(false)

	m, msg := press(m, "j", "enter")
	assert.Equal(t, 0, m.Cursor())
	assert.Nil(t, msg)
}

func TestUpdate_EnterPlaysFromCursor(t *testing.T) {
	m := newPanel(5, 10)

	m, msg := press(m, "j", "j", "enter")
	require.IsType(t, PlayFromMsg{}, msg)
	assert.Equal(t, 2, msg.(PlayFromMsg).Index)
	assert.Equal(t, 0, m.Cursor())
}

func TestUpdate_EnterOnEmptyQueue(t *testing.T) {
	_, msg := press(newPanel(0, 10), "enter")
	assert.Nil(t, msg)
}

func TestUpdate_MoveDown(t *testing.T) {
	m := newPanel(5, 10)

	m, msg := press(m, "j", "J")
	assert.Equal(t, MoveMsg{From: 1, To: 3}, msg)
	assert.Equal(t, 2, m.Cursor())

	m, _ = press(m, "G")
	_, msg = press(m, "J")
	assert.Nil(t, msg)
}

func TestUpdate_MoveUp(t *testing.T) {
	m := newPanel(5, 10)

	_, msg := press(m, "K")
	assert.Nil(t, msg)

	m, msg = press(m, "j", "j", "K")
	assert.Equal(t, MoveMsg{From: 2, To: 1}, msg)
	assert.Equal(t, 1, m.Cursor())
}

func TestSetQueue_ClampsCursor(t *testing.T) {
	m := newPanel(5, 10)
	m, _ = press(m, "G")

	m.SetQueue(testQueue(2))
	assert.Equal(t, 1, m.Cursor())

	m.SetQueue(nil)
	assert.Equal(t, 0, m.Cursor())
	assert.Equal(t, 0, m.Len())
}
