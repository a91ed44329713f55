// Package queuepanel renders the play queue and lets the user reorder it.
package queuepanel

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/aurex/internal/catalog"
	"github.com/llehouerou/aurex/internal/ui"
)

// PlayFromMsg asks to start playback at a queue index, dropping the
// entries before it.
type PlayFromMsg struct {
	Index int
}

// MoveMsg asks to move the entry at From so it lands at index To.
type MoveMsg struct {
	From, To int
}

// Model represents the queue panel state.
type Model struct {
	ui.Base
	queue  []catalog.FullTrack
	cursor int
	offset int
}

// New creates an empty queue panel.
func New() Model {
	return Model{}
}

// SetQueue replaces the displayed queue, keeping the cursor in range.
func (m *Model) SetQueue(queue []catalog.FullTrack) {
	m.queue = queue
	m.cursor = min(m.cursor, max(len(queue)-1, 0))
	m.ensureCursorVisible()
}

// Cursor returns the selected queue index.
func (m Model) Cursor() int {
	return m.cursor
}

// Len returns the number of queued tracks.
func (m Model) Len() int {
	return len(m.queue)
}

// Update handles keys while the panel is focused.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !m.IsFocused() {
		return m, nil
	}

	switch keyMsg.String() {
	case "j", "down":
		m.moveCursor(1)
	case "k", "up":
		m.moveCursor(-1)
	case "g", "home":
		m.cursor = 0
		m.offset = 0
	case "G", "end":
		m.moveCursor(len(m.queue))
	case "enter":
		if len(m.queue) > 0 {
			idx := m.cursor
			m.cursor = 0
			m.offset = 0
			return m, func() tea.Msg { return PlayFromMsg{Index: idx} }
		}
	case "J", "shift+down":
		if m.cursor < len(m.queue)-1 {
			from := m.cursor
			m.moveCursor(1)
			// Insertion happens after removal, so one past the target.
			return m, func() tea.Msg { return MoveMsg{From: from, To: from + 2} }
		}
	case "K", "shift+up":
		if m.cursor > 0 && m.cursor < len(m.queue) {
			from := m.cursor
			m.moveCursor(-1)
			return m, func() tea.Msg { return MoveMsg{From: from, To: from - 1} }
		}
	}
	return m, nil
}

func (m Model) listHeight() int {
	return m.ListHeight(ui.PanelOverhead)
}

func (m *Model) moveCursor(delta int) {
	if len(m.queue) == 0 {
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), len(m.queue)-1)
	m.ensureCursorVisible()
}

func (m *Model) ensureCursorVisible() {
	height := m.listHeight()
	if height <= 0 {
		return
	}
	margin := min(ui.ScrollMargin, (height-1)/2)
	if m.cursor < m.offset+margin {
		m.offset = max(m.cursor-margin, 0)
	}
	if m.cursor >= m.offset+height-margin {
		m.offset = m.cursor - height + margin + 1
	}
	m.offset = min(max(m.offset, 0), max(len(m.queue)-height, 0))
}
