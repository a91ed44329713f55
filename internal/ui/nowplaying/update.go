package nowplaying

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/aurex/internal/catalog"
	"github.com/llehouerou/aurex/internal/playback"
	"github.com/llehouerou/aurex/internal/ui/playerbar"
	"github.com/llehouerou/aurex/internal/ui/queuepanel"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.layout()
		return m, nil

	case PlayerMsg:
		m.setSnapshot(msg.Snapshot)
		return m, watch(m.sub)

	case ProgressMsg:
		m.position = msg.Position
		return m, watch(m.sub)

	case ErrorMsg:
		m.setError(fmt.Sprintf("%s failed: %v", msg.Event.Operation, msg.Event.Err))
		return m, watch(m.sub)

	case ClosedMsg:
		return m, tea.Quit

	case searchDoneMsg:
		m.handleSearch(msg)
		return m, nil

	case queuepanel.PlayFromMsg:
		m.playFrom(msg.Index)
		return m, nil

	case queuepanel.MoveMsg:
		m.setSnapshot(m.svc.ChangeQueueIndex(msg.From, msg.To))
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
		return m, nil
	case key.Matches(msg, m.keys.Focus):
		m.queue.SetFocused(!m.queue.IsFocused())
		return m, nil
	}

	if m.queue.IsFocused() {
		var cmd tea.Cmd
		m.queue, cmd = m.queue.Update(msg)
		if cmd != nil {
			return m, cmd
		}
	}

	switch {
	case key.Matches(msg, m.keys.Toggle):
		if m.snap.State == playback.StatePlaying {
			m.setSnapshot(m.svc.Pause())
		} else {
			m.setSnapshot(m.svc.Play())
		}
	case key.Matches(msg, m.keys.Next):
		m.setSnapshot(m.svc.Next())
	case key.Matches(msg, m.keys.Clear):
		m.setSnapshot(m.svc.Clear())
	case key.Matches(msg, m.keys.Back):
		m.seek(-seekStep)
	case key.Matches(msg, m.keys.Forward):
		m.seek(seekStep)
	case key.Matches(msg, m.keys.Search), key.Matches(msg, m.keys.Enqueue):
		m.searching = true
		m.enqueue = key.Matches(msg, m.keys.Enqueue)
		m.input.Reset()
		return m, m.input.Focus()
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.searching = false
		m.input.Blur()
		return m, nil
	case tea.KeyEnter:
		m.searching = false
		m.input.Blur()
		query := strings.TrimSpace(m.input.Value())
		if query == "" || m.lib == nil {
			return m, nil
		}
		return m, search(m.lib, query, m.enqueue)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleSearch(msg searchDoneMsg) {
	switch {
	case msg.err != nil:
		m.setError(fmt.Sprintf("search failed: %v", msg.err))
	case len(msg.tracks) == 0:
		m.setStatus(fmt.Sprintf("no match for %q", msg.query))
	case msg.enqueue:
		m.setSnapshot(m.svc.AddListToQueue(msg.tracks, nil))
		m.setStatus(fmt.Sprintf("queued %d tracks", len(msg.tracks)))
	default:
		m.setSnapshot(m.svc.PlayList(msg.tracks, 0))
		m.setStatus(fmt.Sprintf("playing %d matches for %q", len(msg.tracks), msg.query))
	}
}

func (m *Model) seek(delta float64) {
	if m.snap.CurrentlyPlaying == nil {
		return
	}
	target := max(m.position+delta, 0)
	m.svc.Seek(target)
	m.position = target
}

// playFrom plays the queue from the track shown at index. The live queue
// may have moved on since it was drawn, so the track is looked up by ID.
func (m *Model) playFrom(index int) {
	live := m.svc.Player()
	if index < 0 || index >= len(m.snap.Queue) {
		m.setSnapshot(live)
		return
	}
	want := m.snap.Queue[index].ID
	if index >= len(live.Queue) || live.Queue[index].ID != want {
		index = slices.IndexFunc(live.Queue, func(t catalog.FullTrack) bool { return t.ID == want })
	}
	if index < 0 {
		m.setSnapshot(live)
		return
	}
	m.setSnapshot(m.svc.PlayList(live.Queue, index))
}

func (m *Model) setSnapshot(snap playback.Snapshot) {
	prev := m.snap.CurrentlyPlaying
	m.snap = snap
	if snap.CurrentlyPlaying == nil || prev == nil || prev.ID != snap.CurrentlyPlaying.ID {
		m.position = snap.Position
	}
	m.queue.SetQueue(snap.Queue)
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.isError = false
}

func (m *Model) setError(s string) {
	m.status = s
	m.isError = true
}

// layout gives the queue what the bar, status and help lines leave.
func (m *Model) layout() {
	helpHeight := 1
	if m.help.ShowAll {
		helpHeight = len(m.keys.FullHelp()[0])
	}
	m.queue.SetSize(m.width, m.height-playerbar.Height-helpHeight-1)
}
