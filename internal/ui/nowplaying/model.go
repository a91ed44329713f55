// Package nowplaying is the full-screen terminal player: the transport
// bar, the play queue and a library search prompt.
package nowplaying

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/aurex/internal/catalog"
	"github.com/llehouerou/aurex/internal/playback"
	"github.com/llehouerou/aurex/internal/ui/queuepanel"
)

// seekStep is the jump of the seek keys, in seconds.
const seekStep = 5.0

// Library is the catalog query the search prompt needs.
type Library interface {
	SearchTracks(query string) ([]catalog.FullTrack, error)
}

// Model is the bubbletea model of the player screen.
type Model struct {
	svc  playback.Service
	lib  Library
	sub  *playback.Subscription
	keys KeyMap
	help help.Model

	input     textinput.Model
	searching bool
	enqueue   bool

	queue    queuepanel.Model
	snap     playback.Snapshot
	position float64
	status   string
	isError  bool

	width, height int
}

// New subscribes to svc. Call Close once the program exits.
func New(svc playback.Service, lib Library) Model {
	input := textinput.New()
	input.Placeholder = "title or artist"
	input.CharLimit = 128

	snap := svc.Player()
	queue := queuepanel.New()
	queue.SetQueue(snap.Queue)

	return Model{
		svc:      svc,
		lib:      lib,
		sub:      svc.Subscribe(),
		keys:     DefaultKeyMap(),
		help:     help.New(),
		input:    input,
		queue:    queue,
		snap:     snap,
		position: snap.Position,
	}
}

func (m Model) Init() tea.Cmd {
	return watch(m.sub)
}

// Close releases the subscription.
func (m Model) Close() {
	m.svc.Unsubscribe(m.sub)
}

// Snapshot returns the last player state the model has seen.
func (m Model) Snapshot() playback.Snapshot {
	return m.snap
}
