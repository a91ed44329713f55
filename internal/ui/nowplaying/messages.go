package nowplaying

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/aurex/internal/catalog"
	"github.com/llehouerou/aurex/internal/playback"
)

// PlayerMsg carries a new player snapshot.
type PlayerMsg struct {
	Snapshot playback.Snapshot
}

// ProgressMsg carries the playback position in seconds.
type ProgressMsg struct {
	Position float64
}

// ErrorMsg carries an engine failure reported by the service.
type ErrorMsg struct {
	Event playback.ErrorEvent
}

// ClosedMsg is sent once the subscription is closed.
type ClosedMsg struct{}

type searchDoneMsg struct {
	query   string
	enqueue bool
	tracks  []catalog.FullTrack
	err     error
}

// watch waits for the next event on sub.
func watch(sub *playback.Subscription) tea.Cmd {
	if sub == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case e := <-sub.PlayerChanged:
			return PlayerMsg{Snapshot: e.Snapshot}
		case e := <-sub.ProgressChanged:
			return ProgressMsg{Position: e.Position}
		case e := <-sub.Error:
			return ErrorMsg{Event: e}
		case <-sub.Done:
			return ClosedMsg{}
		}
	}
}

func search(lib Library, query string, enqueue bool) tea.Cmd {
	return func() tea.Msg {
		tracks, err := lib.SearchTracks(query)
		return searchDoneMsg{query: query, enqueue: enqueue, tracks: tracks, err: err}
	}
}
