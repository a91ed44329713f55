package playback

import "github.com/llehouerou/aurex/internal/catalog"

// Snapshot is a point-in-time copy of the player state.
//
// CurrentlyPlaying is nil exactly when State is StateEmpty. Queue[0] plays
// next. Position is informational; live progress is published as
// ProgressChange events.
type Snapshot struct {
	CurrentlyPlaying *catalog.FullTrack  `json:"currently_playing"`
	State            TransportState      `json:"state"`
	Queue            []catalog.FullTrack `json:"queue"`
	Position         float64             `json:"position"`
}

// Clone returns a deep copy. The queue of the copy is never nil.
func (s Snapshot) Clone() Snapshot {
	c := Snapshot{
		State:    s.State,
		Queue:    make([]catalog.FullTrack, len(s.Queue)),
		Position: s.Position,
	}
	if s.CurrentlyPlaying != nil {
		cur := s.CurrentlyPlaying.Clone()
		c.CurrentlyPlaying = &cur
	}
	for i, t := range s.Queue {
		c.Queue[i] = t.Clone()
	}
	return c
}
