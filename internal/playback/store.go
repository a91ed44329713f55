package playback

import (
	"slices"
	"sync"

	"github.com/samber/lo"

	"github.com/llehouerou/aurex/internal/catalog"
)

// mutation is one transition of the player state. The set is closed: every
// change to the store goes through one of the types below.
type mutation interface {
	mutate(s *Snapshot)
}

// setCurrent loads track as the current one with the given state.
type setCurrent struct {
	track catalog.FullTrack
	state TransportState
}

func (m setCurrent) mutate(s *Snapshot) {
	t := m.track.Clone()
	s.CurrentlyPlaying = &t
	s.State = m.state
	s.Position = 0
}

// setState changes the transport state of the loaded track. It never
// leaves StateEmpty, so a clear racing with play or pause wins.
type setState struct {
	state TransportState
}

func (m setState) mutate(s *Snapshot) {
	if s.CurrentlyPlaying == nil || m.state == StateEmpty {
		return
	}
	s.State = m.state
}

// popFront removes the queue head and records it in popped. When valid
// is set and reports false, nothing changes and skipped is set.
type popFront struct {
	valid   func() bool
	popped  *catalog.FullTrack
	skipped bool
}

func (m *popFront) mutate(s *Snapshot) {
	if m.valid != nil && !m.valid() {
		m.skipped = true
		return
	}
	if len(s.Queue) == 0 {
		return
	}
	head := s.Queue[0]
	m.popped = &head
	s.Queue = slices.Delete(s.Queue, 0, 1)
}

type replaceQueue struct {
	tracks []catalog.FullTrack
}

func (m replaceQueue) mutate(s *Snapshot) {
	s.Queue = cloneTracks(m.tracks)
}

// pushFront inserts tracks as a block at the queue head, keeping their order.
type pushFront struct {
	tracks []catalog.FullTrack
}

func (m pushFront) mutate(s *Snapshot) {
	s.Queue = slices.Insert(s.Queue, 0, cloneTracks(m.tracks)...)
}

type pushBack struct {
	tracks []catalog.FullTrack
}

func (m pushBack) mutate(s *Snapshot) {
	s.Queue = append(s.Queue, cloneTracks(m.tracks)...)
}

// moveQueueItem moves the item at from so it lands before the item that
// was at to. An out-of-range from is ignored; to is clamped.
type moveQueueItem struct {
	from, to int
}

func (m moveQueueItem) mutate(s *Snapshot) {
	if m.from < 0 || m.from >= len(s.Queue) {
		return
	}
	item := s.Queue[m.from]
	s.Queue = slices.Delete(s.Queue, m.from, m.from+1)

	to := m.to
	if m.from < to {
		to--
	}
	to = lo.Clamp(to, 0, len(s.Queue))
	s.Queue = slices.Insert(s.Queue, to, item)
}

// reset returns to the initial empty state.
type reset struct{}

func (reset) mutate(s *Snapshot) {
	*s = Snapshot{State: StateEmpty, Queue: []catalog.FullTrack{}}
}

func cloneTracks(tracks []catalog.FullTrack) []catalog.FullTrack {
	out := make([]catalog.FullTrack, len(tracks))
	for i, t := range tracks {
		out[i] = t.Clone()
	}
	return out
}

// store is the lock-protected player state. apply is the only way to
// change it.
type store struct {
	mu      sync.Mutex
	state   Snapshot
	publish func(Snapshot)
}

func newStore(publish func(Snapshot)) *store {
	return &store{
		state:   Snapshot{State: StateEmpty, Queue: []catalog.FullTrack{}},
		publish: publish,
	}
}

// apply runs m against the live state and publishes the result before
// releasing the lock, so observers see mutations in order.
func (s *store) apply(m mutation) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	m.mutate(&s.state)
	if s.publish != nil {
		s.publish(s.state.Clone())
	}
	return s.state.Clone()
}

func (s *store) snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}
