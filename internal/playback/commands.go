package playback

import (
	"errors"

	"github.com/llehouerou/aurex/internal/catalog"
	"github.com/llehouerou/aurex/internal/engine"
)

// Commands that touch both the engine and the store call the engine first
// and mutate the store after. Queue pops happen in their own apply before
// the engine calls.

func (s *serviceImpl) Player() Snapshot {
	return s.store.snapshot()
}

// Load loads track paused.
func (s *serviceImpl) Load(track catalog.FullTrack) Snapshot {
	s.engineCall("load", track.FilePath, func() error { return s.engine.Load(track.FilePath) })
	return s.store.apply(setCurrent{track: track, state: StatePaused})
}

// Play resumes the loaded track. It does nothing when already playing or
// when nothing is loaded.
func (s *serviceImpl) Play() Snapshot {
	s.transportMu.Lock()
	defer s.transportMu.Unlock()

	snap := s.store.snapshot()
	if snap.State == StatePlaying || snap.State == StateEmpty {
		return snap
	}
	s.engineCall("play", "", s.engine.Play)
	return s.store.apply(setState{state: StatePlaying})
}

// Pause pauses playback. It does nothing when already paused or when
// nothing is loaded.
func (s *serviceImpl) Pause() Snapshot {
	s.transportMu.Lock()
	defer s.transportMu.Unlock()

	snap := s.store.snapshot()
	if snap.State == StatePaused || snap.State == StateEmpty {
		return snap
	}
	s.engineCall("pause", "", s.engine.Pause)
	return s.store.apply(setState{state: StatePaused})
}

// Clear stops playback and empties the queue.
func (s *serviceImpl) Clear() Snapshot {
	s.engineCall("clear", "", s.engine.Clear)
	return s.store.apply(reset{})
}

// PlayList plays list[index] and replaces the queue with the tracks after
// it. An out-of-range index does nothing.
func (s *serviceImpl) PlayList(list []catalog.FullTrack, index int) Snapshot {
	if index < 0 || index >= len(list) {
		return s.store.snapshot()
	}
	s.store.apply(replaceQueue{tracks: list[index+1:]})
	return s.start(list[index])
}

// PlayTracks resolves tracks through the catalog and plays them like
// PlayList. Unresolvable tracks are skipped; index keeps pointing at the
// same track, or at the next resolvable one if it was skipped.
func (s *serviceImpl) PlayTracks(tracks []catalog.Track, index int) Snapshot {
	if index < 0 || index >= len(tracks) {
		return s.store.snapshot()
	}
	resolved := s.resolve(tracks[:index])
	at := len(resolved)
	resolved = append(resolved, s.resolve(tracks[index:])...)
	return s.PlayList(resolved, at)
}

func (s *serviceImpl) PlayNext(track catalog.FullTrack) Snapshot {
	return s.store.apply(pushFront{tracks: []catalog.FullTrack{track}})
}

func (s *serviceImpl) AddToQueue(track catalog.FullTrack) Snapshot {
	return s.store.apply(pushBack{tracks: []catalog.FullTrack{track}})
}

// AddListToQueue appends fulltracks, then the resolvable tracks, to the
// queue.
func (s *serviceImpl) AddListToQueue(fulltracks []catalog.FullTrack, tracks []catalog.Track) Snapshot {
	all := append(cloneTracks(fulltracks), s.resolve(tracks)...)
	if len(all) == 0 {
		return s.store.snapshot()
	}
	return s.store.apply(pushBack{tracks: all})
}

// PlayListNext inserts fulltracks, then the resolvable tracks, at the front
// of the queue, keeping their order.
func (s *serviceImpl) PlayListNext(fulltracks []catalog.FullTrack, tracks []catalog.Track) Snapshot {
	all := append(cloneTracks(fulltracks), s.resolve(tracks)...)
	if len(all) == 0 {
		return s.store.snapshot()
	}
	return s.store.apply(pushFront{tracks: all})
}

// Next plays the queue head. With an empty queue nothing changes.
func (s *serviceImpl) Next() Snapshot {
	pop := &popFront{}
	snap := s.store.apply(pop)
	if pop.popped == nil {
		return snap
	}
	return s.start(*pop.popped)
}

// ChangeQueueIndex moves the queue item at from to to. An out-of-range
// from does nothing.
func (s *serviceImpl) ChangeQueueIndex(from, to int) Snapshot {
	return s.store.apply(moveQueueItem{from: from, to: to})
}

// Seek jumps to seconds in the loaded track.
func (s *serviceImpl) Seek(seconds float64) {
	s.engineCall("seek", "", func() error { return s.engine.Seek(seconds) })
}

// start loads and plays track, then records it as playing.
func (s *serviceImpl) start(track catalog.FullTrack) Snapshot {
	s.engineCall("load", track.FilePath, func() error { return s.engine.Load(track.FilePath) })
	s.engineCall("play", track.FilePath, s.engine.Play)
	return s.store.apply(setCurrent{track: track, state: StatePlaying})
}

func (s *serviceImpl) resolve(tracks []catalog.Track) []catalog.FullTrack {
	if len(tracks) == 0 || s.resolver == nil {
		return nil
	}
	out := make([]catalog.FullTrack, 0, len(tracks))
	for _, t := range tracks {
		ft, err := s.resolver.FullTrackByID(t.ID)
		if err != nil {
			s.log.WithError(err).WithField("track_id", t.ID).Debug("skipping unresolved track")
			continue
		}
		out = append(out, *ft)
	}
	return out
}

// engineCall runs fn and swallows its error after logging and publishing
// it.
func (s *serviceImpl) engineCall(op, path string, fn func() error) {
	err := fn()
	if err == nil {
		return
	}

	entry := s.log.WithError(err).WithField("op", op)
	if path != "" {
		entry = entry.WithField("path", path)
	}
	if errors.Is(err, engine.ErrNoMedia) {
		entry.Debug("engine call without media")
	} else {
		entry.Warn("engine call failed")
	}
	s.publishError(ErrorEvent{Operation: op, Path: path, Err: err})
}
