package playback

import (
	"context"

	"github.com/llehouerou/aurex/internal/engine"
)

// runReconciler drains end-of-media events until ctx is done. Events are
// handled one at a time.
func (s *serviceImpl) runReconciler(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-s.engine.MediaEnd():
			s.handleMediaEnd(ev)
		}
	}
}

// handleMediaEnd advances to the queue head, or clears the player when the
// queue is empty. Events for media replaced since they were queued are
// dropped.
func (s *serviceImpl) handleMediaEnd(ev engine.MediaEnd) {
	log := s.log.WithField("generation", ev.Generation)
	if !s.engine.Current(ev) {
		log.Debug("dropping stale end-of-media event")
		return
	}

	pop := &popFront{valid: func() bool { return s.engine.Current(ev) }}
	s.store.apply(pop)
	switch {
	case pop.skipped:
		log.Debug("dropping stale end-of-media event")
	case pop.popped == nil:
		log.Debug("queue exhausted, clearing")
		s.Clear()
	default:
		log.WithField("track_id", pop.popped.ID).Debug("advancing to next track")
		s.start(*pop.popped)
	}
}
