package playback

import (
	"context"
	"time"
)

// runPoller samples the engine position every interval and publishes it
// until ctx is done. It never reads the store.
func (s *serviceImpl) runPoller(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			pos, err := s.engine.Progress()
			if err != nil {
				s.log.WithError(err).Trace("progress unavailable")
				continue
			}
			s.publishProgress(pos)
		}
	}
}
