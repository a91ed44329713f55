package playback

const eventBufferSize = 16

// Subscription provides event channels for a subscriber.
type Subscription struct {
	PlayerChanged   <-chan PlayerChange
	ProgressChanged <-chan ProgressChange
	Error           <-chan ErrorEvent
	Done            <-chan struct{}

	// Internal write channels
	playerCh   chan PlayerChange
	progressCh chan ProgressChange
	errorCh    chan ErrorEvent
	doneCh     chan struct{}
}

// newSubscription creates a new subscription with buffered channels.
func newSubscription() *Subscription {
	s := &Subscription{
		playerCh:   make(chan PlayerChange, eventBufferSize),
		progressCh: make(chan ProgressChange, eventBufferSize),
		errorCh:    make(chan ErrorEvent, eventBufferSize),
		doneCh:     make(chan struct{}),
	}
	s.PlayerChanged = s.playerCh
	s.ProgressChanged = s.progressCh
	s.Error = s.errorCh
	s.Done = s.doneCh
	return s
}

// close signals subscribers to stop by closing doneCh.
func (s *Subscription) close() {
	close(s.doneCh)
}

// sendPlayer sends a player change event (non-blocking).
func (s *Subscription) sendPlayer(e PlayerChange) {
	select {
	case s.playerCh <- e:
	default:
		// Drop if buffer full
	}
}

// sendProgress sends a progress event (non-blocking).
func (s *Subscription) sendProgress(pos float64) {
	select {
	case s.progressCh <- ProgressChange{Position: pos}:
	default:
	}
}

// sendError sends an error event (non-blocking).
func (s *Subscription) sendError(e ErrorEvent) {
	select {
	case s.errorCh <- e:
	default:
	}
}
