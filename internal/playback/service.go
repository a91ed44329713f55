// Package playback orchestrates playback: the player state store, the
// transport commands, the end-of-track reconciler and the progress poller.
package playback

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/llehouerou/aurex/internal/catalog"
	"github.com/llehouerou/aurex/internal/engine"
)

// DefaultProgressInterval is the progress poller period when none is set.
const DefaultProgressInterval = 250 * time.Millisecond

var (
	ErrAlreadyStarted = errors.New("playback service already started")
	ErrClosed         = errors.New("playback service closed")
)

// Resolver looks up catalog tracks by id.
type Resolver interface {
	FullTrackByID(id int64) (*catalog.FullTrack, error)
}

// Service defines the playback service contract.
//
// Every command returns the snapshot of the player after it ran. Engine
// failures are logged and published as ErrorEvent but never returned.
type Service interface {
	// State queries
	Player() Snapshot

	// Transport
	Load(track catalog.FullTrack) Snapshot
	Play() Snapshot
	Pause() Snapshot
	Clear() Snapshot
	Next() Snapshot
	Seek(seconds float64)

	// Start playback from a list
	PlayList(list []catalog.FullTrack, index int) Snapshot
	PlayTracks(tracks []catalog.Track, index int) Snapshot

	// Queue manipulation
	PlayNext(track catalog.FullTrack) Snapshot
	AddToQueue(track catalog.FullTrack) Snapshot
	AddListToQueue(fulltracks []catalog.FullTrack, tracks []catalog.Track) Snapshot
	PlayListNext(fulltracks []catalog.FullTrack, tracks []catalog.Track) Snapshot
	ChangeQueueIndex(from, to int) Snapshot

	// Event subscription
	Subscribe() *Subscription
	Unsubscribe(sub *Subscription)

	// Lifecycle
	Start(ctx context.Context) error
	Close() error
}

// Options configures a Service.
type Options struct {
	// ProgressInterval is the progress poller period. Zero or negative
	// means DefaultProgressInterval.
	ProgressInterval time.Duration
}

// Verify serviceImpl implements Service at compile time.
var _ Service = (*serviceImpl)(nil)

type serviceImpl struct {
	engine   *engine.Adapter
	resolver Resolver
	log      logrus.FieldLogger
	interval time.Duration

	store *store

	// transportMu makes the state check and the engine call of Play and
	// Pause one step. Taken before the engine and store locks.
	transportMu sync.Mutex

	// subsMu is never held while taking lifeMu; publishers hold it under
	// the store lock and Close waits for them under lifeMu.
	subs       []*Subscription
	subsClosed bool
	subsMu     sync.RWMutex

	lifeMu  sync.Mutex
	cancel  context.CancelFunc
	group   *errgroup.Group
	started bool
	closed  bool
}

// New creates a playback service. Background tasks do not run until Start.
func New(adapter *engine.Adapter, resolver Resolver, log logrus.FieldLogger, opts Options) Service {
	if opts.ProgressInterval <= 0 {
		opts.ProgressInterval = DefaultProgressInterval
	}
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	s := &serviceImpl{
		engine:   adapter,
		resolver: resolver,
		log:      log.WithField("component", "playback"),
		interval: opts.ProgressInterval,
	}
	s.store = newStore(s.publishPlayer)
	return s
}

// Subscribe creates a new event subscription.
func (s *serviceImpl) Subscribe() *Subscription {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	sub := newSubscription()
	if s.subsClosed {
		sub.close()
		return sub
	}
	s.subs = append(s.subs, sub)
	return sub
}

// Unsubscribe removes sub and closes its Done channel.
func (s *serviceImpl) Unsubscribe(sub *Subscription) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	for i, existing := range s.subs {
		if existing == sub {
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			sub.close()
			return
		}
	}
}

func (s *serviceImpl) publishPlayer(snap Snapshot) {
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		sub.sendPlayer(PlayerChange{Snapshot: snap})
	}
}

func (s *serviceImpl) publishProgress(pos float64) {
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		sub.sendProgress(pos)
	}
}

func (s *serviceImpl) publishError(e ErrorEvent) {
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		sub.sendError(e)
	}
}

// Start launches the end-of-track reconciler and the progress poller.
// They stop when ctx is canceled or Close is called.
func (s *serviceImpl) Start(ctx context.Context) error {
	s.lifeMu.Lock()
	defer s.lifeMu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if s.started {
		return ErrAlreadyStarted
	}

	ctx, s.cancel = context.WithCancel(ctx)
	s.group, ctx = errgroup.WithContext(ctx)
	s.group.Go(func() error { return s.runReconciler(ctx) })
	s.group.Go(func() error { return s.runPoller(ctx) })
	s.started = true
	return nil
}

// Close stops the background tasks, waits for them and closes every
// subscription. It is safe to call more than once.
func (s *serviceImpl) Close() error {
	s.lifeMu.Lock()
	if s.closed {
		s.lifeMu.Unlock()
		return nil
	}
	s.closed = true
	var err error
	if s.started {
		s.cancel()
		err = s.group.Wait()
	}
	s.lifeMu.Unlock()

	s.subsMu.Lock()
	s.subsClosed = true
	for _, sub := range s.subs {
		sub.close()
	}
	s.subs = nil
	s.subsMu.Unlock()

	return err
}
