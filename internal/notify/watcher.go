package notify

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/llehouerou/aurex/internal/playback"
)

// Watcher shows a notification whenever a new track starts. Each
// notification replaces the previous one.
type Watcher struct {
	notifier Notifier
	service  playback.Service
	sub      *playback.Subscription
	log      logrus.FieldLogger

	lastID  int64
	notifID uint32

	done chan struct{}
	wg   sync.WaitGroup
	once sync.Once
}

// Watch subscribes to service and starts sending notifications.
func Watch(service playback.Service, notifier Notifier, log logrus.FieldLogger) *Watcher {
	if log == nil {
		log = logrus.StandardLogger()
	}
	w := &Watcher{
		notifier: notifier,
		service:  service,
		sub:      service.Subscribe(),
		log:      log.WithField("component", "notify"),
		done:     make(chan struct{}),
	}
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.run()
	}()
	return w
}

func (w *Watcher) run() {
	for {
		select {
		case <-w.done:
			return
		case <-w.sub.Done:
			return
		case e := <-w.sub.PlayerChanged:
			w.handle(e.Snapshot)
		}
	}
}

func (w *Watcher) handle(snap playback.Snapshot) {
	track := snap.CurrentlyPlaying
	if track == nil {
		w.lastID = 0
		return
	}
	if track.ID == w.lastID || snap.State != playback.StatePlaying {
		return
	}
	w.lastID = track.ID

	n := TrackNotification(*track)
	n.ReplacesID = w.notifID
	id, err := w.notifier.Notify(n)
	if err != nil {
		w.log.WithError(err).WithField("path", track.FilePath).Warn("track notification failed")
		return
	}
	w.notifID = id
}

// Close stops the watcher and closes the last notification.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		w.service.Unsubscribe(w.sub)
		w.wg.Wait()
		if w.notifID != 0 {
			err = w.notifier.Close(w.notifID)
		}
	})
	return err
}
