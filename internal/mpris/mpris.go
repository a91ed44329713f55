//go:build linux

package mpris

import (
	"fmt"
	"hash/fnv"
	"math"
	"sync"
	"sync/atomic"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"
	"github.com/sirupsen/logrus"

	"github.com/llehouerou/aurex/internal/playback"
)

const busName = "aurex"

// Adapter exposes a playback.Service over D-Bus as an MPRIS player.
type Adapter struct {
	service playback.Service
	server  *server.Server
	player  *playerAdapter
	sub     *playback.Subscription
	log     logrus.FieldLogger
	done    chan struct{}
	wg      sync.WaitGroup
	once    sync.Once
}

// New creates and starts a new MPRIS adapter.
func New(service playback.Service, log logrus.FieldLogger) (*Adapter, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	a := &Adapter{
		service: service,
		player:  &playerAdapter{service: service},
		sub:     service.Subscribe(),
		log:     log.WithField("component", "mpris"),
		done:    make(chan struct{}),
	}
	a.server = server.NewServer(busName, &rootAdapter{}, a.player)

	a.wg.Add(2)
	go func() {
		defer a.wg.Done()
		if err := a.server.Listen(); err != nil {
			a.log.WithError(err).Warn("mpris server stopped")
		}
	}()
	go func() {
		defer a.wg.Done()
		a.track()
	}()

	return a, nil
}

// track keeps the reported position in step with the service.
func (a *Adapter) track() {
	for {
		select {
		case <-a.done:
			return
		case <-a.sub.Done:
			return
		case e := <-a.sub.ProgressChanged:
			a.player.setPosition(e.Position)
		case e := <-a.sub.PlayerChanged:
			a.player.observe(e.Snapshot)
		}
	}
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	var err error
	a.once.Do(func() {
		close(a.done)
		a.service.Unsubscribe(a.sub)
		err = a.server.Stop()
		a.wg.Wait()
	})
	return err
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error {
	return nil
}

func (r *rootAdapter) Quit() error {
	return nil
}

func (r *rootAdapter) CanQuit() (bool, error) {
	return false, nil
}

func (r *rootAdapter) CanRaise() (bool, error) {
	return false, nil
}

func (r *rootAdapter) HasTrackList() (bool, error) {
	return false, nil
}

func (r *rootAdapter) Identity() (string, error) {
	return "Aurex", nil
}

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"file"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{"audio/mpeg", "audio/flac", "audio/x-wav", "audio/ogg"}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter.
type playerAdapter struct {
	service playback.Service

	// position holds the last reported progress, as float64 bits.
	position atomic.Uint64
	trackID  atomic.Int64
}

func (p *playerAdapter) setPosition(seconds float64) {
	p.position.Store(math.Float64bits(seconds))
}

func (p *playerAdapter) positionSeconds() float64 {
	return math.Float64frombits(p.position.Load())
}

// observe resets the position when the current track changes.
func (p *playerAdapter) observe(snap playback.Snapshot) {
	var id int64
	if snap.CurrentlyPlaying != nil {
		id = snap.CurrentlyPlaying.ID
	}
	if p.trackID.Swap(id) != id {
		p.setPosition(0)
	}
}

func (p *playerAdapter) Next() error {
	p.service.Next()
	return nil
}

func (p *playerAdapter) Previous() error {
	return nil
}

func (p *playerAdapter) Pause() error {
	p.service.Pause()
	return nil
}

func (p *playerAdapter) PlayPause() error {
	if p.service.Player().State == playback.StatePlaying {
		p.service.Pause()
		return nil
	}
	p.service.Play()
	return nil
}

func (p *playerAdapter) Stop() error {
	p.service.Clear()
	return nil
}

func (p *playerAdapter) Play() error {
	p.service.Play()
	return nil
}

// Seek moves by offset relative to the current position. Seeking past the
// end of the track skips to the next one.
func (p *playerAdapter) Seek(offset types.Microseconds) error {
	snap := p.service.Player()
	if snap.CurrentlyPlaying == nil {
		return nil
	}
	target := p.positionSeconds() + microsToSeconds(offset)
	if length := snap.CurrentlyPlaying.Duration; length > 0 && target*1000 >= float64(length) {
		p.service.Next()
		return nil
	}
	target = max(target, 0)
	p.service.Seek(target)
	p.setPosition(target)
	return nil
}

// SetPosition is ignored unless trackID names the current track.
func (p *playerAdapter) SetPosition(trackID string, position types.Microseconds) error {
	snap := p.service.Player()
	if snap.CurrentlyPlaying == nil || position < 0 {
		return nil
	}
	if trackID != formatTrackID(snap.CurrentlyPlaying.FilePath) {
		return nil
	}
	seconds := microsToSeconds(position)
	if length := snap.CurrentlyPlaying.Duration; length > 0 && seconds*1000 > float64(length) {
		return nil
	}
	p.service.Seek(seconds)
	p.setPosition(seconds)
	return nil
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	return playbackStatus(p.service.Player().State), nil
}

func (p *playerAdapter) Rate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetRate(_ float64) error {
	return nil
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	return metadata(p.service.Player()), nil
}

func (p *playerAdapter) Volume() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetVolume(_ float64) error {
	return nil
}

func (p *playerAdapter) Position() (int64, error) {
	return int64(p.positionSeconds() * 1e6), nil
}

func (p *playerAdapter) MinimumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) MaximumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) CanGoNext() (bool, error) {
	return len(p.service.Player().Queue) > 0, nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	return false, nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	return p.service.Player().CurrentlyPlaying != nil, nil
}

func (p *playerAdapter) CanPause() (bool, error) {
	return p.service.Player().CurrentlyPlaying != nil, nil
}

func (p *playerAdapter) CanSeek() (bool, error) {
	return p.service.Player().CurrentlyPlaying != nil, nil
}

func (p *playerAdapter) CanControl() (bool, error) {
	return true, nil
}

func playbackStatus(state playback.TransportState) types.PlaybackStatus {
	switch state {
	case playback.StatePlaying:
		return types.PlaybackStatusPlaying
	case playback.StatePaused:
		return types.PlaybackStatusPaused
	case playback.StateEmpty, playback.StateStopped:
		return types.PlaybackStatusStopped
	}
	return types.PlaybackStatusStopped
}

func metadata(snap playback.Snapshot) types.Metadata {
	track := snap.CurrentlyPlaying
	if track == nil {
		return types.Metadata{}
	}

	meta := types.Metadata{
		TrackId:     dbus.ObjectPath(formatTrackID(track.FilePath)),
		Length:      types.Microseconds(track.Duration * 1000),
		Title:       track.Title,
		Artist:      []string{track.ArtistName},
		Album:       track.AlbumTitle,
		TrackNumber: int(track.TrackNumber),
	}

	if artPath := ArtPath(*track); artPath != "" {
		meta.ArtUrl = "file://" + artPath
	}

	return meta
}

func microsToSeconds(us types.Microseconds) float64 {
	return float64(us) / 1e6
}

func formatTrackID(path string) string {
	h := fnv.New64a()
	h.Write([]byte(path))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64())
}
