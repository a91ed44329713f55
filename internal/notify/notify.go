// Package notify sends desktop notifications over D-Bus when the playing
// track changes.
package notify

import (
	"strings"

	"github.com/samber/lo"

	"github.com/llehouerou/aurex/internal/catalog"
)

// Urgency is a freedesktop notification priority level.
type Urgency byte

const (
	UrgencyLow      Urgency = 0
	UrgencyNormal   Urgency = 1
	UrgencyCritical Urgency = 2
)

// trackTimeout is how long a track-change notification stays up, in ms.
const trackTimeout = 5000

// Notification is one desktop notification.
type Notification struct {
	Title      string
	Body       string
	Icon       string // image path or icon name
	Timeout    int32  // ms; -1 server default, 0 never expires
	ReplacesID uint32 // 0 opens a new notification
	Urgency    Urgency
}

// Notifier sends desktop notifications.
type Notifier interface {
	// Notify shows n and returns its ID, or 0 when notifications are
	// unavailable.
	Notify(n Notification) (uint32, error)
	Close(id uint32) error
}

// Nop returns a Notifier that drops everything.
func Nop() Notifier {
	return nopNotifier{}
}

type nopNotifier struct{}

func (nopNotifier) Notify(Notification) (uint32, error) { return 0, nil }
func (nopNotifier) Close(uint32) error                  { return nil }

// TrackNotification builds the notification shown when track starts.
func TrackNotification(track catalog.FullTrack) Notification {
	return Notification{
		Title:   track.Title,
		Body:    strings.Join(lo.Compact([]string{track.ArtistName, track.AlbumTitle}), " - "),
		Icon:    FindAlbumArtPath(track),
		Timeout: trackTimeout,
		Urgency: UrgencyLow,
	}
}
