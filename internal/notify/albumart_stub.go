//go:build !linux

package notify

import "github.com/llehouerou/aurex/internal/catalog"

// FindAlbumArtPath returns empty on non-Linux platforms.
func FindAlbumArtPath(_ catalog.FullTrack) string {
	return ""
}
