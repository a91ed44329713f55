//go:build linux

package notify

import (
	"github.com/llehouerou/aurex/internal/catalog"
	"github.com/llehouerou/aurex/internal/mpris"
)

// FindAlbumArtPath returns the path to album art for a track, if found.
func FindAlbumArtPath(track catalog.FullTrack) string {
	return mpris.ArtPath(track)
}
