//go:build linux

package notify

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/aurex/internal/catalog"
)

func TestFindAlbumArtPath(t *testing.T) {
	dir := t.TempDir()
	track := catalog.FullTrack{Track: catalog.Track{FilePath: filepath.Join(dir, "01-song.mp3")}}

	assert.Empty(t, FindAlbumArtPath(track))

	coverPath := filepath.Join(dir, "cover.jpg")
	require.NoError(t, os.WriteFile(coverPath, []byte{0xFF, 0xD8, 0xFF}, 0o600))

	assert.Equal(t, coverPath, FindAlbumArtPath(track))
}

func TestFindAlbumArtPath_PrefersCatalogArt(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cover.jpg"), []byte{}, 0o600))
	art := filepath.Join(t.TempDir(), "front.png")
	require.NoError(t, os.WriteFile(art, []byte{}, 0o600))

	track := catalog.FullTrack{
		Track:    catalog.Track{FilePath: filepath.Join(dir, "track.mp3")},
		AlbumArt: art,
	}
	assert.Equal(t, art, FindAlbumArtPath(track))
}
