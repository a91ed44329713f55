package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/aurex/internal/catalog"
)

// setup writes a config pointing the catalog at a temp dir.
func setup(t *testing.T) (dir, cfgPath string) {
	t.Helper()
	dir = t.TempDir()
	content := fmt.Sprintf(`
[library]
db_path = %q

[log]
file = %q
`, filepath.Join(dir, "library.db"), filepath.Join(dir, "aurex.log"))
	cfgPath = filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0o600))
	return dir, cfgPath
}

func run(t *testing.T, cfgPath string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestImportAndTracks(t *testing.T) {
	dir, cfg := setup(t)
	music := filepath.Join(dir, "music")
	require.NoError(t, os.MkdirAll(music, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(music, "song.mp3"), []byte("not really audio"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(music, "notes.txt"), []byte("hi"), 0o600))

	out, err := run(t, cfg, "import", music)
	require.NoError(t, err)
	assert.Contains(t, out, "1 added, 1 skipped, 0 failed")
	assert.Contains(t, out, "1 tracks in catalog")

	out, err = run(t, cfg, "import", music)
	require.NoError(t, err)
	assert.Contains(t, out, "0 added, 2 skipped")

	out, err = run(t, cfg, "tracks")
	require.NoError(t, err)
	assert.Contains(t, out, "song")
	assert.Contains(t, out, "1 tracks")

	out, err = run(t, cfg, "tracks", "--plain", "song")
	require.NoError(t, err)
	assert.Contains(t, out, "1\tsong\t")

	out, err = run(t, cfg, "tracks", "nomatch")
	require.NoError(t, err)
	assert.Equal(t, "no tracks\n", out)
}

func TestImport_NoSources(t *testing.T) {
	_, cfg := setup(t)

	_, err := run(t, cfg, "import")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "library.sources is empty")
}

func TestImport_MissingPath(t *testing.T) {
	dir, cfg := setup(t)

	_, err := run(t, cfg, "import", filepath.Join(dir, "missing"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "import music")
}

func TestPlaylists(t *testing.T) {
	dir, cfg := setup(t)
	music := filepath.Join(dir, "music")
	require.NoError(t, os.MkdirAll(music, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(music, "a.mp3"), []byte("x"), 0o600))
	_, err := run(t, cfg, "import", music)
	require.NoError(t, err)

	out, err := run(t, cfg, "playlists")
	require.NoError(t, err)
	assert.Equal(t, "no playlists\n", out)

	out, err = run(t, cfg, "playlists", "create", "Morning")
	require.NoError(t, err)
	assert.Equal(t, "created playlist 1\n", out)

	out, err = run(t, cfg, "pl", "add", "1", "1")
	require.NoError(t, err)
	assert.Equal(t, "added 1 tracks\n", out)

	out, err = run(t, cfg, "playlists")
	require.NoError(t, err)
	assert.Contains(t, out, "Morning")

	out, err = run(t, cfg, "playlists", "show", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "a")
	assert.Contains(t, out, "1 tracks")
}

func TestPlaylistAdd_Errors(t *testing.T) {
	_, cfg := setup(t)

	_, err := run(t, cfg, "playlists", "add", "x", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid id "x"`)

	_, err = run(t, cfg, "playlists", "add", "7", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load playlist")
	assert.ErrorIs(t, err, catalog.ErrNotFound)

	_, err = run(t, cfg, "playlists", "create", "P")
	require.NoError(t, err)
	_, err = run(t, cfg, "playlists", "add", "1", "42")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "look up track")
}

// importNamed imports one untagged file per title, in title order.
func importNamed(t *testing.T, dir, cfg string, titles ...string) {
	t.Helper()
	music := filepath.Join(dir, "music")
	require.NoError(t, os.MkdirAll(music, 0o755))
	for _, title := range titles {
		require.NoError(t, os.WriteFile(filepath.Join(music, title+".mp3"), []byte("x"), 0o600))
	}
	_, err := run(t, cfg, "import", music)
	require.NoError(t, err)
}

// inOrder reports whether the words appear in out in the given order.
func inOrder(out string, words ...string) bool {
	last := -1
	for _, w := range words {
		i := strings.Index(out, w)
		if i <= last {
			return false
		}
		last = i
	}
	return true
}

func TestPlaylistEditing(t *testing.T) {
	dir, cfg := setup(t)
	importNamed(t, dir, cfg, "alpha", "bravo", "charlie")

	_, err := run(t, cfg, "playlists", "create", "Mix")
	require.NoError(t, err)
	_, err = run(t, cfg, "playlists", "add", "1", "1", "2", "3")
	require.NoError(t, err)

	out, err := run(t, cfg, "playlists", "move", "1", "0", "2")
	require.NoError(t, err)
	assert.True(t, inOrder(out, "bravo", "charlie", "alpha"), out)

	out, err = run(t, cfg, "playlists", "remove", "1", "0")
	require.NoError(t, err)
	assert.Equal(t, "removed bravo\n", out)

	out, err = run(t, cfg, "playlists", "show", "1")
	require.NoError(t, err)
	assert.True(t, inOrder(out, "charlie", "alpha"), out)
	assert.NotContains(t, out, "bravo")
	assert.Contains(t, out, "2 tracks")

	_, err = run(t, cfg, "playlists", "remove", "1", "9")
	assert.ErrorIs(t, err, catalog.ErrNotFound)
	_, err = run(t, cfg, "playlists", "move", "1", "9", "0")
	assert.ErrorIs(t, err, catalog.ErrNotFound)

	out, err = run(t, cfg, "playlists", "rename", "1", "Evening")
	require.NoError(t, err)
	assert.Equal(t, "renamed playlist 1 to Evening\n", out)

	out, err = run(t, cfg, "playlists")
	require.NoError(t, err)
	assert.Contains(t, out, "Evening")
	assert.NotContains(t, out, "Mix")

	out, err = run(t, cfg, "playlists", "delete", "1")
	require.NoError(t, err)
	assert.Equal(t, "deleted playlist Evening\n", out)

	out, err = run(t, cfg, "playlists")
	require.NoError(t, err)
	assert.Equal(t, "no playlists\n", out)

	_, err = run(t, cfg, "playlists", "delete", "1")
	assert.ErrorIs(t, err, catalog.ErrNotFound)
	_, err = run(t, cfg, "playlists", "rename", "1", "Again")
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestArtistsAlbumsAndRemove(t *testing.T) {
	dir, cfg := setup(t)

	out, err := run(t, cfg, "artists")
	require.NoError(t, err)
	assert.Equal(t, "no artists\n", out)

	importNamed(t, dir, cfg, "alpha", "bravo")

	out, err = run(t, cfg, "artists")
	require.NoError(t, err)
	assert.Contains(t, out, catalog.UnknownArtist)

	out, err = run(t, cfg, "albums")
	require.NoError(t, err)
	assert.Contains(t, out, catalog.UnknownAlbum)
	assert.Contains(t, out, "TRACKS")

	out, err = run(t, cfg, "albums", "99")
	require.NoError(t, err)
	assert.Equal(t, "no albums\n", out)

	_, err = run(t, cfg, "playlists", "create", "P")
	require.NoError(t, err)
	_, err = run(t, cfg, "playlists", "add", "1", "1", "2")
	require.NoError(t, err)

	out, err = run(t, cfg, "remove", "1")
	require.NoError(t, err)
	assert.Equal(t, "removed alpha\n", out)

	out, err = run(t, cfg, "tracks", "--plain")
	require.NoError(t, err)
	assert.Equal(t, "2\tbravo\t"+catalog.UnknownArtist+"\t"+catalog.UnknownAlbum+"\n", out)

	out, err = run(t, cfg, "playlists", "show", "1")
	require.NoError(t, err)
	assert.NotContains(t, out, "alpha")
	assert.Contains(t, out, "1 tracks")

	_, err = run(t, cfg, "remove", "1")
	assert.ErrorIs(t, err, catalog.ErrNotFound)
	_, err = run(t, cfg, "remove", "x")
	assert.ErrorContains(t, err, `invalid id "x"`)
}

func TestVersion(t *testing.T) {
	_, cfg := setup(t)

	out, err := run(t, cfg, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "aurex dev")
}

func TestMissingConfigFile(t *testing.T) {
	_, err := run(t, filepath.Join(t.TempDir(), "nope.toml"), "tracks")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load configuration")
}

func TestParseIDs(t *testing.T) {
	ids, err := parseIDs([]string{"1", "22"})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 22}, ids)

	_, err = parseIDs([]string{"1", "-"})
	assert.Error(t, err)
}
