package shell

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/aurex/internal/catalog"
	"github.com/llehouerou/aurex/internal/engine"
	"github.com/llehouerou/aurex/internal/errmsg"
	"github.com/llehouerou/aurex/internal/logging"
	"github.com/llehouerou/aurex/internal/playback"
)

type fixture struct {
	sh   *Shell
	svc  playback.Service
	mock *engine.Mock
	out  *bytes.Buffer
	lib  *catalog.Catalog
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	lib, err := catalog.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { lib.Close() })

	for _, title := range []string{"One", "Two", "Three"} {
		_, err := lib.AddTrack(catalog.TrackInput{
			FilePath: "/music/" + title + ".mp3",
			Title:    title,
			Artist:   "Band",
			Album:    "Record",
		})
		require.NoError(t, err)
	}

	mock := engine.NewMock()
	svc := playback.New(engine.New(mock, 0), lib, logging.Discard(), playback.Options{})
	t.Cleanup(func() { svc.Close() })

	out := &bytes.Buffer{}
	return &fixture{sh: New(svc, lib, out), svc: svc, mock: mock, out: out, lib: lib}
}

func queueIDs(snap playback.Snapshot) []int64 {
	out := make([]int64, len(snap.Queue))
	for i, t := range snap.Queue {
		out[i] = t.ID
	}
	return out
}

func TestExec_EmptyLine(t *testing.T) {
	f := newFixture(t)
	assert.NoError(t, f.sh.Exec("   "))
	assert.Empty(t, f.out.String())
}

func TestExec_UnknownCommand(t *testing.T) {
	f := newFixture(t)
	err := f.sh.Exec("rewind")
	assert.ErrorContains(t, err, `unknown command "rewind"`)
}

func TestExec_Quit(t *testing.T) {
	f := newFixture(t)
	assert.ErrorIs(t, f.sh.Exec("quit"), ErrQuit)
}

func TestExec_LoadAndPlay(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.sh.Exec("load 2"))
	assert.Contains(t, f.out.String(), "[Paused] Two - Band (Record)")
	assert.Equal(t, "/music/Two.mp3", f.mock.Loaded())

	require.NoError(t, f.sh.Exec("play"))
	assert.Equal(t, playback.StatePlaying, f.svc.Player().State)

	require.NoError(t, f.sh.Exec("pause"))
	assert.Equal(t, playback.StatePaused, f.svc.Player().State)

	require.NoError(t, f.sh.Exec("clear"))
	assert.Equal(t, playback.StateEmpty, f.svc.Player().State)
}

func TestExec_LoadUnknownTrack(t *testing.T) {
	f := newFixture(t)
	err := f.sh.Exec("load 99")
	assert.ErrorIs(t, err, catalog.ErrNotFound)
	assert.Equal(t, "Failed to look up track '99': "+catalog.ErrNotFound.Error(), errmsg.Message(err))
}

func TestExec_PlayAll(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.sh.Exec("playall 1"))

	snap := f.svc.Player()
	require.NotNil(t, snap.CurrentlyPlaying)
	assert.Equal(t, "Two", snap.CurrentlyPlaying.Title)
	assert.Equal(t, []int64{3}, queueIDs(snap))
	assert.Contains(t, f.out.String(), "   0. Three - Band (Record)")
}

func TestExec_Playlist(t *testing.T) {
	f := newFixture(t)
	id, err := f.lib.CreatePlaylist("Mix", "")
	require.NoError(t, err)
	require.NoError(t, f.lib.AddToPlaylist(id, 3, 1))

	require.NoError(t, f.sh.Exec("playlist 1"))

	snap := f.svc.Player()
	require.NotNil(t, snap.CurrentlyPlaying)
	assert.Equal(t, int64(3), snap.CurrentlyPlaying.ID)
	assert.Equal(t, []int64{1}, queueIDs(snap))
}

func TestExec_Album(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.sh.Exec("album 1 1"))

	// Tracks without numbers sort by title: One, Three, Two.
	snap := f.svc.Player()
	require.NotNil(t, snap.CurrentlyPlaying)
	assert.Equal(t, "Three", snap.CurrentlyPlaying.Title)
	assert.Equal(t, []int64{2}, queueIDs(snap))
}

func TestExec_AlbumUnknown(t *testing.T) {
	f := newFixture(t)

	err := f.sh.Exec("album 9")
	assert.ErrorIs(t, err, catalog.ErrNotFound)
	assert.Nil(t, f.svc.Player().CurrentlyPlaying)
	assert.Empty(t, f.mock.Calls())
}

func TestExec_ArtistsAndAlbums(t *testing.T) {
	f := newFixture(t)
	_, err := f.lib.AddTrack(catalog.TrackInput{
		FilePath: "/music/solo.mp3",
		Title:    "Solo",
		Artist:   "Other",
		Album:    "Alone",
		Year:     1999,
	})
	require.NoError(t, err)

	require.NoError(t, f.sh.Exec("artists"))
	assert.Contains(t, f.out.String(), "     1  Band")
	assert.Contains(t, f.out.String(), "     2  Other")
	assert.Contains(t, f.out.String(), "2 artists")

	f.out.Reset()
	require.NoError(t, f.sh.Exec("albums 2"))
	assert.Equal(t, "     2  Alone (1999)\n1 albums\n", f.out.String())

	f.out.Reset()
	require.NoError(t, f.sh.Exec("albums"))
	assert.Contains(t, f.out.String(), "Record")
	assert.Contains(t, f.out.String(), "2 albums")
}

func TestExec_PlayIDsSkipsUnknown(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.sh.Exec("playids 1 1 42 3"))

	snap := f.svc.Player()
	require.NotNil(t, snap.CurrentlyPlaying)
	assert.Equal(t, int64(3), snap.CurrentlyPlaying.ID)
	assert.Empty(t, snap.Queue)
}

func TestExec_QueueCommands(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.sh.Exec("queue 1 2"))
	require.NoError(t, f.sh.Exec("playnext 3"))
	assert.Equal(t, []int64{3, 1, 2}, queueIDs(f.svc.Player()))

	require.NoError(t, f.sh.Exec("queuenext 2 1"))
	assert.Equal(t, []int64{2, 1, 3, 1, 2}, queueIDs(f.svc.Player()))

	require.NoError(t, f.sh.Exec("move 0 2"))
	assert.Equal(t, []int64{1, 2, 3, 1, 2}, queueIDs(f.svc.Player()))

	require.NoError(t, f.sh.Exec("next"))
	snap := f.svc.Player()
	assert.Equal(t, int64(1), snap.CurrentlyPlaying.ID)
	assert.Equal(t, []int64{2, 3, 1, 2}, queueIDs(snap))
}

func TestExec_Seek(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.sh.Exec("load 1"))

	require.NoError(t, f.sh.Exec("seek 12.5"))

	pos, err := f.mock.Progress()
	require.NoError(t, err)
	assert.InDelta(t, 12.5, pos, 0.0001)
}

func TestExec_StatusJSON(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.sh.Exec("load 1"))
	f.out.Reset()

	require.NoError(t, f.sh.Exec("status --json"))

	var snap map[string]any
	require.NoError(t, json.Unmarshal(f.out.Bytes(), &snap))
	assert.Equal(t, "Paused", snap["state"])
	assert.Equal(t, []any{}, snap["queue"])
	assert.Contains(t, snap, "currently_playing")
	assert.Contains(t, snap, "position")
}

func TestExec_Tracks(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.sh.Exec("tracks"))
	assert.Contains(t, f.out.String(), "3 tracks")

	f.out.Reset()
	require.NoError(t, f.sh.Exec("tracks thr"))
	assert.Contains(t, f.out.String(), "Three - Band (Record)")
	assert.Contains(t, f.out.String(), "1 tracks")
}

func TestExec_UsageErrors(t *testing.T) {
	f := newFixture(t)

	for _, line := range []string{
		"load",
		"load x",
		"play now",
		"status --yaml",
		"playall 1 2",
		"playall x",
		"playlist",
		"album",
		"album x",
		"albums 1 2",
		"artists all",
		"playids 1",
		"playids x 1",
		"playnext",
		"queue",
		"queue 1 x",
		"queuenext",
		"move 1",
		"move a b",
		"seek",
		"seek -3",
	} {
		t.Run(line, func(t *testing.T) {
			assert.ErrorContains(t, f.sh.Exec(line), "parse arguments")
		})
	}
}

func TestExec_Help(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.sh.Exec("help"))

	for _, name := range f.sh.names() {
		assert.Contains(t, f.out.String(), f.sh.commands[name].usage)
	}
}
