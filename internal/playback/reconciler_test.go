package playback

import (
	"context"
	"testing"
	"testing/synctest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMediaEnd_AdvancesToQueueHead(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t, Options{})
		defer f.svc.Close()
		f.svc.PlayList(tracks(1, 2, 3), 0)
		require.NoError(t, f.svc.Start(context.Background()))
		f.mock.ResetCalls()

		f.mock.FinishMedia()
		synctest.Wait()

		snap := f.svc.Player()
		assert.Equal(t, int64(2), currentID(snap))
		assert.Equal(t, []int64{3}, ids(snap.Queue))
		assert.Equal(t, StatePlaying, snap.State)
		assert.Equal(t, []string{"load:" + track(2).FilePath, "play"}, f.mock.Calls())
		assert.True(t, f.mock.Playing())
	})
}

func TestMediaEnd_EmptyQueueClears(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t, Options{})
		defer f.svc.Close()
		f.svc.PlayList(tracks(1), 0)
		require.NoError(t, f.svc.Start(context.Background()))

		f.mock.FinishMedia()
		synctest.Wait()

		snap := f.svc.Player()
		assert.Nil(t, snap.CurrentlyPlaying)
		assert.Equal(t, StateEmpty, snap.State)
		assert.Empty(t, snap.Queue)
		assert.Equal(t, 1, f.mock.CountCalls("clear"))
	})
}

func TestMediaEnd_EventsHandledInOrder(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t, Options{})
		defer f.svc.Close()
		f.svc.PlayList(tracks(1, 2, 3), 0)
		require.NoError(t, f.svc.Start(context.Background()))

		f.mock.FinishMediaSync()
		synctest.Wait()
		f.mock.FinishMediaSync()
		synctest.Wait()

		snap := f.svc.Player()
		assert.Equal(t, int64(3), currentID(snap))
		assert.Empty(t, snap.Queue)

		f.mock.FinishMediaSync()
		synctest.Wait()
		assert.Equal(t, StateEmpty, f.svc.Player().State)
	})
}

func TestMediaEnd_IgnoredAfterClose(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t, Options{})
		f.svc.PlayList(tracks(1, 2), 0)
		require.NoError(t, f.svc.Start(context.Background()))
		require.NoError(t, f.svc.Close())

		f.mock.FinishMediaSync()
		synctest.Wait()

		assert.Equal(t, int64(1), currentID(f.svc.Player()))
	})
}

func TestMediaEnd_StopsWithContext(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t, Options{})
		defer f.svc.Close()
		f.svc.PlayList(tracks(1, 2), 0)

		ctx, cancel := context.WithCancel(context.Background())
		require.NoError(t, f.svc.Start(ctx))
		cancel()
		synctest.Wait()

		f.mock.FinishMediaSync()
		synctest.Wait()
		assert.Equal(t, int64(1), currentID(f.svc.Player()))
	})
}

func TestMediaEnd_QueuedBeforeUserLoadIsDropped(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t, Options{})
		defer f.svc.Close()
		f.svc.PlayList(tracks(1, 2), 0)
		f.mock.FinishMediaSync()

		f.svc.PlayList(tracks(10, 11, 12), 0)
		f.mock.ResetCalls()
		require.NoError(t, f.svc.Start(context.Background()))
		synctest.Wait()

		snap := f.svc.Player()
		assert.Equal(t, int64(10), currentID(snap))
		assert.Equal(t, []int64{11, 12}, ids(snap.Queue))
		assert.Empty(t, f.mock.Calls())
	})
}

func TestMediaEnd_DuplicateEventAdvancesOnce(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t, Options{})
		defer f.svc.Close()
		f.svc.PlayList(tracks(1, 2, 3), 0)
		f.mock.FinishMediaSync()
		f.mock.FinishMediaSync()

		require.NoError(t, f.svc.Start(context.Background()))
		synctest.Wait()

		snap := f.svc.Player()
		assert.Equal(t, int64(2), currentID(snap))
		assert.Equal(t, []int64{3}, ids(snap.Queue))
	})
}

func TestMediaEnd_AfterClearIsDropped(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t, Options{})
		defer f.svc.Close()
		f.svc.PlayList(tracks(1, 2), 0)
		f.mock.FinishMediaSync()
		f.svc.Clear()
		f.svc.AddToQueue(track(3))

		require.NoError(t, f.svc.Start(context.Background()))
		synctest.Wait()

		snap := f.svc.Player()
		assert.Equal(t, StateEmpty, snap.State)
		assert.Equal(t, []int64{3}, ids(snap.Queue))
	})
}
