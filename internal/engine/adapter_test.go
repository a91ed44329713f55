package engine

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdapter_ForwardsCalls(t *testing.T) {
	m := NewMock()
	a := New(m, 0)

	require.NoError(t, a.Load("/music/a.mp3"))
	require.NoError(t, a.Play())
	require.NoError(t, a.Seek(12.5))
	require.NoError(t, a.Pause())

	pos, err := a.Progress()
	require.NoError(t, err)
	assert.InDelta(t, 12.5, pos, 0.0001)

	require.NoError(t, a.Clear())

	assert.Equal(t, []string{"load:/music/a.mp3", "play", "seek", "pause", "clear"}, m.Calls())
}

func TestAdapter_ReturnsEngineErrors(t *testing.T) {
	m := NewMock()
	a := New(m, 0)
	boom := errors.New("device unavailable")
	m.SetError("play", boom)

	require.NoError(t, a.Load("/music/a.mp3"))
	err := a.Play()
	assert.ErrorIs(t, err, boom)
	assert.False(t, a.Broken())
}

func TestAdapter_ProgressWithoutMedia(t *testing.T) {
	a := New(NewMock(), 0)

	_, err := a.Progress()
	assert.ErrorIs(t, err, ErrNoMedia)
}

func TestAdapter_MediaEndIsDelivered(t *testing.T) {
	m := NewMock()
	a := New(m, 0)

	m.FinishMedia()

	select {
	case <-a.MediaEnd():
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for MediaEnd")
	}
}

func TestAdapter_MediaEndDropsWhenFull(t *testing.T) {
	m := NewMock()
	a := New(m, 2)

	for range 5 {
		m.FinishMediaSync()
	}

	assert.Len(t, a.MediaEnd(), 2)
	assert.Equal(t, int64(3), a.DroppedEvents())
}

func TestAdapter_DefaultBuffer(t *testing.T) {
	a := New(NewMock(), -1)
	assert.Equal(t, DefaultEventBuffer, cap(a.mediaEnd))
}

func TestAdapter_PanicMarksBroken(t *testing.T) {
	m := NewMock()
	a := New(m, 0)
	m.SetPanic("load")

	err := a.Load("/music/a.mp3")
	require.ErrorIs(t, err, ErrEngineUnavailable)
	assert.True(t, a.Broken())

	// Every later call fails without reaching the engine.
	m.ResetCalls()
	assert.ErrorIs(t, a.Play(), ErrEngineUnavailable)
	assert.ErrorIs(t, a.Clear(), ErrEngineUnavailable)
	_, err = a.Progress()
	assert.ErrorIs(t, err, ErrEngineUnavailable)
	assert.Empty(t, m.Calls())
}

func TestAdapter_ConcurrentCalls(t *testing.T) {
	m := NewMock()
	a := New(m, 0)
	require.NoError(t, a.Load("/music/a.mp3"))

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = a.Play()
		}()
		go func() {
			defer wg.Done()
			_, _ = a.Progress()
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, m.CountCalls("play"))
}

func TestAdapter_MediaEndCarriesGeneration(t *testing.T) {
	m := NewMock()
	a := New(m, 0)

	require.NoError(t, a.Load("/music/a.mp3"))
	m.FinishMediaSync()
	first := <-a.MediaEnd()
	assert.True(t, a.Current(first))

	m.FinishMediaSync()
	require.NoError(t, a.Load("/music/b.mp3"))
	queued := <-a.MediaEnd()
	assert.False(t, a.Current(queued), "event queued before a new load is stale")
	assert.Equal(t, first.Generation, queued.Generation)

	require.NoError(t, a.Clear())
	assert.Equal(t, first.Generation+2, a.Generation())
}
