package playback

import (
	"context"
	"testing"
	"testing/synctest"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drainProgress(sub *Subscription) []float64 {
	var got []float64
	for {
		select {
		case e := <-sub.ProgressChanged:
			got = append(got, e.Position)
		default:
			return got
		}
	}
}

func TestPoller_PublishesOnInterval(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t, Options{})
		defer f.svc.Close()
		sub := f.svc.Subscribe()
		f.svc.Load(track(1))
		f.mock.SetPosition(12.5)

		require.NoError(t, f.svc.Start(context.Background()))
		time.Sleep(1100 * time.Millisecond)
		synctest.Wait()

		assert.Equal(t, []float64{12.5, 12.5, 12.5, 12.5}, drainProgress(sub))
	})
}

func TestPoller_CustomInterval(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t, Options{ProgressInterval: 100 * time.Millisecond})
		defer f.svc.Close()
		sub := f.svc.Subscribe()
		f.svc.Load(track(1))

		require.NoError(t, f.svc.Start(context.Background()))
		time.Sleep(450 * time.Millisecond)
		synctest.Wait()

		assert.Len(t, drainProgress(sub), 4)
	})
}

func TestPoller_SwallowsErrors(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t, Options{})
		defer f.svc.Close()
		sub := f.svc.Subscribe()

		require.NoError(t, f.svc.Start(context.Background()))
		time.Sleep(600 * time.Millisecond)
		synctest.Wait()

		assert.Empty(t, drainProgress(sub))
		var traced int
		for _, e := range f.hook.AllEntries() {
			if e.Level == logrus.TraceLevel {
				traced++
			}
		}
		assert.Equal(t, 2, traced)

		f.svc.Load(track(1))
		f.mock.SetPosition(3)
		time.Sleep(300 * time.Millisecond)
		synctest.Wait()

		assert.Equal(t, []float64{3}, drainProgress(sub))
	})
}

func TestPoller_DoesNotTouchStore(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t, Options{})
		defer f.svc.Close()
		f.svc.Load(track(1))
		sub := f.svc.Subscribe()

		require.NoError(t, f.svc.Start(context.Background()))
		time.Sleep(time.Second)
		synctest.Wait()

		assert.Empty(t, sub.PlayerChanged)
	})
}

func TestPoller_StopsOnClose(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t, Options{})
		f.svc.Load(track(1))
		require.NoError(t, f.svc.Start(context.Background()))
		require.NoError(t, f.svc.Close())

		sub := f.svc.Subscribe()
		time.Sleep(time.Second)
		assert.Empty(t, drainProgress(sub))
	})
}
