package engine

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// DefaultEventBuffer is the MediaEnd channel capacity used when New is
// given a non-positive size.
const DefaultEventBuffer = 8

// MediaEnd reports that the media item loaded in generation Generation
// finished naturally.
type MediaEnd struct {
	Generation uint64
}

// Adapter serializes access to a single Engine and exposes its
// end-of-media callback as a bounded channel.
//
// Every Load and Clear starts a new generation. An event whose generation
// is no longer current belongs to media that was replaced after the event
// was queued.
//
// Each method holds the engine lock for one engine call only. Callers that
// also need the playback store must release the engine (by returning from
// the method) before acquiring it.
type Adapter struct {
	mu     sync.Mutex
	engine Engine
	broken bool

	gen      atomic.Uint64
	mediaEnd chan MediaEnd
	dropped  atomic.Int64
}

// New wraps e and registers the end-of-media handler.
func New(e Engine, bufferSize int) *Adapter {
	if bufferSize <= 0 {
		bufferSize = DefaultEventBuffer
	}
	a := &Adapter{
		engine:   e,
		mediaEnd: make(chan MediaEnd, bufferSize),
	}
	e.SetMediaEndHandler(a.signalMediaEnd)
	return a
}

// signalMediaEnd runs on the engine's goroutine. Non-blocking.
func (a *Adapter) signalMediaEnd() {
	select {
	case a.mediaEnd <- MediaEnd{Generation: a.gen.Load()}:
	default:
		a.dropped.Add(1)
	}
}

// MediaEnd delivers one event per naturally finished media item.
func (a *Adapter) MediaEnd() <-chan MediaEnd {
	return a.mediaEnd
}

// Generation returns the current load generation.
func (a *Adapter) Generation() uint64 {
	return a.gen.Load()
}

// Current reports whether e belongs to the media loaded now.
func (a *Adapter) Current(e MediaEnd) bool {
	return e.Generation == a.gen.Load()
}

// DroppedEvents returns how many MediaEnd events were discarded because
// the channel was full.
func (a *Adapter) DroppedEvents() int64 {
	return a.dropped.Load()
}

// Load loads the media at path, paused.
func (a *Adapter) Load(path string) error {
	return a.do("load", func() error {
		a.gen.Add(1)
		return a.engine.Load(path)
	})
}

// Play resumes output of the loaded media.
func (a *Adapter) Play() error {
	return a.do("play", a.engine.Play)
}

// Pause suspends output of the loaded media.
func (a *Adapter) Pause() error {
	return a.do("pause", a.engine.Pause)
}

// Clear unloads the current media.
func (a *Adapter) Clear() error {
	return a.do("clear", func() error {
		a.gen.Add(1)
		return a.engine.Clear()
	})
}

// Seek moves the playback position to seconds from the start.
func (a *Adapter) Seek(seconds float64) error {
	return a.do("seek", func() error { return a.engine.Seek(seconds) })
}

// Progress returns the playback position in seconds.
func (a *Adapter) Progress() (float64, error) {
	var pos float64
	err := a.do("progress", func() error {
		var err error
		pos, err = a.engine.Progress()
		return err
	})
	return pos, err
}

// Broken reports whether a previous engine call panicked.
func (a *Adapter) Broken() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.broken
}

func (a *Adapter) do(op string, fn func() error) (err error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.broken {
		return ErrEngineUnavailable
	}

	defer func() {
		if r := recover(); r != nil {
			a.broken = true
			err = fmt.Errorf("%s: %w: %v", op, ErrEngineUnavailable, r)
		}
	}()

	return fn()
}
