// Package engine wraps the audio output engine behind a small synchronous
// contract and turns its end-of-media callback into a channel event.
package engine

import "errors"

var (
	// ErrNoMedia is returned by operations that need a loaded media item.
	ErrNoMedia = errors.New("no media loaded")
	// ErrUnsupportedFormat is returned by Load for unknown file extensions.
	ErrUnsupportedFormat = errors.New("unsupported format")
	// ErrEngineUnavailable is returned by every Adapter call after an engine
	// call panicked.
	ErrEngineUnavailable = errors.New("audio engine unavailable")
)

// Engine is the contract of the audio engine.
//
// Load replaces the current media item and leaves it paused. The handler
// registered with SetMediaEndHandler is invoked from the engine's own
// goroutine, at most once per loaded item, when that item finishes
// naturally. It must not block.
type Engine interface {
	Load(path string) error
	Play() error
	Pause() error
	Clear() error
	Seek(seconds float64) error
	Progress() (float64, error)
	SetMediaEndHandler(fn func())
}
