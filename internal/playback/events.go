package playback

// PlayerChange is published after every store mutation. Snapshot is shared
// between subscribers and must be treated as read-only.
type PlayerChange struct {
	Snapshot Snapshot
}

// ProgressChange carries the engine position, in seconds, sampled by the
// progress poller.
type ProgressChange struct {
	Position float64
}

// ErrorEvent is published when an engine call fails. Commands swallow these
// failures; the event lets hosts surface them.
type ErrorEvent struct {
	Operation string // e.g. "load", "play"
	Path      string // track path if applicable
	Err       error
}
