// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import (
	"errors"
	"fmt"
)

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Library operations
	OpLibraryOpen   Op = "open library"
	OpLibraryImport Op = "import music"
	OpLibraryQuery  Op = "query library"
	OpTrackLookup   Op = "look up track"
	OpTrackDelete   Op = "remove track"

	// Playlist operations
	OpPlaylistCreate   Op = "create playlist"
	OpPlaylistList     Op = "list playlists"
	OpPlaylistLoad     Op = "load playlist"
	OpPlaylistAddTrack Op = "add track to playlist"
	OpPlaylistRename   Op = "rename playlist"
	OpPlaylistDelete   Op = "delete playlist"
	OpPlaylistRemove   Op = "remove track from playlist"
	OpPlaylistReorder  Op = "reorder playlist"

	// Playback operations
	OpPlaybackLoad  Op = "load track"
	OpPlaybackStart Op = "start playback"
	OpPlaybackPause Op = "pause playback"
	OpPlaybackClear Op = "stop playback"
	OpPlaybackSeek  Op = "seek"

	// Integrations
	OpMPRISStart Op = "start MPRIS service"
	OpNotify     Op = "send notification"

	// Shell
	OpParseArgs Op = "parse arguments"

	// Initialization
	OpConfigLoad Op = "load configuration"
	OpInitialize Op = "initialize application"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}

// Error is an error annotated with the operation that failed. It unwraps
// to the cause, so sentinels still match with errors.Is.
type Error struct {
	Op      Op
	Context string
	Err     error
}

func (e *Error) Error() string {
	if e.Context == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s '%s': %v", e.Op, e.Context, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Wrap annotates err with op. A nil err stays nil.
func Wrap(op Op, err error) error {
	return WrapWith(op, "", err)
}

// WrapWith annotates err with op and the value it applied to.
func WrapWith(op Op, context string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Context: context, Err: err}
}

// Message renders err for display. The outermost Error is formatted with
// FormatWith; other errors print as they are.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return FormatWith(e.Op, e.Context, e.Err)
	}
	return err.Error()
}

// EngineOp maps an engine operation name ("load", "play", "pause",
// "clear", "seek") to its Op.
func EngineOp(name string) Op {
	switch name {
	case "load":
		return OpPlaybackLoad
	case "play":
		return OpPlaybackStart
	case "pause":
		return OpPlaybackPause
	case "clear":
		return OpPlaybackClear
	case "seek":
		return OpPlaybackSeek
	default:
		return Op(name)
	}
}
