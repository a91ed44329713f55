package playback

import "fmt"

// TransportState is the transport state of the player.
type TransportState int

const (
	// StateEmpty means no track is loaded.
	StateEmpty TransportState = iota
	StatePaused
	StatePlaying
	// StateStopped is never entered by the commands of this package; it is
	// kept for hosts that report a hard stop.
	StateStopped
)

// String returns the state name.
func (s TransportState) String() string {
	switch s {
	case StateEmpty:
		return "Empty"
	case StatePaused:
		return "Paused"
	case StatePlaying:
		return "Playing"
	case StateStopped:
		return "Stopped"
	default:
		return "Unknown"
	}
}

// IsActive returns true if a track is loaded and playing or paused.
func (s TransportState) IsActive() bool {
	return s == StatePlaying || s == StatePaused
}

func (s TransportState) MarshalText() ([]byte, error) {
	if s < StateEmpty || s > StateStopped {
		return nil, fmt.Errorf("invalid transport state %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *TransportState) UnmarshalText(text []byte) error {
	for v := StateEmpty; v <= StateStopped; v++ {
		if v.String() == string(text) {
			*s = v
			return nil
		}
	}
	return fmt.Errorf("invalid transport state %q", text)
}
