package playback

// State represents the playback state.
type State int

const (
	StateStopped State = iota
	StateStarting
	StatePlaying
	StatePaused
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateStopped:
		return "Stopped"
	case StateStarting:
		return "Starting"
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// IsActive returns true if an engine process is alive (starting, playing
// or paused).
func (s State) IsActive() bool {
	return s == StateStarting || s == StatePlaying || s == StatePaused
}
