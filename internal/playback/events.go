package playback

// StateChange is emitted when playback state changes.
type StateChange struct {
	Previous State
	Current  State
}

// TuneChange is emitted when playback starts on a different tune or
// subtune.
//
// Emitted by:
//   - Play/PlayPath: when a session starts on a new file
//   - NextSubtune/PrevSubtune: subtune navigation restarts the engine
//   - NextSong/PrevSong and auto-advance at the end of a tune
//
// NOT emitted by:
//   - Toggle/Stop: state changes do not emit TuneChange
type TuneChange struct {
	Path    string
	Subtune int
	Title   string
	Author  string
}

// PositionChange is emitted when the play position jumps, i.e. after a
// seek completes. The steady once-a-second advance is not reported here;
// the UI polls Elapsed on its own tick.
type PositionChange struct {
	Elapsed int // seconds
}

// SpeedChange is emitted when the playback speed multiplier changes.
type SpeedChange struct {
	Multiplier int
}

// DurationChange is emitted when the engine reports a tune length that
// replaces an unknown duration.
type DurationChange struct {
	Seconds int
}

// ErrorEvent is emitted when an error occurs during playback.
type ErrorEvent struct {
	Operation string // e.g., "play", "seek"
	Path      string // tune path if applicable
	Err       error
}
