// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Playback operations
	OpPlaybackStart Op = "start playback"
	OpPlaybackStop  Op = "stop playback"
	OpPlaybackPause Op = "pause playback"
	OpSeek          Op = "seek"
	OpSpeedToggle   Op = "toggle playback speed"

	// Subtune operations
	OpSubtuneNext Op = "switch to next subtune"
	OpSubtunePrev Op = "switch to previous subtune"

	// Engine operations
	OpEngineResolve Op = "locate audio engine"
	OpEngineSpawn   Op = "launch audio engine"
	OpEngineControl Op = "send command to audio engine"

	// File operations
	OpFileLoad   Op = "load SID file"
	OpHeaderRead Op = "read SID header"

	// Songlengths database
	OpSonglengthsLoad Op = "load song length database"

	// Playlist operations
	OpPlaylistLoad Op = "load playlist"
	OpPlaylistSave Op = "save playlist"

	// Session state
	OpStateLoad Op = "restore previous session"
	OpStateSave Op = "save session state"

	// Initialization
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
