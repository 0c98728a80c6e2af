// Package control delivers transport commands to a running engine process,
// either over its standard input or by injecting keystrokes into its
// console window.
package control

import (
	"errors"
	"fmt"
	"time"
)

// Command is a transport command deliverable to an engine.
type Command int

const (
	Pause Command = iota
	Resume
	Quit
	NextSubtune
	PrevSubtune
	SpeedUp
	SpeedDown
	toggleVoiceBase
)

// ToggleVoice returns the command toggling the mute state of voice n
// (1-based, up to 8 voices on a dual-chip setup). Only stdin-controlled
// engines understand voice toggles.
func ToggleVoice(n int) Command {
	return toggleVoiceBase + Command(n-1)
}

// Voice returns the 1-based voice number for a voice-toggle command,
// or 0 and false for transport commands.
func (c Command) Voice() (int, bool) {
	if c < toggleVoiceBase {
		return 0, false
	}
	return int(c-toggleVoiceBase) + 1, true
}

// String returns the command name for logging.
func (c Command) String() string {
	switch c {
	case Pause:
		return "pause"
	case Resume:
		return "resume"
	case Quit:
		return "quit"
	case NextSubtune:
		return "next-subtune"
	case PrevSubtune:
		return "prev-subtune"
	case SpeedUp:
		return "speed-up"
	case SpeedDown:
		return "speed-down"
	}
	if n, ok := c.Voice(); ok {
		return fmt.Sprintf("toggle-voice-%d", n)
	}
	return "unknown"
}

var (
	// ErrBrokenChannel is returned when a channel's transport has failed,
	// typically a closed stdin pipe or a vanished console window.
	ErrBrokenChannel = errors.New("control channel broken")

	// ErrUnsupportedCommand is returned when a channel has no encoding for
	// the command on its engine.
	ErrUnsupportedCommand = errors.New("command not supported by channel")

	// ErrWindowNotFound is returned when no console window matching the
	// engine's title hints exists.
	ErrWindowNotFound = errors.New("console window not found")
)

// Channel delivers commands over one control path.
type Channel interface {
	Send(Command) error
}

// SendBurst delivers commands in sequence with a fixed delay between them.
// Engines drop characters that arrive back to back, so bursts are paced.
// It stops at the first delivery error.
func SendBurst(ch Channel, delay time.Duration, cmds ...Command) error {
	for i, cmd := range cmds {
		if i > 0 && delay > 0 {
			time.Sleep(delay)
		}
		if err := ch.Send(cmd); err != nil {
			return err
		}
	}
	return nil
}
