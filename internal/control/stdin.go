package control

import (
	"fmt"
	"io"
	"sync"

	"github.com/LouDnl/USBSID-player/internal/engine"
)

// jsidplay2Seq maps commands to the single-character lines the jsidplay2
// console build reads from its standard input.
var jsidplay2Seq = map[Command]string{
	Pause:       "p",
	Resume:      "p",
	Quit:        "q",
	NextSubtune: ">",
	PrevSubtune: "<",
	SpeedUp:     ".",
	SpeedDown:   ",",
}

// sidplayfpSeq maps commands to the terminal escape sequences sidplayfp
// understands when keystroke injection is unavailable. Voice toggles have
// no stdin encoding there.
var sidplayfpSeq = map[Command]string{
	Pause:       "p",
	Resume:      "p",
	Quit:        "q",
	SpeedUp:     "\x1b[A",
	SpeedDown:   "\x1b[B",
	NextSubtune: "\x1b[C",
	PrevSubtune: "\x1b[D",
}

// StdinChannel writes command lines to an engine's standard input pipe.
type StdinChannel struct {
	mu     sync.Mutex
	w      io.Writer
	engine string
	seq    map[Command]string
}

// NewStdinChannel creates a stdin channel for the given engine. The writer
// is the child process's stdin pipe.
func NewStdinChannel(w io.Writer, engineID string) *StdinChannel {
	seq := sidplayfpSeq
	if engineID == engine.Jsidplay2 {
		seq = jsidplay2Seq
	}
	return &StdinChannel{w: w, engine: engineID, seq: seq}
}

// Send writes the command's character sequence followed by a newline. The
// engines read line-buffered input, so each command goes out as its own
// line.
func (c *StdinChannel) Send(cmd Command) error {
	seq, ok := c.seq[cmd]
	if !ok {
		// jsidplay2 toggles voice mute with the digits 1..8.
		if n, isVoice := cmd.Voice(); isVoice && c.engine == engine.Jsidplay2 && n >= 1 && n <= 8 {
			seq = fmt.Sprintf("%d", n)
		} else {
			return fmt.Errorf("%w: %s", ErrUnsupportedCommand, cmd)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, err := io.WriteString(c.w, seq+"\n"); err != nil {
		return fmt.Errorf("%w: %v", ErrBrokenChannel, err)
	}
	return nil
}
