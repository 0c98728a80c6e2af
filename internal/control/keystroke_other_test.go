//go:build !windows

package control

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestKeystrokeChannel_NoWindowsSupport(t *testing.T) {
	ch := NewKeystrokeChannel("sidplayfp")
	if err := ch.Send(SpeedUp); !errors.Is(err, ErrWindowNotFound) {
		t.Errorf("Send() error = %v, want ErrWindowNotFound", err)
	}
}

func TestKeystrokeChannel_UnsupportedCommand(t *testing.T) {
	ch := NewKeystrokeChannel("sidplayfp")
	if err := ch.Send(ToggleVoice(1)); !errors.Is(err, ErrUnsupportedCommand) {
		t.Errorf("Send() error = %v, want ErrUnsupportedCommand", err)
	}
}

func TestKeystrokeChannel_Jsidplay2HasBindings(t *testing.T) {
	// Every stdin command of the jsidplay2 protocol must also exist on the
	// fallback path; off Windows the send fails at window lookup, not at
	// the binding.
	ch := NewKeystrokeChannel("jsidplay2")
	for _, cmd := range []Command{Pause, Quit, NextSubtune, PrevSubtune, ToggleVoice(3)} {
		if err := ch.Send(cmd); !errors.Is(err, ErrWindowNotFound) {
			t.Errorf("Send(%s) error = %v, want ErrWindowNotFound", cmd, err)
		}
	}
}

func TestHideConsole_RespectsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		HideConsole(ctx, "sidplayfp")
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("HideConsole did not return after context cancellation")
	}
}
