package control

import (
	"errors"
	"testing"
	"time"
)

func TestCommand_String(t *testing.T) {
	tests := []struct {
		cmd  Command
		want string
	}{
		{Pause, "pause"},
		{Resume, "resume"},
		{Quit, "quit"},
		{NextSubtune, "next-subtune"},
		{PrevSubtune, "prev-subtune"},
		{SpeedUp, "speed-up"},
		{SpeedDown, "speed-down"},
		{ToggleVoice(1), "toggle-voice-1"},
		{ToggleVoice(8), "toggle-voice-8"},
	}
	for _, tt := range tests {
		if got := tt.cmd.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestCommand_Voice(t *testing.T) {
	if n, ok := ToggleVoice(3).Voice(); !ok || n != 3 {
		t.Errorf("ToggleVoice(3).Voice() = %d, %v", n, ok)
	}
	if _, ok := Pause.Voice(); ok {
		t.Error("Pause.Voice() should report no voice")
	}
}

// recordingChannel captures sent commands and returns a scripted error.
type recordingChannel struct {
	sent []Command
	err  error
}

func (c *recordingChannel) Send(cmd Command) error {
	c.sent = append(c.sent, cmd)
	return c.err
}

func TestDispatcher_StdinFirst(t *testing.T) {
	stdin := &recordingChannel{}
	keys := &recordingChannel{}
	d := NewDispatcher(stdin, keys)

	if err := d.Send(Pause); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if len(stdin.sent) != 1 || stdin.sent[0] != Pause {
		t.Errorf("stdin.sent = %v, want [pause]", stdin.sent)
	}
	if len(keys.sent) != 0 {
		t.Errorf("keystroke channel used despite working stdin: %v", keys.sent)
	}
}

func TestDispatcher_FallsBackToKeystrokes(t *testing.T) {
	stdin := &recordingChannel{err: ErrBrokenChannel}
	keys := &recordingChannel{}
	d := NewDispatcher(stdin, keys)

	if err := d.Send(SpeedUp); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if len(keys.sent) != 1 || keys.sent[0] != SpeedUp {
		t.Errorf("keys.sent = %v, want [speed-up]", keys.sent)
	}
}

func TestDispatcher_BothFail(t *testing.T) {
	stdin := &recordingChannel{err: ErrBrokenChannel}
	keys := &recordingChannel{err: ErrWindowNotFound}
	d := NewDispatcher(stdin, keys)

	err := d.Send(Quit)
	if !errors.Is(err, ErrWindowNotFound) {
		t.Errorf("Send() error = %v, want ErrWindowNotFound", err)
	}

	// No retry happened.
	if len(stdin.sent) != 1 || len(keys.sent) != 1 {
		t.Errorf("retries detected: stdin %d, keys %d", len(stdin.sent), len(keys.sent))
	}
}

func TestDispatcher_NoChannels(t *testing.T) {
	d := NewDispatcher(nil, nil)
	if err := d.Send(Pause); !errors.Is(err, ErrBrokenChannel) {
		t.Errorf("Send() error = %v, want ErrBrokenChannel", err)
	}
}

func TestSendBurst(t *testing.T) {
	ch := &recordingChannel{}
	if err := SendBurst(ch, 0, ToggleVoice(1), ToggleVoice(2), Quit); err != nil {
		t.Fatalf("SendBurst() error = %v", err)
	}
	want := []Command{ToggleVoice(1), ToggleVoice(2), Quit}
	if len(ch.sent) != len(want) {
		t.Fatalf("sent = %v, want %v", ch.sent, want)
	}
	for i := range want {
		if ch.sent[i] != want[i] {
			t.Errorf("sent[%d] = %v, want %v", i, ch.sent[i], want[i])
		}
	}
}

func TestSendBurst_StopsOnError(t *testing.T) {
	ch := &recordingChannel{err: ErrBrokenChannel}
	err := SendBurst(ch, time.Millisecond, Pause, Quit)
	if !errors.Is(err, ErrBrokenChannel) {
		t.Fatalf("SendBurst() error = %v", err)
	}
	if len(ch.sent) != 1 {
		t.Errorf("sent %d commands after failure, want 1", len(ch.sent))
	}
}
