package playback

import "testing"

func TestState_String(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateStopped, "Stopped"},
		{StateStarting, "Starting"},
		{StatePlaying, "Playing"},
		{StatePaused, "Paused"},
		{State(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestState_IsActive(t *testing.T) {
	if StateStopped.IsActive() {
		t.Error("Stopped should not be active")
	}
	for _, s := range []State{StateStarting, StatePlaying, StatePaused} {
		if !s.IsActive() {
			t.Errorf("%v should be active", s)
		}
	}
}
