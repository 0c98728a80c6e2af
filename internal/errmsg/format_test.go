package errmsg

import (
	"errors"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpPlaybackStart,
			err:      nil,
			expected: "",
		},
		{
			name:     "formats error with operation",
			op:       OpPlaybackStart,
			err:      errors.New("engine not found"),
			expected: "Failed to start playback: engine not found",
		},
		{
			name:     "engine operation",
			op:       OpEngineSpawn,
			err:      errors.New("permission denied"),
			expected: "Failed to launch audio engine: permission denied",
		},
		{
			name:     "playlist operation",
			op:       OpPlaylistLoad,
			err:      errors.New("no such file"),
			expected: "Failed to load playlist: no such file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.op, tt.err)
			if result != tt.expected {
				t.Errorf("Format(%q, %v) = %q, want %q", tt.op, tt.err, result, tt.expected)
			}
		})
	}
}

func TestFormatWith(t *testing.T) {
	err := errors.New("broken pipe")

	got := FormatWith(OpEngineControl, "jsidplay2", err)
	want := "Failed to send command to audio engine 'jsidplay2': broken pipe"
	if got != want {
		t.Errorf("FormatWith() = %q, want %q", got, want)
	}

	if got := FormatWith(OpEngineControl, "", err); got != Format(OpEngineControl, err) {
		t.Errorf("FormatWith with empty context = %q, want plain Format output", got)
	}

	if got := FormatWith(OpEngineControl, "jsidplay2", nil); got != "" {
		t.Errorf("FormatWith with nil error = %q, want empty", got)
	}
}
