package engine

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// fakeExe creates an empty file standing in for an engine binary.
func fakeExe(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("#!"), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNewRegistry_OmitsUnconfigured(t *testing.T) {
	r := NewRegistry(fakeExe(t, "sidplayfp"), "")

	if got := r.IDs(); len(got) != 1 || got[0] != Sidplayfp {
		t.Errorf("IDs() = %v, want [sidplayfp]", got)
	}
	if _, err := r.Get(Jsidplay2); !errors.Is(err, ErrUnknownEngine) {
		t.Errorf("Get(jsidplay2) error = %v, want ErrUnknownEngine", err)
	}
}

func TestRegistry_Protocols(t *testing.T) {
	r := NewRegistry(fakeExe(t, "sidplayfp"), fakeExe(t, "jsidplay2-console"))

	sp, err := r.Get(Sidplayfp)
	if err != nil {
		t.Fatal(err)
	}
	if sp.Protocol != KeystrokeInjection {
		t.Errorf("sidplayfp protocol = %v, want KeystrokeInjection", sp.Protocol)
	}

	js, err := r.Get(Jsidplay2)
	if err != nil {
		t.Fatal(err)
	}
	if js.Protocol != StdinLine {
		t.Errorf("jsidplay2 protocol = %v, want StdinLine", js.Protocol)
	}
	if js.AudioBackend != "USBSID" {
		t.Errorf("jsidplay2 backend = %q, want USBSID", js.AudioBackend)
	}
}

func TestResolve_MissingExecutable(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "sidplayfp")
	r := NewRegistry(missing, "")

	_, err := r.Resolve(Sidplayfp)
	if !errors.Is(err, ErrEngineNotFound) {
		t.Fatalf("Resolve() error = %v, want ErrEngineNotFound", err)
	}
	// The error must name the missing path so the UI can report it.
	if got := err.Error(); !strings.Contains(got, missing) {
		t.Errorf("error %q does not mention path %q", got, missing)
	}
}

func TestResolve_Existing(t *testing.T) {
	exe := fakeExe(t, "sidplayfp")
	r := NewRegistry(exe, "")

	d, err := r.Resolve(Sidplayfp)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if d.Path != exe {
		t.Errorf("Path = %q, want %q", d.Path, exe)
	}
}

func TestBuildArgs_SidplayfpTimed(t *testing.T) {
	d := Descriptor{ID: Sidplayfp, Protocol: KeystrokeInjection}
	args := BuildArgs(d, PlayParams{File: "/hvsc/Commando.sid", Subtune: 1, Duration: 42})

	want := []string{"--usbsid", "-s1", "-t0:42", "/hvsc/Commando.sid"}
	assertArgs(t, args, want)
}

func TestBuildArgs_SidplayfpLoop(t *testing.T) {
	d := Descriptor{ID: Sidplayfp, Protocol: KeystrokeInjection}
	args := BuildArgs(d, PlayParams{File: "/hvsc/Commando.sid", Subtune: 3, Duration: 42, Loop: true})

	want := []string{"--usbsid", "-s3", "-ol", "/hvsc/Commando.sid"}
	assertArgs(t, args, want)
}

func TestBuildArgs_Jsidplay2(t *testing.T) {
	d := Descriptor{ID: Jsidplay2, Protocol: StdinLine, AudioBackend: "USBSID"}
	args := BuildArgs(d, PlayParams{File: "/hvsc/Commando.sid", Subtune: 2, Duration: 42})

	// No --tune: the default build ignores it and is repositioned after
	// launch instead.
	want := []string{"--engine", "USBSID", "--usbSidAudio", "1", "/hvsc/Commando.sid"}
	assertArgs(t, args, want)
}

func TestBuildArgs_Jsidplay2TuneFlag(t *testing.T) {
	d := Descriptor{ID: Jsidplay2, Protocol: StdinLine, AudioBackend: "USBSID", SupportsTuneFlag: true}
	args := BuildArgs(d, PlayParams{File: "/hvsc/Commando.sid", Subtune: 2})

	want := []string{"--engine", "USBSID", "--usbSidAudio", "1", "--tune", "2", "/hvsc/Commando.sid"}
	assertArgs(t, args, want)
}

func TestFormatTimeArg(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{42, "0:42"},
		{90, "1:30"},
		{135, "2:15"},
		{600, "10:00"},
		{5, "0:05"},
		{-3, "0:00"},
	}

	for _, tt := range tests {
		if got := FormatTimeArg(tt.seconds); got != tt.want {
			t.Errorf("FormatTimeArg(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func assertArgs(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("args = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("args[%d] = %q, want %q (full: %v)", i, got[i], want[i], got)
		}
	}
}
