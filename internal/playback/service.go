package playback

import (
	"github.com/LouDnl/USBSID-player/internal/playlist"
	"github.com/LouDnl/USBSID-player/internal/sidfile"
)

// DurationSource resolves a tune's play length in seconds. Implementations
// return 0 when the tune is unknown; the service then falls back to the
// playlist default and whatever length the engine reports itself.
type DurationSource interface {
	Duration(path string, subtune int) int
}

// TuneReader loads tune metadata from disk.
type TuneReader interface {
	Read(path string) (*sidfile.Info, error)
}

// PlaylistNav supplies neighboring playlist entries for auto-advance and
// manual song navigation.
type PlaylistNav interface {
	Current() *playlist.Entry
	Next() *playlist.Entry
	Previous() *playlist.Entry
}

// Service defines the playback service contract. All methods are safe for
// concurrent use.
type Service interface {
	// Playback control
	Load(path string) error     // read metadata, select the tune, no engine spawn
	Play() error                // start a session for the selected tune
	PlayPath(path string) error // Load then Play
	Toggle() error              // pause/resume
	Stop() error
	NextSubtune() error
	PrevSubtune() error
	SelectSubtune(n int) error
	NextSong() error
	PrevSong() error
	ToggleSpeed() error // switch between normal and fast-forward speed
	SeekTo(target int) error

	// Tick advances the playback clock by one second of wall time. The
	// owner calls it from its own timer; the service has no internal
	// ticker.
	Tick()

	// State queries
	State() State
	IsPlaying() bool
	IsPaused() bool
	IsSeeking() bool
	Elapsed() int  // seconds
	Duration() int // seconds
	Speed() int    // multiplier, 1 or 8
	CurrentFile() string
	CurrentTune() *sidfile.Info
	Subtune() int
	SubtuneCount() int

	// Mode control
	Loop() bool
	SetLoop(bool)
	DefaultTuneOnly() bool
	SetDefaultTuneOnly(bool)
	Engine() string
	SetEngine(id string) error

	// Event subscription
	Subscribe() *Subscription

	// Lifecycle
	Close() error
}
