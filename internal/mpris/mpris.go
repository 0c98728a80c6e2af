//go:build linux

// Package mpris exposes the player on the desktop's media-key bus.
package mpris

import (
	"fmt"
	"hash/fnv"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"

	"github.com/LouDnl/USBSID-player/internal/playback"
)

// Adapter connects the playback service to MPRIS over D-Bus.
type Adapter struct {
	service playback.Service
	server  *server.Server
	done    chan struct{}
}

// New creates and starts a new MPRIS adapter.
func New(service playback.Service) (*Adapter, error) {
	a := &Adapter{
		service: service,
		done:    make(chan struct{}),
	}

	rootAdapter := &rootAdapter{}
	playerAdapter := &playerAdapter{service: service}

	a.server = server.NewServer("usbsid-player", rootAdapter, playerAdapter)

	// Start the server in background
	go func() {
		_ = a.server.Listen()
	}()

	return a, nil
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	close(a.done)
	return a.server.Stop()
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error {
	return nil // Not supported
}

func (r *rootAdapter) Quit() error {
	return nil // Not supported - app manages its own lifecycle
}

func (r *rootAdapter) CanQuit() (bool, error) {
	return false, nil
}

func (r *rootAdapter) CanRaise() (bool, error) {
	return false, nil
}

func (r *rootAdapter) HasTrackList() (bool, error) {
	return false, nil
}

func (r *rootAdapter) Identity() (string, error) {
	return "USBSID Player", nil
}

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"file"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{"audio/prs.sid", "audio/x-sid"}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter. Playback
// runs on real hardware through an external engine, so positions map
// between MPRIS microseconds and the service's whole-second clock.
type playerAdapter struct {
	service playback.Service
}

func (p *playerAdapter) Next() error {
	return p.service.NextSubtune()
}

func (p *playerAdapter) Previous() error {
	return p.service.PrevSubtune()
}

func (p *playerAdapter) Pause() error {
	if p.service.IsPlaying() {
		return p.service.Toggle()
	}
	return nil
}

func (p *playerAdapter) PlayPause() error {
	return p.service.Toggle()
}

func (p *playerAdapter) Stop() error {
	return p.service.Stop()
}

func (p *playerAdapter) Play() error {
	if p.service.State() == playback.StateStopped {
		return p.service.Play()
	}
	if p.service.IsPaused() {
		return p.service.Toggle()
	}
	return nil
}

func (p *playerAdapter) Seek(offset types.Microseconds) error {
	delta := int(time.Duration(offset) * time.Microsecond / time.Second)
	return p.service.SeekTo(p.service.Elapsed() + delta)
}

func (p *playerAdapter) SetPosition(_ string, position types.Microseconds) error {
	target := int(time.Duration(position) * time.Microsecond / time.Second)
	return p.service.SeekTo(target)
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil // Not supported
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	switch p.service.State() {
	case playback.StatePlaying, playback.StateStarting:
		return types.PlaybackStatusPlaying, nil
	case playback.StatePaused:
		return types.PlaybackStatusPaused, nil
	case playback.StateStopped:
		return types.PlaybackStatusStopped, nil
	}
	return types.PlaybackStatusStopped, nil
}

func (p *playerAdapter) Rate() (float64, error) {
	return float64(p.service.Speed()), nil
}

func (p *playerAdapter) SetRate(_ float64) error {
	return nil // Speed is toggled, not arbitrary
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	tune := p.service.CurrentTune()
	if tune == nil {
		return types.Metadata{}, nil
	}

	return types.Metadata{
		TrackId:     dbus.ObjectPath(formatTrackID(tune.Path, p.service.Subtune())),
		Length:      types.Microseconds(int64(p.service.Duration()) * int64(time.Second/time.Microsecond)),
		Title:       tune.Title,
		Artist:      []string{tune.Author},
		Album:       tune.Released,
		TrackNumber: p.service.Subtune(),
	}, nil
}

func (p *playerAdapter) Volume() (float64, error) {
	return 1.0, nil // Hardware output, no software volume
}

func (p *playerAdapter) SetVolume(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Position() (int64, error) {
	return int64(p.service.Elapsed()) * int64(time.Second/time.Microsecond), nil
}

func (p *playerAdapter) MinimumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) MaximumRate() (float64, error) {
	return 8.0, nil
}

func (p *playerAdapter) CanGoNext() (bool, error) {
	return p.service.Subtune() < p.service.SubtuneCount(), nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	return p.service.Subtune() > 1, nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	return p.service.CurrentFile() != "", nil
}

func (p *playerAdapter) CanPause() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanSeek() (bool, error) {
	// Forward only, but MPRIS has no way to say that.
	return true, nil
}

func (p *playerAdapter) CanControl() (bool, error) {
	return true, nil
}

// LoopStatus implements OrgMprisMediaPlayer2PlayerAdapterLoopStatus.
func (p *playerAdapter) LoopStatus() (types.LoopStatus, error) {
	if p.service.Loop() {
		return types.LoopStatusTrack, nil
	}
	return types.LoopStatusNone, nil
}

// SetLoopStatus implements OrgMprisMediaPlayer2PlayerAdapterLoopStatus.
func (p *playerAdapter) SetLoopStatus(status types.LoopStatus) error {
	p.service.SetLoop(status != types.LoopStatusNone)
	return nil
}

func formatTrackID(path string, subtune int) string {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s#%d", path, subtune)
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64())
}
