package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"

	"github.com/LouDnl/USBSID-player/internal/config"
	"github.com/LouDnl/USBSID-player/internal/engine"
	"github.com/LouDnl/USBSID-player/internal/errmsg"
	"github.com/LouDnl/USBSID-player/internal/logging"
	"github.com/LouDnl/USBSID-player/internal/mpris"
	"github.com/LouDnl/USBSID-player/internal/playback"
	"github.com/LouDnl/USBSID-player/internal/playlist"
	"github.com/LouDnl/USBSID-player/internal/sidfile"
	"github.com/LouDnl/USBSID-player/internal/songlengths"
	"github.com/LouDnl/USBSID-player/internal/state"
	"github.com/LouDnl/USBSID-player/internal/tracker"
	"github.com/LouDnl/USBSID-player/internal/ui"
)

// tuneReader adapts sidfile to the playback service.
type tuneReader struct{}

func (tuneReader) Read(path string) (*sidfile.Info, error) {
	return sidfile.Read(path)
}

// durationSource adapts the songlengths database; it reports 0 for tunes
// without an entry so the service can fall back to the engine's own idea
// of the length.
type durationSource struct {
	db *songlengths.DB
}

func (d durationSource) Duration(path string, subtune int) int {
	return d.db.KnownDuration(path, subtune)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, errmsg.Format(errmsg.OpInitialize, err))
		os.Exit(1)
	}

	if err := logging.Setup(cfg.LogLevel(), cfg.Log.File); err != nil {
		fmt.Fprintln(os.Stderr, errmsg.Format(errmsg.OpInitialize, err))
		os.Exit(1)
	}

	stateMgr, err := state.Open()
	if err != nil {
		fmt.Fprintln(os.Stderr, errmsg.Format(errmsg.OpStateLoad, err))
		os.Exit(1)
	}

	reg := engine.NewRegistry(cfg.Engines.Sidplayfp, cfg.Engines.Jsidplay2)
	if len(reg.IDs()) == 0 {
		stateMgr.Close()
		fmt.Fprintln(os.Stderr, "No engine configured; set engines.sidplayfp or engines.jsidplay2 in config.toml")
		os.Exit(1)
	}

	var durations playback.DurationSource
	if cfg.SonglengthsPath != "" {
		db, err := songlengths.Load(cfg.SonglengthsPath)
		if err != nil {
			log.Warn(errmsg.FormatWith(errmsg.OpSonglengthsLoad, cfg.SonglengthsPath, err))
		} else {
			durations = durationSource{db: db}
		}
	}

	var rec *tracker.Recognizer
	if cfg.SididPath != "" {
		rec, err = tracker.Load(cfg.SididPath)
		if err != nil {
			log.Warnf("Failed to load tracker patterns from %q: %v", cfg.SididPath, err)
			rec = nil
		}
	}

	pl, err := playlist.Load(cfg.GetPlaylistPath())
	if err != nil {
		log.Warn(errmsg.FormatWith(errmsg.OpPlaylistLoad, cfg.GetPlaylistPath(), err))
		pl = playlist.New()
	}

	// Tunes named on the command line join the playlist.
	for _, arg := range os.Args[1:] {
		if !sidfile.IsSIDFile(arg) {
			continue
		}
		abs, err := filepath.Abs(arg)
		if err != nil {
			abs = arg
		}
		pl.Add(playlist.Entry{Path: abs})
		if pl.CurrentIndex() < 0 {
			pl.SetCurrent(pl.Len() - 1)
		}
	}

	engineID := cfg.DefaultEngine
	if _, err := reg.Get(engineID); err != nil {
		engineID = reg.IDs()[0]
	}

	svc := playback.New(reg, durations, tuneReader{}, pl, engineID)
	svc.SetLoop(cfg.Loop)
	svc.SetDefaultTuneOnly(cfg.DefaultTuneOnly)

	restoreSession(svc, stateMgr, pl, reg)

	mprisAdapter, err := mpris.New(svc)
	if err != nil {
		log.Warnf("MPRIS unavailable: %v", err)
		mprisAdapter = nil
	}

	p := tea.NewProgram(ui.New(svc, stateMgr, pl, rec), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}

	svc.Close()
	if mprisAdapter != nil {
		mprisAdapter.Close()
	}
	if err := pl.Save(cfg.GetPlaylistPath()); err != nil {
		log.Warn(errmsg.FormatWith(errmsg.OpPlaylistSave, cfg.GetPlaylistPath(), err))
	}
	stateMgr.Close()
}

// restoreSession reapplies the last session: engine, modes, playlist
// position and the selected tune. Nothing starts playing; the tune is
// loaded and waits for the play key.
func restoreSession(svc playback.Service, stateMgr *state.Manager, pl *playlist.Playlist, reg *engine.Registry) {
	sess, err := stateMgr.GetSession()
	if err != nil {
		log.Warn(errmsg.Format(errmsg.OpStateLoad, err))
		return
	}
	if sess == nil {
		return
	}

	if _, err := reg.Get(sess.Engine); err == nil {
		_ = svc.SetEngine(sess.Engine)
	}
	svc.SetLoop(sess.Loop)
	svc.SetDefaultTuneOnly(sess.DefaultTuneOnly)

	if sess.PlaylistIndex >= 0 {
		pl.SetCurrent(sess.PlaylistIndex)
	}

	if sess.FilePath == "" {
		return
	}
	if _, err := os.Stat(sess.FilePath); err != nil {
		return
	}
	if err := svc.Load(sess.FilePath); err != nil {
		log.Warn(errmsg.FormatWith(errmsg.OpFileLoad, sess.FilePath, err))
		return
	}
	_ = svc.SelectSubtune(sess.Subtune)
}
