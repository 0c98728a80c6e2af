// Package ui renders the terminal front end: tune header, progress bar,
// transport status and a small log tail.
package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/LouDnl/USBSID-player/internal/engine"
	"github.com/LouDnl/USBSID-player/internal/logging"
	"github.com/LouDnl/USBSID-player/internal/playback"
	"github.com/LouDnl/USBSID-player/internal/playlist"
	"github.com/LouDnl/USBSID-player/internal/state"
	"github.com/LouDnl/USBSID-player/internal/tracker"
)

const (
	maxLogLines  = 100
	seekStep     = 30 // seconds per seek keypress
	defaultWidth = 80
)

type tickMsg time.Time

type logMsg string

type playbackEventMsg struct{ event any }

// Model is the bubbletea model for the player screen.
type Model struct {
	svc      playback.Service
	stateMgr *state.Manager
	pl       *playlist.Playlist
	rec      *tracker.Recognizer

	sub      *playback.Subscription
	progress progress.Model

	width  int
	height int

	trackerName string
	logLines    []string
	lastErr     string

	lastSaved state.Session
}

// New assembles the player screen. stateMgr, pl and rec may be nil.
func New(svc playback.Service, stateMgr *state.Manager, pl *playlist.Playlist, rec *tracker.Recognizer) Model {
	return Model{
		svc:      svc,
		stateMgr: stateMgr,
		pl:       pl,
		rec:      rec,
		sub:      svc.Subscribe(),
		progress: newProgressBar(),
		width:    defaultWidth,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), waitLog(), waitEvent(m.sub))
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func waitLog() tea.Cmd {
	return func() tea.Msg {
		return logMsg(<-logging.Messages)
	}
}

// waitEvent forwards the next playback event to the update loop so the
// screen refreshes immediately instead of on the next clock tick.
func waitEvent(sub *playback.Subscription) tea.Cmd {
	return func() tea.Msg {
		select {
		case e := <-sub.StateChanged:
			return playbackEventMsg{event: e}
		case e := <-sub.TuneChanged:
			return playbackEventMsg{event: e}
		case e := <-sub.PositionChanged:
			return playbackEventMsg{event: e}
		case e := <-sub.SpeedChanged:
			return playbackEventMsg{event: e}
		case e := <-sub.DurationChanged:
			return playbackEventMsg{event: e}
		case e := <-sub.Error:
			return playbackEventMsg{event: e}
		case <-sub.Done:
			return nil
		}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = barWidth(msg.Width)
		return m, nil

	case tickMsg:
		m.svc.Tick()
		m.saveSession()
		return m, tickCmd()

	case logMsg:
		m.logLines = append(m.logLines, string(msg))
		if len(m.logLines) > maxLogLines {
			m.logLines = m.logLines[len(m.logLines)-maxLogLines:]
		}
		return m, waitLog()

	case playbackEventMsg:
		switch e := msg.event.(type) {
		case playback.TuneChange:
			m.trackerName = ""
			if m.rec != nil {
				m.trackerName = m.rec.Recognize(e.Path)
			}
			m.lastErr = ""
		case playback.ErrorEvent:
			m.lastErr = e.Err.Error()
		}
		return m, waitEvent(m.sub)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.svc.Stop()
		return m, tea.Quit

	case " ", "p":
		m.svc.Toggle()

	case "enter":
		if m.svc.CurrentFile() == "" && m.pl != nil {
			if e := m.pl.Current(); e != nil {
				m.svc.PlayPath(e.Path)
				break
			}
		}
		m.svc.Play()

	case "s":
		m.svc.Stop()

	case "right":
		m.svc.NextSubtune()

	case "left":
		m.svc.PrevSubtune()

	case "n":
		m.svc.NextSong()

	case "b":
		m.svc.PrevSong()

	case "f":
		m.svc.ToggleSpeed()

	case ".":
		m.svc.SeekTo(m.svc.Elapsed() + seekStep)

	case "l":
		m.svc.SetLoop(!m.svc.Loop())

	case "d":
		m.svc.SetDefaultTuneOnly(!m.svc.DefaultTuneOnly())

	case "e":
		m.svc.SetEngine(otherEngine(m.svc.Engine()))
	}
	return m, nil
}

func otherEngine(id string) string {
	if id == engine.Sidplayfp {
		return engine.Jsidplay2
	}
	return engine.Sidplayfp
}

// saveSession persists the session when it changed since the last tick.
func (m *Model) saveSession() {
	if m.stateMgr == nil || m.svc.CurrentFile() == "" {
		return
	}
	s := state.Session{
		FilePath:        m.svc.CurrentFile(),
		Engine:          m.svc.Engine(),
		Subtune:         m.svc.Subtune(),
		Loop:            m.svc.Loop(),
		DefaultTuneOnly: m.svc.DefaultTuneOnly(),
		PlaylistIndex:   -1,
	}
	if m.pl != nil {
		s.PlaylistIndex = m.pl.CurrentIndex()
	}
	if s == m.lastSaved {
		return
	}
	m.lastSaved = s
	m.stateMgr.SaveSession(s)
}
