package playback

import (
	"errors"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/LouDnl/USBSID-player/internal/control"
	"github.com/LouDnl/USBSID-player/internal/engine"
	"github.com/LouDnl/USBSID-player/internal/monitor"
	"github.com/LouDnl/USBSID-player/internal/sidfile"
	"github.com/LouDnl/USBSID-player/internal/songlengths"
)

var (
	// ErrNoTune is returned by operations needing a loaded tune.
	ErrNoTune = errors.New("no tune loaded")

	// ErrNotPlaying is returned by operations needing an active session.
	ErrNotPlaying = errors.New("nothing is playing")
)

// burstDelay paces multi-character command bursts; the engines drop input
// arriving faster than this.
const burstDelay = 100 * time.Millisecond

// subtuneStepDelay paces the post-launch subtune positioning commands.
const subtuneStepDelay = 50 * time.Millisecond

// Verify serviceImpl implements Service at compile time.
var _ Service = (*serviceImpl)(nil)

type serviceImpl struct {
	mu sync.Mutex

	registry  *engine.Registry
	durations DurationSource
	tunes     TuneReader
	nav       PlaylistNav

	engineID        string
	loop            bool
	defaultTuneOnly bool

	tune    *sidfile.Info
	subtune int

	state    State
	elapsed  int // seconds into the current subtune
	duration int // seconds, resolved at session start
	// durationKnown marks a duration that came from the database; an
	// engine-reported length only replaces guessed values.
	durationKnown bool
	speed         int
	seeking       bool
	// muted tracks the believed voice-mute state of the engine. The engine
	// only exposes toggle commands, so this is optimistic: a dropped burst
	// leaves the flag wrong until the next forced mute.
	muted bool

	sess *session

	subs   []*Subscription
	subsMu sync.RWMutex

	closed bool
}

// New creates a playback service. durations and nav may be nil; engineID
// selects the initially active engine.
func New(registry *engine.Registry, durations DurationSource, tunes TuneReader, nav PlaylistNav, engineID string) Service {
	return &serviceImpl{
		registry:  registry,
		durations: durations,
		tunes:     tunes,
		nav:       nav,
		engineID:  engineID,
		speed:     1,
	}
}

// Load reads the tune's metadata and selects its default subtune without
// spawning an engine. Any running session is stopped first.
func (s *serviceImpl) Load(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tune, err := s.tunes.Read(path)
	if err != nil {
		return err
	}

	s.stopSessionLocked()
	s.tune = tune
	s.subtune = tune.Start
	s.elapsed = 0
	s.speed = 1
	s.seeking = false
	s.resolveDurationLocked()
	s.setStateLocked(StateStopped)
	s.emitTuneLocked()
	return nil
}

// Play starts a session for the selected tune and subtune.
func (s *serviceImpl) Play() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tune == nil {
		return ErrNoTune
	}
	return s.startLocked(s.tune.Path, s.subtune)
}

// PlayPath loads a tune and immediately starts playing it.
func (s *serviceImpl) PlayPath(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tune = nil
	return s.startLocked(path, 0)
}

// startLocked resolves the engine, reads metadata if needed and spawns a
// fresh session. subtune 0 selects the tune's default.
func (s *serviceImpl) startLocked(path string, subtune int) error {
	// Resolve before anything is torn down or spawned; a missing engine
	// must leave the current state untouched.
	desc, err := s.registry.Resolve(s.engineID)
	if err != nil {
		return err
	}

	tune := s.tune
	if tune == nil || tune.Path != path {
		tune, err = s.tunes.Read(path)
		if err != nil {
			return err
		}
	}

	if subtune < 1 {
		subtune = tune.Start
	}
	if subtune > tune.Songs {
		subtune = tune.Songs
	}

	s.stopSessionLocked()

	s.tune = tune
	s.subtune = subtune
	s.resolveDurationLocked()

	sess, err := launch(desc, engine.PlayParams{
		File:     path,
		Subtune:  subtune,
		Duration: s.duration,
		Loop:     s.loop,
	})
	if err != nil {
		s.setStateLocked(StateStopped)
		return err
	}

	s.sess = sess
	s.elapsed = 0
	s.speed = 1
	s.seeking = false
	s.muted = false // a fresh engine starts with all voices live
	s.setStateLocked(StateStarting)

	// jsidplay2 builds without --tune support start on the default subtune
	// and are stepped to the requested one once playback is confirmed.
	if desc.ID == engine.Jsidplay2 && !desc.SupportsTuneFlag {
		sess.positionSteps = subtune - tune.Start
	}

	go s.consumeEvents(sess)

	s.emitTuneLocked()
	return nil
}

// positionSubtuneLocked walks the engine by the signed number of subtune
// steps, muted so the intermediate subtunes stay silent.
func (s *serviceImpl) positionSubtuneLocked(sess *session, steps int) {
	s.ensureMutedLocked()

	cmd := control.NextSubtune
	if steps < 0 {
		cmd = control.PrevSubtune
		steps = -steps
	}
	cmds := make([]control.Command, steps)
	for i := range cmds {
		cmds[i] = cmd
	}
	if err := control.SendBurst(sess.dispatcher, subtuneStepDelay, cmds...); err != nil {
		log.Warnf("subtune positioning incomplete: %v", err)
	}

	s.unmuteAllLocked()
}

// resolveDurationLocked picks the duration for the current tune/subtune:
// database entry, then playlist entry, then the global default.
func (s *serviceImpl) resolveDurationLocked() {
	s.duration = 0
	s.durationKnown = false
	if s.tune == nil {
		return
	}
	if s.durations != nil {
		if d := s.durations.Duration(s.tune.Path, s.subtune); d > 0 {
			s.duration = d
			s.durationKnown = true
			return
		}
	}
	if s.nav != nil {
		if e := s.nav.Current(); e != nil && e.Path == s.tune.Path && e.Duration > 0 {
			s.duration = e.Duration
			return
		}
	}
	s.duration = songlengths.DefaultDuration
}

// consumeEvents applies monitor events to the service for as long as the
// session is current. The goroutine ends when the monitor channel closes.
func (s *serviceImpl) consumeEvents(sess *session) {
	for e := range sess.events {
		switch ev := e.(type) {
		case monitor.PlaybackStarted:
			s.mu.Lock()
			if s.sess == sess && s.state == StateStarting {
				s.elapsed = 0
				s.setStateLocked(StatePlaying)
				if steps := sess.positionSteps; steps != 0 {
					sess.positionSteps = 0
					s.positionSubtuneLocked(sess, steps)
				}
			}
			s.mu.Unlock()
		case monitor.FallbackDuration:
			s.mu.Lock()
			if s.sess == sess && !s.durationKnown && ev.Seconds > 0 {
				s.duration = ev.Seconds
				s.broadcast(func(sub *Subscription) { sub.sendDuration(ev.Seconds) })
			}
			s.mu.Unlock()
		}
	}
}

// Toggle pauses or resumes playback. When stopped with a tune selected it
// starts playing instead.
func (s *serviceImpl) Toggle() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StatePlaying, StateStarting:
		if s.sess == nil {
			return ErrNotPlaying
		}
		if s.seeking {
			// Pausing cancels the seek; otherwise the engine would keep
			// fast-forwarding against a frozen clock.
			s.seeking = false
			if err := s.speedDownLocked(); err != nil {
				log.Warnf("restoring speed before pause: %v", err)
			}
		}
		// Mute before pausing: jsidplay2 holds the last SID register state
		// while paused, which drones audibly.
		s.muteAllLocked(false)
		if err := s.sess.dispatcher.Send(control.Pause); err != nil {
			return err
		}
		s.setStateLocked(StatePaused)
	case StatePaused:
		if err := s.sess.dispatcher.Send(control.Resume); err != nil {
			return err
		}
		s.unmuteAllLocked()
		s.setStateLocked(StatePlaying)
	case StateStopped:
		if s.tune == nil {
			return ErrNoTune
		}
		return s.startLocked(s.tune.Path, s.subtune)
	}
	return nil
}

// Stop ends the session and resets the clock.
func (s *serviceImpl) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopSessionLocked()
	s.elapsed = 0
	s.speed = 1
	s.seeking = false
	s.setStateLocked(StateStopped)
	return nil
}

// NextSubtune moves to the next subtune. At the last subtune it is a
// no-op.
func (s *serviceImpl) NextSubtune() error {
	return s.stepSubtune(1)
}

// PrevSubtune moves to the previous subtune. At the first subtune it is a
// no-op.
func (s *serviceImpl) PrevSubtune() error {
	return s.stepSubtune(-1)
}

// SelectSubtune jumps straight to subtune n, clamped to the tune's range.
// An active session restarts on the selected subtune.
func (s *serviceImpl) SelectSubtune(n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tune == nil {
		return ErrNoTune
	}
	if n < 1 {
		n = 1
	}
	if n > s.tune.Songs {
		n = s.tune.Songs
	}
	if n == s.subtune {
		return nil
	}
	if s.state.IsActive() {
		return s.startLocked(s.tune.Path, n)
	}
	s.subtune = n
	s.resolveDurationLocked()
	s.emitTuneLocked()
	return nil
}

func (s *serviceImpl) stepSubtune(step int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tune == nil {
		return ErrNoTune
	}
	target := s.subtune + step
	if target < 1 || target > s.tune.Songs {
		return nil
	}

	if !s.state.IsActive() {
		s.subtune = target
		s.resolveDurationLocked()
		s.emitTuneLocked()
		return nil
	}

	// jsidplay2 navigates in place; sidplayfp needs a restart because its
	// keystroke path is unreliable for navigation mid-tune.
	if s.sess != nil && s.sess.desc.ID == engine.Jsidplay2 {
		s.ensureMutedLocked()
		cmd := control.NextSubtune
		if step < 0 {
			cmd = control.PrevSubtune
		}
		if err := s.sess.dispatcher.Send(cmd); err != nil {
			return err
		}
		s.unmuteAllLocked()
		s.subtune = target
		s.elapsed = 0
		s.resolveDurationLocked()
		s.emitTuneLocked()
		return nil
	}

	return s.startLocked(s.tune.Path, target)
}

// NextSong starts the next playlist entry. Without a playlist, or at its
// end, it is a no-op.
func (s *serviceImpl) NextSong() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.nav == nil {
		return nil
	}
	e := s.nav.Next()
	if e == nil {
		return nil
	}
	s.tune = nil // force a metadata re-read
	return s.startLocked(e.Path, 0)
}

// PrevSong starts the previous playlist entry.
func (s *serviceImpl) PrevSong() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.nav == nil {
		return nil
	}
	e := s.nav.Previous()
	if e == nil {
		return nil
	}
	s.tune = nil
	return s.startLocked(e.Path, 0)
}

// ToggleSpeed switches between normal speed and fast-forward.
func (s *serviceImpl) ToggleSpeed() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StatePlaying && s.state != StateStarting {
		return ErrNotPlaying
	}
	if s.seeking {
		// The seek engine owns the speed until it finishes.
		return nil
	}
	if s.speed == 1 {
		return s.speedUpLocked()
	}
	return s.speedDownLocked()
}

// Tick advances the playback clock by one second of wall time, scaled by
// the speed multiplier, and handles the end of the tune.
func (s *serviceImpl) Tick() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sess != nil {
		select {
		case err := <-s.sess.waitCh:
			s.handleExitLocked(err)
			return
		default:
		}
	}

	if s.state != StatePlaying {
		return
	}
	s.elapsed += s.speed
	if s.duration > 0 && s.elapsed >= s.duration && !s.seeking {
		s.handleTuneFinishedLocked()
	}
}

// handleExitLocked reacts to the engine process ending on its own, either
// because it reached the tune's stop time or because it crashed.
func (s *serviceImpl) handleExitLocked(exitErr error) {
	s.teardownSessionLocked()
	if !s.state.IsActive() {
		return
	}
	if exitErr != nil || (s.duration > 0 && s.elapsed < s.duration-2) {
		// Died mid-tune: don't advance, the next tune would likely fail
		// the same way.
		if exitErr == nil {
			exitErr = errors.New("process ended early")
		}
		log.Warnf("engine exited unexpectedly at %ds: %v", s.elapsed, exitErr)
		s.reportErrorLocked("engine", exitErr)
		s.stopAllLocked()
		return
	}
	if s.loop && s.tune != nil {
		if err := s.startLocked(s.tune.Path, s.subtune); err != nil {
			s.reportErrorLocked("play", err)
			s.setStateLocked(StateStopped)
		}
		return
	}
	s.advanceLocked()
}

// handleTuneFinishedLocked handles the clock reaching the tune's duration
// while the engine is still running.
func (s *serviceImpl) handleTuneFinishedLocked() {
	if s.loop {
		// The engine loops on its own; only the clock restarts.
		s.elapsed = 0
		return
	}
	s.advanceLocked()
}

// advanceLocked moves on after a tune ends: next subtune, then next
// playlist entry, then stop.
func (s *serviceImpl) advanceLocked() {
	if !s.defaultTuneOnly && s.tune != nil && s.subtune < s.tune.Songs {
		if err := s.startLocked(s.tune.Path, s.subtune+1); err != nil {
			s.reportErrorLocked("play", err)
			s.stopAllLocked()
		}
		return
	}
	if s.nav != nil {
		if e := s.nav.Next(); e != nil {
			s.tune = nil // force a metadata re-read
			if err := s.startLocked(e.Path, 0); err != nil {
				s.reportErrorLocked("play", err)
				s.stopAllLocked()
			}
			return
		}
	}
	s.stopAllLocked()
}

func (s *serviceImpl) stopAllLocked() {
	s.stopSessionLocked()
	s.elapsed = 0
	s.speed = 1
	s.seeking = false
	s.setStateLocked(StateStopped)
}

// State returns the current playback state.
func (s *serviceImpl) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *serviceImpl) IsPlaying() bool { return s.State() == StatePlaying }

func (s *serviceImpl) IsPaused() bool { return s.State() == StatePaused }

func (s *serviceImpl) IsSeeking() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seeking
}

// Elapsed returns seconds played of the current subtune.
func (s *serviceImpl) Elapsed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.elapsed
}

// Duration returns the current subtune's length in seconds.
func (s *serviceImpl) Duration() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.duration
}

// Speed returns the playback speed multiplier.
func (s *serviceImpl) Speed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.speed
}

// CurrentFile returns the path of the loaded tune, or "".
func (s *serviceImpl) CurrentFile() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tune == nil {
		return ""
	}
	return s.tune.Path
}

// CurrentTune returns the loaded tune's metadata, or nil.
func (s *serviceImpl) CurrentTune() *sidfile.Info {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tune == nil {
		return nil
	}
	t := *s.tune
	return &t
}

// Subtune returns the selected subtune (1-based), 0 when nothing is
// loaded.
func (s *serviceImpl) Subtune() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tune == nil {
		return 0
	}
	return s.subtune
}

// SubtuneCount returns the number of subtunes of the loaded tune.
func (s *serviceImpl) SubtuneCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tune == nil {
		return 0
	}
	return s.tune.Songs
}

// Loop reports whether looping is enabled.
func (s *serviceImpl) Loop() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loop
}

// SetLoop enables or disables looping. It applies to the next session;
// the current engine keeps its launch-time behavior.
func (s *serviceImpl) SetLoop(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loop = v
}

// DefaultTuneOnly reports whether auto-advance skips non-default subtunes.
func (s *serviceImpl) DefaultTuneOnly() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.defaultTuneOnly
}

// SetDefaultTuneOnly makes auto-advance move to the next playlist entry
// instead of walking through every subtune.
func (s *serviceImpl) SetDefaultTuneOnly(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.defaultTuneOnly = v
}

// Engine returns the active engine identifier.
func (s *serviceImpl) Engine() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engineID
}

// SetEngine switches the active engine. A running session restarts on the
// new engine at the current subtune.
func (s *serviceImpl) SetEngine(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.registry.Get(id); err != nil {
		return err
	}
	if id == s.engineID {
		return nil
	}
	s.engineID = id
	if s.state.IsActive() && s.tune != nil {
		return s.startLocked(s.tune.Path, s.subtune)
	}
	return nil
}

// Subscribe creates a new event subscription.
func (s *serviceImpl) Subscribe() *Subscription {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	sub := newSubscription()
	s.subs = append(s.subs, sub)
	return sub
}

// Close stops playback and releases all subscriptions.
func (s *serviceImpl) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.closeSessionLocked()
	s.setStateLocked(StateStopped)
	s.mu.Unlock()

	s.subsMu.Lock()
	for _, sub := range s.subs {
		sub.close()
	}
	s.subs = nil
	s.subsMu.Unlock()
	return nil
}

func (s *serviceImpl) setStateLocked(st State) {
	if st == s.state {
		return
	}
	prev := s.state
	s.state = st
	s.broadcast(func(sub *Subscription) {
		sub.sendState(StateChange{Previous: prev, Current: st})
	})
}

func (s *serviceImpl) emitTuneLocked() {
	if s.tune == nil {
		return
	}
	e := TuneChange{
		Path:    s.tune.Path,
		Subtune: s.subtune,
		Title:   s.tune.Title,
		Author:  s.tune.Author,
	}
	s.broadcast(func(sub *Subscription) { sub.sendTune(e) })
}

func (s *serviceImpl) reportErrorLocked(op string, err error) {
	path := ""
	if s.tune != nil {
		path = s.tune.Path
	}
	log.Errorf("%s failed: %v", op, err)
	s.broadcast(func(sub *Subscription) {
		sub.sendError(ErrorEvent{Operation: op, Path: path, Err: err})
	})
}

func (s *serviceImpl) broadcast(send func(*Subscription)) {
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		send(sub)
	}
}
