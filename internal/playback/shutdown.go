package playback

import (
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/LouDnl/USBSID-player/internal/control"
	"github.com/LouDnl/USBSID-player/internal/engine"
)

const (
	// politeWait bounds the wait after asking the engine to quit over
	// stdin.
	politeWait = 2 * time.Second
	// terminateWait bounds the wait after the keystroke quit and the OS
	// terminate signal.
	terminateWait = 2 * time.Second
	// killWait bounds the wait after a hard kill.
	killWait = time.Second
	// quiesceDelay paces the exit-time voice mute burst.
	quiesceDelay = 200 * time.Millisecond
)

// stopSessionLocked ends the engine process for a stop, a navigation or a
// restart: mute first so jsidplay2 does not blast the transition, then
// quit politely.
func (s *serviceImpl) stopSessionLocked() {
	s.ensureMutedLocked()
	s.endSessionLocked(false)
}

// closeSessionLocked ends the engine process at application exit. Instead
// of the full mute burst, jsidplay2 gets the shorter exit-time quiesce
// that silences the SID chip for good.
func (s *serviceImpl) closeSessionLocked() {
	s.endSessionLocked(true)
}

// endSessionLocked asks the engine to quit, escalating from the polite
// stdin path through the keystroke path and an OS terminate to a hard
// kill. It returns with the session torn down either way.
func (s *serviceImpl) endSessionLocked(exiting bool) {
	sess := s.sess
	if sess == nil {
		return
	}
	s.sess = nil
	defer sess.cancel()
	defer sess.stdin.Close()

	if exiting && sess.desc.ID == engine.Jsidplay2 {
		// Quit with the first chip's voices muted; jsidplay2 otherwise
		// leaves the SID singing the last register state after exit.
		err := control.SendBurst(sess.stdinCh, quiesceDelay,
			control.ToggleVoice(1), control.ToggleVoice(2), control.ToggleVoice(3),
			control.Quit)
		if err != nil {
			log.Debugf("quiesce burst failed: %v", err)
		}
	} else if err := sess.stdinCh.Send(control.Quit); err != nil {
		log.Debugf("stdin quit failed: %v", err)
	}
	if waitExit(sess, politeWait) {
		return
	}

	// The stdin path went unheard; try the keystroke quit and the OS.
	_ = sess.dispatcher.Send(control.Quit)
	sess.terminate()
	if waitExit(sess, terminateWait) {
		return
	}

	log.Warnf("engine %s (pid %d) ignored quit, killing", sess.desc.ID, sess.cmd.Process.Pid)
	sess.kill()
	if !waitExit(sess, killWait) {
		log.Errorf("engine %s (pid %d) survived kill", sess.desc.ID, sess.cmd.Process.Pid)
	}
}

// teardownSessionLocked releases a session whose process has already
// exited.
func (s *serviceImpl) teardownSessionLocked() {
	sess := s.sess
	if sess == nil {
		return
	}
	s.sess = nil
	sess.cancel()
	sess.stdin.Close()
}

func waitExit(sess *session, d time.Duration) bool {
	select {
	case <-sess.waitCh:
		return true
	case <-time.After(d):
		return false
	}
}
