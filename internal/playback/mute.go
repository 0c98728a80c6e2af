package playback

import (
	log "github.com/sirupsen/logrus"

	"github.com/LouDnl/USBSID-player/internal/control"
	"github.com/LouDnl/USBSID-player/internal/engine"
)

// voiceCount covers both SID chips of a dual-chip setup.
const voiceCount = 8

// Voice muting only exists on jsidplay2, whose stdin protocol toggles
// each voice with the digits 1..8. There is no absolute mute command, so
// the service keeps an optimistic flag of the engine's state; see the
// muted field on serviceImpl.

// muteAllLocked toggles every voice off. With force it bursts even when
// the flag claims the engine is already muted, resynchronizing after a
// suspected drop.
func (s *serviceImpl) muteAllLocked(force bool) {
	sess := s.sess
	if sess == nil || sess.desc.ID != engine.Jsidplay2 {
		return
	}
	if s.muted && !force {
		return
	}
	sendVoiceBurst(sess.stdinCh)
	s.muted = true
}

// unmuteAllLocked toggles every voice back on.
func (s *serviceImpl) unmuteAllLocked() {
	sess := s.sess
	if sess == nil || sess.desc.ID != engine.Jsidplay2 {
		return
	}
	if !s.muted {
		return
	}
	sendVoiceBurst(sess.stdinCh)
	s.muted = false
}

// ensureMutedLocked bursts unconditionally before navigation and session
// teardown. Transitions glitch loudly; if the flag was wrong this
// resynchronizes it, and if it was right the extra toggle pair cancels
// out across the following unmute.
func (s *serviceImpl) ensureMutedLocked() {
	sess := s.sess
	if sess == nil || sess.desc.ID != engine.Jsidplay2 {
		return
	}
	sendVoiceBurst(sess.stdinCh)
	s.muted = true
}

func sendVoiceBurst(ch control.Channel) {
	cmds := make([]control.Command, voiceCount)
	for i := range cmds {
		cmds[i] = control.ToggleVoice(i + 1)
	}
	if err := control.SendBurst(ch, burstDelay, cmds...); err != nil {
		log.Warnf("voice mute burst incomplete: %v", err)
	}
}
