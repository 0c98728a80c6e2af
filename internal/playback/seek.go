package playback

import (
	"errors"
	"time"

	log "github.com/sirupsen/logrus"
)

var (
	// ErrSeekInProgress is returned when a seek is already running.
	ErrSeekInProgress = errors.New("seek already in progress")

	// ErrSeekBackward is returned for targets before the current position.
	// The engines cannot rewind; only forward seeking by fast-forwarding
	// is possible.
	ErrSeekBackward = errors.New("cannot seek backward")
)

// seekPollInterval is how often the seek engine checks whether the clock
// has caught up with the target.
const seekPollInterval = 500 * time.Millisecond

// SeekTo fast-forwards playback to target seconds. The engine runs at
// fast speed until the clock reaches the target, then drops back to
// normal. Targets within a second of the current position are a no-op.
func (s *serviceImpl) SeekTo(target int) error {
	s.mu.Lock()

	if s.state != StatePlaying && s.state != StateStarting {
		s.mu.Unlock()
		return ErrNotPlaying
	}
	if s.seeking {
		s.mu.Unlock()
		return ErrSeekInProgress
	}
	if target < s.elapsed-1 {
		s.mu.Unlock()
		return ErrSeekBackward
	}
	if s.duration > 0 && target > s.duration {
		target = s.duration
	}
	if diff := target - s.elapsed; diff >= -1 && diff <= 1 {
		s.mu.Unlock()
		return nil
	}

	sess := s.sess
	s.seeking = true
	if err := s.speedUpLocked(); err != nil {
		s.seeking = false
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()

	go s.runSeek(sess, target)
	return nil
}

// runSeek waits for the clock to reach the target, then restores normal
// speed. It aborts silently when the session it was started for is gone.
func (s *serviceImpl) runSeek(sess *session, target int) {
	for {
		time.Sleep(seekPollInterval)

		s.mu.Lock()
		if s.sess != sess || !s.seeking {
			s.mu.Unlock()
			return
		}
		if s.elapsed >= target {
			s.elapsed = target
			if err := s.speedDownLocked(); err != nil {
				log.Warnf("restoring speed after seek: %v", err)
			}
			s.seeking = false
			s.broadcast(func(sub *Subscription) { sub.sendPosition(target) })
			s.mu.Unlock()
			return
		}
		s.mu.Unlock()
	}
}
