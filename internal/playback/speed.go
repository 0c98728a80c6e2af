package playback

import (
	"github.com/LouDnl/USBSID-player/internal/control"
	"github.com/LouDnl/USBSID-player/internal/engine"
)

// fastMultiplier is the fast-forward speed. Both engines double per speed
// step, so three steps reach 8x.
const (
	fastMultiplier = 8
	speedUpSteps   = 3
)

// speedUpLocked moves the engine from normal speed to fast-forward.
func (s *serviceImpl) speedUpLocked() error {
	if s.sess == nil || s.speed == fastMultiplier {
		return nil
	}
	cmds := make([]control.Command, speedUpSteps)
	for i := range cmds {
		cmds[i] = control.SpeedUp
	}
	if err := control.SendBurst(s.sess.dispatcher, burstDelay, cmds...); err != nil {
		return err
	}
	s.speed = fastMultiplier
	s.broadcast(func(sub *Subscription) { sub.sendSpeed(fastMultiplier) })
	return nil
}

// speedDownLocked restores normal speed. jsidplay2's ',' resets to 1x in
// one command; sidplayfp counts arrow presses, so each up needs a down.
func (s *serviceImpl) speedDownLocked() error {
	if s.sess == nil || s.speed == 1 {
		return nil
	}
	steps := speedUpSteps
	if s.sess.desc.ID == engine.Jsidplay2 {
		steps = 1
	}
	cmds := make([]control.Command, steps)
	for i := range cmds {
		cmds[i] = control.SpeedDown
	}
	if err := control.SendBurst(s.sess.dispatcher, burstDelay, cmds...); err != nil {
		return err
	}
	s.speed = 1
	s.broadcast(func(sub *Subscription) { sub.sendSpeed(1) })
	return nil
}
