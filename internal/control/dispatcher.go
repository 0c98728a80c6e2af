package control

import (
	log "github.com/sirupsen/logrus"
)

// Dispatcher routes commands over the available channels. Standard input
// is always tried first; keystroke injection is the fallback. A command
// neither channel delivers is logged and dropped without retry.
type Dispatcher struct {
	stdin     Channel
	keystroke Channel
}

var _ Channel = (*Dispatcher)(nil)

// NewDispatcher creates a dispatcher over the given channels. Either
// channel may be nil when that control path is unavailable.
func NewDispatcher(stdin, keystroke Channel) *Dispatcher {
	return &Dispatcher{stdin: stdin, keystroke: keystroke}
}

// Send delivers cmd over the first channel that accepts it.
func (d *Dispatcher) Send(cmd Command) error {
	var stdinErr error
	if d.stdin != nil {
		if stdinErr = d.stdin.Send(cmd); stdinErr == nil {
			return nil
		}
		log.Debugf("stdin control failed for %s: %v", cmd, stdinErr)
	}

	if d.keystroke != nil {
		err := d.keystroke.Send(cmd)
		if err == nil {
			return nil
		}
		log.Warnf("dropping command %s: keystroke fallback failed: %v", cmd, err)
		return err
	}

	if stdinErr == nil {
		stdinErr = ErrBrokenChannel
	}
	log.Warnf("dropping command %s: %v", cmd, stdinErr)
	return stdinErr
}
