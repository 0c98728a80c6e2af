package playback

import (
	"context"
	"io"
	"os/exec"

	"github.com/LouDnl/USBSID-player/internal/control"
	"github.com/LouDnl/USBSID-player/internal/engine"
	"github.com/LouDnl/USBSID-player/internal/monitor"
)

// session is one running engine process together with its control and
// monitoring plumbing. A session is created, steered and torn down as a
// whole; a new tune or subtune means a new session unless the engine can
// navigate in place.
type session struct {
	desc   engine.Descriptor
	params engine.PlayParams

	cmd   *exec.Cmd
	stdin io.WriteCloser

	// stdinCh is the raw stdin channel, used directly where the fallback
	// path must not fire (voice mute bursts, the polite quit).
	stdinCh    *control.StdinChannel
	dispatcher *control.Dispatcher

	events <-chan monitor.Event

	// positionSteps is the signed number of subtune steps still to walk
	// once the engine confirms playback; used for jsidplay2 builds that
	// ignore --tune.
	positionSteps int

	// cancel stops the monitor and console-hide goroutines.
	cancel context.CancelFunc

	// waitCh receives the process exit error exactly once.
	waitCh chan error
}

func (s *session) kill() {
	if s.cmd != nil && s.cmd.Process != nil {
		_ = s.cmd.Process.Kill()
	}
}
