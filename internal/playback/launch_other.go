//go:build !windows

package playback

import (
	"os/exec"
	"syscall"
)

func configureCommand(*exec.Cmd) {}

func (s *session) terminate() {
	if s.cmd != nil && s.cmd.Process != nil {
		_ = s.cmd.Process.Signal(syscall.SIGTERM)
	}
}
