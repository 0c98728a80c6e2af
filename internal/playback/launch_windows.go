//go:build windows

package playback

import (
	"os/exec"
	"syscall"

	"golang.org/x/sys/windows"
)

// configureCommand gives the engine its own console window, hidden from
// the start. sidplayfp needs the console to exist so keystrokes can be
// posted to it.
func configureCommand(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		HideWindow:    true,
		CreationFlags: windows.CREATE_NEW_CONSOLE,
	}
}

// terminate has no graceful signal on Windows; closing stdin and the
// keystroke quit are the graceful paths, so this goes straight to kill.
func (s *session) terminate() {
	s.kill()
}
