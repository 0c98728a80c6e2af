package playback

import (
	"context"
	"io"
	"os/exec"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/LouDnl/USBSID-player/internal/control"
	"github.com/LouDnl/USBSID-player/internal/engine"
	"github.com/LouDnl/USBSID-player/internal/monitor"
)

// launch spawns the engine process with stdout and stderr merged into the
// output monitor and both control channels wired up.
func launch(desc engine.Descriptor, params engine.PlayParams) (*session, error) {
	args := engine.BuildArgs(desc, params)
	cmd := exec.Command(desc.Path, args...)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}

	pr, pw := io.Pipe()
	cmd.Stdout = pw
	cmd.Stderr = pw
	configureCommand(cmd)

	if err := cmd.Start(); err != nil {
		stdin.Close()
		pw.Close()
		pr.Close()
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())

	waitCh := make(chan error, 1)
	go func() {
		err := cmd.Wait()
		pw.Close() // unblocks the monitor's scanner
		waitCh <- err
	}()

	stdinCh := control.NewStdinChannel(stdin, desc.ID)

	// Both engines get the keystroke fallback; a broken stdin pipe must
	// not leave the process unsteerable. Only the keystroke-first engine
	// needs its console window hidden.
	hints := titleHints(desc, params.File)
	keys := control.NewKeystrokeChannel(desc.ID, hints...)
	if desc.Protocol == engine.KeystrokeInjection {
		go control.HideConsole(ctx, hints...)
	}

	log.Infof("launched %s (pid %d): %s %s",
		desc.ID, cmd.Process.Pid, desc.Path, strings.Join(args, " "))

	return &session{
		desc:       desc,
		params:     params,
		cmd:        cmd,
		stdin:      stdin,
		stdinCh:    stdinCh,
		dispatcher: control.NewDispatcher(stdinCh, keys),
		events:     monitor.New().Watch(ctx, pr),
		cancel:     cancel,
		waitCh:     waitCh,
	}, nil
}

// titleHints lists the strings the engine's console window title may
// contain: the engine name, the tune file name and the executable name.
func titleHints(desc engine.Descriptor, file string) []string {
	return []string{
		desc.ID,
		filepath.Base(file),
		strings.TrimSuffix(filepath.Base(desc.Path), filepath.Ext(desc.Path)),
	}
}
