// Package logging configures the diagnostic sink: a logrus file logger plus
// an in-process feed for the TUI log panel.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/sirupsen/logrus"
)

const appName = "usbsid-player"

// Messages receives formatted log lines for display in the UI log panel.
// The channel is buffered; entries are dropped rather than blocking a
// playback goroutine on a slow UI.
var Messages = make(chan string, 256)

// Setup initializes logrus with a per-day log file under the XDG state
// directory and installs the UI feed hook. The level string follows logrus
// conventions ("debug", "info", ...); unknown levels fall back to info.
func Setup(level string, toFile bool) error {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05",
	})

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logrus.SetLevel(parsed)

	logrus.AddHook(&uiHook{})

	if !toFile {
		// Logging to stderr would corrupt the TUI; discard instead. The UI
		// hook still receives every entry.
		if f, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0); err == nil {
			logrus.SetOutput(f)
		}
		return nil
	}

	dir := filepath.Join(xdg.StateHome, appName, "logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}

	path := filepath.Join(dir, time.Now().Format("2006-01-02")+".log")
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	logrus.SetOutput(f)

	return nil
}

// uiHook mirrors every entry into the Messages channel.
type uiHook struct{}

func (h *uiHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *uiHook) Fire(entry *logrus.Entry) error {
	line := fmt.Sprintf("%s %s", entry.Time.Format("15:04:05"), entry.Message)
	select {
	case Messages <- line:
	default:
		// Channel full, drop message to avoid blocking
	}
	return nil
}
