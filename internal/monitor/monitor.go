// Package monitor watches an engine's combined output stream and derives
// playback events from it.
package monitor

import (
	"bufio"
	"context"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// Event is a notification derived from engine output.
type Event interface{ isEvent() }

// PlaybackStarted is emitted once per session when the engine reports that
// audio is rolling, or when the start timeout expires without a marker.
type PlaybackStarted struct{}

// FallbackDuration is emitted when the engine prints the tune length it
// resolved itself. It is used when no duration database entry exists.
type FallbackDuration struct {
	Seconds int
}

func (PlaybackStarted) isEvent()  {}
func (FallbackDuration) isEvent() {}

// songLengthRe matches sidplayfp's "Song Length" banner line. Fractional
// seconds are truncated.
var songLengthRe = regexp.MustCompile(`Song Length\s*:?\s*(\d+):(\d{1,2})(?:\.\d+)?`)

// Monitor reads engine output line by line and publishes events.
type Monitor struct {
	// StartTimeout bounds the wait for a start marker. Engines that print
	// nothing recognizable are assumed playing once it expires.
	StartTimeout time.Duration
}

// New creates a monitor with the default start timeout.
func New() *Monitor {
	return &Monitor{StartTimeout: 10 * time.Second}
}

// Watch consumes r until EOF or context cancellation and returns the event
// stream. The returned channel is closed when watching stops.
func (m *Monitor) Watch(ctx context.Context, r io.Reader) <-chan Event {
	events := make(chan Event, 8)
	lines := make(chan string, 16)

	go func() {
		defer close(lines)
		sc := bufio.NewScanner(r)
		sc.Buffer(make([]byte, 0, 64*1024), 64*1024)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		defer close(events)
		var started bool
		var last string
		timer := time.NewTimer(m.StartTimeout)
		defer timer.Stop()

		emit := func(e Event) {
			select {
			case events <- e:
			case <-ctx.Done():
			}
		}

		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
				// Silent engine: assume audio started anyway so the clock
				// and stop timer begin counting.
				if !started {
					started = true
					log.Debug("no start marker from engine, assuming playback")
					emit(PlaybackStarted{})
				}
			case line, ok := <-lines:
				if !ok {
					return
				}
				// Engines repeat status lines while redrawing; process
				// each distinct line once.
				if line == last && line != "" {
					continue
				}
				last = line
				log.Debugf("engine: %s", line)

				if secs, ok := parseSongLength(line); ok {
					emit(FallbackDuration{Seconds: secs})
				}
				if !started && isStartMarker(line) {
					started = true
					timer.Stop()
					emit(PlaybackStarted{})
				}
			}
		}
	}()

	return events
}

func isStartMarker(line string) bool {
	l := strings.ToLower(line)
	return strings.Contains(l, "playing") ||
		strings.Contains(l, "tune") ||
		strings.Contains(l, "playback")
}

func parseSongLength(line string) (int, bool) {
	m := songLengthRe.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	mins, _ := strconv.Atoi(m[1])
	secs, _ := strconv.Atoi(m[2])
	return mins*60 + secs, true
}
