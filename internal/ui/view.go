package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"

	"github.com/LouDnl/USBSID-player/internal/playback"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	statusStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("160"))
	logPaneStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

	borderStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

// newProgressBar builds the tune progress bar with a gradient running from
// SID-blue to magenta.
func newProgressBar() progress.Model {
	start := colorful.Color{R: 0.26, G: 0.37, B: 0.80} // C64 blue
	end := start.BlendLuv(colorful.Color{R: 0.95, G: 0.36, B: 0.58}, 0.9)
	p := progress.New(
		progress.WithScaledGradient(start.Hex(), end.Hex()),
		progress.WithoutPercentage(),
	)
	p.Width = barWidth(defaultWidth)
	return p
}

func barWidth(total int) int {
	w := total - 8
	if w < 10 {
		w = 10
	}
	return w
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.headerView())
	b.WriteString("\n")
	b.WriteString(m.transportView())
	b.WriteString("\n")
	b.WriteString(m.logView())

	return b.String()
}

func (m Model) headerView() string {
	tune := m.svc.CurrentTune()
	if tune == nil {
		return borderStyle.Width(innerWidth(m.width)).Render(
			titleStyle.Render("USBSID Player") + "\n" +
				dimStyle.Render("no tune loaded - press enter to play"))
	}

	title := tune.Title
	if title == "" {
		title = "<unknown>"
	}
	line1 := titleStyle.Render(truncate(title, innerWidth(m.width)-20)) +
		dimStyle.Render(fmt.Sprintf("  %s", humanize.Bytes(uint64(tune.Size))))

	var meta []string
	if tune.Author != "" {
		meta = append(meta, tune.Author)
	}
	if tune.Released != "" {
		meta = append(meta, tune.Released)
	}
	if m.trackerName != "" {
		meta = append(meta, m.trackerName)
	}
	line2 := dimStyle.Render(truncate(strings.Join(meta, " · "), innerWidth(m.width)))

	line3 := dimStyle.Render(fmt.Sprintf("tune %d/%d · engine %s%s%s",
		m.svc.Subtune(), m.svc.SubtuneCount(), m.svc.Engine(),
		flag(m.svc.Loop(), " · loop"),
		flag(m.svc.DefaultTuneOnly(), " · default tune only")))

	return borderStyle.Width(innerWidth(m.width)).Render(line1 + "\n" + line2 + "\n" + line3)
}

func (m Model) transportView() string {
	elapsed := m.svc.Elapsed()
	duration := m.svc.Duration()

	percent := 0.0
	if duration > 0 {
		percent = float64(elapsed) / float64(duration)
		if percent > 1 {
			percent = 1
		}
	}

	times := fmt.Sprintf("%s / %s", formatTime(elapsed), formatTime(duration))
	line := fmt.Sprintf("%s  %s  %s",
		m.progress.ViewAs(percent), times, statusStyle.Render(m.statusText()))

	if m.lastErr != "" {
		line += "\n" + errorStyle.Render(truncate(m.lastErr, m.width))
	}
	return line
}

func (m Model) statusText() string {
	switch m.svc.State() {
	case playback.StateStarting:
		return "STARTING"
	case playback.StatePlaying:
		if m.svc.IsSeeking() {
			return "SEEKING"
		}
		if m.svc.Speed() > 1 {
			return fmt.Sprintf("FAST FORWARD x%d", m.svc.Speed())
		}
		return "PLAYING"
	case playback.StatePaused:
		return "PAUSED"
	default:
		if m.svc.CurrentFile() == "" {
			return "READY"
		}
		return "STOPPED"
	}
}

func (m Model) logView() string {
	n := 5
	if len(m.logLines) < n {
		n = len(m.logLines)
	}
	if n == 0 {
		return ""
	}
	lines := make([]string, 0, n)
	for _, l := range m.logLines[len(m.logLines)-n:] {
		lines = append(lines, truncate(l, m.width))
	}
	return logPaneStyle.Render(strings.Join(lines, "\n"))
}

func innerWidth(total int) int {
	w := total - 4 // border + padding
	if w < 20 {
		w = 20
	}
	return w
}

func flag(on bool, label string) string {
	if on {
		return label
	}
	return ""
}

// truncate cuts s to the given display width, aware of wide runes.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

// formatTime renders seconds as mm:ss.
func formatTime(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
