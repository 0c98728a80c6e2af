package engine

import "fmt"

// PlayParams carries the playback parameters a command line is built from.
type PlayParams struct {
	File     string
	Subtune  int // 1-based
	Duration int // seconds; 0 means unknown
	Loop     bool
}

// BuildArgs assembles the argument vector (excluding the executable) for
// launching the engine with the given parameters.
func BuildArgs(d Descriptor, p PlayParams) []string {
	switch d.ID {
	case Jsidplay2:
		return buildJsidplay2Args(d, p)
	default:
		return buildSidplayfpArgs(p)
	}
}

// buildSidplayfpArgs builds: --usbsid -s<subtune> [-ol | -t<m:ss>] <file>.
// When looping is off the timed-stop argument is mandatory; sidplayfp would
// otherwise play the default header length.
func buildSidplayfpArgs(p PlayParams) []string {
	args := []string{"--usbsid", fmt.Sprintf("-s%d", p.Subtune)}
	if p.Loop {
		args = append(args, "-ol")
	} else {
		args = append(args, "-t"+FormatTimeArg(p.Duration))
	}
	return append(args, p.File)
}

// buildJsidplay2Args builds: --engine <backend> --usbSidAudio 1
// [--tune <subtune>] <file>. Builds without tune-flag support start on the
// default subtune and are repositioned after launch.
func buildJsidplay2Args(d Descriptor, p PlayParams) []string {
	backend := d.AudioBackend
	if backend == "" {
		backend = "USBSID"
	}
	args := []string{"--engine", backend, "--usbSidAudio", "1"}
	if d.SupportsTuneFlag && p.Subtune > 0 {
		args = append(args, "--tune", fmt.Sprintf("%d", p.Subtune))
	}
	return append(args, p.File)
}

// FormatTimeArg renders seconds as sidplayfp's m:ss stop-time value:
// minutes without a leading zero, seconds always two digits.
func FormatTimeArg(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
