// Package engine describes the external player engines and builds their
// command lines.
package engine

import (
	"errors"
	"fmt"
	"os"
)

// Protocol selects how a running engine is controlled.
type Protocol int

const (
	// StdinLine engines accept single-character commands written to their
	// standard input, one per line.
	StdinLine Protocol = iota
	// KeystrokeInjection engines are driven by synthetic key events posted
	// to their console window.
	KeystrokeInjection
)

// String returns the protocol name.
func (p Protocol) String() string {
	switch p {
	case StdinLine:
		return "StdinLine"
	case KeystrokeInjection:
		return "KeystrokeInjection"
	default:
		return "Unknown"
	}
}

// Engine identifiers.
const (
	Sidplayfp = "sidplayfp"
	Jsidplay2 = "jsidplay2"
)

// ErrEngineNotFound is returned when a descriptor's executable does not
// exist on disk.
var ErrEngineNotFound = errors.New("engine executable not found")

// ErrUnknownEngine is returned for identifiers missing from the registry.
var ErrUnknownEngine = errors.New("unknown engine")

// Descriptor describes one player engine. Descriptors are immutable after
// registry construction.
type Descriptor struct {
	ID       string
	Path     string // executable path
	Protocol Protocol

	// AudioBackend is the --engine value for jsidplay2 builds.
	AudioBackend string

	// SupportsTuneFlag marks jsidplay2 builds that honor --tune. Builds
	// that ignore it are positioned after launch with a next-subtune burst.
	SupportsTuneFlag bool
}

// Registry maps engine identifiers to descriptors.
type Registry struct {
	engines map[string]Descriptor
	order   []string
}

// NewRegistry builds the static engine table from the configured
// executable paths. Engines with an empty path are omitted.
func NewRegistry(sidplayfpPath, jsidplay2Path string) *Registry {
	r := &Registry{engines: make(map[string]Descriptor)}

	if sidplayfpPath != "" {
		r.add(Descriptor{
			ID:       Sidplayfp,
			Path:     sidplayfpPath,
			Protocol: KeystrokeInjection,
		})
	}
	if jsidplay2Path != "" {
		r.add(Descriptor{
			ID:           Jsidplay2,
			Path:         jsidplay2Path,
			Protocol:     StdinLine,
			AudioBackend: "USBSID",
		})
	}
	return r
}

func (r *Registry) add(d Descriptor) {
	r.engines[d.ID] = d
	r.order = append(r.order, d.ID)
}

// Get returns the descriptor for id.
func (r *Registry) Get(id string) (Descriptor, error) {
	d, ok := r.engines[id]
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %s", ErrUnknownEngine, id)
	}
	return d, nil
}

// Resolve returns the descriptor for id after verifying its executable
// exists. Missing executables are reported before any spawn attempt.
func (r *Registry) Resolve(id string) (Descriptor, error) {
	d, err := r.Get(id)
	if err != nil {
		return Descriptor{}, err
	}
	if _, err := os.Stat(d.Path); err != nil {
		return Descriptor{}, fmt.Errorf("%w: %s at %s", ErrEngineNotFound, id, d.Path)
	}
	return d, nil
}

// IDs returns the registered engine identifiers in registration order.
func (r *Registry) IDs() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
