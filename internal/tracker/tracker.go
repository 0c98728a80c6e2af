// Package tracker identifies the editor a SID tune was composed with, by
// matching byte patterns from a sidid.cfg file against the file contents.
package tracker

import (
	"bufio"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// wildcard marks a pattern position that matches any byte ("??" in the
// config file).
const wildcard = -1

type pattern []int16

// Recognizer holds the loaded pattern set.
type Recognizer struct {
	patterns map[string][]pattern

	// byFirst indexes patterns by their first concrete byte so a scan only
	// tries patterns that can start at the current offset. Patterns that
	// open with a wildcard land in the anyFirst list.
	byFirst  map[byte][]indexed
	anyFirst []indexed

	mu    sync.Mutex
	cache map[string]string // path -> tracker name
}

type indexed struct {
	name string
	pat  pattern
}

// Load parses a sidid.cfg pattern file. The format is a tracker name on
// its own line followed by one or more pattern lines of hex byte tokens,
// "??" wildcards and an END terminator; a blank line closes the group.
func Load(path string) (*Recognizer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := &Recognizer{
		patterns: make(map[string][]pattern),
		cache:    make(map[string]string),
	}

	var current string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			current = ""
		case strings.HasPrefix(line, ";"):
			// comment
		case strings.Contains(line, "END"):
			if current == "" {
				continue
			}
			if pat := parsePattern(line); len(pat) > 0 {
				r.patterns[current] = append(r.patterns[current], pat)
			}
		default:
			current = line
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	r.buildIndex()
	logrus.Infof("Loaded %d tracker signatures from %s", len(r.patterns), path)
	return r, nil
}

// parsePattern converts one pattern line into byte values, stopping at END.
// Unknown tokens invalidate the whole line.
func parsePattern(line string) pattern {
	var pat pattern
	for _, tok := range strings.Fields(line) {
		switch {
		case tok == "END":
			return pat
		case tok == "??":
			pat = append(pat, wildcard)
		default:
			v, err := strconv.ParseUint(tok, 16, 8)
			if err != nil {
				return nil
			}
			pat = append(pat, int16(v))
		}
	}
	return pat
}

func (r *Recognizer) buildIndex() {
	r.byFirst = make(map[byte][]indexed)
	for name, pats := range r.patterns {
		for _, pat := range pats {
			if len(pat) == 0 {
				continue
			}
			entry := indexed{name: name, pat: pat}
			if pat[0] == wildcard {
				r.anyFirst = append(r.anyFirst, entry)
			} else {
				b := byte(pat[0])
				r.byFirst[b] = append(r.byFirst[b], entry)
			}
		}
	}
}

// Recognize returns the tracker name for the file at path, or "" when no
// pattern matches. Results are cached per path.
func (r *Recognizer) Recognize(path string) string {
	r.mu.Lock()
	if name, ok := r.cache[path]; ok {
		r.mu.Unlock()
		return name
	}
	r.mu.Unlock()

	data, err := os.ReadFile(path)
	if err != nil {
		logrus.Warnf("tracker: cannot read %s: %v", path, err)
		return ""
	}

	name := r.Match(data)

	r.mu.Lock()
	r.cache[path] = name
	r.mu.Unlock()
	return name
}

// Match scans raw file contents against all loaded patterns.
func (r *Recognizer) Match(data []byte) string {
	for i := range data {
		for _, entry := range r.byFirst[data[i]] {
			if matchAt(data, i, entry.pat) {
				return entry.name
			}
		}
		for _, entry := range r.anyFirst {
			if matchAt(data, i, entry.pat) {
				return entry.name
			}
		}
	}
	return ""
}

func matchAt(data []byte, offset int, pat pattern) bool {
	if offset+len(pat) > len(data) {
		return false
	}
	for i, want := range pat {
		if want == wildcard {
			continue
		}
		if data[offset+i] != byte(want) {
			return false
		}
	}
	return true
}

// Len returns the number of loaded tracker signatures.
func (r *Recognizer) Len() int {
	return len(r.patterns)
}
