// Package songlengths reads the HVSC Songlengths.md5 database and resolves
// per-subtune durations for SID files.
package songlengths

import (
	"bufio"
	"crypto/md5" //nolint:gosec // HVSC keys entries by MD5 of file contents
	"encoding/hex"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// DefaultDuration is used when a file has no database entry.
const DefaultDuration = 120 // seconds

var timeRe = regexp.MustCompile(`^(\d+):(\d{1,2})(?:\.\d+)?$`)

// DB maps the MD5 hash of a SID file's contents to its per-subtune
// durations in seconds.
type DB struct {
	mu      sync.RWMutex
	entries map[string][]int
	hashes  map[string]string // path -> hash cache
}

// New returns an empty database; lookups fall back to DefaultDuration.
func New() *DB {
	return &DB{
		entries: make(map[string][]int),
		hashes:  make(map[string]string),
	}
}

// Load parses a Songlengths.md5 file. Lines take the form
//
//	<md5>=<m:ss> <m:ss> ...
//
// with one duration per subtune. Comment lines (;) and the [Database]
// section header are skipped.
func Load(path string) (*DB, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	db := New()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, ";") || strings.HasPrefix(line, "[") {
			continue
		}

		hash, times, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		hash = strings.ToLower(strings.TrimSpace(hash))
		if len(hash) != 32 {
			continue
		}

		var durations []int
		for _, tok := range strings.Fields(times) {
			secs, err := parseTime(tok)
			if err != nil {
				logrus.Debugf("songlengths: skipping %q for %s: %v", tok, hash, err)
				continue
			}
			durations = append(durations, secs)
		}
		if len(durations) > 0 {
			db.entries[hash] = durations
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	logrus.Infof("Loaded %d entries from %s", len(db.entries), path)
	return db, nil
}

// parseTime converts "m:ss" (with optional fraction) to whole seconds.
func parseTime(s string) (int, error) {
	m := timeRe.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("malformed time %q", s)
	}
	mins, _ := strconv.Atoi(m[1])
	secs, _ := strconv.Atoi(m[2])
	return mins*60 + secs, nil
}

// Duration returns the duration in seconds for the given subtune (1-based)
// of the file at path, or DefaultDuration when the file has no entry or the
// subtune index is out of range of the stored list.
func (db *DB) Duration(path string, subtune int) int {
	durations := db.Durations(path)
	if durations == nil {
		return DefaultDuration
	}
	if subtune < 1 || subtune > len(durations) {
		return DefaultDuration
	}
	return durations[subtune-1]
}

// KnownDuration is like Duration but returns 0 when the file has no
// database entry, letting callers distinguish a real entry from the
// default.
func (db *DB) KnownDuration(path string, subtune int) int {
	durations := db.Durations(path)
	if durations == nil || subtune < 1 || subtune > len(durations) {
		return 0
	}
	return durations[subtune-1]
}

// Durations returns the full per-subtune duration list for the file at
// path, or nil when absent.
func (db *DB) Durations(path string) []int {
	hash, err := db.fileHash(path)
	if err != nil {
		logrus.Warnf("songlengths: cannot hash %s: %v", path, err)
		return nil
	}

	db.mu.RLock()
	defer db.mu.RUnlock()
	durations, ok := db.entries[hash]
	if !ok {
		return nil
	}
	out := make([]int, len(durations))
	copy(out, durations)
	return out
}

// Len returns the number of database entries.
func (db *DB) Len() int {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return len(db.entries)
}

// fileHash returns the MD5 of the file contents, cached per path.
func (db *DB) fileHash(path string) (string, error) {
	db.mu.RLock()
	hash, ok := db.hashes[path]
	db.mu.RUnlock()
	if ok {
		return hash, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	sum := md5.Sum(data) //nolint:gosec // database key, not a security boundary
	hash = hex.EncodeToString(sum[:])

	db.mu.Lock()
	db.hashes[path] = hash
	db.mu.Unlock()
	return hash, nil
}
