package playlist

import (
	"encoding/json"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultDuration is assumed for entries added without a known length.
const DefaultDuration = 120 // seconds

// Entry represents a single tune in a playlist.
type Entry struct {
	Path     string `json:"file_path"`
	Title    string `json:"title"`
	Author   string `json:"author"`
	Duration int    `json:"duration"` // seconds
}

// Playlist holds an ordered collection of entries and a playback cursor.
type Playlist struct {
	entries []Entry
	current int // index of the current entry, -1 when unset
}

// New creates a new empty playlist.
func New() *Playlist {
	return &Playlist{
		entries: make([]Entry, 0),
		current: -1,
	}
}

// Add appends entries to the playlist. Entries without a duration get
// DefaultDuration.
func (p *Playlist) Add(entries ...Entry) {
	for _, e := range entries {
		if e.Duration <= 0 {
			e.Duration = DefaultDuration
		}
		if e.Title == "" {
			e.Title = strings.TrimSuffix(filepath.Base(e.Path), filepath.Ext(e.Path))
		}
		p.entries = append(p.entries, e)
	}
}

// Remove removes the entry at the given index.
// Returns false if index is out of bounds.
func (p *Playlist) Remove(index int) bool {
	if index < 0 || index >= len(p.entries) {
		return false
	}
	p.entries = append(p.entries[:index], p.entries[index+1:]...)
	switch {
	case p.current == index:
		p.current = -1
	case p.current > index:
		p.current--
	}
	return true
}

// Clear removes all entries and resets the cursor.
func (p *Playlist) Clear() {
	p.entries = p.entries[:0]
	p.current = -1
}

// Entries returns a copy of all entries.
func (p *Playlist) Entries() []Entry {
	result := make([]Entry, len(p.entries))
	copy(result, p.entries)
	return result
}

// Len returns the number of entries.
func (p *Playlist) Len() int {
	return len(p.entries)
}

// CurrentIndex returns the cursor position, -1 when unset.
func (p *Playlist) CurrentIndex() int {
	return p.current
}

// Current returns the entry at the cursor, or nil.
func (p *Playlist) Current() *Entry {
	if p.current < 0 || p.current >= len(p.entries) {
		return nil
	}
	e := p.entries[p.current]
	return &e
}

// SetCurrent moves the cursor. Returns false if index is out of bounds.
func (p *Playlist) SetCurrent(index int) bool {
	if index < 0 || index >= len(p.entries) {
		return false
	}
	p.current = index
	return true
}

// Next advances the cursor and returns the new entry, or nil at the end of
// the playlist (cursor unchanged).
func (p *Playlist) Next() *Entry {
	if p.current+1 >= len(p.entries) {
		return nil
	}
	p.current++
	e := p.entries[p.current]
	return &e
}

// Previous moves the cursor back and returns the new entry, or nil at the
// beginning of the playlist (cursor unchanged).
func (p *Playlist) Previous() *Entry {
	if p.current <= 0 {
		return nil
	}
	p.current--
	e := p.entries[p.current]
	return &e
}

// Shuffle randomizes entry order and resets the cursor.
func (p *Playlist) Shuffle() {
	rand.Shuffle(len(p.entries), func(i, j int) {
		p.entries[i], p.entries[j] = p.entries[j], p.entries[i]
	})
	p.current = -1
}

// SortByTitle sorts entries by title, ascending or descending.
func (p *Playlist) SortByTitle(desc bool) {
	p.sortBy(desc, func(a, b Entry) bool {
		return strings.ToLower(a.Title) < strings.ToLower(b.Title)
	})
}

// SortByAuthor sorts entries by author, ascending or descending.
func (p *Playlist) SortByAuthor(desc bool) {
	p.sortBy(desc, func(a, b Entry) bool {
		return strings.ToLower(a.Author) < strings.ToLower(b.Author)
	})
}

func (p *Playlist) sortBy(desc bool, less func(a, b Entry) bool) {
	sort.SliceStable(p.entries, func(i, j int) bool {
		if desc {
			return less(p.entries[j], p.entries[i])
		}
		return less(p.entries[i], p.entries[j])
	})
	p.current = -1
}

// fileFormat is the on-disk JSON shape, compatible with the desktop
// player's playlist.json.
type fileFormat struct {
	Entries []Entry `json:"playlist"`
}

// Load reads a playlist from a JSON file. A missing file yields an empty
// playlist without error.
func Load(path string) (*Playlist, error) {
	p := New()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return p, nil
		}
		return nil, err
	}

	var ff fileFormat
	if err := json.Unmarshal(data, &ff); err != nil {
		return nil, err
	}
	p.Add(ff.Entries...)
	return p, nil
}

// Save writes the playlist to a JSON file, creating parent directories as
// needed.
func (p *Playlist) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(fileFormat{Entries: p.entries}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
