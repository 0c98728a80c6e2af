// Package sidfile reads PSID/RSID file headers.
package sidfile

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Header field offsets (all values big-endian).
const (
	offMagic     = 0x00
	offVersion   = 0x04
	offSongs     = 0x0E
	offStartSong = 0x10
	offTitle     = 0x16
	offAuthor    = 0x36
	offReleased  = 0x56
	headerMin    = 0x76
)

var ErrNotSID = errors.New("not a PSID/RSID file")

// Info holds the metadata read from a SID file header.
type Info struct {
	Path     string
	Magic    string // "PSID" or "RSID"
	Version  uint16
	Songs    int // number of subtunes (>= 1)
	Start    int // default subtune, 1-based
	Title    string
	Author   string
	Released string

	// Duration is the authoritative total duration when the header version
	// carries one. No v1-v4 header does; it stays zero and the Songlengths
	// database remains the source of truth.
	Duration time.Duration

	Size int64 // file size in bytes
}

// Read parses the header of the SID file at path.
func Read(path string) (*Info, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	st, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	info, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	info.Path = path
	info.Size = st.Size()
	return info, nil
}

// Parse reads a SID header from raw file contents.
func Parse(data []byte) (*Info, error) {
	if len(data) < headerMin {
		return nil, ErrNotSID
	}

	magic := string(data[offMagic : offMagic+4])
	if magic != "PSID" && magic != "RSID" {
		return nil, ErrNotSID
	}

	info := &Info{
		Magic:    magic,
		Version:  binary.BigEndian.Uint16(data[offVersion:]),
		Songs:    int(binary.BigEndian.Uint16(data[offSongs:])),
		Start:    int(binary.BigEndian.Uint16(data[offStartSong:])),
		Title:    headerString(data[offTitle : offTitle+32]),
		Author:   headerString(data[offAuthor : offAuthor+32]),
		Released: headerString(data[offReleased : offReleased+32]),
	}

	// Some rippers write zero here; a file always has at least one tune.
	if info.Songs < 1 {
		info.Songs = 1
	}
	if info.Start < 1 || info.Start > info.Songs {
		info.Start = 1
	}

	return info, nil
}

// headerString decodes a NUL-padded latin1 header field.
func headerString(raw []byte) string {
	runes := make([]rune, 0, len(raw))
	for _, b := range raw {
		if b == 0 {
			break
		}
		runes = append(runes, rune(b)) // latin1 maps 1:1 onto code points
	}
	return strings.TrimSpace(string(runes))
}

// IsSIDFile reports whether the path has a .sid extension.
func IsSIDFile(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".sid"
}
