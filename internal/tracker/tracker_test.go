package tracker

import (
	"os"
	"path/filepath"
	"testing"
)

func loadFixture(t *testing.T, cfg string) *Recognizer {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sidid.cfg")
	if err := os.WriteFile(path, []byte(cfg), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	r, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return r
}

const sampleCfg = `JCH_NewPlayer
A9 00 8D ?? D4 END

CheeseCutter
4C ?? ?? EA EA END
20 10 C0 END
`

func TestLoad_PatternCount(t *testing.T) {
	r := loadFixture(t, sampleCfg)
	if r.Len() != 2 {
		t.Errorf("Len() = %d, want 2", r.Len())
	}
}

func TestMatch_Exact(t *testing.T) {
	r := loadFixture(t, sampleCfg)

	data := []byte{0xFF, 0x20, 0x10, 0xC0, 0xFF}
	if got := r.Match(data); got != "CheeseCutter" {
		t.Errorf("Match() = %q, want CheeseCutter", got)
	}
}

func TestMatch_Wildcard(t *testing.T) {
	r := loadFixture(t, sampleCfg)

	// A9 00 8D ?? D4 with arbitrary middle byte
	data := []byte{0x00, 0xA9, 0x00, 0x8D, 0x18, 0xD4}
	if got := r.Match(data); got != "JCH_NewPlayer" {
		t.Errorf("Match() = %q, want JCH_NewPlayer", got)
	}
}

func TestMatch_NoMatch(t *testing.T) {
	r := loadFixture(t, sampleCfg)

	if got := r.Match([]byte{0x01, 0x02, 0x03}); got != "" {
		t.Errorf("Match() = %q, want empty", got)
	}
}

func TestMatch_PatternAtEndOfData(t *testing.T) {
	r := loadFixture(t, sampleCfg)

	// Truncated pattern must not match (and must not panic).
	if got := r.Match([]byte{0x20, 0x10}); got != "" {
		t.Errorf("Match() = %q, want empty", got)
	}
}

func TestRecognize_CachesResult(t *testing.T) {
	r := loadFixture(t, sampleCfg)

	path := filepath.Join(t.TempDir(), "tune.sid")
	if err := os.WriteFile(path, []byte{0x20, 0x10, 0xC0}, 0o644); err != nil {
		t.Fatalf("write tune: %v", err)
	}

	if got := r.Recognize(path); got != "CheeseCutter" {
		t.Fatalf("Recognize() = %q, want CheeseCutter", got)
	}

	// Rewrite the file; the cached answer should stick.
	if err := os.WriteFile(path, []byte{0x00}, 0o644); err != nil {
		t.Fatalf("rewrite tune: %v", err)
	}
	if got := r.Recognize(path); got != "CheeseCutter" {
		t.Errorf("Recognize() after rewrite = %q, want cached CheeseCutter", got)
	}
}

func TestLoad_SkipsMalformedPatternLines(t *testing.T) {
	r := loadFixture(t, `Broken
A9 GG END

Valid
A9 00 END
`)
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1 (malformed pattern dropped)", r.Len())
	}
}
