package playlist

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNew(t *testing.T) {
	p := New()

	if p.Len() != 0 {
		t.Errorf("Len() = %d, want 0", p.Len())
	}
	if p.CurrentIndex() != -1 {
		t.Errorf("CurrentIndex() = %d, want -1", p.CurrentIndex())
	}
	if p.Current() != nil {
		t.Error("Current() should be nil on empty playlist")
	}
}

func TestPlaylist_Add(t *testing.T) {
	p := New()

	p.Add(Entry{Path: "/hvsc/Commando.sid", Title: "Commando", Duration: 273},
		Entry{Path: "/hvsc/Cybernoid.sid"})

	if p.Len() != 2 {
		t.Errorf("Len() = %d, want 2", p.Len())
	}

	entries := p.Entries()
	if entries[0].Duration != 273 {
		t.Errorf("entries[0].Duration = %d, want 273", entries[0].Duration)
	}
	// Defaults applied for sparse entries.
	if entries[1].Duration != DefaultDuration {
		t.Errorf("entries[1].Duration = %d, want %d", entries[1].Duration, DefaultDuration)
	}
	if entries[1].Title != "Cybernoid" {
		t.Errorf("entries[1].Title = %q, want Cybernoid", entries[1].Title)
	}
}

func TestPlaylist_NextPrevious(t *testing.T) {
	p := New()
	p.Add(Entry{Path: "/a.sid"}, Entry{Path: "/b.sid"}, Entry{Path: "/c.sid"})
	p.SetCurrent(0)

	next := p.Next()
	if next == nil || next.Path != "/b.sid" {
		t.Fatalf("Next() = %v, want /b.sid", next)
	}
	next = p.Next()
	if next == nil || next.Path != "/c.sid" {
		t.Fatalf("Next() = %v, want /c.sid", next)
	}

	// End of playlist: nil, cursor unchanged.
	if p.Next() != nil {
		t.Error("Next() at end should be nil")
	}
	if p.CurrentIndex() != 2 {
		t.Errorf("CurrentIndex() = %d, want 2", p.CurrentIndex())
	}

	prev := p.Previous()
	if prev == nil || prev.Path != "/b.sid" {
		t.Fatalf("Previous() = %v, want /b.sid", prev)
	}
	p.Previous()

	// Beginning of playlist: nil, cursor unchanged.
	if p.Previous() != nil {
		t.Error("Previous() at start should be nil")
	}
	if p.CurrentIndex() != 0 {
		t.Errorf("CurrentIndex() = %d, want 0", p.CurrentIndex())
	}
}

func TestPlaylist_Remove_AdjustsCursor(t *testing.T) {
	p := New()
	p.Add(Entry{Path: "/a.sid"}, Entry{Path: "/b.sid"}, Entry{Path: "/c.sid"})
	p.SetCurrent(2)

	if !p.Remove(0) {
		t.Fatal("Remove(0) should succeed")
	}
	if p.CurrentIndex() != 1 {
		t.Errorf("CurrentIndex() = %d, want 1 after removing earlier entry", p.CurrentIndex())
	}

	if p.Remove(5) {
		t.Error("Remove(5) should fail")
	}

	p.SetCurrent(1)
	p.Remove(1)
	if p.CurrentIndex() != -1 {
		t.Errorf("CurrentIndex() = %d, want -1 after removing current", p.CurrentIndex())
	}
}

func TestPlaylist_SortByTitle(t *testing.T) {
	p := New()
	p.Add(Entry{Path: "/1.sid", Title: "Zamzara"},
		Entry{Path: "/2.sid", Title: "Armalyte"},
		Entry{Path: "/3.sid", Title: "monty"})

	p.SortByTitle(false)

	entries := p.Entries()
	want := []string{"Armalyte", "monty", "Zamzara"}
	for i, w := range want {
		if entries[i].Title != w {
			t.Errorf("entries[%d].Title = %q, want %q", i, entries[i].Title, w)
		}
	}
	if p.CurrentIndex() != -1 {
		t.Errorf("CurrentIndex() = %d, want -1 after sort", p.CurrentIndex())
	}
}

func TestLoadSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "playlist.json")

	p := New()
	p.Add(Entry{Path: "/hvsc/Commando.sid", Title: "Commando", Author: "Rob Hubbard", Duration: 273})

	if err := p.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", loaded.Len())
	}
	e := loaded.Entries()[0]
	if e.Title != "Commando" || e.Author != "Rob Hubbard" || e.Duration != 273 {
		t.Errorf("round-tripped entry = %+v", e)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	p, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("Load() error = %v, want nil for missing file", err)
	}
	if p.Len() != 0 {
		t.Errorf("Len() = %d, want 0", p.Len())
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() should fail on invalid JSON")
	}
}
