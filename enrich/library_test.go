package enrich

import (
	"testing"

	"github.com/tunetrivia/tunetrivia/storage"
)

func newTestLibrary(t *testing.T) (*Library, storage.Provider) {
	t.Helper()
	store := storage.NewLocalProvider(t.TempDir())
	lib, err := NewLibrary(store)
	if err != nil {
		t.Fatalf("NewLibrary failed: %v", err)
	}
	return lib, store
}

func TestLibrarySaveAndLookup(t *testing.T) {
	lib, _ := newTestLibrary(t)

	saved, err := lib.Save(SongEntry{
		ID:       "123",
		Provider: "deezer",
		Name:     "Take On Me",
		Artist:   "a-ha",
		Metadata: SongMetadata{Genre: "Pop", Decade: "1980s", Difficulty: "easy"},
	})
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if saved.TimesUsed != 1 {
		t.Errorf("expected times used 1, got %d", saved.TimesUsed)
	}

	entry, ok := lib.Lookup("deezer", "123")
	if !ok {
		t.Fatal("expected entry to be found")
	}
	if entry.Metadata.Genre != "Pop" {
		t.Errorf("unexpected genre %q", entry.Metadata.Genre)
	}

	if _, ok := lib.Lookup("spotify", "123"); ok {
		t.Error("lookup must be scoped by provider")
	}
}

func TestLibrarySaveUpdatesExisting(t *testing.T) {
	lib, _ := newTestLibrary(t)

	entry := SongEntry{ID: "1", Provider: "demo", Name: "Imagine", Artist: "John Lennon"}
	if _, err := lib.Save(entry); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	entry.Metadata.Mood = "Chill"
	updated, err := lib.Save(entry)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if updated.TimesUsed != 2 {
		t.Errorf("expected times used 2, got %d", updated.TimesUsed)
	}

	stats := lib.Stats()
	if stats.TotalSongs != 1 {
		t.Errorf("expected 1 song, got %d", stats.TotalSongs)
	}
}

func TestLibraryPersistsAcrossLoads(t *testing.T) {
	store := storage.NewLocalProvider(t.TempDir())

	lib, err := NewLibrary(store)
	if err != nil {
		t.Fatalf("NewLibrary failed: %v", err)
	}
	if _, err := lib.Save(SongEntry{ID: "1", Provider: "demo", Name: "Imagine", Artist: "John Lennon"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	reloaded, err := NewLibrary(store)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if _, ok := reloaded.Lookup("demo", "1"); !ok {
		t.Error("expected entry to survive reload")
	}
}

func TestLibrarySuggestPrefersLearnedMetadata(t *testing.T) {
	lib, _ := newTestLibrary(t)

	// Heuristics alone would call Queen "Rock"; the admin said otherwise.
	if _, err := lib.Save(SongEntry{
		ID:       "q1",
		Provider: "demo",
		Name:     "Bohemian Rhapsody",
		Artist:   "Queen",
		Metadata: SongMetadata{Genre: "Opera Rock", Decade: "1970s"},
	}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	s := lib.Suggest("demo", "q1", "Queen", "Bohemian Rhapsody", "1975-11-21")
	if s.Genre != "Opera Rock" {
		t.Errorf("expected learned genre to win, got %q", s.Genre)
	}

	// Unknown song falls back to heuristics.
	s = lib.Suggest("demo", "unknown", "Queen", "Bohemian Rhapsody", "1975-11-21")
	if s.Genre != "Rock" {
		t.Errorf("expected heuristic fallback, got %q", s.Genre)
	}
}

func TestLibrarySongsByArtist(t *testing.T) {
	lib, _ := newTestLibrary(t)

	for i, name := range []string{"Imagine", "Jealous Guy"} {
		if _, err := lib.Save(SongEntry{
			ID:       string(rune('a' + i)),
			Provider: "demo",
			Name:     name,
			Artist:   "John Lennon",
		}); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	matches := lib.SongsByArtist("john lennon")
	if len(matches) != 2 {
		t.Errorf("expected 2 songs, got %d", len(matches))
	}
}
