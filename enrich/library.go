package enrich

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/tunetrivia/tunetrivia/storage"
)

const libraryKey = "library/metadata_library.json"

// SongMetadata is what an admin chose for one song. Once saved, it wins
// over heuristic suggestions for the same song.
type SongMetadata struct {
	Decade     string `json:"decade,omitempty"`
	Genre      string `json:"genre,omitempty"`
	Style      string `json:"style,omitempty"`
	Mood       string `json:"mood,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

// SongEntry is one learned song in the library.
type SongEntry struct {
	ID          string       `json:"id"`
	Provider    string       `json:"provider"`
	Name        string       `json:"name"`
	Artist      string       `json:"artist"`
	Album       string       `json:"album,omitempty"`
	ReleaseDate string       `json:"release_date,omitempty"`
	Metadata    SongMetadata `json:"metadata"`
	AddedAt     time.Time    `json:"added_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	TimesUsed   int          `json:"times_used"`
}

// LibraryStats summarizes the library contents.
type LibraryStats struct {
	TotalSongs   int       `json:"total_songs"`
	TotalArtists int       `json:"total_artists"`
	LastUpdated  time.Time `json:"last_updated"`
}

type libraryDoc struct {
	Version    string               `json:"version"`
	Created    time.Time            `json:"created"`
	Songs      map[string]SongEntry `json:"songs"`
	Statistics LibraryStats         `json:"statistics"`
}

// Library is the learned metadata store. It remembers manual
// categorizations keyed by provider+song id so repeat appearances of a
// song auto-fill consistently across lists.
type Library struct {
	store storage.Provider

	mu  sync.Mutex
	doc *libraryDoc
}

// NewLibrary loads the library document, creating an empty one when the
// backend has none.
func NewLibrary(store storage.Provider) (*Library, error) {
	lib := &Library{store: store}

	data, err := store.Get(libraryKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("failed to load metadata library: %w", err)
		}
		lib.doc = emptyLibrary()
		return lib, nil
	}

	var doc libraryDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("corrupt metadata library: %w", err)
	}
	if doc.Songs == nil {
		doc.Songs = make(map[string]SongEntry)
	}
	lib.doc = &doc
	return lib, nil
}

func emptyLibrary() *libraryDoc {
	return &libraryDoc{
		Version: "1.0",
		Created: time.Now().UTC(),
		Songs:   make(map[string]SongEntry),
	}
}

func songKey(provider, songID string) string {
	return provider + "_" + songID
}

// Lookup returns the learned metadata for a song, if any.
func (l *Library) Lookup(provider, songID string) (SongEntry, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.doc.Songs[songKey(provider, songID)]
	return entry, ok
}

// Save records (or updates) a manual categorization and persists the
// library.
func (l *Library) Save(entry SongEntry) (SongEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := songKey(entry.Provider, entry.ID)
	now := time.Now().UTC()

	if existing, ok := l.doc.Songs[key]; ok {
		entry.AddedAt = existing.AddedAt
		entry.TimesUsed = existing.TimesUsed + 1
	} else {
		entry.AddedAt = now
		entry.TimesUsed = 1
	}
	entry.UpdatedAt = now
	l.doc.Songs[key] = entry

	if err := l.persist(); err != nil {
		return SongEntry{}, err
	}
	return entry, nil
}

// Suggest combines the library with the pattern heuristics: a learned
// entry wins outright; otherwise fall back to Enrich.
func (l *Library) Suggest(provider, songID, artist, track, releaseDate string) Suggestion {
	if entry, ok := l.Lookup(provider, songID); ok {
		return Suggestion{
			Genre:  entry.Metadata.Genre,
			Mood:   entry.Metadata.Mood,
			Style:  entry.Metadata.Style,
			Decade: entry.Metadata.Decade,
		}
	}
	return Enrich(artist, track, YearFromReleaseDate(releaseDate))
}

// SongsByArtist returns all learned songs by an artist,
// case-insensitively.
func (l *Library) SongsByArtist(artist string) []SongEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	var matches []SongEntry
	for _, entry := range l.doc.Songs {
		if strings.EqualFold(entry.Artist, artist) {
			matches = append(matches, entry)
		}
	}
	return matches
}

// Stats recomputes and returns library statistics.
func (l *Library) Stats() LibraryStats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.statsLocked()
}

func (l *Library) statsLocked() LibraryStats {
	artists := make(map[string]bool)
	for _, entry := range l.doc.Songs {
		artists[strings.ToLower(entry.Artist)] = true
	}
	return LibraryStats{
		TotalSongs:   len(l.doc.Songs),
		TotalArtists: len(artists),
		LastUpdated:  time.Now().UTC(),
	}
}

func (l *Library) persist() error {
	l.doc.Statistics = l.statsLocked()
	data, err := json.MarshalIndent(l.doc, "", "  ")
	if err != nil {
		return err
	}
	if err := l.store.Put(libraryKey, data); err != nil {
		return fmt.Errorf("failed to persist metadata library: %w", err)
	}
	return nil
}
