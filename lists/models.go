// Package lists manages admin-curated song lists: categorized songs
// grouped into named lists that can back custom games. Lists are stored
// as one JSON document each plus an index document, behind a pluggable
// storage backend.
package lists

import (
	"time"

	"github.com/tunetrivia/tunetrivia/game/engine"
)

// CustomSong is a song in a custom list with its categorization
// metadata. The categorization fields drive game filters and are
// optional; difficulty defaults to "medium".
type CustomSong struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Artist     string `json:"artist"`
	Album      string `json:"album,omitempty"`
	PreviewURL string `json:"preview_url,omitempty"`

	Decade     string `json:"decade,omitempty"`
	Genre      string `json:"genre,omitempty"`
	Style      string `json:"style,omitempty"`
	Mood       string `json:"mood,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`

	Provider string `json:"provider,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// Track converts a curated song into the engine's normalized shape.
func (s CustomSong) Track() engine.Track {
	releaseDate := "Unknown"
	if s.Decade != "" {
		releaseDate = s.Decade
	}
	return engine.Track{
		ID:         s.ID,
		Name:       s.Name,
		Artists:    []engine.Artist{{Name: s.Artist}},
		Album:      engine.Album{Name: s.Album, ReleaseDate: releaseDate},
		PreviewURL: s.PreviewURL,
	}
}

// CustomSongList is a curated list of songs for a specific audience.
type CustomSongList struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	TargetAudience string `json:"target_audience,omitempty"`
	PrimaryDecade  string `json:"primary_decade,omitempty"`
	PrimaryGenre   string `json:"primary_genre,omitempty"`

	Songs []CustomSong `json:"songs"`

	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	CreatedBy   string    `json:"created_by,omitempty"`
	IsActive    bool      `json:"is_active"`
	TimesPlayed int       `json:"times_played"`
}

// Summary is the index entry for a list, without the songs.
type Summary struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description,omitempty"`
	TargetAudience string    `json:"target_audience,omitempty"`
	PrimaryDecade  string    `json:"primary_decade,omitempty"`
	PrimaryGenre   string    `json:"primary_genre,omitempty"`
	SongCount      int       `json:"song_count"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	TimesPlayed    int       `json:"times_played"`
	IsActive       bool      `json:"is_active"`
}

func (l *CustomSongList) summary() Summary {
	return Summary{
		ID:             l.ID,
		Name:           l.Name,
		Description:    l.Description,
		TargetAudience: l.TargetAudience,
		PrimaryDecade:  l.PrimaryDecade,
		PrimaryGenre:   l.PrimaryGenre,
		SongCount:      len(l.Songs),
		CreatedAt:      l.CreatedAt,
		UpdatedAt:      l.UpdatedAt,
		TimesPlayed:    l.TimesPlayed,
		IsActive:       l.IsActive,
	}
}

// Filters narrows a list's songs for game selection. Empty fields match
// everything; set fields must all match (conjunctive).
type Filters struct {
	Decade     string `json:"decade,omitempty"`
	Genre      string `json:"genre,omitempty"`
	Style      string `json:"style,omitempty"`
	Mood       string `json:"mood,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`

	// Query matches song name or artist, case-insensitively.
	Query string `json:"query,omitempty"`

	Limit int `json:"limit,omitempty"`
}
