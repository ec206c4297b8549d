package provider

import (
	"context"

	"github.com/tunetrivia/tunetrivia/game/engine"
)

// Demo serves a fixed catalog of well-known classics so the game works
// with no credentials and no network. Every mode returns the same
// catalog; genre and artist queries are ignored.
type Demo struct{}

// NewDemo returns the static demo catalog provider.
func NewDemo() *Demo {
	return &Demo{}
}

func (d *Demo) SongsByGenre(ctx context.Context, genre string, limit int) ([]engine.Track, error) {
	return d.catalog(limit), nil
}

func (d *Demo) SongsFromPlaylist(ctx context.Context, playlistURL string) ([]engine.Track, error) {
	return d.catalog(0), nil
}

func (d *Demo) TopTracks(ctx context.Context, artistName string, limit int) ([]engine.Track, error) {
	return d.catalog(limit), nil
}

func (d *Demo) catalog(limit int) []engine.Track {
	tracks := demoCatalog()
	if limit > 0 && limit < len(tracks) {
		tracks = tracks[:limit]
	}
	return tracks
}

// demoCatalog returns fresh copies so callers can shuffle freely.
func demoCatalog() []engine.Track {
	return []engine.Track{
		{
			ID:         "demo1",
			Name:       "Bohemian Rhapsody",
			Artists:    []engine.Artist{{Name: "Queen"}},
			Album:      engine.Album{Name: "A Night at the Opera", ReleaseDate: "1975-11-21"},
			PreviewURL: "https://p.scdn.co/mp3-preview/demo1",
		},
		{
			ID:         "demo2",
			Name:       "Billie Jean",
			Artists:    []engine.Artist{{Name: "Michael Jackson"}},
			Album:      engine.Album{Name: "Thriller", ReleaseDate: "1982-01-02"},
			PreviewURL: "https://p.scdn.co/mp3-preview/demo2",
		},
		{
			ID:         "demo3",
			Name:       "Sweet Child O Mine",
			Artists:    []engine.Artist{{Name: "Guns N' Roses"}},
			Album:      engine.Album{Name: "Appetite for Destruction", ReleaseDate: "1987-07-21"},
			PreviewURL: "https://p.scdn.co/mp3-preview/demo3",
		},
		{
			ID:         "demo4",
			Name:       "Smells Like Teen Spirit",
			Artists:    []engine.Artist{{Name: "Nirvana"}},
			Album:      engine.Album{Name: "Nevermind", ReleaseDate: "1991-09-24"},
			PreviewURL: "https://p.scdn.co/mp3-preview/demo4",
		},
		{
			ID:         "demo5",
			Name:       "Hotel California",
			Artists:    []engine.Artist{{Name: "Eagles"}},
			Album:      engine.Album{Name: "Hotel California", ReleaseDate: "1976-12-08"},
			PreviewURL: "https://p.scdn.co/mp3-preview/demo5",
		},
		{
			ID:         "demo6",
			Name:       "Imagine",
			Artists:    []engine.Artist{{Name: "John Lennon"}},
			Album:      engine.Album{Name: "Imagine", ReleaseDate: "1971-10-11"},
			PreviewURL: "https://p.scdn.co/mp3-preview/demo6",
		},
		{
			ID:         "demo7",
			Name:       "Like a Rolling Stone",
			Artists:    []engine.Artist{{Name: "Bob Dylan"}},
			Album:      engine.Album{Name: "Highway 61 Revisited", ReleaseDate: "1965-08-30"},
			PreviewURL: "https://p.scdn.co/mp3-preview/demo7",
		},
		{
			ID:         "demo8",
			Name:       "I Want to Hold Your Hand",
			Artists:    []engine.Artist{{Name: "The Beatles"}},
			Album:      engine.Album{Name: "Meet the Beatles!", ReleaseDate: "1963-11-29"},
			PreviewURL: "https://p.scdn.co/mp3-preview/demo8",
		},
		{
			ID:         "demo9",
			Name:       "Superstition",
			Artists:    []engine.Artist{{Name: "Stevie Wonder"}},
			Album:      engine.Album{Name: "Talking Book", ReleaseDate: "1972-10-24"},
			PreviewURL: "https://p.scdn.co/mp3-preview/demo9",
		},
		{
			ID:         "demo10",
			Name:       "Respect",
			Artists:    []engine.Artist{{Name: "Aretha Franklin"}},
			Album:      engine.Album{Name: "I Never Loved a Man the Way I Love You", ReleaseDate: "1967-03-10"},
			PreviewURL: "https://p.scdn.co/mp3-preview/demo10",
		},
	}
}
