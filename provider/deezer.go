package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/tunetrivia/tunetrivia/game/engine"
)

const (
	deezerBaseURL   = "https://api.deezer.com"
	deezerUserAgent = "tunetrivia/1.0"
)

// Deezer talks to Deezer's public API. Search and preview access need
// no authentication, which makes it the default real-data source.
type Deezer struct {
	httpClient *http.Client
	baseURL    string
}

// NewDeezer returns a client against the public Deezer API.
func NewDeezer() *Deezer {
	return &Deezer{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    deezerBaseURL,
	}
}

// NewDeezerWithBaseURL is used by tests to point the client at a fake
// server.
func NewDeezerWithBaseURL(baseURL string) *Deezer {
	d := NewDeezer()
	d.baseURL = baseURL
	return d
}

// deezerTrack mirrors the subset of Deezer's track JSON the game needs.
type deezerTrack struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Preview string `json:"preview"`
	Artist  struct {
		Name string `json:"name"`
	} `json:"artist"`
	Album struct {
		Title       string `json:"title"`
		ReleaseDate string `json:"release_date"`
	} `json:"album"`
}

type deezerTrackList struct {
	Data []deezerTrack `json:"data"`
}

// SongsByGenre searches Deezer by genre or free-text keyword.
func (d *Deezer) SongsByGenre(ctx context.Context, genre string, limit int) ([]engine.Track, error) {
	if limit <= 0 {
		limit = 50
	}
	params := url.Values{
		"q":     {genre},
		"limit": {strconv.Itoa(limit)},
	}

	var list deezerTrackList
	if err := d.getJSON(ctx, "/search?"+params.Encode(), &list); err != nil {
		return nil, fmt.Errorf("deezer search: %w", err)
	}
	return normalizeDeezerTracks(list.Data), nil
}

// SongsFromPlaylist loads tracks from a playlist URL or bare ID.
func (d *Deezer) SongsFromPlaylist(ctx context.Context, playlistURL string) ([]engine.Track, error) {
	id := extractPlaylistID(playlistURL, "deezer.com")

	var payload struct {
		Tracks deezerTrackList `json:"tracks"`
	}
	if err := d.getJSON(ctx, "/playlist/"+url.PathEscape(id), &payload); err != nil {
		return nil, fmt.Errorf("deezer playlist %s: %w", id, err)
	}
	return normalizeDeezerTracks(payload.Tracks.Data), nil
}

// TopTracks resolves the artist by name, then fetches their chart.
func (d *Deezer) TopTracks(ctx context.Context, artistName string, limit int) ([]engine.Track, error) {
	if limit <= 0 {
		limit = 20
	}

	params := url.Values{
		"q":     {artistName},
		"limit": {"1"},
	}
	var artists struct {
		Data []struct {
			ID int64 `json:"id"`
		} `json:"data"`
	}
	if err := d.getJSON(ctx, "/search/artist?"+params.Encode(), &artists); err != nil {
		return nil, fmt.Errorf("deezer artist search: %w", err)
	}
	if len(artists.Data) == 0 {
		return nil, nil
	}

	path := fmt.Sprintf("/artist/%d/top?limit=%d", artists.Data[0].ID, limit)
	var list deezerTrackList
	if err := d.getJSON(ctx, path, &list); err != nil {
		return nil, fmt.Errorf("deezer top tracks for %s: %w", artistName, err)
	}
	return normalizeDeezerTracks(list.Data), nil
}

func (d *Deezer) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", deezerUserAgent)

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// normalizeDeezerTracks converts Deezer's shape into engine tracks,
// dropping anything without a preview. Deezer search results often omit
// the album release date, which normalizes to "Unknown".
func normalizeDeezerTracks(in []deezerTrack) []engine.Track {
	tracks := make([]engine.Track, 0, len(in))
	for _, dt := range in {
		if dt.Preview == "" {
			continue
		}

		artistName := dt.Artist.Name
		if artistName == "" {
			artistName = "Unknown Artist"
		}
		albumName := dt.Album.Title
		if albumName == "" {
			albumName = "Unknown Album"
		}
		releaseDate := dt.Album.ReleaseDate
		if releaseDate == "" {
			releaseDate = "Unknown"
		}

		tracks = append(tracks, engine.Track{
			ID:      strconv.FormatInt(dt.ID, 10),
			Name:    dt.Title,
			Artists: []engine.Artist{{Name: artistName}},
			Album: engine.Album{
				Name:        albumName,
				ReleaseDate: releaseDate,
			},
			PreviewURL: dt.Preview,
		})
	}
	return tracks
}
