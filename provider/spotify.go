package provider

import (
	"context"
	"fmt"
	"strings"

	spotifyapi "github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/tunetrivia/tunetrivia/game/engine"
)

// Spotify fetches tracks from the Spotify Web API using the
// client-credentials flow. Search previews are 30-second clips; Spotify
// omits them for some catalog regions, so normalization can shrink the
// result set considerably.
type Spotify struct {
	api *spotifyapi.Client
}

// NewSpotify authenticates with the given credentials and returns a
// ready client.
func NewSpotify(ctx context.Context, creds Credentials) (*Spotify, error) {
	if creds.ClientID == "" || creds.ClientSecret == "" {
		return nil, fmt.Errorf("spotify credentials are required")
	}

	config := &clientcredentials.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		TokenURL:     spotifyauth.TokenURL,
	}
	token, err := config.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("spotify token request failed: %w", err)
	}

	httpClient := spotifyauth.New().Client(ctx, token)
	return &Spotify{api: spotifyapi.New(httpClient)}, nil
}

// SongsByGenre searches tracks using Spotify's genre filter.
func (s *Spotify) SongsByGenre(ctx context.Context, genre string, limit int) ([]engine.Track, error) {
	if limit <= 0 {
		limit = 50
	}
	query := fmt.Sprintf("genre:%q", genre)
	results, err := s.api.Search(ctx, query, spotifyapi.SearchTypeTrack, spotifyapi.Limit(limit))
	if err != nil {
		return nil, fmt.Errorf("spotify search failed: %w", err)
	}
	if results.Tracks == nil {
		return nil, nil
	}

	tracks := make([]engine.Track, 0, len(results.Tracks.Tracks))
	for _, ft := range results.Tracks.Tracks {
		if t, ok := normalizeSpotifyTrack(ft); ok {
			tracks = append(tracks, t)
		}
	}
	return tracks, nil
}

// SongsFromPlaylist loads every previewable track from a playlist URL
// or bare playlist ID.
func (s *Spotify) SongsFromPlaylist(ctx context.Context, playlistURL string) ([]engine.Track, error) {
	id := extractPlaylistID(playlistURL, "spotify.com")

	playlist, err := s.api.GetPlaylist(ctx, spotifyapi.ID(id))
	if err != nil {
		return nil, fmt.Errorf("spotify playlist %s: %w", id, err)
	}

	tracks := make([]engine.Track, 0, len(playlist.Tracks.Tracks))
	for _, item := range playlist.Tracks.Tracks {
		if t, ok := normalizeSpotifyTrack(item.Track); ok {
			tracks = append(tracks, t)
		}
	}
	return tracks, nil
}

// TopTracks finds the artist by name and returns their most popular
// tracks.
func (s *Spotify) TopTracks(ctx context.Context, artistName string, limit int) ([]engine.Track, error) {
	if limit <= 0 {
		limit = 20
	}
	results, err := s.api.Search(ctx, artistName, spotifyapi.SearchTypeArtist, spotifyapi.Limit(1))
	if err != nil {
		return nil, fmt.Errorf("spotify artist search failed: %w", err)
	}
	if results.Artists == nil || len(results.Artists.Artists) == 0 {
		return nil, nil
	}

	artistID := results.Artists.Artists[0].ID
	top, err := s.api.GetArtistsTopTracks(ctx, artistID, "US")
	if err != nil {
		return nil, fmt.Errorf("spotify top tracks for %s: %w", artistName, err)
	}

	tracks := make([]engine.Track, 0, len(top))
	for _, ft := range top {
		if t, ok := normalizeSpotifyTrack(ft); ok {
			tracks = append(tracks, t)
		}
		if len(tracks) >= limit {
			break
		}
	}
	return tracks, nil
}

// normalizeSpotifyTrack maps a Spotify track into the engine's shape,
// dropping tracks without a preview URL.
func normalizeSpotifyTrack(ft spotifyapi.FullTrack) (engine.Track, bool) {
	if ft.PreviewURL == "" {
		return engine.Track{}, false
	}

	artists := make([]engine.Artist, 0, len(ft.Artists))
	for _, a := range ft.Artists {
		artists = append(artists, engine.Artist{Name: a.Name})
	}

	releaseDate := ft.Album.ReleaseDate
	if releaseDate == "" {
		releaseDate = "Unknown"
	}

	return engine.Track{
		ID:      string(ft.ID),
		Name:    ft.Name,
		Artists: artists,
		Album: engine.Album{
			Name:        ft.Album.Name,
			ReleaseDate: releaseDate,
		},
		PreviewURL: ft.PreviewURL,
	}, true
}

// extractPlaylistID accepts either a full share URL or a bare ID.
func extractPlaylistID(raw, host string) string {
	if !strings.Contains(raw, host) {
		return raw
	}
	trimmed := strings.TrimRight(raw, "/")
	parts := strings.Split(trimmed, "/")
	last := parts[len(parts)-1]
	if i := strings.IndexByte(last, '?'); i >= 0 {
		last = last[:i]
	}
	return last
}
