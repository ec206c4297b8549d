package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/tunetrivia/tunetrivia/game/engine"
)

var (
	ErrUnknownProvider = errors.New("unknown provider")
	ErrUnknownMode     = errors.New("unknown search mode")
	ErrNoSongsFound    = errors.New("no songs with preview URLs found")
)

// Kind identifies a song source. The set is closed; adding a source
// means adding a variant here and a case in New.
type Kind string

const (
	KindSpotify Kind = "spotify"
	KindDeezer  Kind = "deezer"
	KindDemo    Kind = "demo"
	KindCustom  Kind = "custom"
)

// Mode selects how a provider is queried.
type Mode string

const (
	ModeGenre    Mode = "genre"
	ModePlaylist Mode = "playlist"
	ModeArtist   Mode = "artist"
	ModeDemo     Mode = "demo"
	ModeCustom   Mode = "custom"
)

// Credentials carries provider API credentials. Deezer and Demo need
// none.
type Credentials struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

// Provider fetches normalized tracks from one music source.
type Provider interface {
	// SongsByGenre searches by genre or free-text keyword.
	SongsByGenre(ctx context.Context, genre string, limit int) ([]engine.Track, error)

	// SongsFromPlaylist loads a playlist by URL or bare ID.
	SongsFromPlaylist(ctx context.Context, playlistURL string) ([]engine.Track, error)

	// TopTracks returns an artist's most popular tracks.
	TopTracks(ctx context.Context, artistName string, limit int) ([]engine.Track, error)
}

// New constructs a provider for the given kind. Custom sources are not
// built here: they wrap an admin list and are assembled by the service
// layer, which owns the list storage.
func New(ctx context.Context, kind Kind, creds Credentials) (Provider, error) {
	switch kind {
	case KindSpotify:
		return NewSpotify(ctx, creds)
	case KindDeezer:
		return NewDeezer(), nil
	case KindDemo:
		return NewDemo(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, kind)
	}
}

// Fetch dispatches a query to the right provider method for the mode.
// Demo mode ignores the query and returns the built-in catalog.
func Fetch(ctx context.Context, p Provider, mode Mode, query string, limit int) ([]engine.Track, error) {
	var (
		tracks []engine.Track
		err    error
	)
	switch mode {
	case ModeGenre:
		tracks, err = p.SongsByGenre(ctx, query, limit)
	case ModePlaylist:
		tracks, err = p.SongsFromPlaylist(ctx, query)
	case ModeArtist:
		tracks, err = p.TopTracks(ctx, query, limit)
	case ModeDemo:
		tracks, err = p.SongsByGenre(ctx, "", limit)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
	if err != nil {
		return nil, err
	}
	if len(tracks) == 0 {
		return nil, fmt.Errorf("%w for %q", ErrNoSongsFound, query)
	}
	return tracks, nil
}
