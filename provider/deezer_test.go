package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newFakeDeezer(t *testing.T) (*Deezer, *httptest.Server) {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[
			{"id":1,"title":"Bohemian Rhapsody","preview":"https://cdn.example/p1","artist":{"name":"Queen"},"album":{"title":"A Night at the Opera"}},
			{"id":2,"title":"No Preview Song","preview":"","artist":{"name":"Nobody"},"album":{"title":"Silence"}}
		]}`))
	})
	mux.HandleFunc("/playlist/123", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"tracks":{"data":[
			{"id":3,"title":"Imagine","preview":"https://cdn.example/p3","artist":{"name":"John Lennon"},"album":{"title":"Imagine","release_date":"1971-10-11"}}
		]}}`))
	})
	mux.HandleFunc("/search/artist", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[{"id":42}]}`))
	})
	mux.HandleFunc("/artist/42/top", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[
			{"id":4,"title":"Hey Jude","preview":"https://cdn.example/p4","artist":{"name":"The Beatles"},"album":{"title":"Past Masters"}}
		]}`))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return NewDeezerWithBaseURL(server.URL), server
}

func TestDeezerSongsByGenre(t *testing.T) {
	client, _ := newFakeDeezer(t)

	tracks, err := client.SongsByGenre(context.Background(), "rock", 10)
	if err != nil {
		t.Fatalf("SongsByGenre failed: %v", err)
	}

	// The track without a preview URL must be dropped.
	if len(tracks) != 1 {
		t.Fatalf("expected 1 track, got %d", len(tracks))
	}
	track := tracks[0]
	if track.Name != "Bohemian Rhapsody" {
		t.Errorf("unexpected title %q", track.Name)
	}
	if track.ID != "1" {
		t.Errorf("unexpected id %q", track.ID)
	}
	if track.Artists[0].Name != "Queen" {
		t.Errorf("unexpected artist %q", track.Artists[0].Name)
	}
	if track.Album.ReleaseDate != "Unknown" {
		t.Errorf("missing release date should normalize to Unknown, got %q", track.Album.ReleaseDate)
	}
}

func TestDeezerSongsFromPlaylist(t *testing.T) {
	client, _ := newFakeDeezer(t)

	tests := []string{
		"123",
		"https://www.deezer.com/playlist/123",
		"https://www.deezer.com/playlist/123?utm_source=share",
	}
	for _, input := range tests {
		tracks, err := client.SongsFromPlaylist(context.Background(), input)
		if err != nil {
			t.Fatalf("SongsFromPlaylist(%q) failed: %v", input, err)
		}
		if len(tracks) != 1 || tracks[0].Name != "Imagine" {
			t.Errorf("SongsFromPlaylist(%q) returned unexpected tracks: %+v", input, tracks)
		}
	}
}

func TestDeezerTopTracks(t *testing.T) {
	client, _ := newFakeDeezer(t)

	tracks, err := client.TopTracks(context.Background(), "The Beatles", 5)
	if err != nil {
		t.Fatalf("TopTracks failed: %v", err)
	}
	if len(tracks) != 1 || tracks[0].Name != "Hey Jude" {
		t.Errorf("unexpected tracks: %+v", tracks)
	}
}

func TestDeezerServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewDeezerWithBaseURL(server.URL)
	if _, err := client.SongsByGenre(context.Background(), "rock", 10); err == nil {
		t.Error("expected error on upstream failure")
	}
}
