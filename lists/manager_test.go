package lists

import (
	"testing"

	"github.com/tunetrivia/tunetrivia/storage"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(storage.NewLocalProvider(t.TempDir()))
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	return m
}

func TestCreateAndGetList(t *testing.T) {
	m := newTestManager(t)

	list, err := m.CreateList("80s Rock Night", "Classic rock bangers", "Corporate Event", "1980s", "Rock")
	if err != nil {
		t.Fatalf("CreateList failed: %v", err)
	}
	if list.ID == "" {
		t.Error("expected generated list ID")
	}
	if !list.IsActive {
		t.Error("new lists should be active")
	}

	got, err := m.GetList(list.ID)
	if err != nil {
		t.Fatalf("GetList failed: %v", err)
	}
	if got.Name != "80s Rock Night" {
		t.Errorf("unexpected name %q", got.Name)
	}

	if _, err := m.GetList("missing"); err != ErrListNotFound {
		t.Errorf("expected ErrListNotFound, got %v", err)
	}
}

func TestSummariesTrackIndex(t *testing.T) {
	m := newTestManager(t)

	first, err := m.CreateList("First", "", "", "", "")
	if err != nil {
		t.Fatalf("CreateList failed: %v", err)
	}
	if _, err := m.CreateList("Second", "", "", "", ""); err != nil {
		t.Fatalf("CreateList failed: %v", err)
	}

	summaries, err := m.Summaries()
	if err != nil {
		t.Fatalf("Summaries failed: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(summaries))
	}

	if err := m.DeleteList(first.ID); err != nil {
		t.Fatalf("DeleteList failed: %v", err)
	}
	summaries, err = m.Summaries()
	if err != nil {
		t.Fatalf("Summaries failed: %v", err)
	}
	if len(summaries) != 1 || summaries[0].Name != "Second" {
		t.Errorf("unexpected summaries after delete: %+v", summaries)
	}
}

func TestAddAndRemoveSong(t *testing.T) {
	m := newTestManager(t)

	list, err := m.CreateList("Mixed", "", "", "", "")
	if err != nil {
		t.Fatalf("CreateList failed: %v", err)
	}

	updated, err := m.AddSong(list.ID, CustomSong{
		Name:   "Take On Me",
		Artist: "a-ha",
		Decade: "1980s",
		Genre:  "Pop",
	})
	if err != nil {
		t.Fatalf("AddSong failed: %v", err)
	}
	if len(updated.Songs) != 1 {
		t.Fatalf("expected 1 song, got %d", len(updated.Songs))
	}
	song := updated.Songs[0]
	if song.ID == "" {
		t.Error("expected generated song ID")
	}
	if song.Difficulty != "medium" {
		t.Errorf("expected default difficulty medium, got %q", song.Difficulty)
	}

	summaries, _ := m.Summaries()
	if summaries[0].SongCount != 1 {
		t.Errorf("index song count not updated: %d", summaries[0].SongCount)
	}

	updated, err = m.RemoveSong(list.ID, song.ID)
	if err != nil {
		t.Fatalf("RemoveSong failed: %v", err)
	}
	if len(updated.Songs) != 0 {
		t.Errorf("expected empty list, got %d songs", len(updated.Songs))
	}

	if _, err := m.RemoveSong(list.ID, "missing"); err != ErrSongNotFound {
		t.Errorf("expected ErrSongNotFound, got %v", err)
	}
}

func TestFilterSongs(t *testing.T) {
	m := newTestManager(t)

	list, err := m.CreateList("Party", "", "", "", "")
	if err != nil {
		t.Fatalf("CreateList failed: %v", err)
	}

	songs := []CustomSong{
		{Name: "Take On Me", Artist: "a-ha", Decade: "1980s", Genre: "Pop", Mood: "Upbeat"},
		{Name: "Billie Jean", Artist: "Michael Jackson", Decade: "1980s", Genre: "Pop", Mood: "Upbeat"},
		{Name: "November Rain", Artist: "Guns N' Roses", Decade: "1990s", Genre: "Rock", Mood: "Mellow"},
	}
	for _, s := range songs {
		if _, err := m.AddSong(list.ID, s); err != nil {
			t.Fatalf("AddSong failed: %v", err)
		}
	}

	// Filters are conjunctive.
	matched, err := m.FilterSongs(list.ID, Filters{Decade: "1980s", Mood: "upbeat"})
	if err != nil {
		t.Fatalf("FilterSongs failed: %v", err)
	}
	if len(matched) != 2 {
		t.Errorf("expected 2 matches, got %d", len(matched))
	}

	matched, err = m.FilterSongs(list.ID, Filters{Genre: "Rock"})
	if err != nil {
		t.Fatalf("FilterSongs failed: %v", err)
	}
	if len(matched) != 1 || matched[0].Name != "November Rain" {
		t.Errorf("unexpected matches: %+v", matched)
	}

	matched, err = m.FilterSongs(list.ID, Filters{Query: "jackson"})
	if err != nil {
		t.Fatalf("FilterSongs failed: %v", err)
	}
	if len(matched) != 1 || matched[0].Name != "Billie Jean" {
		t.Errorf("query filter should match on artist: %+v", matched)
	}

	matched, err = m.FilterSongs(list.ID, Filters{Limit: 1})
	if err != nil {
		t.Fatalf("FilterSongs failed: %v", err)
	}
	if len(matched) != 1 {
		t.Errorf("expected limit to cap results, got %d", len(matched))
	}
}

func TestIncrementPlayed(t *testing.T) {
	m := newTestManager(t)

	list, err := m.CreateList("Counted", "", "", "", "")
	if err != nil {
		t.Fatalf("CreateList failed: %v", err)
	}

	if err := m.IncrementPlayed(list.ID); err != nil {
		t.Fatalf("IncrementPlayed failed: %v", err)
	}
	got, _ := m.GetList(list.ID)
	if got.TimesPlayed != 1 {
		t.Errorf("expected times played 1, got %d", got.TimesPlayed)
	}
}

func TestCustomSongTrackConversion(t *testing.T) {
	song := CustomSong{
		ID:         "s1",
		Name:       "Take On Me",
		Artist:     "a-ha",
		Album:      "Hunting High and Low",
		PreviewURL: "https://cdn.example/p1",
		Decade:     "1980s",
	}

	track := song.Track()
	if track.Name != "Take On Me" {
		t.Errorf("unexpected title %q", track.Name)
	}
	if track.Artists[0].Name != "a-ha" {
		t.Errorf("unexpected artist %q", track.Artists[0].Name)
	}
	if track.Album.ReleaseDate != "1980s" {
		t.Errorf("expected decade as release hint, got %q", track.Album.ReleaseDate)
	}
}
