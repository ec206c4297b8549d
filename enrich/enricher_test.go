package enrich

import (
	"reflect"
	"testing"
)

func TestEnrichKnownArtist(t *testing.T) {
	s := Enrich("Queen", "Bohemian Rhapsody", 1975)

	if s.Genre != "Rock" {
		t.Errorf("expected Rock, got %q", s.Genre)
	}
	if s.Style != "Classic" {
		t.Errorf("expected Classic, got %q", s.Style)
	}
	if s.Decade != "1970s" {
		t.Errorf("expected 1970s, got %q", s.Decade)
	}
}

func TestEnrichGenreKeyword(t *testing.T) {
	s := Enrich("DJ Example", "Some Track", 2015)
	if s.Genre != "Electronic" {
		t.Errorf("expected Electronic from dj keyword, got %q", s.Genre)
	}
	if s.Style != "Contemporary" {
		t.Errorf("expected Contemporary, got %q", s.Style)
	}
}

func TestEnrichMoodFromTitle(t *testing.T) {
	tests := []struct {
		track string
		mood  string
	}{
		{"Dance the Night Away", "Upbeat"},
		{"Love Me Tender", "Romantic"},
		{"Purple Rain", "Melancholic"},
		{"The Tears of a Clown", "Upbeat"}, // exception list beats sad keywords
	}
	for _, tt := range tests {
		if s := Enrich("Unknown Artist", tt.track, 0); s.Mood != tt.mood {
			t.Errorf("Enrich(%q) mood = %q, want %q", tt.track, s.Mood, tt.mood)
		}
	}
}

func TestEnrichUnknownEverything(t *testing.T) {
	s := Enrich("Zzyzx", "Qwerty", 0)
	if s.Genre != "" || s.Mood != "" || s.Style != "" || s.Decade != "" {
		t.Errorf("expected empty suggestion, got %+v", s)
	}
	if len(s.Tags) != 0 {
		t.Errorf("expected no tags, got %v", s.Tags)
	}
}

func TestEnrichDeterministic(t *testing.T) {
	first := Enrich("Queen", "Somebody to Love", 1976)
	for i := 0; i < 10; i++ {
		if again := Enrich("Queen", "Somebody to Love", 1976); !reflect.DeepEqual(first, again) {
			t.Fatalf("Enrich not deterministic: %+v vs %+v", first, again)
		}
	}
}

func TestDecadeFor(t *testing.T) {
	if got := DecadeFor(1987); got != "1980s" {
		t.Errorf("DecadeFor(1987) = %q", got)
	}
	if got := DecadeFor(0); got != "" {
		t.Errorf("DecadeFor(0) = %q, want empty", got)
	}
}

func TestYearFromReleaseDate(t *testing.T) {
	tests := []struct {
		date string
		year int
	}{
		{"1975-11-21", 1975},
		{"1975", 1975},
		{"Unknown", 0},
		{"", 0},
		{"abc", 0},
	}
	for _, tt := range tests {
		if got := YearFromReleaseDate(tt.date); got != tt.year {
			t.Errorf("YearFromReleaseDate(%q) = %d, want %d", tt.date, got, tt.year)
		}
	}
}
