package validate

import (
	"strings"
	"testing"
)

func TestStartRequestValid(t *testing.T) {
	result := StartRequest("spotify", "genre", "rock", 10)
	if !result.Valid {
		t.Errorf("expected valid request, got errors: %v", result.Errors)
	}
	if result.Err() != nil {
		t.Errorf("expected nil error, got %v", result.Err())
	}
}

func TestStartRequestUnknownProvider(t *testing.T) {
	result := StartRequest("napster", "genre", "rock", 10)
	if result.Valid {
		t.Fatal("expected invalid request")
	}
	if !strings.Contains(result.Err().Error(), "napster") {
		t.Errorf("error should name the provider: %v", result.Err())
	}
}

func TestStartRequestRoundBounds(t *testing.T) {
	for _, rounds := range []int{0, -1, 51} {
		if result := StartRequest("demo", "demo", "", rounds); result.Valid {
			t.Errorf("expected %d rounds to be rejected", rounds)
		}
	}
	if result := StartRequest("demo", "demo", "", 50); !result.Valid {
		t.Errorf("expected 50 rounds to pass, got %v", result.Errors)
	}
}

func TestStartRequestQueryRequirement(t *testing.T) {
	if result := StartRequest("spotify", "artist", "  ", 5); result.Valid {
		t.Error("artist mode without query should fail")
	}
	// Demo and custom bring their own songs.
	if result := StartRequest("demo", "demo", "", 5); !result.Valid {
		t.Errorf("demo mode should not need a query: %v", result.Errors)
	}
	if result := StartRequest("custom", "custom", "", 5); !result.Valid {
		t.Errorf("custom mode should not need a query: %v", result.Errors)
	}
}

func TestStartRequestAccumulatesErrors(t *testing.T) {
	result := StartRequest("napster", "shuffle", "", 0)
	if len(result.Errors) < 3 {
		t.Errorf("expected all errors reported, got %v", result.Errors)
	}
}

func TestProviderAndModeCaseInsensitive(t *testing.T) {
	if !Provider("Spotify") || !Mode("GENRE") {
		t.Error("provider and mode checks should ignore case")
	}
}

func TestListDocumentValid(t *testing.T) {
	doc := `{
		"id": "list-1",
		"name": "80s Night",
		"songs": [
			{"id": "s1", "name": "Take On Me", "artist": "a-ha", "difficulty": "easy"},
			{"id": "s2", "name": "Billie Jean", "artist": "Michael Jackson"}
		]
	}`
	result := ListDocument([]byte(doc))
	if !result.Valid {
		t.Errorf("expected valid document, got errors: %v", result.Errors)
	}
}

func TestListDocumentProblems(t *testing.T) {
	doc := `{
		"id": "",
		"name": " ",
		"songs": [
			{"id": "s1", "name": "", "artist": "a-ha", "difficulty": "brutal"},
			{"id": "s1", "name": "Billie Jean", "artist": ""}
		]
	}`
	result := ListDocument([]byte(doc))
	if result.Valid {
		t.Fatal("expected invalid document")
	}

	joined := strings.Join(result.Errors, "\n")
	for _, want := range []string{"list id", "list name", "no name", "brutal", "duplicate song id", "no artist"} {
		if !strings.Contains(joined, want) {
			t.Errorf("expected error mentioning %q, got:\n%s", want, joined)
		}
	}
}

func TestListDocumentBadJSON(t *testing.T) {
	if result := ListDocument([]byte("{nope")); result.Valid {
		t.Error("expected invalid JSON to fail")
	}
}
