// Package validate checks inbound game requests and custom list
// documents before they reach the game service. It checks:
//   - provider and mode names against the supported sets
//   - round counts against the allowed range
//   - custom list JSON structure, required fields, and enum values
package validate

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Round count bounds for a single game.
const (
	MinRounds = 1
	MaxRounds = 50
)

var providers = map[string]bool{
	"spotify": true,
	"deezer":  true,
	"demo":    true,
	"custom":  true,
}

var modes = map[string]bool{
	"genre":    true,
	"playlist": true,
	"artist":   true,
	"demo":     true,
	"custom":   true,
}

var difficulties = map[string]bool{
	"easy":   true,
	"medium": true,
	"hard":   true,
}

// Result accumulates validation errors. Valid stays true until the
// first error is recorded.
type Result struct {
	Valid  bool
	Errors []string
}

func newResult() Result {
	return Result{Valid: true, Errors: []string{}}
}

func (r *Result) fail(format string, args ...any) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Err returns the accumulated errors as a single error, or nil when
// valid.
func (r Result) Err() error {
	if r.Valid {
		return nil
	}
	return fmt.Errorf("%s", strings.Join(r.Errors, "; "))
}

// Provider reports whether name is a supported song provider.
func Provider(name string) bool {
	return providers[strings.ToLower(name)]
}

// Mode reports whether name is a supported selection mode.
func Mode(name string) bool {
	return modes[strings.ToLower(name)]
}

// Difficulty reports whether name is a known song difficulty.
func Difficulty(name string) bool {
	return difficulties[strings.ToLower(name)]
}

// StartRequest validates the fields of a game start request.
func StartRequest(provider, mode, query string, rounds int) Result {
	result := newResult()

	if !Provider(provider) {
		result.fail("unknown provider %q", provider)
	}
	if !Mode(mode) {
		result.fail("unknown mode %q", mode)
	}
	if rounds < MinRounds || rounds > MaxRounds {
		result.fail("num_rounds must be between %d and %d, got %d", MinRounds, MaxRounds, rounds)
	}

	// Demo and custom modes carry their own song source; the rest need
	// a query to search with.
	m := strings.ToLower(mode)
	if m != "demo" && m != "custom" && strings.TrimSpace(query) == "" {
		result.fail("query is required for mode %q", mode)
	}

	return result
}

// listDocument mirrors the stored custom list JSON schema.
type listDocument struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Songs []struct {
		ID         string `json:"id"`
		Name       string `json:"name"`
		Artist     string `json:"artist"`
		Difficulty string `json:"difficulty"`
	} `json:"songs"`
}

// ListDocument validates a custom list JSON document, for import
// checks and admin tooling.
func ListDocument(data []byte) Result {
	result := newResult()

	var doc listDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		result.fail("invalid JSON: %v", err)
		return result
	}

	if doc.ID == "" {
		result.fail("list id is missing")
	}
	if strings.TrimSpace(doc.Name) == "" {
		result.fail("list name is missing")
	}

	seen := make(map[string]bool)
	for i, song := range doc.Songs {
		if song.ID == "" {
			result.fail("song %d has no id", i+1)
		} else if seen[song.ID] {
			result.fail("duplicate song id %q", song.ID)
		}
		seen[song.ID] = true

		if strings.TrimSpace(song.Name) == "" {
			result.fail("song %d has no name", i+1)
		}
		if strings.TrimSpace(song.Artist) == "" {
			result.fail("song %d has no artist", i+1)
		}
		if song.Difficulty != "" && !Difficulty(song.Difficulty) {
			result.fail("song %d has unknown difficulty %q", i+1, song.Difficulty)
		}
	}

	return result
}
