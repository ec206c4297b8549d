package service

import (
	"time"

	"github.com/tunetrivia/tunetrivia/game/engine"
	"github.com/tunetrivia/tunetrivia/lists"
	"github.com/tunetrivia/tunetrivia/provider"
)

// StartRequest describes a new game to start.
type StartRequest struct {
	Provider    string               `json:"provider"`
	Mode        string               `json:"mode"`
	Query       string               `json:"query,omitempty"`
	NumRounds   int                  `json:"num_rounds"`
	Credentials provider.Credentials `json:"credentials,omitempty"`

	// Custom-list games only.
	CustomListID  string        `json:"custom_list_id,omitempty"`
	CustomFilters lists.Filters `json:"custom_filters,omitempty"`
}

// RoundPrompt is what the player sees for the current round: everything
// about the song except its title and artist.
type RoundPrompt struct {
	RoundNumber int    `json:"round_number"`
	TotalRounds int    `json:"total_rounds"`
	PreviewURL  string `json:"preview_url,omitempty"`
	AlbumName   string `json:"album_name,omitempty"`
	ReleaseYear string `json:"release_year,omitempty"`
}

// StartResult is returned from StartGame.
type StartResult struct {
	SessionID   string       `json:"session_id"`
	Provider    string       `json:"provider"`
	TotalRounds int          `json:"total_rounds"`
	CreatedAt   time.Time    `json:"created_at"`
	Prompt      *RoundPrompt `json:"prompt"`
}

// GuessOutcome is the result of one guess, with the data the client
// needs to render the next step.
type GuessOutcome struct {
	engine.GuessResult

	Stats        engine.Stats       `json:"stats"`
	GameComplete bool               `json:"game_complete"`
	NextPrompt   *RoundPrompt       `json:"next_prompt,omitempty"`
	FinalStats   *engine.FinalStats `json:"final_stats,omitempty"`
}

// GameSessionInfo provides information about a game session.
type GameSessionInfo struct {
	SessionID           string       `json:"session_id"`
	Provider            string       `json:"provider"`
	CreatedAt           time.Time    `json:"created_at"`
	LastActivityAt      time.Time    `json:"last_activity_at"`
	Stats               engine.Stats `json:"stats"`
	AwaitingSecondGuess bool         `json:"awaiting_second_guess"`
	Complete            bool         `json:"complete"`
	Prompt              *RoundPrompt `json:"prompt,omitempty"`
}

// SearchRequest describes an ad-hoc song search, used by the admin UI
// to find songs to add to custom lists.
type SearchRequest struct {
	Provider    string               `json:"provider"`
	Mode        string               `json:"mode"`
	Query       string               `json:"query"`
	Limit       int                  `json:"limit,omitempty"`
	Credentials provider.Credentials `json:"credentials,omitempty"`
}

// GameEvent is pushed to websocket subscribers when a session changes.
type GameEvent struct {
	Type      string    `json:"type"` // "game_started", "guess_submitted", "game_complete", "session_ended"
	SessionID string    `json:"session_id"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload,omitempty"`
}
