package service

import (
	"context"
	"errors"

	"github.com/tunetrivia/tunetrivia/game/engine"
)

// ErrInvalidRequest wraps request validation failures so transports
// can map them to client errors.
var ErrInvalidRequest = errors.New("invalid request")

// GameService defines all game-related operations
type GameService interface {
	// Game Lifecycle
	StartGame(ctx context.Context, req StartRequest) (*StartResult, error)
	SubmitGuess(ctx context.Context, sessionID, guess string) (*GuessOutcome, error)
	EndSession(ctx context.Context, sessionID string) (*engine.FinalStats, error)

	// Game State
	GetSessionInfo(ctx context.Context, sessionID string) (*GameSessionInfo, error)
	ListSessions(ctx context.Context) ([]*GameSessionInfo, error)
	GetFinalStats(ctx context.Context, sessionID string) (*engine.FinalStats, error)

	// Song Discovery
	SearchSongs(ctx context.Context, req SearchRequest) ([]engine.Track, error)
}

// Notifier pushes game events to connected clients. The websocket hub
// implements it; a nil Notifier disables broadcasting.
type Notifier interface {
	Broadcast(event GameEvent)
}
