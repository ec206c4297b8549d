package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/tunetrivia/tunetrivia/game/engine"
	"github.com/tunetrivia/tunetrivia/game/session"
	"github.com/tunetrivia/tunetrivia/lists"
	"github.com/tunetrivia/tunetrivia/metrics"
	"github.com/tunetrivia/tunetrivia/provider"
	"github.com/tunetrivia/tunetrivia/validate"
)

// minFetchSize keeps the candidate pool larger than the round count so
// shuffling actually varies the playlist between games.
const minFetchSize = 25

// defaultSearchLimit caps ad-hoc song searches.
const defaultSearchLimit = 20

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions *session.Manager
	lists    *lists.Manager
	notifier Notifier

	// newProvider is swapped out in tests.
	newProvider func(ctx context.Context, kind provider.Kind, creds provider.Credentials) (provider.Provider, error)
}

// NewGameService creates a new game service instance. listMgr may be
// nil, which disables custom-list games. notifier may be nil, which
// disables event broadcasting.
func NewGameService(sessions *session.Manager, listMgr *lists.Manager, notifier Notifier) GameService {
	return &gameServiceImpl{
		sessions:    sessions,
		lists:       listMgr,
		notifier:    notifier,
		newProvider: provider.New,
	}
}

// StartGame fetches songs, shuffles them, and creates a session.
func (s *gameServiceImpl) StartGame(ctx context.Context, req StartRequest) (*StartResult, error) {
	if result := validate.StartRequest(req.Provider, req.Mode, req.Query, req.NumRounds); !result.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, result.Err())
	}

	tracks, err := s.fetchTracks(ctx, req)
	if err != nil {
		return nil, err
	}

	rand.Shuffle(len(tracks), func(i, j int) {
		tracks[i], tracks[j] = tracks[j], tracks[i]
	})

	sess, err := s.sessions.Create(tracks, req.NumRounds, req.Provider)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	metrics.SessionsCreated.WithLabelValues(req.Provider).Inc()
	metrics.SessionsActive.Set(float64(s.sessions.Count()))

	result := &StartResult{
		SessionID: sess.ID,
		Provider:  sess.Provider,
		CreatedAt: sess.CreatedAt,
	}
	sess.WithEngine(func(e *engine.GameEngine) error {
		result.TotalRounds = e.Stats().TotalRounds
		result.Prompt = promptFor(e)
		return nil
	})

	s.broadcast(GameEvent{
		Type:      "game_started",
		SessionID: sess.ID,
		Payload:   result,
	})
	return result, nil
}

// SubmitGuess runs one guess through the session's engine. The
// session lock serializes concurrent submissions, so a duplicated
// request scores at most once.
func (s *gameServiceImpl) SubmitGuess(ctx context.Context, sessionID, guess string) (*GuessOutcome, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	var outcome *GuessOutcome
	err = sess.WithEngine(func(e *engine.GameEngine) error {
		result, err := e.SubmitGuess(guess)
		if err != nil {
			return err
		}

		outcome = &GuessOutcome{
			GuessResult: *result,
			Stats:       e.Stats(),
		}
		if e.IsComplete() {
			outcome.GameComplete = true
			final := e.FinalStats()
			outcome.FinalStats = &final
		} else if result.IsFinalGuess {
			outcome.NextPrompt = promptFor(e)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if outcome.Correct {
		metrics.GuessesTotal.WithLabelValues("correct").Inc()
	} else {
		metrics.GuessesTotal.WithLabelValues("incorrect").Inc()
	}

	s.broadcast(GameEvent{
		Type:      "guess_submitted",
		SessionID: sessionID,
		Payload:   outcome,
	})
	if outcome.GameComplete {
		s.broadcast(GameEvent{
			Type:      "game_complete",
			SessionID: sessionID,
			Payload:   outcome.FinalStats,
		})
	}
	return outcome, nil
}

// EndSession deletes a session and returns its final stats.
func (s *gameServiceImpl) EndSession(ctx context.Context, sessionID string) (*engine.FinalStats, error) {
	final, err := s.GetFinalStats(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	s.sessions.Delete(sessionID)
	metrics.SessionsActive.Set(float64(s.sessions.Count()))

	s.broadcast(GameEvent{
		Type:      "session_ended",
		SessionID: sessionID,
		Payload:   final,
	})
	return final, nil
}

// GetSessionInfo retrieves session information
func (s *gameServiceImpl) GetSessionInfo(ctx context.Context, sessionID string) (*GameSessionInfo, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	return s.sessionInfo(sess), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*GameSessionInfo, error) {
	sessions := s.sessions.List()
	result := make([]*GameSessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, s.sessionInfo(sess))
	}
	return result, nil
}

// GetFinalStats returns the end-of-game summary. It works mid-game
// too, summarizing only the rounds answered so far.
func (s *gameServiceImpl) GetFinalStats(ctx context.Context, sessionID string) (*engine.FinalStats, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	var final engine.FinalStats
	sess.WithEngine(func(e *engine.GameEngine) error {
		final = e.FinalStats()
		return nil
	})
	return &final, nil
}

// SearchSongs runs an ad-hoc provider search without starting a game.
func (s *gameServiceImpl) SearchSongs(ctx context.Context, req SearchRequest) ([]engine.Track, error) {
	if !validate.Provider(req.Provider) {
		return nil, fmt.Errorf("%w: %q", provider.ErrUnknownProvider, req.Provider)
	}
	limit := req.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	if provider.Kind(req.Provider) == provider.KindCustom {
		return s.customSearch(req.Query, limit)
	}

	p, err := s.newProvider(ctx, provider.Kind(req.Provider), req.Credentials)
	if err != nil {
		return nil, err
	}
	return s.timedFetch(ctx, req.Provider, p, provider.Mode(req.Mode), req.Query, limit)
}

func (s *gameServiceImpl) fetchTracks(ctx context.Context, req StartRequest) ([]engine.Track, error) {
	if provider.Kind(req.Provider) == provider.KindCustom {
		return s.customTracks(req)
	}

	p, err := s.newProvider(ctx, provider.Kind(req.Provider), req.Credentials)
	if err != nil {
		return nil, err
	}

	limit := req.NumRounds
	if limit < minFetchSize {
		limit = minFetchSize
	}
	return s.timedFetch(ctx, req.Provider, p, provider.Mode(req.Mode), req.Query, limit)
}

func (s *gameServiceImpl) timedFetch(ctx context.Context, name string, p provider.Provider, mode provider.Mode, query string, limit int) ([]engine.Track, error) {
	start := time.Now()
	tracks, err := provider.Fetch(ctx, p, mode, query, limit)
	metrics.ProviderFetchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ProviderRequests.WithLabelValues(name, "error").Inc()
		return nil, err
	}
	metrics.ProviderRequests.WithLabelValues(name, "ok").Inc()
	return tracks, nil
}

// customTracks builds a game playlist from a stored custom list,
// optionally narrowed by filters.
func (s *gameServiceImpl) customTracks(req StartRequest) ([]engine.Track, error) {
	if s.lists == nil {
		return nil, fmt.Errorf("%w: custom lists are not configured", ErrInvalidRequest)
	}
	if req.CustomListID == "" {
		return nil, fmt.Errorf("%w: custom_list_id is required for custom games", ErrInvalidRequest)
	}

	songs, err := s.lists.FilterSongs(req.CustomListID, req.CustomFilters)
	if err != nil {
		return nil, err
	}
	if len(songs) == 0 {
		return nil, fmt.Errorf("%w in list %q", provider.ErrNoSongsFound, req.CustomListID)
	}

	tracks := make([]engine.Track, 0, len(songs))
	for _, song := range songs {
		tracks = append(tracks, song.Track())
	}

	// Play count is best-effort bookkeeping; the game proceeds even if
	// the write fails.
	s.lists.IncrementPlayed(req.CustomListID)

	metrics.ProviderRequests.WithLabelValues("custom", "ok").Inc()
	return tracks, nil
}

// customSearch filters across every stored list by name or artist.
func (s *gameServiceImpl) customSearch(query string, limit int) ([]engine.Track, error) {
	if s.lists == nil {
		return nil, fmt.Errorf("%w: custom lists are not configured", ErrInvalidRequest)
	}

	summaries, err := s.lists.Summaries()
	if err != nil {
		return nil, err
	}

	var tracks []engine.Track
	for _, summary := range summaries {
		songs, err := s.lists.FilterSongs(summary.ID, lists.Filters{Query: query})
		if err != nil {
			continue
		}
		for _, song := range songs {
			tracks = append(tracks, song.Track())
			if len(tracks) >= limit {
				return tracks, nil
			}
		}
	}
	return tracks, nil
}

func (s *gameServiceImpl) sessionInfo(sess *session.Session) *GameSessionInfo {
	info := &GameSessionInfo{
		SessionID:      sess.ID,
		Provider:       sess.Provider,
		CreatedAt:      sess.CreatedAt,
		LastActivityAt: sess.LastActivity(),
	}
	sess.WithEngine(func(e *engine.GameEngine) error {
		info.Stats = e.Stats()
		info.AwaitingSecondGuess = e.AwaitingSecondGuess()
		info.Complete = e.IsComplete()
		info.Prompt = promptFor(e)
		return nil
	})
	return info
}

// promptFor builds the player-facing view of the current round, or nil
// when the game is over. Must be called with the session lock held.
func promptFor(e *engine.GameEngine) *RoundPrompt {
	track, ok := e.CurrentTrack()
	if !ok {
		return nil
	}
	stats := e.Stats()
	return &RoundPrompt{
		RoundNumber: stats.CurrentRound + 1,
		TotalRounds: stats.TotalRounds,
		PreviewURL:  track.PreviewURL,
		AlbumName:   track.Album.Name,
		ReleaseYear: track.ReleaseYear(),
	}
}

func (s *gameServiceImpl) broadcast(event GameEvent) {
	if s.notifier == nil {
		return
	}
	event.Timestamp = time.Now().UTC()
	s.notifier.Broadcast(event)
}
