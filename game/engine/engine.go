package engine

import "errors"

var (
	ErrGameComplete      = errors.New("game already completed")
	ErrInvalidRoundState = errors.New("invalid round state")
	ErrInvalidRoundCount = errors.New("round count must be at least 1")
)

// GameEngine runs one game over a fixed track list. The list must
// already be shuffled and is never reordered here; the engine copies it
// at construction so mid-game mutation by the caller cannot
// desynchronize guess comparison.
type GameEngine struct {
	tracks      []Track
	totalRounds int

	currentRound      int
	score             float64
	questionsAnswered int
	roundState        RoundState
	guessCount        int
}

// NewEngine creates a game over the given tracks. totalRounds is
// clamped to len(tracks) when the provider returned fewer songs than
// requested; an empty track list yields a game that is already
// complete, which callers must check for before assuming a playable
// round exists.
func NewEngine(tracks []Track, totalRounds int) (*GameEngine, error) {
	if totalRounds < 1 {
		return nil, ErrInvalidRoundCount
	}
	if totalRounds > len(tracks) {
		totalRounds = len(tracks)
	}
	copied := make([]Track, totalRounds)
	copy(copied, tracks[:totalRounds])

	return &GameEngine{
		tracks:      copied,
		totalRounds: totalRounds,
		roundState:  AwaitingFirst,
	}, nil
}

// IsComplete reports whether every round has been resolved.
func (e *GameEngine) IsComplete() bool {
	return e.currentRound >= e.totalRounds
}

// CurrentTrack returns the track for the round in progress, or false
// when the game is complete.
func (e *GameEngine) CurrentTrack() (Track, bool) {
	if e.IsComplete() {
		return Track{}, false
	}
	return e.tracks[e.currentRound], true
}

// Tracks returns the tracks selected for this game, in play order.
func (e *GameEngine) Tracks() []Track {
	out := make([]Track, len(e.tracks))
	copy(out, e.tracks)
	return out
}

// AwaitingSecondGuess reports whether the current round's first guess
// missed and a retry is still open.
func (e *GameEngine) AwaitingSecondGuess() bool {
	return e.roundState == AwaitingSecond
}

// SubmitGuess scores one guess against the current round.
//
// The server-side round index is authoritative: clients cannot skip or
// rewind rounds, every guess applies to the round in progress. On a
// first-attempt miss the artist hint is revealed and the round stays
// open; any final attempt (correct or not) resolves the round and
// advances the game.
func (e *GameEngine) SubmitGuess(guess string) (*GuessResult, error) {
	if e.IsComplete() {
		return nil, ErrGameComplete
	}
	if e.roundState == Resolved || e.guessCount >= 2 {
		// Rounds advance immediately on resolution, so this only fires if
		// per-game serialization was violated upstream.
		return nil, ErrInvalidRoundState
	}

	track := e.tracks[e.currentRound]
	correct := ValidateGuess(guess, track.Name)
	e.guessCount++

	attempt := 1
	if e.roundState == AwaitingSecond {
		attempt = 2
	}

	result := &GuessResult{
		Correct:      correct,
		PointsEarned: DisplayPoints(attempt, correct),
		IsFinalGuess: attempt == 2 || correct,
	}

	if attempt == 1 && !correct {
		e.roundState = AwaitingSecond
		result.ArtistHint = track.ArtistNames()
		result.TotalScore = e.score
		return result, nil
	}

	// Final attempt for this round: settle score and advance.
	e.score += ScoreGuess(attempt, correct)
	e.questionsAnswered++
	e.currentRound++
	e.roundState = AwaitingFirst
	e.guessCount = 0

	if !correct {
		result.CorrectAnswer = track.Name
	}
	result.TotalScore = e.score
	return result, nil
}

// Stats returns the mid-game progress snapshot.
func (e *GameEngine) Stats() Stats {
	return Stats{
		Score:             e.score,
		QuestionsAnswered: e.questionsAnswered,
		CurrentRound:      e.currentRound,
		TotalRounds:       e.totalRounds,
	}
}

// FinalStats computes the end-of-game summary. It is a pure function of
// the engine state and may be called repeatedly, including before the
// game is complete (partial games rank on rounds answered so far).
func (e *GameEngine) FinalStats() FinalStats {
	percentage := 0.0
	if e.questionsAnswered > 0 {
		percentage = e.score / float64(e.questionsAnswered) * 100
	}
	return FinalStats{
		TotalRounds: e.totalRounds,
		Score:       e.score,
		Percentage:  percentage,
		Rank:        RankFor(percentage),
	}
}
