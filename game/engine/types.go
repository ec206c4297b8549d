package engine

import "strings"

// Artist is a single credited artist on a track.
type Artist struct {
	Name string `json:"name"`
}

// Album holds the album-level hint data shown before the first guess.
type Album struct {
	Name        string `json:"name"`
	ReleaseDate string `json:"release_date"`
}

// Track is the normalized song record the engine plays rounds against.
// The ID is only unique within one game's track list. PreviewURL may be
// empty; the engine tolerates hint-only rounds.
type Track struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Artists    []Artist `json:"artists"`
	Album      Album    `json:"album"`
	PreviewURL string   `json:"preview_url,omitempty"`
}

// ArtistNames joins all credited artists for hint display.
func (t Track) ArtistNames() string {
	names := make([]string, 0, len(t.Artists))
	for _, a := range t.Artists {
		names = append(names, a.Name)
	}
	return strings.Join(names, ", ")
}

// ReleaseYear returns the four-digit year prefix of the album release
// date, or the raw value when it is shorter than a year.
func (t Track) ReleaseYear() string {
	if len(t.Album.ReleaseDate) >= 4 {
		return t.Album.ReleaseDate[:4]
	}
	return t.Album.ReleaseDate
}

// RoundState tracks where the current round is in its two-attempt
// lifecycle.
type RoundState int

const (
	// AwaitingFirst means no guess has been scored for the current round.
	AwaitingFirst RoundState = iota

	// AwaitingSecond means the first guess missed and one retry remains.
	AwaitingSecond

	// Resolved means the round has received its final guess. The engine
	// advances past resolved rounds immediately, so callers should never
	// observe this state on the current round.
	Resolved
)

func (s RoundState) String() string {
	switch s {
	case AwaitingFirst:
		return "awaiting_first"
	case AwaitingSecond:
		return "awaiting_second"
	case Resolved:
		return "resolved"
	default:
		return "unknown"
	}
}

// GuessResult is the outcome of one guess submission.
type GuessResult struct {
	Correct       bool    `json:"correct"`
	PointsEarned  float64 `json:"points_earned"`
	CorrectAnswer string  `json:"correct_answer,omitempty"`
	ArtistHint    string  `json:"artist_hint,omitempty"`
	TotalScore    float64 `json:"total_score"`
	IsFinalGuess  bool    `json:"is_final_guess"`
}

// Stats is the mid-game progress snapshot.
type Stats struct {
	Score             float64 `json:"score"`
	QuestionsAnswered int     `json:"questions_answered"`
	CurrentRound      int     `json:"current_round"`
	TotalRounds       int     `json:"total_rounds"`
}

// FinalStats summarizes a finished (or abandoned) game.
type FinalStats struct {
	TotalRounds int     `json:"total_rounds"`
	Score       float64 `json:"score"`
	Percentage  float64 `json:"percentage"`
	Rank        string  `json:"rank"`
}
