package engine

import "strings"

// Scoring constants. The accumulator values feed the internal score and
// the percentage math; the display values are what players see in
// points_earned. Both scales are part of the wire contract.
const (
	FirstGuessScore  = 1.0
	SecondGuessScore = 0.5
	NoGuessScore     = 0.0

	FirstGuessDisplayPoints  = 2.0
	SecondGuessDisplayPoints = 1.0
)

// Rank thresholds as inclusive lower bounds on the final percentage.
const (
	rankMasterThreshold = 80
	rankGreatThreshold  = 60
	rankNotBadThreshold = 40
)

// ValidateGuess reports whether a guess matches the correct title.
//
// Both strings are trimmed and lowercased; the guess is correct when it
// equals the title or is a non-empty substring of it. The substring rule
// is intentional fuzzy matching so partial titles ("bohemian") count.
// A blank guess never matches.
func ValidateGuess(guess, correctTitle string) bool {
	g := strings.ToLower(strings.TrimSpace(guess))
	if g == "" {
		return false
	}
	title := strings.ToLower(strings.TrimSpace(correctTitle))
	return g == title || strings.Contains(title, g)
}

// ScoreGuess returns the accumulator increment for a guess on the given
// attempt. Attempt must be 1 or 2; anything else is a contract
// violation by the caller.
func ScoreGuess(attempt int, correct bool) float64 {
	if attempt != 1 && attempt != 2 {
		panic("engine: attempt must be 1 or 2")
	}
	if !correct {
		return NoGuessScore
	}
	if attempt == 1 {
		return FirstGuessScore
	}
	return SecondGuessScore
}

// DisplayPoints maps an attempt outcome to the doubled points reported
// to players.
func DisplayPoints(attempt int, correct bool) float64 {
	if attempt != 1 && attempt != 2 {
		panic("engine: attempt must be 1 or 2")
	}
	if !correct {
		return 0
	}
	if attempt == 1 {
		return FirstGuessDisplayPoints
	}
	return SecondGuessDisplayPoints
}

// RankFor returns the rank label for a final percentage. The thresholds
// are fixed business constants shared by every game.
func RankFor(percentage float64) string {
	switch {
	case percentage >= rankMasterThreshold:
		return "MUSIC MASTER"
	case percentage >= rankGreatThreshold:
		return "Great job"
	case percentage >= rankNotBadThreshold:
		return "Not bad"
	default:
		return "Keep practicing"
	}
}
