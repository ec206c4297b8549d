// Package engine provides the core game logic for the music trivia game.
//
// The engine package implements the game mechanics including:
//   - Round progression over a fixed, pre-shuffled track list
//   - Guess validation with lenient title matching
//   - Two-attempt scoring with hint escalation
//   - Final statistics and rank calculation
//
// Core Types:
//
// GameEngine owns the state of one game: the ordered track list, the
// current round index, the score accumulator, and the pending
// second-guess flag. Track is the normalized song record consumed by
// the engine, independent of which provider produced it.
//
// Usage:
//
//	eng, err := engine.NewEngine(tracks, 10)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := eng.SubmitGuess("bohemian")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(result.Correct, result.PointsEarned)
//
// Scoring:
//
// A correct first guess adds 1.0 to the internal score accumulator and
// reports 2.0 display points; a correct second guess adds 0.5 and
// reports 1.0. The two scales are intentionally distinct: the
// accumulator keeps half-point granularity for percentage math while
// the API reports doubled points to players. Do not unify them.
//
// Concurrency:
//
// GameEngine is not safe for concurrent use. Callers must serialize
// access per game; the session package does this with a per-session
// mutex.
package engine
