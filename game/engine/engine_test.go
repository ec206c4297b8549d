package engine

import "testing"

func testTracks() []Track {
	return []Track{
		{
			ID:      "t1",
			Name:    "Imagine",
			Artists: []Artist{{Name: "John Lennon"}},
			Album:   Album{Name: "Imagine", ReleaseDate: "1971-10-11"},
		},
		{
			ID:      "t2",
			Name:    "Bohemian Rhapsody",
			Artists: []Artist{{Name: "Queen"}},
			Album:   Album{Name: "A Night at the Opera", ReleaseDate: "1975-11-21"},
		},
		{
			ID:      "t3",
			Name:    "Billie Jean",
			Artists: []Artist{{Name: "Michael Jackson"}},
			Album:   Album{Name: "Thriller", ReleaseDate: "1982-01-02"},
		},
	}
}

func TestNewEngineClampsRounds(t *testing.T) {
	eng, err := NewEngine(testTracks(), 10)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	if got := eng.Stats().TotalRounds; got != 3 {
		t.Errorf("expected total rounds clamped to 3, got %d", got)
	}
}

func TestNewEngineRejectsZeroRounds(t *testing.T) {
	if _, err := NewEngine(testTracks(), 0); err != ErrInvalidRoundCount {
		t.Errorf("expected ErrInvalidRoundCount, got %v", err)
	}
}

func TestNewEngineEmptyTrackList(t *testing.T) {
	eng, err := NewEngine(nil, 5)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	if !eng.IsComplete() {
		t.Error("expected game over an empty track list to start complete")
	}
	if _, err := eng.SubmitGuess("anything"); err != ErrGameComplete {
		t.Errorf("expected ErrGameComplete, got %v", err)
	}
}

func TestCorrectFirstGuess(t *testing.T) {
	eng, err := NewEngine(testTracks()[:1], 1)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	result, err := eng.SubmitGuess("imagine")
	if err != nil {
		t.Fatalf("SubmitGuess failed: %v", err)
	}

	if !result.Correct {
		t.Error("expected guess to be correct")
	}
	if result.PointsEarned != 2.0 {
		t.Errorf("expected 2.0 display points, got %v", result.PointsEarned)
	}
	if result.TotalScore != 1.0 {
		t.Errorf("expected accumulator score 1.0, got %v", result.TotalScore)
	}
	if !result.IsFinalGuess {
		t.Error("expected a correct first guess to be final")
	}
	if result.ArtistHint != "" {
		t.Errorf("expected no artist hint on a correct guess, got %q", result.ArtistHint)
	}

	stats := eng.Stats()
	if stats.CurrentRound != 1 {
		t.Errorf("expected round advanced to 1, got %d", stats.CurrentRound)
	}
	if !eng.IsComplete() {
		t.Error("expected single-round game to be complete")
	}
}

func TestSecondGuessAfterMiss(t *testing.T) {
	eng, err := NewEngine(testTracks()[:1], 1)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	first, err := eng.SubmitGuess("nope")
	if err != nil {
		t.Fatalf("SubmitGuess failed: %v", err)
	}
	if first.Correct {
		t.Error("expected first guess to miss")
	}
	if first.IsFinalGuess {
		t.Error("expected first miss to leave the round open")
	}
	if first.ArtistHint != "John Lennon" {
		t.Errorf("expected artist hint, got %q", first.ArtistHint)
	}
	if first.PointsEarned != 0 {
		t.Errorf("expected 0 points on a miss, got %v", first.PointsEarned)
	}
	if !eng.AwaitingSecondGuess() {
		t.Error("expected engine to await the second guess")
	}
	if got := eng.Stats().CurrentRound; got != 0 {
		t.Errorf("round must not advance on a first miss, got %d", got)
	}

	second, err := eng.SubmitGuess("imagine")
	if err != nil {
		t.Fatalf("SubmitGuess failed: %v", err)
	}
	if !second.Correct {
		t.Error("expected second guess to be correct")
	}
	if second.PointsEarned != 1.0 {
		t.Errorf("expected 1.0 display points, got %v", second.PointsEarned)
	}
	if second.TotalScore != 0.5 {
		t.Errorf("expected accumulator score 0.5, got %v", second.TotalScore)
	}
	if !second.IsFinalGuess {
		t.Error("expected second guess to be final")
	}
}

func TestBothGuessesMiss(t *testing.T) {
	eng, err := NewEngine(testTracks()[:1], 1)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	if _, err := eng.SubmitGuess("nope"); err != nil {
		t.Fatalf("SubmitGuess failed: %v", err)
	}
	second, err := eng.SubmitGuess("still nope")
	if err != nil {
		t.Fatalf("SubmitGuess failed: %v", err)
	}

	if second.Correct {
		t.Error("expected second guess to miss")
	}
	if second.CorrectAnswer != "Imagine" {
		t.Errorf("expected revealed answer %q, got %q", "Imagine", second.CorrectAnswer)
	}
	if second.TotalScore != 0 {
		t.Errorf("expected score to stay 0, got %v", second.TotalScore)
	}
	if !second.IsFinalGuess {
		t.Error("expected exhausted round to be final")
	}
	if !eng.IsComplete() {
		t.Error("expected game to be complete after the only round resolved")
	}
}

func TestGuessAfterCompletion(t *testing.T) {
	eng, err := NewEngine(testTracks()[:2], 2)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	if _, err := eng.SubmitGuess("imagine"); err != nil {
		t.Fatalf("round 1 guess failed: %v", err)
	}
	if _, err := eng.SubmitGuess("bohemian"); err != nil {
		t.Fatalf("round 2 guess failed: %v", err)
	}

	stats := eng.Stats()
	if stats.CurrentRound != stats.TotalRounds {
		t.Errorf("expected current round %d == total rounds %d", stats.CurrentRound, stats.TotalRounds)
	}
	if _, err := eng.SubmitGuess("billie jean"); err != ErrGameComplete {
		t.Errorf("expected ErrGameComplete, got %v", err)
	}
}

func TestInvariantsAcrossFullGame(t *testing.T) {
	eng, err := NewEngine(testTracks(), 3)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	guesses := []string{"imagine", "wrong", "also wrong", "wrong", "billie"}
	for _, g := range guesses {
		if _, err := eng.SubmitGuess(g); err != nil {
			t.Fatalf("SubmitGuess(%q) failed: %v", g, err)
		}
		stats := eng.Stats()
		if stats.CurrentRound < 0 || stats.CurrentRound > stats.TotalRounds {
			t.Fatalf("round index %d out of range", stats.CurrentRound)
		}
		if stats.Score < 0 {
			t.Fatalf("score went negative: %v", stats.Score)
		}
		if stats.QuestionsAnswered > stats.TotalRounds {
			t.Fatalf("answered %d of %d rounds", stats.QuestionsAnswered, stats.TotalRounds)
		}
	}

	// Round 1 correct (1.0), round 2 missed twice (0.0), round 3 second
	// guess correct (0.5).
	stats := eng.Stats()
	if stats.Score != 1.5 {
		t.Errorf("expected final score 1.5, got %v", stats.Score)
	}
	if stats.QuestionsAnswered != 3 {
		t.Errorf("expected 3 answered rounds, got %d", stats.QuestionsAnswered)
	}
}

func TestFinalStats(t *testing.T) {
	eng, err := NewEngine(testTracks()[:2], 2)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	if _, err := eng.SubmitGuess("imagine"); err != nil {
		t.Fatalf("SubmitGuess failed: %v", err)
	}
	if _, err := eng.SubmitGuess("bohemian"); err != nil {
		t.Fatalf("SubmitGuess failed: %v", err)
	}

	final := eng.FinalStats()
	if final.Percentage != 100 {
		t.Errorf("expected 100%%, got %v", final.Percentage)
	}
	if final.Rank != "MUSIC MASTER" {
		t.Errorf("expected MUSIC MASTER, got %q", final.Rank)
	}

	// Pure function of state: repeated calls agree.
	if again := eng.FinalStats(); again != final {
		t.Errorf("FinalStats not idempotent: %+v vs %+v", final, again)
	}
}

func TestFinalStatsNoAnswers(t *testing.T) {
	eng, err := NewEngine(testTracks(), 3)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	final := eng.FinalStats()
	if final.Percentage != 0 {
		t.Errorf("expected 0%% with no answers, got %v", final.Percentage)
	}
	if final.Rank != "Keep practicing" {
		t.Errorf("expected lowest rank, got %q", final.Rank)
	}
}

func TestEngineCopiesTracks(t *testing.T) {
	tracks := testTracks()
	eng, err := NewEngine(tracks, 3)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	// Mutating the caller's slice must not change the answer key.
	tracks[0].Name = "Something Else"

	result, err := eng.SubmitGuess("imagine")
	if err != nil {
		t.Fatalf("SubmitGuess failed: %v", err)
	}
	if !result.Correct {
		t.Error("expected original title to remain the answer")
	}
}

func TestCurrentTrack(t *testing.T) {
	eng, err := NewEngine(testTracks()[:1], 1)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	track, ok := eng.CurrentTrack()
	if !ok || track.Name != "Imagine" {
		t.Errorf("expected current track Imagine, got %q (ok=%v)", track.Name, ok)
	}

	if _, err := eng.SubmitGuess("imagine"); err != nil {
		t.Fatalf("SubmitGuess failed: %v", err)
	}
	if _, ok := eng.CurrentTrack(); ok {
		t.Error("expected no current track after completion")
	}
}
