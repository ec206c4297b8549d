// Package service provides the business logic layer for the music
// trivia game.
//
// The service package implements:
//   - Multi-session game management
//   - Song fetching through the pluggable provider layer
//   - Guess processing and scoring
//   - Session lifecycle management
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP)
// and the game engine, providing session isolation, song selection, and
// business logic orchestration. Each session maintains its own game
// engine instance with independent state; all guesses for a session are
// serialized through the session's lock.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	gameService := service.NewGameService(sessionMgr, listMgr, nil)
//
//	result, err := gameService.StartGame(ctx, service.StartRequest{
//		Provider:  "demo",
//		Mode:      "demo",
//		NumRounds: 5,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	outcome, err := gameService.SubmitGuess(ctx, result.SessionID, "bohemian rhapsody")
package service
