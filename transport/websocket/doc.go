// Package websocket provides real-time game event delivery for the
// music trivia game.
//
// The package uses a hub-and-spoke model where a central Hub manages
// all WebSocket connections. Each client connection is handled by a
// dedicated goroutine that manages reading, writing, and cleanup.
//
// Connections are session-aware: clients specify their session ID via
// query parameter (?session=<id>) when establishing the connection, and
// only receive events for that session. The game service pushes events
// (game_started, guess_submitted, game_complete, session_ended) through
// the hub's Notifier implementation.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run(ctx)
//
//	gameService := service.NewGameService(sessions, listMgr, hub)
package websocket
