// Package session provides session management for the music trivia game.
//
// The session package implements:
//   - Thread-safe session storage and retrieval
//   - Collision-resistant session ID generation (UUID v4)
//   - Activity tracking and idle-timeout eviction
//   - Per-session serialization of game state mutations
//
// Core Types:
//
// Manager is the registry of active sessions. Session binds one
// GameEngine to its metadata (creation time, last activity) and a
// mutex that serializes all engine access.
//
// Concurrency:
//
// Operations against different session IDs proceed in parallel.
// Operations against the same session are serialized through
// Session.WithEngine: two concurrent guesses can never both observe
// the same round state, so duplicate submissions (for example a
// retried HTTP request) are scored at most once.
//
// Cleanup:
//
// Every lookup refreshes the session's last-activity timestamp.
// CleanupExpired removes sessions idle longer than the given window;
// StartSweeper runs it on a ticker until the context is cancelled.
// Sessions are intentionally in-memory only and do not survive a
// process restart.
package session
