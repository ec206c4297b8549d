// Package api provides the HTTP REST API for the music trivia game.
//
// The api package implements:
//   - RESTful endpoints for game operations
//   - Session management endpoints
//   - Song search and preview streaming
//   - JWT-protected admin endpoints for custom list curation
//   - WebSocket upgrade handling
//   - Prometheus metrics exposition
//
// Endpoints:
//
// Game Operations:
//   - POST /api/game/start - Start a new game
//   - POST /api/game/guess - Submit a guess for a session
//   - GET /api/game/session/{id} - Get session state
//   - GET /api/game/sessions - List active sessions
//   - GET /api/game/stats/{id} - Get final statistics
//   - DELETE /api/game/session/{id} - End a session
//   - GET /api/game/session/{id}/preview - Stream the current round's clip
//
// Song Discovery:
//   - POST /api/songs/search - Search a provider for songs
//
// Admin (JWT required, obtain via POST /api/admin/login):
//   - GET/POST /api/admin/lists - List or create custom lists
//   - GET/DELETE /api/admin/lists/{id} - Fetch or delete a list
//   - POST /api/admin/lists/{id}/songs - Add a song
//   - DELETE /api/admin/lists/{id}/songs/{songID} - Remove a song
//   - POST /api/admin/lists/validate - Validate a list document
//   - GET /api/admin/suggest - Suggest metadata for a song
//   - POST /api/admin/library - Save learned metadata
//   - GET /api/admin/library/stats - Library statistics
//
// All endpoints accept and return JSON. Guess submissions carry the
// session ID in the body rather than the path so retried requests stay
// a single round-trip.
package api
