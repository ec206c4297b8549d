// Package mcp provides a Model Context Protocol server for the music
// trivia game.
//
// The mcp package implements:
//   - MCP server for AI agent integration
//   - Tool definitions for game operations
//   - Session-aware command execution
//   - Stdio and HTTP transport modes
//
// MCP Tools:
//
// The package exposes the following tools for AI agents:
//   - start_game: Start a game against a song provider
//   - submit_guess: Submit a guess for the current round
//   - get_session: Get session state and the current round prompt
//   - list_sessions: List all active sessions
//   - final_stats: Get end-of-game score, percentage, and rank
//   - end_session: End a session early
//   - search_songs: Search a provider for songs
//   - game_instructions: Get the game rules
//
// The server is a thin client that proxies every tool call to the REST
// API, so MCP agents and browser players share identical game
// semantics.
package mcp
