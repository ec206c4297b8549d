// Package provider implements the song sources the game can draw from.
//
// Each source satisfies the Provider interface and returns normalized
// engine.Track records, so the round, session, and store layers never
// see provider-specific shapes. The set of sources is closed: Spotify
// (client-credentials Web API), Deezer (public API, no auth), Demo
// (static catalog), and Custom (admin-curated lists, built by the
// service layer on top of package lists).
//
// Tracks without a playable preview URL are dropped during
// normalization; a hint-only game is worse than a shorter one.
package provider
