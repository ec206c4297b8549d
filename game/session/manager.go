package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tunetrivia/tunetrivia/game/engine"
)

var ErrSessionNotFound = errors.New("session not found")

// DefaultIdleTimeout is how long a session may sit untouched before the
// sweeper evicts it.
const DefaultIdleTimeout = 30 * time.Minute

// Session is one active game. The engine and the activity timestamp are
// never accessed directly by callers; the session mutex serializes every
// read-modify-write so concurrent requests against the same session
// cannot double-score a round or race on the idle clock. ID, Provider,
// and CreatedAt are immutable after Create.
type Session struct {
	ID        string
	Provider  string
	CreatedAt time.Time

	mu           sync.Mutex
	lastActivity time.Time
	engine       *engine.GameEngine
}

// WithEngine runs fn with exclusive access to the session's engine.
func (s *Session) WithEngine(fn func(*engine.GameEngine) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.engine)
}

// LastActivity returns when the session was last externally accessed.
func (s *Session) LastActivity() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActivity
}

func (s *Session) touch() {
	s.mu.Lock()
	s.lastActivity = time.Now()
	s.mu.Unlock()
}

// Manager owns the lifetime of all active sessions. It is constructed
// explicitly and injected into the service layer; there is no ambient
// process-wide instance.
type Manager struct {
	sessions map[string]*Session
	mu       sync.RWMutex
}

// NewManager creates an empty session manager.
func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
	}
}

// Create builds a game over the given tracks and registers it under a
// fresh UUID. The tracks must already be shuffled; round clamping is
// the engine's job.
func (m *Manager) Create(tracks []engine.Track, totalRounds int, provider string) (*Session, error) {
	eng, err := engine.NewEngine(tracks, totalRounds)
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.NewString()
	for {
		if _, exists := m.sessions[id]; !exists {
			break
		}
		id = uuid.NewString()
	}

	now := time.Now()
	sess := &Session{
		ID:           id,
		Provider:     provider,
		CreatedAt:    now,
		lastActivity: now,
		engine:       eng,
	}
	m.sessions[id] = sess
	return sess, nil
}

// Get retrieves a session and refreshes its activity timestamp. Every
// externally observable read or write must come through here so idle
// detection stays accurate.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	sess, exists := m.sessions[id]
	m.mu.RUnlock()

	if !exists {
		return nil, ErrSessionNotFound
	}
	sess.touch()
	return sess, nil
}

// Delete removes a session. Deleting an unknown ID is not an error
// here; the route layer decides whether to report 404. The returned
// bool says whether anything was removed.
func (m *Manager) Delete(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sessions[id]; !exists {
		return false
	}
	delete(m.sessions, id)
	return true
}

// List returns all active sessions.
func (m *Manager) List() []*Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*Session, 0, len(m.sessions))
	for _, sess := range m.sessions {
		result = append(result, sess)
	}
	return result
}

// Count returns the number of active sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// CleanupExpired removes sessions idle longer than maxAge and returns
// how many were evicted.
func (m *Manager) CleanupExpired(maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for id, sess := range m.sessions {
		if sess.LastActivity().Before(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

// StartSweeper periodically evicts idle sessions until ctx is done.
func (m *Manager) StartSweeper(ctx context.Context, interval, maxAge time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if removed := m.CleanupExpired(maxAge); removed > 0 {
					log.Printf("Swept %d expired sessions (%d active)", removed, m.Count())
				}
			}
		}
	}()
}
