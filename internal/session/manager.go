package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("session not found")

// Session binds an opaque token to an authenticated user. The token is the
// only thing handed to the caller; identity resolution happens server-side.
type Session struct {
	Token          string
	UserID         string
	Username       string
	StartedAt      time.Time
	LastActivityAt time.Time
}

// Manager holds live sessions in memory and expires the inactive ones.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
}

func NewManager(ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Manager{
		sessions: make(map[string]*Session),
		ttl:      ttl,
	}
}

// Create opens a session for the user and returns its opaque token.
func (m *Manager) Create(userID, username string) *Session {
	now := time.Now().UTC()
	s := &Session{
		Token:          uuid.NewString(),
		UserID:         userID,
		Username:       username,
		StartedAt:      now,
		LastActivityAt: now,
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.Token] = s
	return clone(s)
}

// Resolve maps a token to its session and refreshes the activity clock.
// Expired tokens resolve to ErrNotFound exactly like unknown ones.
func (m *Manager) Resolve(token string) (*Session, error) {
	now := time.Now().UTC()

	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[token]
	if !ok {
		return nil, ErrNotFound
	}
	if now.Sub(s.LastActivityAt) > m.ttl {
		delete(m.sessions, token)
		return nil, ErrNotFound
	}
	s.LastActivityAt = now
	return clone(s), nil
}

// Destroy removes the session. Destroying an unknown token is a no-op.
func (m *Manager) Destroy(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
}

func (m *Manager) ActiveCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// StartJanitor periodically drops expired sessions until ctx is done.
func (m *Manager) StartJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.expireInactive()
			}
		}
	}()
}

func (m *Manager) expireInactive() {
	now := time.Now().UTC()
	m.mu.Lock()
	defer m.mu.Unlock()
	for token, s := range m.sessions {
		if now.Sub(s.LastActivityAt) > m.ttl {
			delete(m.sessions, token)
		}
	}
}

func clone(s *Session) *Session {
	c := *s
	return &c
}
