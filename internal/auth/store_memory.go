package auth

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

type MemoryStore struct {
	mu     sync.RWMutex
	byID   map[string]*User
	byName map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:   make(map[string]*User),
		byName: make(map[string]string),
	}
}

func (s *MemoryStore) GetUser(_ context.Context, id string) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.byID[id]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return *u, nil
}

func (s *MemoryStore) GetUserByUsername(_ context.Context, username string) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byName[username]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return *s.byID[id], nil
}

func (s *MemoryStore) CreateUser(_ context.Context, username, passwordHash string) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.byName[username]; taken {
		return User{}, ErrUsernameTaken
	}
	u := &User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: passwordHash,
	}
	s.byID[u.ID] = u
	s.byName[username] = u.ID
	return *u, nil
}

func (s *MemoryStore) Close() error { return nil }
