package plans

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps plans in process memory. It backs local development and
// tests where no database is configured.
type MemoryStore struct {
	mu    sync.RWMutex
	plans map[string]*Plan
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{plans: make(map[string]*Plan)}
}

func (s *MemoryStore) ListPlans(_ context.Context, userID string) ([]Plan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Plan, 0, 8)
	for _, p := range s.plans {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *MemoryStore) GetPlan(_ context.Context, userID, planID string) (Plan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.plans[planID]
	if !ok || p.UserID != userID {
		return Plan{}, ErrNotFound
	}
	return *p, nil
}

func (s *MemoryStore) CreatePlan(_ context.Context, userID string, req CreateRequest) (Plan, error) {
	req = applyDefaults(req)
	p := Plan{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Category:    req.Category,
		Status:      req.Status,
		Deadline:    req.Deadline,
		CreatedAt:   time.Now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.plans[p.ID] = &p
	return p, nil
}

func (s *MemoryStore) UpdatePlan(_ context.Context, userID, planID string, req UpdateRequest) (Plan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.plans[planID]
	if !ok || p.UserID != userID {
		return Plan{}, ErrNotFound
	}
	if req.Title != nil {
		p.Title = *req.Title
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Priority != nil {
		p.Priority = *req.Priority
	}
	if req.Category != nil {
		p.Category = *req.Category
	}
	if req.Status != nil {
		p.Status = *req.Status
	}
	if req.Deadline != nil {
		p.Deadline = *req.Deadline
	}
	return *p, nil
}

func (s *MemoryStore) DeletePlan(_ context.Context, userID, planID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.plans[planID]
	if !ok || p.UserID != userID {
		return ErrNotFound
	}
	delete(s.plans, planID)
	return nil
}

func (s *MemoryStore) Close() error { return nil }
