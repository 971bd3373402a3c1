package plans

import (
	"context"
	"errors"
	"strings"
)

// ErrNotFound covers both a missing plan and a plan owned by someone else;
// callers cannot distinguish the two.
var ErrNotFound = errors.New("plan not found")

// Store is owner-scoped atomic CRUD over plan records. Every operation is
// keyed by the owning user; a store never returns another owner's plans.
type Store interface {
	ListPlans(ctx context.Context, userID string) ([]Plan, error)
	GetPlan(ctx context.Context, userID, planID string) (Plan, error)
	CreatePlan(ctx context.Context, userID string, req CreateRequest) (Plan, error)
	UpdatePlan(ctx context.Context, userID, planID string, req UpdateRequest) (Plan, error)
	DeletePlan(ctx context.Context, userID, planID string) error
	Close() error
}

// NewStore picks postgres when a database URL is configured and an
// in-memory store otherwise.
func NewStore(ctx context.Context, databaseURL string) (Store, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return NewMemoryStore(), nil
	}
	return NewPostgresStore(ctx, databaseURL)
}

func applyDefaults(req CreateRequest) CreateRequest {
	if req.Priority == "" {
		req.Priority = PriorityMedium
	}
	if req.Category == "" {
		req.Category = CategoryPersonal
	}
	if req.Status == "" {
		req.Status = StatusPending
	}
	return req
}
