package plans

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/planwise/planwise/internal/observability"
)

// ErrValidation marks input rejected at the boundary, before any store call.
var ErrValidation = errors.New("invalid plan data")

// Service coordinates mutations against the store: validate, write,
// invalidate the cached view, publish a change event. Reads go through the
// versioned cache. There is no retry and no client-side queuing; concurrent
// mutations against the same plan race and the last store write wins.
type Service struct {
	store   Store
	cache   *ListCache
	broker  *Broker
	metrics *observability.Metrics
}

func NewService(store Store, metrics *observability.Metrics) *Service {
	return &Service{
		store:   store,
		cache:   NewListCache(),
		broker:  NewBroker(),
		metrics: metrics,
	}
}

// Subscribe exposes the owner's change-event feed.
func (s *Service) Subscribe(userID string) (<-chan Event, func()) {
	return s.broker.Subscribe(userID)
}

func (s *Service) List(ctx context.Context, userID string) ([]Plan, error) {
	if cached, ok := s.cache.Get(userID); ok {
		s.observeCache("hit")
		return cached, nil
	}
	s.observeCache("miss")

	items, err := s.store.ListPlans(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	s.cache.Put(userID, items)
	return items, nil
}

func (s *Service) Get(ctx context.Context, userID, planID string) (Plan, error) {
	return s.store.GetPlan(ctx, userID, planID)
}

// Stats derives the summary snapshot from the current collection.
func (s *Service) Stats(ctx context.Context, userID string) (Snapshot, error) {
	items, err := s.List(ctx, userID)
	if err != nil {
		return Snapshot{}, err
	}
	return Aggregate(items), nil
}

func (s *Service) Create(ctx context.Context, userID string, req CreateRequest) (Plan, error) {
	req.Title = strings.TrimSpace(req.Title)
	if err := validateCreate(req); err != nil {
		s.observeMutation("create", "invalid")
		return Plan{}, err
	}

	p, err := s.store.CreatePlan(ctx, userID, req)
	if err != nil {
		s.observeMutation("create", "error")
		return Plan{}, fmt.Errorf("create plan: %w", err)
	}

	s.onSuccess(userID, Event{Type: EventPlanCreated, PlanID: p.ID})
	s.observeMutation("create", "ok")
	return p, nil
}

func (s *Service) Update(ctx context.Context, userID, planID string, req UpdateRequest) (Plan, error) {
	if err := validateUpdate(req); err != nil {
		s.observeMutation("update", "invalid")
		return Plan{}, err
	}

	p, err := s.store.UpdatePlan(ctx, userID, planID, req)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.observeMutation("update", "not_found")
			return Plan{}, err
		}
		s.observeMutation("update", "error")
		return Plan{}, fmt.Errorf("update plan: %w", err)
	}

	s.onSuccess(userID, Event{Type: EventPlanUpdated, PlanID: p.ID})
	s.observeMutation("update", "ok")
	return p, nil
}

func (s *Service) Delete(ctx context.Context, userID, planID string) error {
	if err := s.store.DeletePlan(ctx, userID, planID); err != nil {
		if errors.Is(err, ErrNotFound) {
			s.observeMutation("delete", "not_found")
			return err
		}
		s.observeMutation("delete", "error")
		return fmt.Errorf("delete plan: %w", err)
	}

	s.onSuccess(userID, Event{Type: EventPlanDeleted, PlanID: planID})
	s.observeMutation("delete", "ok")
	return nil
}

// onSuccess runs only after the store confirmed the write. Failed mutations
// leave the cached view untouched so readers keep the last known-good state.
func (s *Service) onSuccess(userID string, ev Event) {
	s.cache.Invalidate(userID)
	s.observeCache("invalidate")
	s.broker.publish(userID, ev)
}

func validateCreate(req CreateRequest) error {
	if req.Title == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if req.Priority != "" && !ValidPriority(req.Priority) {
		return fmt.Errorf("%w: unknown priority %q", ErrValidation, req.Priority)
	}
	if req.Category != "" && !ValidCategory(req.Category) {
		return fmt.Errorf("%w: unknown category %q", ErrValidation, req.Category)
	}
	if req.Status != "" && !ValidStatus(req.Status) {
		return fmt.Errorf("%w: unknown status %q", ErrValidation, req.Status)
	}
	return nil
}

func validateUpdate(req UpdateRequest) error {
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return fmt.Errorf("%w: title cannot be empty", ErrValidation)
	}
	if req.Priority != nil && !ValidPriority(*req.Priority) {
		return fmt.Errorf("%w: unknown priority %q", ErrValidation, *req.Priority)
	}
	if req.Category != nil && !ValidCategory(*req.Category) {
		return fmt.Errorf("%w: unknown category %q", ErrValidation, *req.Category)
	}
	if req.Status != nil && !ValidStatus(*req.Status) {
		return fmt.Errorf("%w: unknown status %q", ErrValidation, *req.Status)
	}
	return nil
}

func (s *Service) observeMutation(op, outcome string) {
	if s.metrics != nil {
		s.metrics.PlanMutations.WithLabelValues(op, outcome).Inc()
	}
}

func (s *Service) observeCache(event string) {
	if s.metrics != nil {
		s.metrics.CacheEvents.WithLabelValues(event).Inc()
	}
}
