package assist

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/planwise/planwise/internal/observability"
	"github.com/planwise/planwise/internal/plans"
)

// ErrProvider marks a genuine provider failure: transport error, timeout,
// or output that could not be parsed at all.
var ErrProvider = errors.New("text provider failed")

// PlanReader is the slice of the plan service the advisory operations need.
type PlanReader interface {
	List(ctx context.Context, userID string) ([]plans.Plan, error)
}

// Service runs the three advisory operations. All of them read the caller's
// plans, consult the provider and return annotations or text; none of them
// write to the plan store.
type Service struct {
	reader   PlanReader
	provider Provider
	timeout  time.Duration
	metrics  *observability.Metrics
}

func NewService(reader PlanReader, provider Provider, timeout time.Duration, metrics *observability.Metrics) *Service {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Service{
		reader:   reader,
		provider: provider,
		timeout:  timeout,
		metrics:  metrics,
	}
}

// Suggest returns free-text advice over the caller's current plans.
func (s *Service) Suggest(ctx context.Context, userID string) (string, error) {
	items, err := s.reader.List(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("read plans: %w", err)
	}

	res, err := s.complete(ctx, "suggest", suggestRequest(items))
	if err != nil {
		return "", err
	}
	return normalizeText(res.Text, fallbackSuggestions), nil
}

// Prioritize returns per-plan advisory annotations. A provider payload that
// cannot be parsed degrades to an empty sequence plus an error; it is never
// guessed at.
func (s *Service) Prioritize(ctx context.Context, userID string) ([]Annotation, error) {
	items, err := s.reader.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("read plans: %w", err)
	}

	res, err := s.complete(ctx, "prioritize", prioritizeRequest(items))
	if err != nil {
		return nil, err
	}

	annotations, err := normalizePrioritization(res.Text)
	if err != nil {
		s.observe("prioritize", "unparseable")
		return []Annotation{}, fmt.Errorf("%w: %v", ErrProvider, err)
	}
	return annotations, nil
}

// DailyPlan builds a schedule proposal from the user's free-text description
// and their plans.
func (s *Service) DailyPlan(ctx context.Context, userID, userPrompt string) (string, error) {
	if strings.TrimSpace(userPrompt) == "" {
		return "", fmt.Errorf("prompt is required")
	}

	items, err := s.reader.List(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("read plans: %w", err)
	}

	res, err := s.complete(ctx, "plan", dailyPlanRequest(items, userPrompt))
	if err != nil {
		return "", err
	}
	return normalizeText(res.Text, fallbackPlan), nil
}

func (s *Service) complete(ctx context.Context, op string, req Request) (Response, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	res, err := s.provider.Complete(ctx, req)
	if s.metrics != nil {
		s.metrics.ObserveAssistLatency(time.Since(start))
	}
	if err != nil {
		s.observe(op, "provider_error")
		return Response{}, fmt.Errorf("%w: %v", ErrProvider, err)
	}
	s.observe(op, "ok")
	return res, nil
}

func (s *Service) observe(op, outcome string) {
	if s.metrics != nil {
		s.metrics.AssistRequests.WithLabelValues(op, outcome).Inc()
	}
}
