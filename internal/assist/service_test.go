package assist

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/planwise/planwise/internal/plans"
)

type stubReader struct {
	items []plans.Plan
	err   error
}

func (r stubReader) List(_ context.Context, _ string) ([]plans.Plan, error) {
	return r.items, r.err
}

type stubProvider struct {
	text string
	err  error
	seen *Request
}

func (p *stubProvider) Complete(_ context.Context, req Request) (Response, error) {
	if p.seen != nil {
		*p.seen = req
	}
	if p.err != nil {
		return Response{}, p.err
	}
	return Response{Text: p.text}, nil
}

type hangingProvider struct{}

func (hangingProvider) Complete(ctx context.Context, _ Request) (Response, error) {
	<-ctx.Done()
	return Response{}, ctx.Err()
}

func TestSuggestIncludesTasksInPrompt(t *testing.T) {
	var seen Request
	reader := stubReader{items: []plans.Plan{{
		Title:    "File taxes",
		Priority: plans.PriorityHigh,
		Category: plans.CategoryFinance,
		Status:   plans.StatusPending,
		Deadline: "2026-04-15",
	}}}
	svc := NewService(reader, &stubProvider{text: "- do taxes first", seen: &seen}, time.Second, nil)

	got, err := svc.Suggest(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Suggest() error = %v", err)
	}
	if got != "- do taxes first" {
		t.Fatalf("Suggest() = %q, want provider text", got)
	}
	if !strings.Contains(seen.Prompt, "File taxes [priority:high]") {
		t.Fatalf("prompt missing task summary line: %q", seen.Prompt)
	}
	if seen.WantJSON {
		t.Fatalf("suggest request WantJSON = true, want false")
	}
}

func TestSuggestEmptyResponseFallsBack(t *testing.T) {
	svc := NewService(stubReader{}, &stubProvider{text: ""}, time.Second, nil)
	got, err := svc.Suggest(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Suggest() error = %v", err)
	}
	if got != "No suggestions available." {
		t.Fatalf("Suggest() = %q, want fallback", got)
	}
}

func TestSuggestProviderFailure(t *testing.T) {
	svc := NewService(stubReader{}, &stubProvider{err: errors.New("boom")}, time.Second, nil)
	if _, err := svc.Suggest(context.Background(), "u1"); !errors.Is(err, ErrProvider) {
		t.Fatalf("Suggest() error = %v, want ErrProvider", err)
	}
}

func TestPrioritizeNormalizesAnnotations(t *testing.T) {
	provider := &stubProvider{text: `{"prioritized":[{"title":"A","priority":"High"}]}`}
	svc := NewService(stubReader{}, provider, time.Second, nil)

	got, err := svc.Prioritize(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Prioritize() error = %v", err)
	}
	if len(got) != 1 || got[0].Title == nil || *got[0].Title != "A" {
		t.Fatalf("Prioritize() = %+v, want one annotation titled A", got)
	}
}

func TestPrioritizeGarbageDegradesToEmpty(t *testing.T) {
	svc := NewService(stubReader{}, &stubProvider{text: "not json at all"}, time.Second, nil)

	got, err := svc.Prioritize(context.Background(), "u1")
	if !errors.Is(err, ErrProvider) {
		t.Fatalf("Prioritize(garbage) error = %v, want ErrProvider", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("Prioritize(garbage) = %v, want empty non-nil slice", got)
	}
}

func TestDailyPlanRequiresPrompt(t *testing.T) {
	svc := NewService(stubReader{}, &stubProvider{text: "plan"}, time.Second, nil)
	if _, err := svc.DailyPlan(context.Background(), "u1", "  "); err == nil {
		t.Fatalf("DailyPlan(empty prompt) expected error")
	}
}

func TestDailyPlanFallback(t *testing.T) {
	svc := NewService(stubReader{}, &stubProvider{text: ""}, time.Second, nil)
	got, err := svc.DailyPlan(context.Background(), "u1", "busy morning, free afternoon")
	if err != nil {
		t.Fatalf("DailyPlan() error = %v", err)
	}
	if got != "No plan generated." {
		t.Fatalf("DailyPlan() = %q, want fallback", got)
	}
}

func TestProviderTimeoutSurfacesAsProviderError(t *testing.T) {
	svc := NewService(stubReader{}, hangingProvider{}, 20*time.Millisecond, nil)
	start := time.Now()
	_, err := svc.Suggest(context.Background(), "u1")
	if !errors.Is(err, ErrProvider) {
		t.Fatalf("Suggest(hanging provider) error = %v, want ErrProvider", err)
	}
	if time.Since(start) > time.Second {
		t.Fatalf("timeout did not bound the provider call")
	}
}
