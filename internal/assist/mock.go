package assist

import (
	"context"
	"fmt"
	"strings"
)

// MockProvider produces deterministic local replies when no real provider
// is configured. JSON requests get a well-formed empty prioritization so
// downstream parsing still exercises the normal path.
type MockProvider struct{}

func NewMockProvider() *MockProvider { return &MockProvider{} }

func (p *MockProvider) Complete(ctx context.Context, req Request) (Response, error) {
	select {
	case <-ctx.Done():
		return Response{}, ctx.Err()
	default:
	}

	if req.WantJSON {
		return Response{Text: `{"prioritized": []}`}, nil
	}

	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return Response{}, nil
	}
	first := prompt
	if idx := strings.IndexByte(first, '\n'); idx > 0 {
		first = first[:idx]
	}
	return Response{Text: fmt.Sprintf("- Mock advisory output for: %s", strings.TrimSpace(first))}, nil
}
