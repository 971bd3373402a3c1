package assist

import (
	"context"
	"fmt"
	"strings"
)

// Request is the normalized prompt sent to the text provider.
type Request struct {
	System   string
	Prompt   string
	WantJSON bool
}

// Response carries the provider's raw text output.
type Response struct {
	Text string
}

// Provider bridges the planner with a generative text backend. Output is
// advisory only; nothing a provider returns is applied to stored plans.
type Provider interface {
	Complete(ctx context.Context, req Request) (Response, error)
}

// Config controls provider construction.
type Config struct {
	Mode    string
	APIKey  string
	BaseURL string
	Model   string
}

func NewProvider(cfg Config) (Provider, error) {
	mode := strings.ToLower(strings.TrimSpace(cfg.Mode))
	if mode == "" {
		mode = "auto"
	}

	switch mode {
	case "auto":
		if strings.TrimSpace(cfg.APIKey) != "" {
			return NewOpenAIProvider(cfg.APIKey, cfg.BaseURL, cfg.Model), nil
		}
		return NewMockProvider(), nil
	case "openai":
		if strings.TrimSpace(cfg.APIKey) == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required for openai mode")
		}
		return NewOpenAIProvider(cfg.APIKey, cfg.BaseURL, cfg.Model), nil
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unsupported assist provider mode %q", cfg.Mode)
	}
}
