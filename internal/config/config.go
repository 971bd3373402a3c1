package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config contains all runtime settings for the planner service.
type Config struct {
	BindAddr         string
	ShutdownTimeout  time.Duration
	MetricsNamespace string

	// AllowedOrigins is a comma separated list for CORS; "*" allows any origin.
	AllowedOrigins []string

	DatabaseURL string

	SessionTTL         time.Duration
	SessionCookieName  string
	SessionCookieHTTPS bool

	AssistProvider string
	OpenAIAPIKey   string
	OpenAIBaseURL  string
	OpenAIModel    string
	AssistTimeout  time.Duration
}

// Load reads environment variables and applies safe defaults.
func Load() (Config, error) {
	cfg := Config{
		BindAddr:          envOrDefault("APP_BIND_ADDR", ":8080"),
		MetricsNamespace:  envOrDefault("APP_METRICS_NAMESPACE", "planwise"),
		DatabaseURL:       stringsTrimSpace("DATABASE_URL"),
		SessionCookieName: envOrDefault("APP_SESSION_COOKIE", "planwise_session"),
		AssistProvider:    envOrDefault("ASSIST_PROVIDER", "auto"),
		OpenAIAPIKey:      stringsTrimSpace("OPENAI_API_KEY"),
		OpenAIBaseURL:     envOrDefault("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIModel:       envOrDefault("OPENAI_MODEL", "gpt-4o-mini"),
		ShutdownTimeout:   15 * time.Second,
		SessionTTL:        24 * time.Hour,
		// Provider calls are bounded rather than waiting forever; a hung
		// completions endpoint should fail the advisory request, not pin it.
		AssistTimeout: 30 * time.Second,
	}

	origins := stringsTrimSpace("APP_ALLOWED_ORIGINS")
	if origins == "" {
		origins = "*"
	}
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
		}
	}

	var err error
	cfg.ShutdownTimeout, err = durationFromEnv("APP_SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout)
	if err != nil {
		return Config{}, err
	}
	cfg.SessionTTL, err = durationFromEnv("APP_SESSION_TTL", cfg.SessionTTL)
	if err != nil {
		return Config{}, err
	}
	cfg.AssistTimeout, err = durationFromEnv("ASSIST_TIMEOUT", cfg.AssistTimeout)
	if err != nil {
		return Config{}, err
	}
	cfg.SessionCookieHTTPS, err = boolFromEnv("APP_SESSION_COOKIE_SECURE", cfg.SessionCookieHTTPS)
	if err != nil {
		return Config{}, err
	}

	if cfg.SessionTTL < time.Minute {
		return Config{}, fmt.Errorf("APP_SESSION_TTL must be at least 1m")
	}
	if cfg.AssistTimeout <= 0 {
		return Config{}, fmt.Errorf("ASSIST_TIMEOUT must be positive")
	}
	switch strings.ToLower(strings.TrimSpace(cfg.AssistProvider)) {
	case "auto", "openai", "mock":
	default:
		return Config{}, fmt.Errorf("unsupported ASSIST_PROVIDER %q", cfg.AssistProvider)
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func stringsTrimSpace(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func durationFromEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := stringsTrimSpace(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s parse error: %w", key, err)
	}
	return d, nil
}

func boolFromEnv(key string, fallback bool) (bool, error) {
	v := strings.ToLower(stringsTrimSpace(key))
	if v == "" {
		return fallback, nil
	}
	switch v {
	case "1", "true", "t", "yes", "y", "on":
		return true, nil
	case "0", "false", "f", "no", "n", "off":
		return false, nil
	default:
		return false, fmt.Errorf("%s parse error: invalid boolean %q", key, v)
	}
}
