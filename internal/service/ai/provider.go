package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Provider defines the interface for grammar correction providers.
type Provider interface {
	// Name returns the provider name.
	Name() string
	// Correct returns the corrected version of text.
	Correct(ctx context.Context, text string) (string, error)
	// Test sends a short sample and returns the response.
	Test(ctx context.Context) (string, error)
}

// Initializer is implemented by providers that need a load phase before the
// first correction, such as a local model runtime.
type Initializer interface {
	// Init prepares the provider. progress receives values in [0, 1].
	Init(ctx context.Context, progress func(float64)) error
}

// Config holds the configuration for a correction provider.
type Config struct {
	Provider   string // openai, anthropic, gemini, compatible, local
	APIKey     string
	BaseURL    string // optional for openai/anthropic/gemini, required for compatible and local
	Model      string
	HTTPClient *http.Client // optional
}

// ProviderType constants
const (
	ProviderOpenAI     = "openai"
	ProviderAnthropic  = "anthropic"
	ProviderGemini     = "gemini"
	ProviderCompatible = "compatible"
	ProviderLocal      = "local"
)

var (
	// ErrNotConfigured is returned when credentials or a model are missing.
	ErrNotConfigured = errors.New("correction provider is not configured")
	// ErrNotReady is returned while the provider is still initializing.
	ErrNotReady = errors.New("correction provider is not ready")
	// ErrProviderFailed is returned after initialization failed for good.
	ErrProviderFailed = errors.New("correction provider failed to initialize")

	ErrInvalidProvider = errors.New("invalid provider")
	ErrMissingAPIKey   = fmt.Errorf("%w: API key is required", ErrNotConfigured)
	ErrMissingBaseURL  = fmt.Errorf("%w: base URL is required", ErrNotConfigured)
	ErrMissingModel    = fmt.Errorf("%w: model is required", ErrNotConfigured)
)

// IsUnavailable reports whether err means the provider cannot serve requests
// right now, as opposed to a failed call.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrNotConfigured) || errors.Is(err, ErrNotReady) || errors.Is(err, ErrProviderFailed)
}

// ValidProvider reports whether name is a known remote provider.
func ValidProvider(name string) bool {
	switch name {
	case ProviderOpenAI, ProviderAnthropic, ProviderGemini, ProviderCompatible:
		return true
	}
	return false
}

// NewProvider creates a new correction provider based on the config.
func NewProvider(cfg Config) (Provider, error) {
	if cfg.Model == "" {
		return nil, ErrMissingModel
	}
	if cfg.Provider == ProviderLocal {
		if cfg.BaseURL == "" {
			return nil, ErrMissingBaseURL
		}
		return NewLocalProvider(cfg.BaseURL, cfg.Model, cfg.HTTPClient)
	}
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	switch cfg.Provider {
	case ProviderOpenAI:
		return NewOpenAIProvider(cfg.APIKey, cfg.BaseURL, cfg.Model, cfg.HTTPClient)
	case ProviderAnthropic:
		return NewAnthropicProvider(cfg.APIKey, cfg.BaseURL, cfg.Model, cfg.HTTPClient)
	case ProviderGemini:
		return NewGeminiProvider(cfg.APIKey, cfg.BaseURL, cfg.Model, cfg.HTTPClient)
	case ProviderCompatible:
		if cfg.BaseURL == "" {
			return nil, ErrMissingBaseURL
		}
		return NewCompatibleProvider(cfg.APIKey, cfg.BaseURL, cfg.Model, cfg.HTTPClient)
	default:
		return nil, ErrInvalidProvider
	}
}

// cleanAnswer strips whitespace and a wrapping code fence some models add.
func cleanAnswer(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") && strings.HasSuffix(s, "```") && len(s) >= 6 {
		s = strings.TrimSuffix(strings.TrimPrefix(s, "```"), "```")
		if nl := strings.IndexByte(s, '\n'); nl >= 0 && !strings.Contains(s[:nl], " ") {
			s = s[nl+1:]
		}
		s = strings.TrimSpace(s)
	}
	return s
}
