package service

import (
	"context"
	"fmt"
	"net/http"

	"tagebuch/internal/logger"
	"tagebuch/internal/repository"
	"tagebuch/internal/service/ai"
)

// Correction modes.
const (
	ModeLocal  = "local"
	ModeRemote = "remote"
)

// Setting keys for the remote provider.
const (
	keyCorrectionPrefix   = "correction."
	keyCorrectionProvider = "correction.provider"
	keyCorrectionAPIKey   = "correction.api_key"
	keyCorrectionBaseURL  = "correction.base_url"
	keyCorrectionModel    = "correction.model"
)

// ProviderStatus describes which provider serves corrections and whether it
// can take requests.
type ProviderStatus struct {
	Mode       string            `json:"mode"`
	Provider   string            `json:"provider"`
	Model      string            `json:"model,omitempty"`
	Configured bool              `json:"configured"`
	Runtime    *ai.RuntimeStatus `json:"runtime,omitempty"`
	Message    string            `json:"message"`
}

//go:generate mockgen -source=correction_service.go -destination=mock/mock_correction_service.go -package=mock

// CorrectionService sends texts to the configured provider.
type CorrectionService interface {
	// Correct returns the corrected text. Provider availability problems
	// satisfy ai.IsUnavailable.
	Correct(ctx context.Context, text string) (string, error)
	// Test runs a sample correction. A nil cfg tests the active provider.
	Test(ctx context.Context, cfg *ai.Config) (string, error)
	// Status reports mode, provider and readiness.
	Status(ctx context.Context) (ProviderStatus, error)
	// InitLocal loads the local model. It fails in remote mode.
	InitLocal(ctx context.Context) error
}

// ProviderFactory builds a provider from settings.
type ProviderFactory func(cfg ai.Config) (ai.Provider, error)

// CorrectionOption customizes a CorrectionService.
type CorrectionOption func(*correctionService)

func WithProviderFactory(f ProviderFactory) CorrectionOption {
	return func(s *correctionService) { s.factory = f }
}

// WithHTTPClient sets the client remote providers are built with.
func WithHTTPClient(c *http.Client) CorrectionOption {
	return func(s *correctionService) { s.httpClient = c }
}

type correctionService struct {
	slots   repository.SlotRepository
	local   *ai.Runtime
	limiter *ai.RateLimiter
	factory ProviderFactory

	httpClient *http.Client
}

// NewCorrectionService creates the service. With a non-nil local runtime
// every correction goes to it; otherwise the remote provider stored in the
// settings is built per request.
func NewCorrectionService(slots repository.SlotRepository, limiter *ai.RateLimiter, local *ai.Runtime, opts ...CorrectionOption) CorrectionService {
	s := &correctionService{
		slots:   slots,
		local:   local,
		limiter: limiter,
		factory: ai.NewProvider,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *correctionService) mode() string {
	if s.local != nil {
		return ModeLocal
	}
	return ModeRemote
}

func (s *correctionService) Correct(ctx context.Context, text string) (string, error) {
	provider, err := s.activeProvider(ctx)
	if err != nil {
		return "", err
	}

	if err := s.limiter.Wait(ctx); err != nil {
		logger.Warn("correction rate limit wait failed", "module", "service", "action", "correct", "resource", "correction", "result", "failed", "error", err)
		return "", fmt.Errorf("rate limit: %w", err)
	}

	out, err := provider.Correct(ctx, text)
	if err != nil {
		if !ai.IsUnavailable(err) {
			logger.Warn("correction failed", "module", "service", "action", "correct", "resource", "correction", "result", "failed", "provider", provider.Name(), "error", err)
		}
		return "", err
	}
	logger.Debug("correction done", "module", "service", "action", "correct", "resource", "correction", "result", "ok", "provider", provider.Name(), "chars", len(text))
	return out, nil
}

func (s *correctionService) Test(ctx context.Context, cfg *ai.Config) (string, error) {
	var (
		provider ai.Provider
		err      error
	)
	if cfg == nil {
		provider, err = s.activeProvider(ctx)
	} else {
		c := *cfg
		if c.HTTPClient == nil {
			c.HTTPClient = s.httpClient
		}
		provider, err = s.factory(c)
	}
	if err != nil {
		return "", err
	}
	return provider.Test(ctx)
}

func (s *correctionService) Status(ctx context.Context) (ProviderStatus, error) {
	if s.local != nil {
		rs := s.local.Status()
		return ProviderStatus{
			Mode:       ModeLocal,
			Provider:   s.local.Name(),
			Configured: true,
			Runtime:    &rs,
			Message:    rs.Message,
		}, nil
	}

	cfg, err := s.remoteConfig(ctx)
	if err != nil {
		return ProviderStatus{}, err
	}
	st := ProviderStatus{
		Mode:       ModeRemote,
		Provider:   cfg.Provider,
		Model:      cfg.Model,
		Configured: cfg.APIKey != "" && cfg.Model != "",
	}
	if st.Configured {
		st.Message = "KI bereit (" + cfg.Provider + ")"
	} else {
		st.Message = "KI nicht konfiguriert"
	}
	return st, nil
}

func (s *correctionService) InitLocal(ctx context.Context) error {
	if s.local == nil {
		return fmt.Errorf("%w: no local provider in %s mode", ErrInvalid, s.mode())
	}
	return s.local.Init(ctx)
}

func (s *correctionService) activeProvider(ctx context.Context) (ai.Provider, error) {
	if s.local != nil {
		return s.local, nil
	}
	cfg, err := s.remoteConfig(ctx)
	if err != nil {
		return nil, err
	}
	provider, err := s.factory(cfg)
	if err != nil {
		logger.Warn("correction provider create failed", "module", "service", "action", "correct", "resource", "correction", "result", "failed", "provider", cfg.Provider, "model", cfg.Model, "error", err)
		return nil, fmt.Errorf("create provider: %w", err)
	}
	return provider, nil
}

func (s *correctionService) remoteConfig(ctx context.Context) (ai.Config, error) {
	var cfg ai.Config

	slots, err := s.slots.GetByPrefix(ctx, keyCorrectionPrefix)
	if err != nil {
		return cfg, fmt.Errorf("get correction settings: %w", err)
	}
	values := make(map[string]string, len(slots))
	for _, slot := range slots {
		values[slot.Key] = slot.Value
	}

	cfg.Provider = values[keyCorrectionProvider]
	if cfg.Provider == "" {
		cfg.Provider = ai.ProviderOpenAI
	}
	cfg.APIKey = values[keyCorrectionAPIKey]
	cfg.BaseURL = values[keyCorrectionBaseURL]
	cfg.Model = values[keyCorrectionModel]
	cfg.HTTPClient = s.httpClient
	return cfg, nil
}
