package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"tagebuch/internal/logger"
	"tagebuch/internal/repository"
	"tagebuch/internal/service/ai"
)

// CorrectionSettings holds the remote provider configuration.
type CorrectionSettings struct {
	Provider string `json:"provider"`
	APIKey   string `json:"apiKey"`
	BaseURL  string `json:"baseUrl"`
	Model    string `json:"model"`
	// RateLimit is correction requests per second; 0 keeps the current limit.
	RateLimit int `json:"rateLimit"`
	// Mode is informational; it comes from the server configuration.
	Mode string `json:"mode"`
}

const keyCorrectionRateLimit = "correction.rate_limit"

//go:generate mockgen -source=settings_service.go -destination=mock/mock_settings_service.go -package=mock

// SettingsService provides settings management.
type SettingsService interface {
	// GetCorrectionSettings returns the configuration with a masked API key.
	GetCorrectionSettings(ctx context.Context) (*CorrectionSettings, error)
	// SetCorrectionSettings updates the configuration.
	// An empty or masked apiKey keeps the existing key.
	SetCorrectionSettings(ctx context.Context, settings *CorrectionSettings) error
	// ClearAPIKey removes the stored API key.
	ClearAPIKey(ctx context.Context) error
	// TestCorrection runs a sample correction. Nil settings test the active provider.
	TestCorrection(ctx context.Context, settings *CorrectionSettings) (string, error)
	// ProviderStatus reports mode and readiness.
	ProviderStatus(ctx context.Context) (ProviderStatus, error)
	// RestoreRateLimit applies a stored rate limit to the limiter.
	RestoreRateLimit(ctx context.Context) error
}

type settingsService struct {
	repo        repository.SlotRepository
	corrections CorrectionService
	limiter     *ai.RateLimiter
}

// NewSettingsService creates a new settings service. limiter is the one the
// correction service waits on.
func NewSettingsService(repo repository.SlotRepository, corrections CorrectionService, limiter *ai.RateLimiter) SettingsService {
	return &settingsService{repo: repo, corrections: corrections, limiter: limiter}
}

func (s *settingsService) GetCorrectionSettings(ctx context.Context) (*CorrectionSettings, error) {
	status, err := s.corrections.Status(ctx)
	if err != nil {
		return nil, err
	}
	settings := &CorrectionSettings{
		Provider:  ai.ProviderOpenAI,
		RateLimit: s.limiter.Limit(),
		Mode:      status.Mode,
	}

	values, err := s.repo.GetByPrefix(ctx, keyCorrectionPrefix)
	if err != nil {
		return nil, fmt.Errorf("get correction settings: %w", err)
	}
	for _, slot := range values {
		switch slot.Key {
		case keyCorrectionProvider:
			if slot.Value != "" {
				settings.Provider = slot.Value
			}
		case keyCorrectionAPIKey:
			settings.APIKey = maskAPIKey(slot.Value)
		case keyCorrectionBaseURL:
			settings.BaseURL = slot.Value
		case keyCorrectionModel:
			settings.Model = slot.Value
		}
	}
	return settings, nil
}

func (s *settingsService) SetCorrectionSettings(ctx context.Context, settings *CorrectionSettings) error {
	if settings == nil {
		return ErrInvalid
	}
	if settings.RateLimit < 0 {
		return fmt.Errorf("%w: rate limit %d", ErrInvalid, settings.RateLimit)
	}
	provider := strings.TrimSpace(settings.Provider)
	if provider != "" {
		if !ai.ValidProvider(provider) {
			return fmt.Errorf("%w: provider %q", ErrInvalid, provider)
		}
		if err := s.repo.Set(ctx, keyCorrectionProvider, provider); err != nil {
			return fmt.Errorf("set provider: %w", err)
		}
	}
	if err := s.setAPIKey(ctx, keyCorrectionAPIKey, strings.TrimSpace(settings.APIKey)); err != nil {
		return fmt.Errorf("set api key: %w", err)
	}
	if err := s.repo.Set(ctx, keyCorrectionBaseURL, strings.TrimSpace(settings.BaseURL)); err != nil {
		return fmt.Errorf("set base url: %w", err)
	}
	if err := s.repo.Set(ctx, keyCorrectionModel, strings.TrimSpace(settings.Model)); err != nil {
		return fmt.Errorf("set model: %w", err)
	}
	if settings.RateLimit > 0 {
		if err := s.repo.Set(ctx, keyCorrectionRateLimit, strconv.Itoa(settings.RateLimit)); err != nil {
			return fmt.Errorf("set rate limit: %w", err)
		}
		s.limiter.SetLimit(settings.RateLimit)
		logger.Info("correction rate limit updated", "module", "service", "action", "update", "resource", "settings", "result", "ok", "qps", settings.RateLimit)
	}
	return nil
}

func (s *settingsService) RestoreRateLimit(ctx context.Context) error {
	value, err := s.getString(ctx, keyCorrectionRateLimit)
	if err != nil {
		return fmt.Errorf("get rate limit: %w", err)
	}
	if value == "" {
		return nil
	}
	qps, err := strconv.Atoi(value)
	if err != nil || qps <= 0 {
		logger.Warn("stored rate limit ignored", "module", "service", "action", "load", "resource", "settings", "result", "skipped", "value", value)
		return nil
	}
	s.limiter.SetLimit(qps)
	return nil
}

func (s *settingsService) ClearAPIKey(ctx context.Context) error {
	if err := s.repo.Delete(ctx, keyCorrectionAPIKey); err != nil {
		return fmt.Errorf("clear api key: %w", err)
	}
	return nil
}

func (s *settingsService) TestCorrection(ctx context.Context, settings *CorrectionSettings) (string, error) {
	if settings == nil {
		return s.corrections.Test(ctx, nil)
	}

	apiKey := settings.APIKey
	// A masked key means the stored key
	if apiKey == "" || isMaskedKey(apiKey) {
		stored, err := s.getString(ctx, keyCorrectionAPIKey)
		if err != nil {
			return "", fmt.Errorf("get stored api key: %w", err)
		}
		apiKey = stored
	}
	provider := settings.Provider
	if provider == "" {
		provider = ai.ProviderOpenAI
	}

	return s.corrections.Test(ctx, &ai.Config{
		Provider: provider,
		APIKey:   apiKey,
		BaseURL:  settings.BaseURL,
		Model:    settings.Model,
	})
}

func (s *settingsService) ProviderStatus(ctx context.Context) (ProviderStatus, error) {
	return s.corrections.Status(ctx)
}

// maskAPIKey returns a masked version of the API key for display.
func maskAPIKey(apiKey string) string {
	if apiKey == "" {
		return ""
	}
	if len(apiKey) <= 8 {
		return "***"
	}
	// Keep a short vendor prefix such as "sk-"
	prefixEnd := 0
	for i, c := range apiKey {
		if c == '-' {
			prefixEnd = i + 1
			break
		}
		if i >= 4 {
			break
		}
	}
	return apiKey[:prefixEnd] + "***" + apiKey[len(apiKey)-3:]
}

// isMaskedKey checks if a string looks like a masked API key.
func isMaskedKey(key string) bool {
	if len(key) == 0 || len(key) >= 20 {
		return false
	}
	return strings.Contains(key, "***")
}

func (s *settingsService) getString(ctx context.Context, key string) (string, error) {
	slot, err := s.repo.Get(ctx, key)
	if err != nil {
		return "", err
	}
	if slot == nil {
		return "", nil
	}
	return slot.Value, nil
}

// setAPIKey keeps the existing key when value is empty or masked.
func (s *settingsService) setAPIKey(ctx context.Context, key, value string) error {
	if value == "" || isMaskedKey(value) {
		return nil
	}
	return s.repo.Set(ctx, key, value)
}
