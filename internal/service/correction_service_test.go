package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"tagebuch/internal/repository"
	"tagebuch/internal/repository/testutil"
	"tagebuch/internal/service"
	"tagebuch/internal/service/ai"
)

type fakeProvider struct {
	name   string
	answer string
	err    error
	texts  []string
}

func (p *fakeProvider) Name() string { return p.name }

func (p *fakeProvider) Correct(_ context.Context, text string) (string, error) {
	p.texts = append(p.texts, text)
	return p.answer, p.err
}

func (p *fakeProvider) Test(ctx context.Context) (string, error) {
	return p.Correct(ctx, ai.TestSample)
}

type loadingProvider struct {
	fakeProvider
	initErr error
}

func (p *loadingProvider) Init(_ context.Context, progress func(float64)) error {
	progress(1)
	return p.initErr
}

func newSlots(t *testing.T) repository.SlotRepository {
	t.Helper()
	return repository.NewSlotRepository(testutil.NewTestDB(t))
}

func TestCorrectionService_RemoteUsesStoredSettings(t *testing.T) {
	slots := newSlots(t)
	ctx := context.Background()
	require.NoError(t, slots.Set(ctx, "correction.provider", ai.ProviderAnthropic))
	require.NoError(t, slots.Set(ctx, "correction.api_key", "sk-ant-secret"))
	require.NoError(t, slots.Set(ctx, "correction.model", "claude-haiku"))

	var seen ai.Config
	provider := &fakeProvider{name: ai.ProviderAnthropic, answer: "Gut."}
	svc := service.NewCorrectionService(slots, ai.NewRateLimiter(100), nil,
		service.WithProviderFactory(func(cfg ai.Config) (ai.Provider, error) {
			seen = cfg
			return provider, nil
		}))

	got, err := svc.Correct(ctx, "gut")
	require.NoError(t, err)
	require.Equal(t, "Gut.", got)
	require.Equal(t, ai.Config{Provider: ai.ProviderAnthropic, APIKey: "sk-ant-secret", Model: "claude-haiku"}, seen)
	require.Equal(t, []string{"gut"}, provider.texts)

	st, err := svc.Status(ctx)
	require.NoError(t, err)
	require.Equal(t, service.ModeRemote, st.Mode)
	require.True(t, st.Configured)
	require.Equal(t, "claude-haiku", st.Model)
}

func TestCorrectionService_RemoteNotConfigured(t *testing.T) {
	svc := service.NewCorrectionService(newSlots(t), ai.NewRateLimiter(100), nil)
	ctx := context.Background()

	_, err := svc.Correct(ctx, "hallo")
	require.ErrorIs(t, err, ai.ErrNotConfigured)
	require.True(t, ai.IsUnavailable(err))

	st, err := svc.Status(ctx)
	require.NoError(t, err)
	require.False(t, st.Configured)
	require.Equal(t, ai.ProviderOpenAI, st.Provider)
	require.Equal(t, "KI nicht konfiguriert", st.Message)

	require.ErrorIs(t, svc.InitLocal(ctx), service.ErrInvalid)
}

func TestCorrectionService_RemoteProviderError(t *testing.T) {
	slots := newSlots(t)
	ctx := context.Background()
	require.NoError(t, slots.Set(ctx, "correction.api_key", "sk-x"))
	require.NoError(t, slots.Set(ctx, "correction.model", "gpt"))

	boom := errors.New("upstream 500")
	svc := service.NewCorrectionService(slots, ai.NewRateLimiter(100), nil,
		service.WithProviderFactory(func(ai.Config) (ai.Provider, error) {
			return &fakeProvider{name: "openai", err: boom}, nil
		}))

	_, err := svc.Correct(ctx, "hallo")
	require.ErrorIs(t, err, boom)
	require.False(t, ai.IsUnavailable(err))
}

func TestCorrectionService_LocalRuntime(t *testing.T) {
	p := &loadingProvider{fakeProvider: fakeProvider{name: ai.ProviderLocal, answer: "Hallo!"}}
	rt := ai.NewRuntime(p)
	svc := service.NewCorrectionService(newSlots(t), ai.NewRateLimiter(100), rt)
	ctx := context.Background()

	st, err := svc.Status(ctx)
	require.NoError(t, err)
	require.Equal(t, service.ModeLocal, st.Mode)
	require.Equal(t, ai.StateUninitialized, st.Runtime.State)

	require.NoError(t, svc.InitLocal(ctx))
	got, err := svc.Correct(ctx, "hallo")
	require.NoError(t, err)
	require.Equal(t, "Hallo!", got)

	st, err = svc.Status(ctx)
	require.NoError(t, err)
	require.Equal(t, ai.StateReady, st.Runtime.State)
	require.Equal(t, "KI bereit (läuft lokal)", st.Message)
}

func TestCorrectionService_LocalFailedStaysFailed(t *testing.T) {
	p := &loadingProvider{fakeProvider: fakeProvider{name: ai.ProviderLocal}, initErr: errors.New("no GPU")}
	rt := ai.NewRuntime(p)
	svc := service.NewCorrectionService(newSlots(t), ai.NewRateLimiter(100), rt)
	ctx := context.Background()

	require.ErrorIs(t, svc.InitLocal(ctx), ai.ErrProviderFailed)
	_, err := svc.Correct(ctx, "hallo")
	require.ErrorIs(t, err, ai.ErrProviderFailed)
	require.Empty(t, p.texts)
}

func TestCorrectionService_TestWithExplicitConfig(t *testing.T) {
	var seen ai.Config
	svc := service.NewCorrectionService(newSlots(t), ai.NewRateLimiter(100), nil,
		service.WithProviderFactory(func(cfg ai.Config) (ai.Provider, error) {
			seen = cfg
			return &fakeProvider{answer: "Ich bin gestern in die Stadt gegangen."}, nil
		}))

	cfg := &ai.Config{Provider: ai.ProviderGemini, APIKey: "k", Model: "gemini-flash"}
	got, err := svc.Test(context.Background(), cfg)
	require.NoError(t, err)
	require.Equal(t, "Ich bin gestern in die Stadt gegangen.", got)
	require.Equal(t, *cfg, seen)
}

func TestCorrectionService_PassesHTTPClient(t *testing.T) {
	slots := newSlots(t)
	ctx := context.Background()
	require.NoError(t, slots.Set(ctx, "correction.api_key", "sk-secret"))
	require.NoError(t, slots.Set(ctx, "correction.model", "gpt-4o-mini"))

	client := &http.Client{}
	var seen []*http.Client
	svc := service.NewCorrectionService(slots, ai.NewRateLimiter(100), nil,
		service.WithHTTPClient(client),
		service.WithProviderFactory(func(cfg ai.Config) (ai.Provider, error) {
			seen = append(seen, cfg.HTTPClient)
			return &fakeProvider{answer: "Gut."}, nil
		}))

	_, err := svc.Correct(ctx, "gut")
	require.NoError(t, err)
	_, err = svc.Test(ctx, &ai.Config{Provider: ai.ProviderOpenAI, APIKey: "k", Model: "m"})
	require.NoError(t, err)
	require.Equal(t, []*http.Client{client, client}, seen)
}
