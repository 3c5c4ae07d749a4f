package ai

import (
	"context"
	"fmt"
	"net/http"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// LocalProvider talks to a model runtime on this machine (Ollama, llama.cpp
// server, LM Studio) through its OpenAI-compatible endpoint. No key is sent.
type LocalProvider struct {
	client openai.Client
	model  string
}

// NewLocalProvider creates a provider for the runtime at baseURL.
func NewLocalProvider(baseURL, model string, httpClient *http.Client) (*LocalProvider, error) {
	opts := []option.RequestOption{
		option.WithBaseURL(baseURL),
		option.WithAPIKey("local"),
		option.WithMaxRetries(0),
	}
	if httpClient != nil {
		opts = append(opts, option.WithHTTPClient(httpClient))
	}
	return &LocalProvider{
		client: openai.NewClient(opts...),
		model:  model,
	}, nil
}

// Name returns the provider name.
func (p *LocalProvider) Name() string {
	return ProviderLocal
}

// Init checks that the runtime serves the model and warms it up with one
// short completion, which makes the runtime load the weights.
func (p *LocalProvider) Init(ctx context.Context, progress func(float64)) error {
	progress(0)
	if _, err := p.client.Models.Get(ctx, p.model); err != nil {
		return fmt.Errorf("model %s not available: %w", p.model, err)
	}
	progress(0.5)
	if _, err := p.Correct(ctx, "Hallo"); err != nil {
		return fmt.Errorf("warm up %s: %w", p.model, err)
	}
	progress(1)
	return nil
}

// Test corrects a short sample sentence.
func (p *LocalProvider) Test(ctx context.Context) (string, error) {
	return p.Correct(ctx, TestSample)
}

// Correct sends text with the correction prompt and returns the answer.
func (p *LocalProvider) Correct(ctx context.Context, text string) (string, error) {
	return chatComplete(ctx, p.client, p.model, text)
}
