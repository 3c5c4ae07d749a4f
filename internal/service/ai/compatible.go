package ai

import (
	"context"
	"net/http"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// CompatibleProvider implements Provider for OpenAI-compatible APIs.
// This supports services like OpenRouter, Azure OpenAI, Groq, etc.
type CompatibleProvider struct {
	client openai.Client
	model  string
}

// NewCompatibleProvider creates a new OpenAI-compatible provider.
func NewCompatibleProvider(apiKey, baseURL, model string, httpClient *http.Client) (*CompatibleProvider, error) {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
	}
	if httpClient != nil {
		opts = append(opts, option.WithHTTPClient(httpClient))
	}
	return &CompatibleProvider{
		client: openai.NewClient(opts...),
		model:  model,
	}, nil
}

// Name returns the provider name.
func (p *CompatibleProvider) Name() string {
	return ProviderCompatible
}

// Test corrects a short sample sentence.
func (p *CompatibleProvider) Test(ctx context.Context) (string, error) {
	return p.Correct(ctx, TestSample)
}

// Correct sends text with the correction prompt and returns the answer.
// Reasoning is switched off for corrections.
func (p *CompatibleProvider) Correct(ctx context.Context, text string) (string, error) {
	return chatComplete(ctx, p.client, p.model, text,
		option.WithJSONSet("reasoning", map[string]interface{}{
			"enabled": false,
		}),
	)
}
