package ai

import (
	"context"
	"net/http"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAIProvider implements Provider for the OpenAI API.
type OpenAIProvider struct {
	client openai.Client
	model  string
}

// NewOpenAIProvider creates a new OpenAI provider.
func NewOpenAIProvider(apiKey, baseURL, model string, httpClient *http.Client) (*OpenAIProvider, error) {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if httpClient != nil {
		opts = append(opts, option.WithHTTPClient(httpClient))
	}

	return &OpenAIProvider{
		client: openai.NewClient(opts...),
		model:  model,
	}, nil
}

// Name returns the provider name.
func (p *OpenAIProvider) Name() string {
	return ProviderOpenAI
}

// Test corrects a short sample sentence.
func (p *OpenAIProvider) Test(ctx context.Context) (string, error) {
	return p.Correct(ctx, TestSample)
}

// Correct sends text with the correction prompt and returns the answer.
func (p *OpenAIProvider) Correct(ctx context.Context, text string) (string, error) {
	return chatComplete(ctx, p.client, p.model, text)
}

func chatComplete(ctx context.Context, client openai.Client, model, text string, opts ...option.RequestOption) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(GetCorrectionPrompt()),
			openai.UserMessage(text),
		},
		Temperature: openai.Float(0),
	}

	resp, err := client.Chat.Completions.New(ctx, params, opts...)
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", nil
	}
	return cleanAnswer(resp.Choices[0].Message.Content), nil
}
