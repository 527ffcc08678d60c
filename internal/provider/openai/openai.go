// internal/provider/openai/openai.go
package openai

import (
	"context"
	"errors"
	"fmt"

	"github.com/recallai/recall/internal/core"
	"github.com/recallai/recall/internal/provider"
	"github.com/sashabaranov/go-openai"
)

// Adapter implements the provider interface for OpenAI-compatible
// backends. A non-empty base URL points it at compatible APIs such as
// xAI Grok without a separate adapter.
type Adapter struct {
	cfg    core.ProviderConfig
	client *openai.Client
}

// New creates an adapter for an OpenAI-compatible backend.
func New(cfg core.ProviderConfig) (*Adapter, error) {
	if cfg.APIKey == "" {
		return nil, core.WrapError(core.ErrConfigMissing,
			fmt.Errorf("provider %s: API key required", cfg.Name))
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &Adapter{cfg: cfg, client: openai.NewClientWithConfig(clientCfg)}, nil
}

// Name returns the configured provider name.
func (a *Adapter) Name() string {
	return a.cfg.Name
}

// Invoke sends one chat completion request to the backend.
func (a *Adapter) Invoke(ctx context.Context, params provider.InvokeParams) (string, core.Usage, error) {
	if !a.cfg.SupportsModel(params.Model) {
		return "", core.Usage{}, core.WrapError(core.ErrUnsupportedModel,
			fmt.Errorf("provider %s does not support model %q", a.cfg.Name, params.Model))
	}

	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if params.SystemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: params.SystemPrompt,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: params.UserPrompt,
	})

	maxTokens := params.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1024
	}

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       params.Model,
		Messages:    messages,
		MaxTokens:   maxTokens,
		Temperature: float32(params.Temperature),
	})
	if err != nil {
		return "", core.Usage{}, classify(a.cfg.Name, err)
	}

	content := ""
	if len(resp.Choices) > 0 {
		content = resp.Choices[0].Message.Content
	}

	return content, core.Usage{
		InputTokens:  resp.Usage.PromptTokens,
		OutputTokens: resp.Usage.CompletionTokens,
	}, nil
}

// classify maps client errors onto the rejected/unavailable taxonomy.
// A response the backend produced (any status) is a rejection; anything
// that never got a response is a transport failure.
func classify(name string, err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return core.WrapError(core.ErrProviderRejected,
			fmt.Errorf("%s: %s", name, apiErr.Message))
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return core.WrapError(core.ErrProviderRejected,
			fmt.Errorf("%s: status %d: %v", name, reqErr.HTTPStatusCode, reqErr.Err))
	}

	return core.WrapError(core.ErrProviderUnavailable,
		fmt.Errorf("%s: %w", name, err))
}
