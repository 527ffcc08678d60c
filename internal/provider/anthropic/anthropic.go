// internal/provider/anthropic/anthropic.go
package anthropic

import (
	"context"
	"errors"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/recallai/recall/internal/core"
	"github.com/recallai/recall/internal/provider"
)

// Adapter implements the provider interface for the Anthropic API.
type Adapter struct {
	cfg    core.ProviderConfig
	client anthropic.Client
}

// New creates an Anthropic adapter.
func New(cfg core.ProviderConfig) (*Adapter, error) {
	if cfg.APIKey == "" {
		return nil, core.WrapError(core.ErrConfigMissing,
			fmt.Errorf("provider %s: API key required", cfg.Name))
	}

	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &Adapter{cfg: cfg, client: anthropic.NewClient(opts...)}, nil
}

// Name returns the configured provider name.
func (a *Adapter) Name() string {
	return a.cfg.Name
}

// Invoke sends one message request to the Anthropic API.
func (a *Adapter) Invoke(ctx context.Context, params provider.InvokeParams) (string, core.Usage, error) {
	if !a.cfg.SupportsModel(params.Model) {
		return "", core.Usage{}, core.WrapError(core.ErrUnsupportedModel,
			fmt.Errorf("provider %s does not support model %q", a.cfg.Name, params.Model))
	}

	maxTokens := int64(params.MaxTokens)
	if maxTokens <= 0 {
		maxTokens = 1024
	}

	req := anthropic.MessageNewParams{
		Model:     anthropic.Model(params.Model),
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(params.UserPrompt)),
		},
		Temperature: anthropic.Float(params.Temperature),
	}
	if params.SystemPrompt != "" {
		req.System = []anthropic.TextBlockParam{
			{Text: params.SystemPrompt},
		}
	}

	resp, err := a.client.Messages.New(ctx, req)
	if err != nil {
		return "", core.Usage{}, classify(a.cfg.Name, err)
	}

	content := ""
	if len(resp.Content) > 0 && resp.Content[0].Type == "text" {
		content = resp.Content[0].Text
	}

	return content, core.Usage{
		InputTokens:  int(resp.Usage.InputTokens),
		OutputTokens: int(resp.Usage.OutputTokens),
	}, nil
}

// classify maps SDK errors onto the rejected/unavailable taxonomy.
func classify(name string, err error) error {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		return core.WrapError(core.ErrProviderRejected,
			fmt.Errorf("%s: status %d: %s", name, apiErr.StatusCode, apiErr.Error()))
	}

	return core.WrapError(core.ErrProviderUnavailable,
		fmt.Errorf("%s: %w", name, err))
}
