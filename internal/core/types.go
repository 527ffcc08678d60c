// internal/core/types.go
package core

import (
	"errors"
	"strings"
	"time"
)

// ProviderKind identifies the backend family an adapter speaks to.
type ProviderKind string

const (
	KindOpenAI    ProviderKind = "openai"
	KindAnthropic ProviderKind = "anthropic"
)

// ProviderConfig holds the configuration for one AI backend.
// Built once from the config file at startup; immutable at request time.
type ProviderConfig struct {
	Name            string
	Kind            ProviderKind
	BaseURL         string
	APIKey          string
	DefaultModel    string
	SupportedModels []string
	Timeout         time.Duration
}

// SupportsModel reports whether the provider lists the model.
// An empty list means any model is accepted.
func (p ProviderConfig) SupportsModel(model string) bool {
	if len(p.SupportedModels) == 0 {
		return true
	}
	for _, m := range p.SupportedModels {
		if m == model {
			return true
		}
	}
	return false
}

// ChatRequest holds the caller-supplied request parameters.
type ChatRequest struct {
	SystemPrompt string
	UserPrompt   string
	Provider     string   // empty means configured default
	Model        string   // empty means provider default
	Temperature  *float64 // nil means configured default; an explicit 0 is a real value, within [0, 2]
	MaxTokens    int
}

// Float returns a pointer to v, for optional request fields.
func Float(v float64) *float64 {
	return &v
}

// Validate rejects requests that must never reach the cache or a provider.
// Out-of-range temperatures are rejected rather than clamped so request
// semantics are never silently changed.
func (r ChatRequest) Validate() error {
	if strings.TrimSpace(r.UserPrompt) == "" {
		return WrapError(ErrInvalidRequest, errors.New("user_prompt must not be empty"))
	}
	if r.Temperature != nil && (*r.Temperature < 0 || *r.Temperature > 2) {
		return WrapError(ErrInvalidRequest, errors.New("temperature must be within [0, 2]"))
	}
	if r.MaxTokens < 0 {
		return WrapError(ErrInvalidRequest, errors.New("max_tokens must not be negative"))
	}
	return nil
}

// Usage tracks token consumption reported by a provider.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Total returns the combined token count.
func (u Usage) Total() int {
	return u.InputTokens + u.OutputTokens
}

// ChatResult is the outcome of a successful chat call.
type ChatResult struct {
	Text      string
	Provider  string
	Model     string
	Cached    bool
	Usage     Usage
	Timestamp time.Time
}
