package provider

import (
	"context"

	"github.com/recallai/recall/internal/core"
)

// Adapter translates a generic chat request into one backend family's
// wire format. Adapters are stateless given their provider config and
// perform exactly one outbound call per Invoke.
type Adapter interface {
	Name() string
	Invoke(ctx context.Context, params InvokeParams) (string, core.Usage, error)
}

// InvokeParams carries the resolved parameters for a single provider call.
type InvokeParams struct {
	Model        string
	SystemPrompt string
	UserPrompt   string
	Temperature  float64
	MaxTokens    int
}
