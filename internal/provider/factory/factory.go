// internal/provider/factory/factory.go
package factory

import (
	"fmt"

	"github.com/recallai/recall/internal/core"
	"github.com/recallai/recall/internal/provider"
	"github.com/recallai/recall/internal/provider/anthropic"
	"github.com/recallai/recall/internal/provider/openai"
)

// constructors maps a provider kind to its adapter constructor. Lookup
// table dispatch, one entry per backend family.
var constructors = map[core.ProviderKind]func(core.ProviderConfig) (provider.Adapter, error){
	core.KindOpenAI: func(cfg core.ProviderConfig) (provider.Adapter, error) {
		return openai.New(cfg)
	},
	core.KindAnthropic: func(cfg core.ProviderConfig) (provider.Adapter, error) {
		return anthropic.New(cfg)
	},
}

// New creates an adapter for the given provider configuration.
func New(cfg core.ProviderConfig) (provider.Adapter, error) {
	construct, ok := constructors[cfg.Kind]
	if !ok {
		return nil, core.WrapError(core.ErrUnknownProvider,
			fmt.Errorf("no adapter for provider kind %q", cfg.Kind))
	}
	return construct(cfg)
}
