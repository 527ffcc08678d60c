package registry

import (
	"fmt"
	"sort"

	"github.com/recallai/recall/internal/core"
)

// Registry holds the provider configurations known to the service.
// It is built once at startup and read-only afterwards, so lookups
// need no locking.
type Registry struct {
	providers   map[string]core.ProviderConfig
	defaultName string
}

// New builds a registry from provider configs. defaultName may be empty
// when callers always name a provider explicitly.
func New(configs []core.ProviderConfig, defaultName string) (*Registry, error) {
	providers := make(map[string]core.ProviderConfig, len(configs))
	for _, cfg := range configs {
		if cfg.Name == "" {
			return nil, core.WrapError(core.ErrConfigInvalid,
				fmt.Errorf("provider with empty name"))
		}
		if _, exists := providers[cfg.Name]; exists {
			return nil, core.WrapError(core.ErrConfigInvalid,
				fmt.Errorf("duplicate provider %q", cfg.Name))
		}
		providers[cfg.Name] = cfg
	}

	if defaultName != "" {
		if _, ok := providers[defaultName]; !ok {
			return nil, core.WrapError(core.ErrConfigInvalid,
				fmt.Errorf("default provider %q not configured", defaultName))
		}
	}

	return &Registry{providers: providers, defaultName: defaultName}, nil
}

// Resolve returns the configuration for the named provider. An empty
// name falls back to the configured default.
func (r *Registry) Resolve(name string) (*core.ProviderConfig, error) {
	if name == "" {
		name = r.defaultName
	}
	if name == "" {
		return nil, core.WrapError(core.ErrUnknownProvider,
			fmt.Errorf("no provider named and no default configured"))
	}

	cfg, ok := r.providers[name]
	if !ok {
		return nil, core.WrapError(core.ErrUnknownProvider,
			fmt.Errorf("provider %q not configured", name))
	}
	return &cfg, nil
}

// Names returns the configured provider names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
