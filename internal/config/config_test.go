package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_FromFile(t *testing.T) {
	content := []byte(`
server:
  host: "127.0.0.1"
  port: 9090

store:
  path: "/tmp/recall/recall.db"

default_provider: openai

providers:
  openai:
    kind: openai
    api_key: "sk-test"
    default_model: "gpt-4o"
    supported_models: ["gpt-4o", "gpt-4o-mini"]
  grok:
    kind: openai
    api_key: "xai-test"
    base_url: "https://api.x.ai/v1"
    default_model: "grok-2"
`)

	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(cfgPath, content, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.DefaultProvider != "openai" {
		t.Errorf("expected default provider openai, got %s", cfg.DefaultProvider)
	}
	if cfg.Providers["grok"].BaseURL != "https://api.x.ai/v1" {
		t.Errorf("expected grok base_url, got %s", cfg.Providers["grok"].BaseURL)
	}
	if len(cfg.Providers["openai"].SupportedModels) != 2 {
		t.Errorf("expected 2 supported models, got %d", len(cfg.Providers["openai"].SupportedModels))
	}
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("RECALL_TEST_KEY", "sk-from-env")

	content := []byte(`
server:
  port: 8080
providers:
  openai:
    kind: openai
    api_key: "${RECALL_TEST_KEY}"
    default_model: "gpt-4o"
`)

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(cfgPath, content, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Providers["openai"].APIKey != "sk-from-env" {
		t.Errorf("expected api key from env, got %s", cfg.Providers["openai"].APIKey)
	}
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if !cfg.Cache.Enabled {
		t.Error("cache should be enabled by default")
	}
	if cfg.CallLog.ExcerptMaxLen != 1024 {
		t.Errorf("expected excerpt max len 1024, got %d", cfg.CallLog.ExcerptMaxLen)
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := ProviderConfig{Kind: "openai", APIKey: "k", DefaultModel: "gpt-4o"}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:    "invalid port - zero",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: true,
		},
		{
			name:    "invalid port - too high",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: true,
		},
		{
			name:    "temperature out of range",
			mutate:  func(c *Config) { c.Chat.DefaultTemperature = 2.5 },
			wantErr: true,
		},
		{
			name: "default provider without entry",
			mutate: func(c *Config) {
				c.DefaultProvider = "missing"
			},
			wantErr: true,
		},
		{
			name: "provider with unknown kind",
			mutate: func(c *Config) {
				c.Providers["weird"] = ProviderConfig{Kind: "cohere", APIKey: "k", DefaultModel: "m"}
			},
			wantErr: true,
		},
		{
			name: "provider missing api key",
			mutate: func(c *Config) {
				c.Providers["openai"] = ProviderConfig{Kind: "openai", DefaultModel: "gpt-4o"}
			},
			wantErr: true,
		},
		{
			name: "provider missing default model",
			mutate: func(c *Config) {
				c.Providers["openai"] = ProviderConfig{Kind: "openai", APIKey: "k"}
			},
			wantErr: true,
		},
		{
			name:    "bad archive type",
			mutate:  func(c *Config) { c.Archive.Type = "gcs" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			cfg.Providers = map[string]ProviderConfig{"openai": valid}
			cfg.DefaultProvider = "openai"
			tt.mutate(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_ProviderConfigs(t *testing.T) {
	cfg := Defaults()
	cfg.Providers = map[string]ProviderConfig{
		"openai": {Kind: "openai", APIKey: "k", DefaultModel: "gpt-4o"},
	}

	pcs := cfg.ProviderConfigs()
	if len(pcs) != 1 {
		t.Fatalf("expected 1 provider config, got %d", len(pcs))
	}
	if pcs[0].Name != "openai" {
		t.Errorf("expected name openai, got %s", pcs[0].Name)
	}
	if pcs[0].Timeout <= 0 {
		t.Error("expected default timeout to be applied")
	}
}
