package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/recallai/recall/internal/core"
	"github.com/spf13/viper"
)

type Config struct {
	Server          ServerConfig              `mapstructure:"server"`
	Store           StoreConfig               `mapstructure:"store"`
	DefaultProvider string                    `mapstructure:"default_provider"`
	Providers       map[string]ProviderConfig `mapstructure:"providers"`
	Chat            ChatConfig                `mapstructure:"chat"`
	Cache           CacheConfig               `mapstructure:"cache"`
	CallLog         CallLogConfig             `mapstructure:"call_log"`
	Archive         ArchiveConfig             `mapstructure:"archive"`
	Metrics         MetricsConfig             `mapstructure:"metrics"`
}

type ServerConfig struct {
	Host   string `mapstructure:"host"`
	Port   int    `mapstructure:"port"`
	APIKey string `mapstructure:"api_key"`
}

type StoreConfig struct {
	Path string `mapstructure:"path"`
}

// ProviderConfig configures one AI backend.
type ProviderConfig struct {
	Kind            string        `mapstructure:"kind"` // "openai" or "anthropic"
	APIKey          string        `mapstructure:"api_key"`
	BaseURL         string        `mapstructure:"base_url"`
	DefaultModel    string        `mapstructure:"default_model"`
	SupportedModels []string      `mapstructure:"supported_models"`
	Timeout         time.Duration `mapstructure:"timeout"`
}

// ChatConfig holds request defaults and retry policy.
type ChatConfig struct {
	DefaultTemperature float64       `mapstructure:"default_temperature"`
	DefaultMaxTokens   int           `mapstructure:"default_max_tokens"`
	RetryAttempts      int           `mapstructure:"retry_attempts"`
	RetryBackoff       time.Duration `mapstructure:"retry_backoff"`
}

type CacheConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type CallLogConfig struct {
	ExcerptMaxLen int `mapstructure:"excerpt_max_len"`
	RetentionDays int `mapstructure:"retention_days"`
}

type ArchiveConfig struct {
	Type string   `mapstructure:"type"` // "localfs" or "s3"
	Path string   `mapstructure:"path"` // For localfs
	S3   S3Config `mapstructure:"s3"`   // For S3
}

type S3Config struct {
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	Region    string `mapstructure:"region"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Prefix    string `mapstructure:"prefix"`
}

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// Load reads configuration from file
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Support environment variable overrides
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Expand environment variables in string values
	for _, key := range v.AllKeys() {
		val := v.GetString(key)
		if strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}") {
			envKey := strings.TrimSuffix(strings.TrimPrefix(val, "${"), "}")
			v.Set(key, os.Getenv(envKey))
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// Defaults returns a config with sensible defaults
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Store: StoreConfig{
			Path: "recall.db",
		},
		Chat: ChatConfig{
			DefaultTemperature: 0.7,
			DefaultMaxTokens:   1024,
			RetryAttempts:      0,
			RetryBackoff:       500 * time.Millisecond,
		},
		Cache: CacheConfig{
			Enabled: true,
		},
		CallLog: CallLogConfig{
			ExcerptMaxLen: 1024,
			RetentionDays: 90,
		},
		Archive: ArchiveConfig{
			Type: "localfs",
			Path: "archive",
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("port must be between 1 and 65535, got %d", c.Server.Port))
	}

	if c.Chat.DefaultTemperature < 0 || c.Chat.DefaultTemperature > 2 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("default_temperature must be within [0, 2], got %f", c.Chat.DefaultTemperature))
	}
	if c.Chat.RetryAttempts < 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("retry_attempts cannot be negative, got %d", c.Chat.RetryAttempts))
	}

	if c.DefaultProvider != "" {
		if _, ok := c.Providers[c.DefaultProvider]; !ok {
			return core.WrapError(core.ErrConfigInvalid,
				fmt.Errorf("default_provider %q has no provider entry", c.DefaultProvider))
		}
	}

	for name, p := range c.Providers {
		switch p.Kind {
		case "openai", "anthropic":
		default:
			return core.WrapError(core.ErrConfigInvalid,
				fmt.Errorf("provider %s: unknown kind %q", name, p.Kind))
		}
		if p.APIKey == "" {
			return core.WrapError(core.ErrConfigMissing,
				fmt.Errorf("provider %s: api_key required", name))
		}
		if p.DefaultModel == "" {
			return core.WrapError(core.ErrConfigMissing,
				fmt.Errorf("provider %s: default_model required", name))
		}
	}

	if c.Archive.Type != "" && c.Archive.Type != "localfs" && c.Archive.Type != "s3" {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("archive type must be localfs or s3, got %s", c.Archive.Type))
	}

	return nil
}

// ProviderConfigs converts the configured providers into core configs,
// carrying over the chat defaults where a provider leaves them unset.
func (c *Config) ProviderConfigs() []core.ProviderConfig {
	out := make([]core.ProviderConfig, 0, len(c.Providers))
	for name, p := range c.Providers {
		timeout := p.Timeout
		if timeout <= 0 {
			timeout = 60 * time.Second
		}
		out = append(out, core.ProviderConfig{
			Name:            name,
			Kind:            core.ProviderKind(p.Kind),
			BaseURL:         p.BaseURL,
			APIKey:          p.APIKey,
			DefaultModel:    p.DefaultModel,
			SupportedModels: p.SupportedModels,
			Timeout:         timeout,
		})
	}
	return out
}
