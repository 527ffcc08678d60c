package main

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/recallai/recall/internal/cache"
	"github.com/recallai/recall/internal/calllog"
	"github.com/recallai/recall/internal/config"
	"github.com/recallai/recall/internal/metrics"
	"github.com/recallai/recall/internal/orchestrator"
	"github.com/recallai/recall/internal/provider"
	"github.com/recallai/recall/internal/provider/factory"
	"github.com/recallai/recall/internal/registry"
	"github.com/recallai/recall/internal/store"
)

// loadConfig reads the config file named by --config, falling back to
// defaults when none is given.
func loadConfig(log *zap.Logger) (*config.Config, error) {
	var cfg *config.Config
	var err error

	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	} else {
		cfg = config.Defaults()
		log.Warn("no config file specified, using defaults")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// app bundles the wired service components.
type app struct {
	cfg     *config.Config
	db      *gorm.DB
	reg     *registry.Registry
	cache   *cache.GormStore
	logbook *calllog.GormRecorder
	metrics *metrics.Registry
	orch    *orchestrator.Orchestrator
}

// buildApp opens the store and wires registry, adapters, cache, call
// log and orchestrator from the config.
func buildApp(cfg *config.Config, log *zap.Logger) (*app, error) {
	db, err := store.Open(cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	reg, err := registry.New(cfg.ProviderConfigs(), cfg.DefaultProvider)
	if err != nil {
		return nil, fmt.Errorf("building provider registry: %w", err)
	}

	var m *metrics.Registry
	if cfg.Metrics.Enabled {
		m = metrics.NewRegistry()
	}

	retryCfg := provider.RetryConfig{
		Attempts: cfg.Chat.RetryAttempts,
		Backoff:  cfg.Chat.RetryBackoff,
	}
	if m != nil {
		retryCfg.OnRetry = m.RecordProviderRetry
	}
	adapters := make(map[string]provider.Adapter)
	for _, pcfg := range cfg.ProviderConfigs() {
		adapter, err := factory.New(pcfg)
		if err != nil {
			return nil, fmt.Errorf("creating adapter for %s: %w", pcfg.Name, err)
		}
		adapters[pcfg.Name] = provider.WithRetry(adapter, retryCfg, log)
	}

	cacheStore := cache.NewGormStore(db)
	logbook := calllog.NewGormRecorder(db)

	orch := orchestrator.New(orchestrator.Config{
		DefaultTemperature: cfg.Chat.DefaultTemperature,
		DefaultMaxTokens:   cfg.Chat.DefaultMaxTokens,
		CacheEnabled:       cfg.Cache.Enabled,
		ExcerptMaxLen:      cfg.CallLog.ExcerptMaxLen,
	}, reg, adapters, cacheStore, logbook, m, log)

	return &app{
		cfg:     cfg,
		db:      db,
		reg:     reg,
		cache:   cacheStore,
		logbook: logbook,
		metrics: m,
		orch:    orch,
	}, nil
}
