// internal/orchestrator/orchestrator.go
package orchestrator

import (
	"context"
	"errors"
	"time"

	"github.com/recallai/recall/internal/cache"
	"github.com/recallai/recall/internal/calllog"
	"github.com/recallai/recall/internal/core"
	"github.com/recallai/recall/internal/metrics"
	"github.com/recallai/recall/internal/provider"
	"github.com/recallai/recall/internal/registry"
	"go.uber.org/zap"
)

// Config holds orchestrator policy.
type Config struct {
	DefaultTemperature float64
	DefaultMaxTokens   int
	CacheEnabled       bool
	ExcerptMaxLen      int
}

// Orchestrator resolves chat requests against the cache and, on a
// miss, against the matching provider adapter. Each call is
// independent; the persistent store is the only shared state.
type Orchestrator struct {
	cfg      Config
	registry *registry.Registry
	adapters map[string]provider.Adapter
	cache    cache.Store
	logbook  calllog.Recorder
	metrics  *metrics.Registry
	logger   *zap.Logger
}

// New creates an orchestrator. Adapters are keyed by provider name and
// must cover every provider the registry can resolve. metrics may be
// nil when metrics are disabled.
func New(
	cfg Config,
	reg *registry.Registry,
	adapters map[string]provider.Adapter,
	cacheStore cache.Store,
	logbook calllog.Recorder,
	m *metrics.Registry,
	logger *zap.Logger,
) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		cfg:      cfg,
		registry: reg,
		adapters: adapters,
		cache:    cacheStore,
		logbook:  logbook,
		metrics:  m,
		logger:   logger,
	}
}

// Chat handles one chat request end to end.
func (o *Orchestrator) Chat(ctx context.Context, req core.ChatRequest) (*core.ChatResult, error) {
	// Invalid requests must never reach the cache, a provider, or the
	// call log.
	if err := req.Validate(); err != nil {
		return nil, err
	}

	pcfg, err := o.registry.Resolve(req.Provider)
	if err != nil {
		o.record(ctx, calllog.Entry{
			Provider:       req.Provider,
			Model:          req.Model,
			RequestExcerpt: calllog.Truncate(req.UserPrompt, o.cfg.ExcerptMaxLen),
			Status:         calllog.StatusError,
			ErrorMessage:   err.Error(),
		})
		return nil, err
	}

	model := req.Model
	if model == "" {
		model = pcfg.DefaultModel
	}
	// Only an absent temperature falls back to the default. An explicit
	// 0 is a real value and must fingerprint as one.
	temperature := o.cfg.DefaultTemperature
	if req.Temperature != nil {
		temperature = *req.Temperature
	}
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = o.cfg.DefaultMaxTokens
	}

	fp := cache.Fingerprint(pcfg.Name, model, temperature, req.SystemPrompt, req.UserPrompt)

	start := time.Now()

	if o.cfg.CacheEnabled {
		if result := o.fromCache(ctx, fp, pcfg.Name, model, req, start); result != nil {
			return result, nil
		}
	}

	text, usage, err := o.invoke(ctx, pcfg, provider.InvokeParams{
		Model:        model,
		SystemPrompt: req.SystemPrompt,
		UserPrompt:   req.UserPrompt,
		Temperature:  temperature,
		MaxTokens:    maxTokens,
	})

	duration := time.Since(start)

	if err != nil {
		// Nothing is cached on failure.
		o.record(ctx, calllog.Entry{
			Provider:       pcfg.Name,
			Model:          model,
			RequestExcerpt: calllog.Truncate(req.UserPrompt, o.cfg.ExcerptMaxLen),
			Status:         calllog.StatusError,
			ErrorMessage:   err.Error(),
			DurationMS:     duration.Milliseconds(),
		})
		o.observeChat(pcfg.Name, calllog.StatusError, false, duration)
		return nil, core.WrapError(core.ErrChatFailed, err)
	}

	if o.cfg.CacheEnabled {
		putErr := o.cache.Put(ctx, cache.Entry{
			Fingerprint:  fp,
			SystemPrompt: req.SystemPrompt,
			UserPrompt:   req.UserPrompt,
			Response:     text,
			Provider:     pcfg.Name,
			Model:        model,
			Temperature:  temperature,
			TokensUsed:   usage.Total(),
			CreatedAt:    time.Now().UTC(),
		})
		if putErr != nil {
			// A failed cache write costs a future provider call, not
			// this request.
			o.logger.Warn("caching response failed",
				zap.String("fingerprint", fp[:8]),
				zap.Error(putErr),
			)
		} else if o.metrics != nil {
			if stats, statsErr := o.cache.Stats(ctx); statsErr == nil {
				o.metrics.SetCacheEntries(stats.Entries)
			}
		}
	}

	o.record(ctx, calllog.Entry{
		Provider:        pcfg.Name,
		Model:           model,
		RequestExcerpt:  calllog.Truncate(req.UserPrompt, o.cfg.ExcerptMaxLen),
		ResponseExcerpt: calllog.Truncate(text, o.cfg.ExcerptMaxLen),
		Status:          calllog.StatusSuccess,
		DurationMS:      duration.Milliseconds(),
		InputTokens:     usage.InputTokens,
		OutputTokens:    usage.OutputTokens,
	})
	o.observeChat(pcfg.Name, calllog.StatusSuccess, false, duration)

	return &core.ChatResult{
		Text:      text,
		Provider:  pcfg.Name,
		Model:     model,
		Cached:    false,
		Usage:     usage,
		Timestamp: time.Now().UTC(),
	}, nil
}

// fromCache returns a result when the fingerprint is cached, nil on a
// miss. Hit-counter and lookup failures degrade to a miss or a
// warning; they never fail the request.
func (o *Orchestrator) fromCache(ctx context.Context, fp, providerName, model string, req core.ChatRequest, start time.Time) *core.ChatResult {
	entry, err := o.cache.Lookup(ctx, fp)
	if err != nil {
		o.logger.Warn("cache lookup failed", zap.Error(err))
		return nil
	}
	if entry == nil {
		if o.metrics != nil {
			o.metrics.RecordCacheLookup("miss")
		}
		return nil
	}

	if err := o.cache.RecordHit(ctx, fp); err != nil {
		o.logger.Warn("recording cache hit failed", zap.Error(err))
	}
	if o.metrics != nil {
		o.metrics.RecordCacheLookup("hit")
	}

	duration := time.Since(start)
	o.record(ctx, calllog.Entry{
		Provider:        entry.Provider,
		Model:           entry.Model,
		RequestExcerpt:  calllog.Truncate(req.UserPrompt, o.cfg.ExcerptMaxLen),
		ResponseExcerpt: calllog.Truncate(entry.Response, o.cfg.ExcerptMaxLen),
		Status:          calllog.StatusSuccess,
		DurationMS:      duration.Milliseconds(),
		Cached:          true,
	})
	o.observeChat(providerName, calllog.StatusSuccess, true, duration)

	return &core.ChatResult{
		Text:      entry.Response,
		Provider:  entry.Provider,
		Model:     entry.Model,
		Cached:    true,
		Timestamp: time.Now().UTC(),
	}
}

// invoke runs the adapter under the provider's timeout.
func (o *Orchestrator) invoke(ctx context.Context, pcfg *core.ProviderConfig, params provider.InvokeParams) (string, core.Usage, error) {
	adapter, ok := o.adapters[pcfg.Name]
	if !ok {
		return "", core.Usage{}, core.WrapError(core.ErrUnknownProvider,
			errors.New("no adapter wired for provider "+pcfg.Name))
	}

	if pcfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, pcfg.Timeout)
		defer cancel()
	}

	return adapter.Invoke(ctx, params)
}

// record emits one call log entry, fire-and-forget.
func (o *Orchestrator) record(ctx context.Context, entry calllog.Entry) {
	if o.logbook == nil {
		return
	}
	if err := o.logbook.Record(ctx, entry); err != nil {
		o.logger.Warn("recording call log entry failed", zap.Error(err))
	}
}

func (o *Orchestrator) observeChat(providerName, status string, cached bool, duration time.Duration) {
	if o.metrics != nil {
		o.metrics.RecordChat(providerName, status, cached, duration.Seconds())
	}
}
