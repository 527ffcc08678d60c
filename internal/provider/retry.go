package provider

import (
	"context"
	"errors"
	"time"

	"github.com/recallai/recall/internal/core"
	"go.uber.org/zap"
)

// RetryConfig bounds the retry policy for transient failures.
type RetryConfig struct {
	Attempts int                   // extra attempts after the first; 0 disables retry
	Backoff  time.Duration         // initial backoff, doubled per attempt
	OnRetry  func(provider string) // observability hook, called once per retry
}

// retrying wraps an adapter with bounded retry for transient failures.
// Rejections and unsupported-model errors are never retried.
type retrying struct {
	inner  Adapter
	cfg    RetryConfig
	logger *zap.Logger
}

// WithRetry wraps the adapter with the given retry policy. A zero
// attempt count returns the adapter unchanged.
func WithRetry(inner Adapter, cfg RetryConfig, logger *zap.Logger) Adapter {
	if cfg.Attempts <= 0 {
		return inner
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = 500 * time.Millisecond
	}
	return &retrying{inner: inner, cfg: cfg, logger: logger}
}

func (r *retrying) Name() string {
	return r.inner.Name()
}

func (r *retrying) Invoke(ctx context.Context, params InvokeParams) (string, core.Usage, error) {
	var (
		text  string
		usage core.Usage
		err   error
	)

	backoff := r.cfg.Backoff
	for attempt := 0; attempt <= r.cfg.Attempts; attempt++ {
		if attempt > 0 {
			if r.cfg.OnRetry != nil {
				r.cfg.OnRetry(r.inner.Name())
			}
			r.logger.Warn("retrying provider call",
				zap.String("provider", r.inner.Name()),
				zap.Int("attempt", attempt),
				zap.Duration("backoff", backoff),
				zap.Error(err),
			)
			select {
			case <-ctx.Done():
				return "", core.Usage{}, core.WrapError(core.ErrProviderUnavailable, ctx.Err())
			case <-time.After(backoff):
			}
			backoff *= 2
		}

		text, usage, err = r.inner.Invoke(ctx, params)
		if err == nil {
			return text, usage, nil
		}
		if !errors.Is(err, core.ErrProviderUnavailable) {
			// Rejections reflect a permanent request defect or quota
			// state; repeating them cannot succeed.
			return "", core.Usage{}, err
		}
	}

	return "", core.Usage{}, err
}
