// internal/api/handler/admin.go
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/recallai/recall/internal/api/response"
	"github.com/recallai/recall/internal/cache"
	"github.com/recallai/recall/internal/calllog"
	"github.com/recallai/recall/internal/core"
	"github.com/recallai/recall/internal/metrics"
)

// ProviderDirectory defines the interface needed from the registry.
type ProviderDirectory interface {
	Names() []string
	Resolve(name string) (*core.ProviderConfig, error)
}

// CacheAdmin defines the cache operations exposed over the API.
type CacheAdmin interface {
	Stats(ctx context.Context) (cache.Stats, error)
	Purge(ctx context.Context, olderThan time.Time) (int64, error)
}

// LogReader defines the call log operations exposed over the API.
type LogReader interface {
	List(ctx context.Context, limit int) ([]calllog.Entry, error)
	Stats(ctx context.Context) (calllog.Stats, error)
}

// AdminHandler handles provider, cache and call log API requests.
type AdminHandler struct {
	providers ProviderDirectory
	cache     CacheAdmin
	logs      LogReader
	metrics   *metrics.Registry
}

// NewAdminHandler creates a new admin handler. m may be nil when
// metrics are disabled.
func NewAdminHandler(providers ProviderDirectory, cacheAdmin CacheAdmin, logs LogReader, m *metrics.Registry) *AdminHandler {
	return &AdminHandler{providers: providers, cache: cacheAdmin, logs: logs, metrics: m}
}

type providerInfo struct {
	Name         string   `json:"name"`
	Kind         string   `json:"kind"`
	DefaultModel string   `json:"default_model"`
	Models       []string `json:"models,omitempty"`
}

// Providers lists the configured providers. API keys are never exposed.
func (h *AdminHandler) Providers(w http.ResponseWriter, r *http.Request) {
	names := h.providers.Names()
	infos := make([]providerInfo, 0, len(names))
	for _, name := range names {
		pcfg, err := h.providers.Resolve(name)
		if err != nil {
			response.Error(w, response.StatusFor(err), err)
			return
		}
		infos = append(infos, providerInfo{
			Name:         pcfg.Name,
			Kind:         string(pcfg.Kind),
			DefaultModel: pcfg.DefaultModel,
			Models:       pcfg.SupportedModels,
		})
	}
	response.JSON(w, http.StatusOK, infos)
}

// CacheStats returns entry and hit counters for the response cache.
func (h *AdminHandler) CacheStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.cache.Stats(r.Context())
	if err != nil {
		response.Error(w, response.StatusFor(err), err)
		return
	}
	if h.metrics != nil {
		h.metrics.SetCacheEntries(stats.Entries)
	}
	response.JSON(w, http.StatusOK, stats)
}

// CachePurge deletes cached responses. An optional older_than query
// parameter (RFC 3339) restricts the purge; without it everything goes.
func (h *AdminHandler) CachePurge(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		w.Header().Set("Allow", http.MethodDelete)
		response.Error(w, http.StatusMethodNotAllowed,
			core.WrapError(core.ErrInvalidRequest, errors.New("method not allowed")))
		return
	}

	var olderThan time.Time
	if raw := r.URL.Query().Get("older_than"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			response.Error(w, http.StatusBadRequest,
				core.WrapError(core.ErrInvalidRequest, err))
			return
		}
		olderThan = parsed
	}

	purged, err := h.cache.Purge(r.Context(), olderThan)
	if err != nil {
		response.Error(w, response.StatusFor(err), err)
		return
	}
	if h.metrics != nil {
		if stats, statsErr := h.cache.Stats(r.Context()); statsErr == nil {
			h.metrics.SetCacheEntries(stats.Entries)
		}
	}
	response.JSON(w, http.StatusOK, map[string]any{"purged": purged})
}

// Logs returns the most recent call log entries, newest first.
func (h *AdminHandler) Logs(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			response.Error(w, http.StatusBadRequest,
				core.WrapError(core.ErrInvalidRequest, errors.New("limit must be a positive integer")))
			return
		}
		limit = parsed
	}

	entries, err := h.logs.List(r.Context(), limit)
	if err != nil {
		response.Error(w, response.StatusFor(err), err)
		return
	}
	response.JSON(w, http.StatusOK, entries)
}

// LogStats returns aggregated call log counters.
func (h *AdminHandler) LogStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.logs.Stats(r.Context())
	if err != nil {
		response.Error(w, response.StatusFor(err), err)
		return
	}
	response.JSON(w, http.StatusOK, stats)
}
