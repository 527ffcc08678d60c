package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Registry holds all Prometheus metrics.
type Registry struct {
	*prometheus.Registry

	// HTTP metrics
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight prometheus.Gauge

	// Business metrics
	chatRequests    *prometheus.CounterVec
	chatDuration    *prometheus.HistogramVec
	cacheLookups    *prometheus.CounterVec
	cacheEntries    prometheus.Gauge
	providerRetries *prometheus.CounterVec
}

// NewRegistry creates a new metrics registry with all metrics registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	// Register Go runtime metrics
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &Registry{
		Registry: reg,

		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),

		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		httpRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently in flight",
			},
		),
	}

	reg.MustRegister(r.httpRequestsTotal)
	reg.MustRegister(r.httpRequestDuration)
	reg.MustRegister(r.httpRequestsInFlight)

	// Business metrics
	r.chatRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recall_chat_requests_total",
			Help: "Total number of chat requests",
		},
		[]string{"provider", "status", "cached"},
	)
	r.chatDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recall_chat_duration_seconds",
			Help:    "Chat request duration in seconds",
			Buckets: []float64{0.01, 0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"provider"},
	)
	r.cacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recall_cache_lookups_total",
			Help: "Total number of cache lookups",
		},
		[]string{"result"},
	)
	r.cacheEntries = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "recall_cache_entries",
			Help: "Number of rows in the response cache",
		},
	)
	r.providerRetries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recall_provider_retries_total",
			Help: "Total number of provider call retries",
		},
		[]string{"provider"},
	)

	reg.MustRegister(r.chatRequests)
	reg.MustRegister(r.chatDuration)
	reg.MustRegister(r.cacheLookups)
	reg.MustRegister(r.cacheEntries)
	reg.MustRegister(r.providerRetries)

	return r
}

// RecordRequest records metrics for an HTTP request.
func (r *Registry) RecordRequest(method, path string, status int, duration float64) {
	statusStr := statusToString(status)
	r.httpRequestsTotal.WithLabelValues(method, path, statusStr).Inc()
	r.httpRequestDuration.WithLabelValues(method, path).Observe(duration)
}

// InFlightInc increments in-flight requests.
func (r *Registry) InFlightInc() {
	r.httpRequestsInFlight.Inc()
}

// InFlightDec decrements in-flight requests.
func (r *Registry) InFlightDec() {
	r.httpRequestsInFlight.Dec()
}

// RecordChat records a completed chat request.
func (r *Registry) RecordChat(provider, status string, cached bool, duration float64) {
	cachedStr := "false"
	if cached {
		cachedStr = "true"
	}
	r.chatRequests.WithLabelValues(provider, status, cachedStr).Inc()
	r.chatDuration.WithLabelValues(provider).Observe(duration)
}

// RecordCacheLookup records a cache lookup outcome ("hit" or "miss").
func (r *Registry) RecordCacheLookup(result string) {
	r.cacheLookups.WithLabelValues(result).Inc()
}

// SetCacheEntries sets the cache row count gauge.
func (r *Registry) SetCacheEntries(count int64) {
	r.cacheEntries.Set(float64(count))
}

// RecordProviderRetry records one retry of a provider call.
func (r *Registry) RecordProviderRetry(provider string) {
	r.providerRetries.WithLabelValues(provider).Inc()
}

func statusToString(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	case status >= 200:
		return "2xx"
	default:
		return "1xx"
	}
}
