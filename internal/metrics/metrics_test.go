package metrics

import (
	"testing"
)

func TestNewRegistry(t *testing.T) {
	reg := NewRegistry()
	if reg == nil {
		t.Fatal("expected non-nil registry")
	}

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}
	if len(mfs) == 0 {
		t.Error("expected some metrics to be registered")
	}
}

func findMetric(t *testing.T, reg *Registry, name string) bool {
	t.Helper()

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}
	for _, mf := range mfs {
		if mf.GetName() == name {
			return true
		}
	}
	return false
}

func TestRegistry_RecordRequest(t *testing.T) {
	reg := NewRegistry()

	reg.RecordRequest("POST", "/api/chat", 200, 0.05)

	if !findMetric(t, reg, "http_requests_total") {
		t.Error("expected http_requests_total metric")
	}
}

func TestRegistry_RecordChat(t *testing.T) {
	reg := NewRegistry()

	reg.RecordChat("openai", "success", false, 1.2)
	reg.RecordChat("openai", "success", true, 0.002)
	reg.RecordChat("claude", "error", false, 0.5)

	if !findMetric(t, reg, "recall_chat_requests_total") {
		t.Error("expected recall_chat_requests_total metric")
	}
	if !findMetric(t, reg, "recall_chat_duration_seconds") {
		t.Error("expected recall_chat_duration_seconds metric")
	}
}

func TestRegistry_RecordCacheLookup(t *testing.T) {
	reg := NewRegistry()

	reg.RecordCacheLookup("hit")
	reg.RecordCacheLookup("miss")
	reg.SetCacheEntries(17)

	if !findMetric(t, reg, "recall_cache_lookups_total") {
		t.Error("expected recall_cache_lookups_total metric")
	}
	if !findMetric(t, reg, "recall_cache_entries") {
		t.Error("expected recall_cache_entries metric")
	}
}

func TestRegistry_RecordProviderRetry(t *testing.T) {
	reg := NewRegistry()

	reg.RecordProviderRetry("openai")

	if !findMetric(t, reg, "recall_provider_retries_total") {
		t.Error("expected recall_provider_retries_total metric")
	}
}

func TestStatusToString(t *testing.T) {
	tests := []struct {
		status   int
		expected string
	}{
		{100, "1xx"},
		{200, "2xx"},
		{301, "3xx"},
		{404, "4xx"},
		{503, "5xx"},
	}

	for _, tt := range tests {
		if got := statusToString(tt.status); got != tt.expected {
			t.Errorf("statusToString(%d) = %s, want %s", tt.status, got, tt.expected)
		}
	}
}
