// internal/api/response/response_test.go
package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/recallai/recall/internal/core"
)

func TestJSON(t *testing.T) {
	w := httptest.NewRecorder()
	JSON(w, http.StatusOK, map[string]string{"hello": "world"})

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected application/json, got %s", ct)
	}

	var resp SuccessResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	data := resp.Data.(map[string]any)
	if data["hello"] != "world" {
		t.Errorf("unexpected data: %v", resp.Data)
	}
	if resp.Meta.Timestamp.IsZero() {
		t.Error("expected meta timestamp to be set")
	}
}

func TestError_CoreError(t *testing.T) {
	w := httptest.NewRecorder()
	Error(w, http.StatusNotFound, core.WrapError(core.ErrUnknownProvider, errors.New("no provider grok")))

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Error.Code != "UNKNOWN_PROVIDER" {
		t.Errorf("expected UNKNOWN_PROVIDER, got %s", resp.Error.Code)
	}
	if resp.Error.Cause != "no provider grok" {
		t.Errorf("unexpected cause: %s", resp.Error.Cause)
	}
}

func TestError_PlainError(t *testing.T) {
	w := httptest.NewRecorder()
	Error(w, http.StatusInternalServerError, errors.New("boom"))

	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Error.Code != "INTERNAL_ERROR" {
		t.Errorf("expected INTERNAL_ERROR, got %s", resp.Error.Code)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid request", core.ErrInvalidRequest, http.StatusBadRequest},
		{"unsupported model", core.ErrUnsupportedModel, http.StatusNotFound},
		{"unauthorized", core.ErrUnauthorized, http.StatusUnauthorized},
		{"unknown provider", core.ErrUnknownProvider, http.StatusNotFound},
		{"not found", core.ErrNotFound, http.StatusNotFound},
		{"rejected", core.ErrProviderRejected, http.StatusBadGateway},
		{"unavailable", core.ErrProviderUnavailable, http.StatusServiceUnavailable},
		{"store failed", core.ErrStoreFailed, http.StatusInternalServerError},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
		{
			"chat failure carries its cause",
			core.WrapError(core.ErrChatFailed, core.WrapError(core.ErrProviderUnavailable, errors.New("dial tcp"))),
			http.StatusServiceUnavailable,
		},
		{
			"chat failure with rejection",
			core.WrapError(core.ErrChatFailed, core.ErrProviderRejected),
			http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusFor(tt.err); got != tt.want {
				t.Errorf("StatusFor() = %d, want %d", got, tt.want)
			}
		})
	}
}
