// internal/api/handler/chat.go
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/recallai/recall/internal/api/response"
	"github.com/recallai/recall/internal/core"
)

// ChatService defines the interface needed from the orchestrator.
type ChatService interface {
	Chat(ctx context.Context, req core.ChatRequest) (*core.ChatResult, error)
}

// ChatHandler handles chat API requests.
type ChatHandler struct {
	svc ChatService
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(svc ChatService) *ChatHandler {
	return &ChatHandler{svc: svc}
}

type chatRequest struct {
	Provider     string   `json:"provider"`
	Model        string   `json:"model"`
	SystemPrompt string   `json:"system_prompt"`
	UserPrompt   string   `json:"user_prompt"`
	Temperature  *float64 `json:"temperature"` // omitted means the configured default; 0 is a real value
	MaxTokens    int      `json:"max_tokens"`
}

type chatResponse struct {
	Response     string `json:"response"`
	Provider     string `json:"provider"`
	Model        string `json:"model"`
	Cached       bool   `json:"cached"`
	InputTokens  int    `json:"input_tokens"`
	OutputTokens int    `json:"output_tokens"`
	Timestamp    string `json:"timestamp"`
}

// Chat runs one chat request through the cache and provider.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		response.Error(w, http.StatusMethodNotAllowed,
			core.WrapError(core.ErrInvalidRequest, errors.New("method not allowed")))
		return
	}

	var body chatRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, http.StatusBadRequest,
			core.WrapError(core.ErrInvalidRequest, err))
		return
	}

	result, err := h.svc.Chat(r.Context(), core.ChatRequest{
		Provider:     body.Provider,
		Model:        body.Model,
		SystemPrompt: body.SystemPrompt,
		UserPrompt:   body.UserPrompt,
		Temperature:  body.Temperature,
		MaxTokens:    body.MaxTokens,
	})
	if err != nil {
		response.Error(w, response.StatusFor(err), err)
		return
	}

	response.JSON(w, http.StatusOK, chatResponse{
		Response:     result.Text,
		Provider:     result.Provider,
		Model:        result.Model,
		Cached:       result.Cached,
		InputTokens:  result.Usage.InputTokens,
		OutputTokens: result.Usage.OutputTokens,
		Timestamp:    result.Timestamp.UTC().Format(time.RFC3339),
	})
}
