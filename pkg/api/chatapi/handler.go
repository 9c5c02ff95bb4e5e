// Package chatapi provides the HTTP handlers for the Q&A conversation.
package chatapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"statement_insight/pkg/core/llm"
	"statement_insight/pkg/core/session"
	"statement_insight/pkg/models"
)

// Handler holds the chat endpoints' dependencies.
type Handler struct {
	registry *session.Registry
}

// NewHandler creates a new chat handler.
func NewHandler(registry *session.Registry) *Handler {
	return &Handler{registry: registry}
}

// AskRequest is one user turn.
type AskRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// AskResponse carries the assistant turn, or the verbatim error text with
// the history preserved for the next attempt.
type AskResponse struct {
	Reply   string        `json:"reply,omitempty"`
	Error   string        `json:"error,omitempty"`
	History []models.Turn `json:"history"`
}

// HandleAsk handles POST /api/chat.
func (h *Handler) HandleAsk(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Content-Type", "application/json")

	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Message == "" {
		http.Error(w, "message is required", http.StatusBadRequest)
		return
	}

	ctx, ok := h.registry.Get(req.SessionID)
	if !ok {
		http.Error(w, "unknown session; upload a statement first", http.StatusNotFound)
		return
	}
	if ctx.Chat == nil {
		http.Error(w, "chat is unavailable: no LLM provider is configured", http.StatusServiceUnavailable)
		return
	}

	reply, err := ctx.Chat.Ask(r.Context(), req.Message)
	if err != nil {
		status := http.StatusBadGateway
		var configErr *llm.ConfigurationError
		if errors.As(err, &configErr) {
			status = http.StatusServiceUnavailable
		}
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(AskResponse{Error: err.Error(), History: ctx.Chat.History()})
		return
	}

	json.NewEncoder(w).Encode(AskResponse{Reply: reply, History: ctx.Chat.History()})
}

// HandleHistory handles GET /api/chat/history?session_id=...
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Content-Type", "application/json")

	if r.Method != "GET" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx, ok := h.registry.Get(r.URL.Query().Get("session_id"))
	if !ok {
		http.Error(w, "unknown session", http.StatusNotFound)
		return
	}

	history := []models.Turn{}
	if ctx.Chat != nil {
		history = ctx.Chat.History()
	}
	json.NewEncoder(w).Encode(AskResponse{History: history})
}
