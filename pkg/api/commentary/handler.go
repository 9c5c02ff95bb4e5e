// Package commentary provides the HTTP handler for the one-shot AI
// assessment of an analyzed statement.
package commentary

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"statement_insight/pkg/core/agent"
	"statement_insight/pkg/core/insight"
	"statement_insight/pkg/core/llm"
	"statement_insight/pkg/core/session"
)

// Handler holds the commentary endpoint's dependencies.
type Handler struct {
	mgr      *agent.Manager
	registry *session.Registry
}

// NewHandler creates a new commentary handler.
func NewHandler(mgr *agent.Manager, registry *session.Registry) *Handler {
	return &Handler{mgr: mgr, registry: registry}
}

// Request names the session to comment on.
type Request struct {
	SessionID string `json:"session_id"`
}

// Response carries the narrative text plus the optional structured
// highlights. Error holds the verbatim failure text when the external call
// failed; the session stays valid for a later retry by the user.
type Response struct {
	Commentary string              `json:"commentary,omitempty"`
	Highlights *insight.Highlights `json:"highlights,omitempty"`
	Error      string              `json:"error,omitempty"`
}

// HandleCommentary handles POST /api/commentary.
func (h *Handler) HandleCommentary(w http.ResponseWriter, r *http.Request) {
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

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	ctx, ok := h.registry.Get(req.SessionID)
	if !ok || ctx.Table == nil {
		http.Error(w, "unknown session; upload a statement first", http.StatusNotFound)
		return
	}

	text, err := insight.Commentary(r.Context(), h.mgr, ctx.DataForAI)
	if err != nil {
		status := http.StatusBadGateway
		var configErr *llm.ConfigurationError
		if errors.As(err, &configErr) {
			status = http.StatusServiceUnavailable
		}
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(Response{Error: err.Error()})
		return
	}

	resp := Response{Commentary: text}
	if highlights, err := insight.ExtractHighlights(r.Context(), h.mgr, ctx.DataForAI); err != nil {
		// Non-fatal: plain commentary is still the answer.
		log.Printf("[COMMENTARY] highlights pass failed: %v", err)
	} else {
		resp.Highlights = highlights
	}
	json.NewEncoder(w).Encode(resp)
}
