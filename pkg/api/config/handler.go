// Package config exposes the provider configuration endpoints.
package config

import (
	"encoding/json"
	"net/http"

	"statement_insight/pkg/core/agent"
)

// Response describes the provider configuration.
type Response struct {
	ActiveProvider string   `json:"active_provider"`
	Available      []string `json:"available"`
	AIEnabled      bool     `json:"ai_enabled"`
}

// SwitchRequest selects a new global provider.
type SwitchRequest struct {
	Provider string `json:"provider"`
}

// Handler holds dependencies for config endpoints.
type Handler struct {
	AgentMgr *agent.Manager
}

// NewHandler creates a new config handler.
func NewHandler(agentMgr *agent.Manager) *Handler {
	return &Handler{AgentMgr: agentMgr}
}

// HandleConfig handles GET /api/config.
func (h *Handler) HandleConfig(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Content-Type", "application/json")

	resp := Response{
		ActiveProvider: h.AgentMgr.GetActiveProvider(),
		Available:      h.AgentMgr.Available(),
		AIEnabled:      h.AgentMgr.Configured("commentary") == nil,
	}
	json.NewEncoder(w).Encode(resp)
}

// HandleSwitch handles POST /api/config/switch.
func (h *Handler) HandleSwitch(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req SwitchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.AgentMgr.SetGlobalProvider(req.Provider); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"active_provider": h.AgentMgr.GetActiveProvider()})
}
