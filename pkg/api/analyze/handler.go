// Package analyze provides the HTTP handler for statement uploads: ingest,
// compute, open a chat session, respond with the derived analysis.
package analyze

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"statement_insight/pkg/core/agent"
	"statement_insight/pkg/core/calc"
	"statement_insight/pkg/core/chat"
	"statement_insight/pkg/core/ingest"
	"statement_insight/pkg/core/insight"
	"statement_insight/pkg/core/report"
	"statement_insight/pkg/core/session"
	"statement_insight/pkg/core/store"
	"statement_insight/pkg/models"
)

const maxUploadBytes = 16 << 20 // 16 MiB

// Handler holds the dependencies of the analyze endpoint.
type Handler struct {
	mgr      *agent.Manager
	registry *session.Registry
	memo     *calc.MemoCache
	opts     calc.Options
	repo     *store.SnapshotRepo
}

// NewHandler wires the analyze endpoint. repo may be nil when persistence is
// disabled.
func NewHandler(mgr *agent.Manager, registry *session.Registry, opts calc.Options, repo *store.SnapshotRepo) *Handler {
	return &Handler{
		mgr:      mgr,
		registry: registry,
		memo:     calc.NewMemoCache(),
		opts:     opts,
		repo:     repo,
	}
}

// Response is the analyze endpoint's payload.
type Response struct {
	SessionID string                   `json:"session_id"`
	Rows      []models.DerivedRow      `json:"rows"`
	Anchor    string                   `json:"anchor"`
	Liquidity *models.LiquidityMetrics `json:"liquidity,omitempty"`
	Warning   string                   `json:"warning,omitempty"`
	Display   string                   `json:"display"` // markdown rendering
	AIEnabled bool                     `json:"ai_enabled"`
	Welcome   string                   `json:"welcome,omitempty"`
}

// HandleAnalyze handles POST /api/analyze with a multipart "file" field.
func (h *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
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

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file upload: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	rows, err := ingest.Parse(header.Filename, file)
	if err != nil {
		// No session survives a failed ingestion.
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	table, cached, err := h.memo.Analyze(rows, h.opts)
	if err != nil {
		var structural *calc.StructuralError
		if errors.As(err, &structural) {
			http.Error(w, structural.Error(), http.StatusUnprocessableEntity)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if cached {
		log.Printf("[ANALYZE] cache hit for %s", header.Filename)
	}

	metrics, warning := calc.CurrentRatios(table, h.opts.Matcher)

	ctx := h.registry.Create(header.Filename)
	ctx.Table = table
	ctx.Liquidity = metrics
	if warning != nil {
		ctx.Warning = warning.Error()
	}
	ctx.DataForAI = insight.BuildDataForAI(table, metrics, h.opts.Matcher)

	resp := Response{
		SessionID: ctx.ID,
		Rows:      table.Rows,
		Anchor:    table.AnchorLabel,
		Liquidity: metrics,
		Warning:   ctx.Warning,
		Display:   report.Table(table),
	}

	// The chat session needs a configured provider; without one the core
	// analysis still works and only AI features stay off.
	if h.mgr.Configured(chat.AgentType) == nil {
		ctx.Chat = chat.NewSession(r.Context(), h.mgr, resp.Display)
		resp.AIEnabled = true
		resp.Welcome = chat.WelcomeMessage
	}

	if h.repo != nil && store.GetPool() != nil {
		snap := &store.Snapshot{
			SessionID: ctx.ID,
			FileName:  ctx.FileName,
			Table:     table,
			Liquidity: metrics,
		}
		if err := h.repo.Save(r.Context(), snap); err != nil {
			log.Printf("[WARNING] snapshot persist failed: %v", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
