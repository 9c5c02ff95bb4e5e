// Package session models the per-session state that the original tool kept
// as implicit UI globals: the active analysis and the chat conversation,
// with explicit reset rules. A new upload replaces the session; ingestion
// failure or a structural error produces no session at all, so stale tables
// never survive a failed upload.
package session

import (
	"sync"
	"time"

	"statement_insight/pkg/core/chat"
	"statement_insight/pkg/models"

	"github.com/google/uuid"
)

// Context is one user session: the derived table snapshot, its liquidity
// metrics, any recoverable warning, and the chat conversation.
type Context struct {
	ID        string
	CreatedAt time.Time
	FileName  string

	Table     *models.AnalysisTable
	Liquidity *models.LiquidityMetrics
	Warning   string

	DataForAI string // markdown block reused by commentary calls
	Chat      *chat.Session
}

// Registry holds the live sessions.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Context
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Context)}
}

// Create registers a fresh session and returns it.
func (r *Registry) Create(fileName string) *Context {
	ctx := &Context{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
		FileName:  fileName,
	}
	r.mu.Lock()
	r.sessions[ctx.ID] = ctx
	r.mu.Unlock()
	return ctx
}

// Get looks up a session by ID.
func (r *Registry) Get(id string) (*Context, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ctx, ok := r.sessions[id]
	return ctx, ok
}

// Drop removes a session, discarding its table and chat history.
func (r *Registry) Drop(id string) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}

// Count returns the number of live sessions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
