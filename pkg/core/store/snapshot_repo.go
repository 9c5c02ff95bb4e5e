package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"statement_insight/pkg/models"

	"github.com/jackc/pgx/v5"
)

// SnapshotRepo stores completed analysis snapshots, one per session.
type SnapshotRepo struct{}

// NewSnapshotRepo creates a new repository instance.
func NewSnapshotRepo() *SnapshotRepo {
	return &SnapshotRepo{}
}

// Snapshot is the persisted form of one analysis.
type Snapshot struct {
	SessionID string                   `json:"session_id"`
	FileName  string                   `json:"file_name"`
	Table     *models.AnalysisTable    `json:"table"`
	Liquidity *models.LiquidityMetrics `json:"liquidity,omitempty"`
	SavedAt   time.Time                `json:"saved_at"`
}

// Schema assumption:
// CREATE TABLE IF NOT EXISTS statement_snapshots (
//   session_id TEXT PRIMARY KEY,
//   file_name TEXT,
//   snapshot_json JSONB,
//   updated_at TIMESTAMPTZ
// );

// Save upserts the snapshot keyed by session ID.
func (r *SnapshotRepo) Save(ctx context.Context, snap *Snapshot) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	snap.SavedAt = time.Now()
	jsonData, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	query := `
		INSERT INTO statement_snapshots (session_id, file_name, snapshot_json, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (session_id)
		DO UPDATE SET
			file_name = EXCLUDED.file_name,
			snapshot_json = EXCLUDED.snapshot_json,
			updated_at = EXCLUDED.updated_at;
	`
	if _, err := pool.Exec(ctx, query, snap.SessionID, snap.FileName, jsonData, snap.SavedAt); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// Load retrieves a stored snapshot by session ID.
func (r *SnapshotRepo) Load(ctx context.Context, sessionID string) (*Snapshot, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	query := `SELECT snapshot_json FROM statement_snapshots WHERE session_id = $1`

	var jsonData []byte
	if err := pool.QueryRow(ctx, query, sessionID).Scan(&jsonData); err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("no snapshot found for session %s", sessionID)
		}
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(jsonData, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return &snap, nil
}
