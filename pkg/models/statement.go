// Package models defines the shared data structures exchanged between the
// ingestion, calculation, insight and API layers.
package models

// StatementRow is one line of the uploaded two-period financial statement.
// Prior and Current carry the raw cell text exactly as ingested; numeric
// coercion is the calculator's job so that a malformed cell degrades to zero
// in one place only.
type StatementRow struct {
	Indicator string `json:"indicator"`
	Prior     string `json:"prior"`
	Current   string `json:"current"`
}

// DerivedRow is a StatementRow after coercion, decorated with the computed
// growth and composition columns.
type DerivedRow struct {
	Indicator string  `json:"indicator"`
	Prior     float64 `json:"prior"`
	Current   float64 `json:"current"`

	GrowthPct       float64 `json:"growth_pct"`
	PriorSharePct   float64 `json:"prior_share_pct"`
	CurrentSharePct float64 `json:"current_share_pct"`

	// Set only in strict numeric mode, when a zero denominator makes the
	// corresponding column meaningless rather than merely enormous.
	GrowthUndefined bool `json:"growth_undefined,omitempty"`
	ShareUndefined  bool `json:"share_undefined,omitempty"`
}

// AnalysisTable is the calculator's output: the derived rows in their
// original statement order plus the resolved anchor row.
type AnalysisTable struct {
	Rows        []DerivedRow `json:"rows"`
	AnchorIndex int          `json:"anchor_index"`
	AnchorLabel string       `json:"anchor_label"`
}

// Ratio is a single-period liquidity ratio. Infinite marks the
// zero-denominator case, rendered as a sentinel instead of a number.
type Ratio struct {
	Value    float64 `json:"value"`
	Infinite bool    `json:"infinite"`
}

// LiquidityMetrics holds the current ratio for both periods. Delta is only
// meaningful when DeltaAvailable is true; it is suppressed whenever either
// side is the infinite sentinel.
type LiquidityMetrics struct {
	Prior          Ratio   `json:"prior"`
	Current        Ratio   `json:"current"`
	Delta          float64 `json:"delta"`
	DeltaAvailable bool    `json:"delta_available"`
}

// Turn is one message of the Q&A transcript.
type Turn struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}
