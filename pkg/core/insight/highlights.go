package insight

import (
	"context"
	"encoding/json"

	"statement_insight/pkg/core/agent"
	"statement_insight/pkg/core/utils"
)

// Highlights is the structured companion to the narrative commentary.
type Highlights struct {
	Assessment string   `json:"assessment"`
	KeyDrivers []string `json:"key_drivers"`
	Risks      []string `json:"risks,omitempty"`
}

// ExtractHighlights asks the model for a JSON summary of the analysis and
// repairs/validates the reply. A failure here degrades the response to plain
// commentary only; callers treat the error as non-fatal.
func ExtractHighlights(ctx context.Context, mgr *agent.Manager, dataForAI string) (*Highlights, error) {
	if err := mgr.Configured(AgentType); err != nil {
		return nil, err
	}

	options := map[string]interface{}{
		"response_format": map[string]interface{}{"type": "json_object"},
	}
	resp, err := mgr.ExecutePrompt(ctx, AgentType, highlightsInstruction+dataForAI, highlightsSystemPrompt, options)
	if err != nil {
		return nil, err
	}

	var h Highlights
	repaired, err := utils.ValidateAndRepairJSON(resp, &h)
	if err != nil {
		return nil, err
	}
	// Re-decode from the repaired text so the struct reflects the repaired
	// JSON, not a partially-filled draft from the validation pass.
	h = Highlights{}
	if err := json.Unmarshal([]byte(repaired), &h); err != nil {
		return nil, err
	}
	return &h, nil
}
