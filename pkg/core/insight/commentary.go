// Package insight builds the prompts sent to the hosted model and shapes
// its replies: free-text narrative commentary plus an optional structured
// highlights pass.
package insight

import (
	"context"
	"fmt"
	"strings"

	"statement_insight/pkg/core/agent"
	"statement_insight/pkg/core/calc"
	"statement_insight/pkg/core/report"
	"statement_insight/pkg/models"
)

// AgentType names the config/models.yaml entry serving commentary calls.
const AgentType = "commentary"

// BuildDataForAI assembles the markdown block handed to the model: the full
// derived table, the short-term-assets growth rate, and both period current
// ratios (sentinel text when infinite or withheld).
func BuildDataForAI(table *models.AnalysisTable, metrics *models.LiquidityMetrics, matcher *calc.IndicatorMatcher) string {
	if matcher == nil {
		matcher = calc.DefaultMatcher()
	}

	stGrowth := report.UnavailableSentinel
	if i := matcher.ShortTermAssetsIndex(table.Rows); i >= 0 && !table.Rows[i].GrowthUndefined {
		stGrowth = report.Percent(table.Rows[i].GrowthPct)
	}

	priorRatio, currentRatio := report.UnavailableSentinel, report.UnavailableSentinel
	if metrics != nil {
		priorRatio = report.FormatRatio(metrics.Prior)
		currentRatio = report.FormatRatio(metrics.Current)
	}

	var b strings.Builder
	b.WriteString("| Indicator | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Full analysis table (raw data) | see below |\n")
	fmt.Fprintf(&b, "| Short-term assets growth (%%) | %s |\n", stGrowth)
	fmt.Fprintf(&b, "| Current ratio (prior period) | %s |\n", priorRatio)
	fmt.Fprintf(&b, "| Current ratio (current period) | %s |\n", currentRatio)
	b.WriteString("\n")
	b.WriteString(report.Table(table))
	return b.String()
}

// Commentary requests the narrative assessment. The returned text has outer
// code fences stripped; any provider failure is returned as-is for the
// caller to surface verbatim, with no retry.
func Commentary(ctx context.Context, mgr *agent.Manager, dataForAI string) (string, error) {
	if err := mgr.Configured(AgentType); err != nil {
		return "", err
	}
	resp, err := mgr.ExecutePrompt(ctx, AgentType, commentaryInstruction+dataForAI, commentarySystemPrompt, nil)
	if err != nil {
		return "", err
	}
	return report.CleanMarkdown(resp), nil
}
