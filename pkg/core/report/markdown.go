// Package report renders the derived analysis for display and for LLM
// prompts: a markdown table with thousands separators on raw values and
// two-decimal percent columns.
package report

import (
	"fmt"
	"math"
	"strings"

	"statement_insight/pkg/models"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/text"
)

// InfiniteSentinel is how a zero-denominator ratio is displayed.
const InfiniteSentinel = "∞"

// UnavailableSentinel is how a suppressed or undefined value is displayed.
const UnavailableSentinel = "N/A"

// Table renders the derived table as markdown, in row order.
func Table(table *models.AnalysisTable) string {
	var b strings.Builder
	b.WriteString("| Indicator | Prior | Current | Growth (%) | Prior Share (%) | Current Share (%) |\n")
	b.WriteString("|---|---:|---:|---:|---:|---:|\n")
	for _, row := range table.Rows {
		growth := Percent(row.GrowthPct)
		if row.GrowthUndefined {
			growth = UnavailableSentinel
		}
		priorShare, currentShare := Percent(row.PriorSharePct), Percent(row.CurrentSharePct)
		if row.ShareUndefined {
			priorShare, currentShare = UnavailableSentinel, UnavailableSentinel
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
			row.Indicator,
			Thousands(row.Prior), Thousands(row.Current),
			growth, priorShare, currentShare)
	}
	return b.String()
}

// LiquiditySummary renders the two current ratios and their delta.
func LiquiditySummary(m *models.LiquidityMetrics) string {
	delta := UnavailableSentinel
	if m.DeltaAvailable {
		delta = fmt.Sprintf("%.2f", m.Delta)
	}
	return fmt.Sprintf("Current ratio (prior period): %s\nCurrent ratio (current period): %s\nChange between periods: %s",
		FormatRatio(m.Prior), FormatRatio(m.Current), delta)
}

// FormatRatio renders one period's ratio, substituting the sentinel for the
// infinite case.
func FormatRatio(r models.Ratio) string {
	if r.Infinite {
		return InfiniteSentinel
	}
	return fmt.Sprintf("%.2f", r.Value)
}

// Percent formats a percentage column value to two decimals.
func Percent(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}

// Thousands formats a raw statement value with comma separators and no
// decimals, the way the uploaded figures are displayed.
func Thousands(v float64) string {
	neg := v < 0
	whole := int64(math.Round(math.Abs(v)))
	s := fmt.Sprintf("%d", whole)
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	out := strings.Join(parts, ",")
	if neg {
		return "-" + out
	}
	return out
}

// CleanMarkdown strips outer markdown code fences from a model reply so the
// output is pure markdown ready for rendering.
func CleanMarkdown(input string) string {
	cleaned := strings.TrimSpace(input)
	if strings.HasPrefix(cleaned, "```markdown") && strings.HasSuffix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```markdown")
		cleaned = strings.TrimSuffix(cleaned, "```")
		cleaned = strings.TrimSpace(cleaned)
	} else if strings.HasPrefix(cleaned, "```") && strings.HasSuffix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(cleaned, "```")
		cleaned = strings.TrimSpace(cleaned)
	}
	return cleaned
}

// ValidateMarkdown checks that a string parses as markdown. Goldmark is very
// permissive, so this is a basic sanity gate.
func ValidateMarkdown(input string) bool {
	parser := goldmark.DefaultParser()
	reader := text.NewReader([]byte(input))
	doc := parser.Parse(reader)
	return doc != nil
}
