package report

import (
	"strings"
	"testing"

	"statement_insight/pkg/models"
)

func TestThousands(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-45000, "-45,000"},
		{1234.6, "1,235"},
	}
	for _, c := range cases {
		if got := Thousands(c.in); got != c.want {
			t.Errorf("Thousands(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestPercent(t *testing.T) {
	if got := Percent(12.3456); got != "12.35%" {
		t.Errorf("Percent = %q, want 12.35%%", got)
	}
}

func TestTable_FormatsAndSentinels(t *testing.T) {
	table := &models.AnalysisTable{
		Rows: []models.DerivedRow{
			{Indicator: "TỔNG CỘNG TÀI SẢN", Prior: 1000000, Current: 1200000, GrowthPct: 20, PriorSharePct: 100, CurrentSharePct: 100},
			{Indicator: "Hàng tồn kho", Prior: 0, Current: 50, GrowthUndefined: true},
		},
		AnchorIndex: 0,
		AnchorLabel: "TỔNG CỘNG TÀI SẢN",
	}

	md := Table(table)
	if !strings.Contains(md, "1,000,000") {
		t.Error("raw values must use thousands separators")
	}
	if !strings.Contains(md, "20.00%") {
		t.Error("percent columns must use two decimals")
	}
	if !strings.Contains(md, UnavailableSentinel) {
		t.Error("undefined growth must render the sentinel")
	}
	if !ValidateMarkdown(md) {
		t.Error("rendered table must be valid markdown")
	}
}

func TestLiquiditySummary_InfiniteAndDelta(t *testing.T) {
	m := &models.LiquidityMetrics{
		Prior:   models.Ratio{Value: 2},
		Current: models.Ratio{Infinite: true},
	}
	s := LiquiditySummary(m)
	if !strings.Contains(s, InfiniteSentinel) {
		t.Error("infinite ratio must render the sentinel")
	}
	if !strings.Contains(s, UnavailableSentinel) {
		t.Error("delta must be unavailable against a sentinel")
	}
}

func TestCleanMarkdown_StripsFences(t *testing.T) {
	in := "```markdown\n# Assessment\ntext\n```"
	if got := CleanMarkdown(in); !strings.HasPrefix(got, "# Assessment") || strings.Contains(got, "```") {
		t.Errorf("CleanMarkdown = %q", got)
	}
	plain := "no fences here"
	if got := CleanMarkdown(plain); got != plain {
		t.Errorf("CleanMarkdown altered plain text: %q", got)
	}
}
