package calc

import (
	"errors"
	"math"
	"testing"

	"statement_insight/pkg/models"
)

func sampleRows() []models.StatementRow {
	return []models.StatementRow{
		{Indicator: "TÀI SẢN NGẮN HẠN", Prior: "200", Current: "300"},
		{Indicator: "Tài sản dài hạn", Prior: "800", Current: "900"},
		{Indicator: "TỔNG CỘNG TÀI SẢN", Prior: "1000", Current: "1200"},
		{Indicator: "NỢ NGẮN HẠN", Prior: "100", Current: "150"},
	}
}

func TestAnalyze_PreservesOrderAndCount(t *testing.T) {
	rows := sampleRows()
	table, err := Analyze(rows, Options{})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if len(table.Rows) != len(rows) {
		t.Fatalf("row count changed: got %d, want %d", len(table.Rows), len(rows))
	}
	for i := range rows {
		if table.Rows[i].Indicator != rows[i].Indicator {
			t.Errorf("row %d reordered: got %q, want %q", i, table.Rows[i].Indicator, rows[i].Indicator)
		}
	}
}

func TestAnalyze_GrowthPct(t *testing.T) {
	rows := []models.StatementRow{
		{Indicator: "TỔNG CỘNG TÀI SẢN", Prior: "100", Current: "150"},
	}
	table, err := Analyze(rows, Options{})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if math.Abs(table.Rows[0].GrowthPct-50.0) > 0.0001 {
		t.Errorf("GrowthPct expected 50.0, got %f", table.Rows[0].GrowthPct)
	}
}

func TestAnalyze_ZeroPriorStaysFinite(t *testing.T) {
	rows := []models.StatementRow{
		{Indicator: "Hàng tồn kho", Prior: "0", Current: "50"},
		{Indicator: "TỔNG CỘNG TÀI SẢN", Prior: "1000", Current: "1200"},
	}
	table, err := Analyze(rows, Options{})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	g := table.Rows[0].GrowthPct
	if math.IsInf(g, 0) || math.IsNaN(g) {
		t.Fatalf("growth must stay finite, got %f", g)
	}
	if g < 1e9 {
		t.Errorf("growth for zero prior should be very large positive, got %f", g)
	}
}

func TestAnalyze_SharePercentages(t *testing.T) {
	table, err := Analyze(sampleRows(), Options{})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	st := table.Rows[0] // short-term assets: 200/1000, 300/1200
	if math.Abs(st.PriorSharePct-20.0) > 0.0001 {
		t.Errorf("PriorSharePct expected 20.0, got %f", st.PriorSharePct)
	}
	if math.Abs(st.CurrentSharePct-25.0) > 0.0001 {
		t.Errorf("CurrentSharePct expected 25.0, got %f", st.CurrentSharePct)
	}
	anchor := table.Rows[table.AnchorIndex]
	if math.Abs(anchor.PriorSharePct-100.0) > 0.0001 {
		t.Errorf("anchor PriorSharePct expected 100.0, got %f", anchor.PriorSharePct)
	}
}

func TestAnalyze_MissingAnchorIsStructural(t *testing.T) {
	rows := []models.StatementRow{
		{Indicator: "Doanh thu", Prior: "100", Current: "120"},
		{Indicator: "Chi phí", Prior: "80", Current: "90"},
	}
	table, err := Analyze(rows, Options{})
	if table != nil {
		t.Fatal("no partial table may be produced on structural error")
	}
	var structural *StructuralError
	if !errors.As(err, &structural) {
		t.Fatalf("expected StructuralError, got %v", err)
	}
}

func TestAnalyze_CoercesMalformedCellsToZero(t *testing.T) {
	rows := []models.StatementRow{
		{Indicator: "Phải thu", Prior: "1,234", Current: "n/a"},
		{Indicator: "Đầu tư", Prior: "(500)", Current: ""},
		{Indicator: "TỔNG CỘNG TÀI SẢN", Prior: "1000", Current: "1200"},
	}
	table, err := Analyze(rows, Options{})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if math.Abs(table.Rows[0].Prior-1234) > 0.0001 {
		t.Errorf("thousands separator not handled: got %f", table.Rows[0].Prior)
	}
	if table.Rows[0].Current != 0 {
		t.Errorf("non-numeric cell should coerce to 0, got %f", table.Rows[0].Current)
	}
	if math.Abs(table.Rows[1].Prior+500) > 0.0001 {
		t.Errorf("parenthesized negative not handled: got %f", table.Rows[1].Prior)
	}
	if table.Rows[1].Current != 0 {
		t.Errorf("empty cell should coerce to 0, got %f", table.Rows[1].Current)
	}
}

func TestAnalyze_StrictModeFlagsUndefined(t *testing.T) {
	rows := []models.StatementRow{
		{Indicator: "Hàng tồn kho", Prior: "0", Current: "50"},
		{Indicator: "TỔNG CỘNG TÀI SẢN", Prior: "1000", Current: "1200"},
	}
	table, err := Analyze(rows, Options{Mode: ModeStrict})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if !table.Rows[0].GrowthUndefined {
		t.Error("strict mode should flag zero-prior growth as undefined")
	}
	if table.Rows[0].GrowthPct != 0 {
		t.Errorf("undefined growth should not carry epsilon math, got %f", table.Rows[0].GrowthPct)
	}
	if table.Rows[1].GrowthUndefined {
		t.Error("nonzero prior must not be flagged")
	}
}

func TestAnalyze_Idempotent(t *testing.T) {
	first, err := Analyze(sampleRows(), Options{})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	second, err := Analyze(sampleRows(), Options{})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	for i := range first.Rows {
		if first.Rows[i] != second.Rows[i] {
			t.Errorf("row %d differs between identical runs", i)
		}
	}
}
