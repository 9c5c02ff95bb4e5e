package calc

import (
	"math"
	"testing"

	"statement_insight/pkg/models"
)

func analyzed(t *testing.T, rows []models.StatementRow) *models.AnalysisTable {
	t.Helper()
	table, err := Analyze(rows, Options{})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	return table
}

func TestCurrentRatios_BothPeriods(t *testing.T) {
	table := analyzed(t, sampleRows())

	metrics, warning := CurrentRatios(table, nil)
	if warning != nil {
		t.Fatalf("unexpected warning: %v", warning)
	}
	// 200/100 and 300/150
	if math.Abs(metrics.Prior.Value-2.0) > 0.0001 {
		t.Errorf("prior ratio expected 2.0, got %f", metrics.Prior.Value)
	}
	if math.Abs(metrics.Current.Value-2.0) > 0.0001 {
		t.Errorf("current ratio expected 2.0, got %f", metrics.Current.Value)
	}
	if !metrics.DeltaAvailable {
		t.Fatal("delta must be available when both ratios are finite")
	}
	if math.Abs(metrics.Delta) > 0.0001 {
		t.Errorf("delta expected 0, got %f", metrics.Delta)
	}
}

func TestCurrentRatios_ZeroLiabilitiesIsSentinel(t *testing.T) {
	table := analyzed(t, []models.StatementRow{
		{Indicator: "TÀI SẢN NGẮN HẠN", Prior: "400", Current: "500"},
		{Indicator: "TỔNG CỘNG TÀI SẢN", Prior: "1000", Current: "1200"},
		{Indicator: "NỢ NGẮN HẠN", Prior: "200", Current: "0"},
	})

	metrics, warning := CurrentRatios(table, nil)
	if warning != nil {
		t.Fatalf("unexpected warning: %v", warning)
	}
	if !metrics.Current.Infinite {
		t.Error("zero liabilities must report the infinite sentinel")
	}
	if metrics.Prior.Infinite {
		t.Error("prior period has nonzero liabilities")
	}
	if metrics.DeltaAvailable {
		t.Error("delta must be unavailable when either side is the sentinel")
	}
}

func TestCurrentRatios_MissingIndicatorIsRecoverable(t *testing.T) {
	table := analyzed(t, []models.StatementRow{
		{Indicator: "TÀI SẢN NGẮN HẠN", Prior: "400", Current: "500"},
		{Indicator: "TỔNG CỘNG TÀI SẢN", Prior: "1000", Current: "1200"},
	})

	metrics, warning := CurrentRatios(table, nil)
	if metrics != nil {
		t.Error("metrics must be withheld when an input row is absent")
	}
	if warning == nil {
		t.Fatal("expected a missing-indicator warning")
	}
}
