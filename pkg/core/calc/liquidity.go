package calc

import "statement_insight/pkg/models"

// CurrentRatios computes the current ratio (short-term assets over
// short-term liabilities) for both periods.
//
// A missing input row is recoverable: the warning is returned alongside a
// nil metrics value and the caller renders the rest of the analysis without
// the ratio. A zero liabilities value yields the infinite sentinel, never a
// division fault, and the period delta is reported unavailable when either
// side is the sentinel.
func CurrentRatios(table *models.AnalysisTable, matcher *IndicatorMatcher) (*models.LiquidityMetrics, *MissingIndicatorWarning) {
	if matcher == nil {
		matcher = DefaultMatcher()
	}

	assetsIdx := matcher.ShortTermAssetsIndex(table.Rows)
	if assetsIdx < 0 {
		return nil, &MissingIndicatorWarning{Missing: "short-term assets"}
	}
	liabsIdx := matcher.ShortTermLiabilitiesIndex(table.Rows)
	if liabsIdx < 0 {
		return nil, &MissingIndicatorWarning{Missing: "short-term liabilities"}
	}

	assets := table.Rows[assetsIdx]
	liabs := table.Rows[liabsIdx]

	ratio := func(numerator, denominator float64) models.Ratio {
		if denominator == 0 {
			return models.Ratio{Infinite: true}
		}
		return models.Ratio{Value: numerator / denominator}
	}

	m := &models.LiquidityMetrics{
		Prior:   ratio(assets.Prior, liabs.Prior),
		Current: ratio(assets.Current, liabs.Current),
	}
	if !m.Prior.Infinite && !m.Current.Infinite {
		m.Delta = m.Current.Value - m.Prior.Value
		m.DeltaAvailable = true
	}
	return m, nil
}
