// Package calc computes the derived growth and composition columns for a
// two-period financial statement table, plus the current-ratio liquidity
// metric. All functions are pure; nothing here touches the network or disk.
package calc

import (
	"strconv"
	"strings"

	"statement_insight/pkg/models"
)

// coerce parses a raw cell into a float64, substituting 0 for anything that
// fails to parse. Thousands separators and surrounding whitespace are
// tolerated; parenthesized values are read as negatives, as statements
// commonly print them.
func coerce(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	neg := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		neg = true
		s = s[1 : len(s)-1]
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	if neg {
		return -v
	}
	return v
}

// Analyze decorates the statement rows with growth and share percentages.
//
// Row order and count are preserved exactly: rows are never added, removed
// or reordered. The share columns are anchored on the first total-assets row;
// when no such row exists the whole computation aborts with StructuralError
// and no table is returned.
func Analyze(rows []models.StatementRow, opts Options) (*models.AnalysisTable, error) {
	matcher := opts.Matcher
	if matcher == nil {
		matcher = DefaultMatcher()
	}

	derived := make([]models.DerivedRow, len(rows))
	for i, r := range rows {
		derived[i] = models.DerivedRow{
			Indicator: r.Indicator,
			Prior:     coerce(r.Prior),
			Current:   coerce(r.Current),
		}
	}

	// Growth per row.
	for i := range derived {
		prior := derived[i].Prior
		switch {
		case prior != 0:
			derived[i].GrowthPct = (derived[i].Current - prior) / prior * 100
		case opts.Mode == ModeStrict:
			derived[i].GrowthUndefined = true
		default:
			derived[i].GrowthPct = (derived[i].Current - prior) / Epsilon * 100
		}
	}

	// Anchor row for the composition columns.
	anchorIdx := matcher.TotalAssetsIndex(derived)
	if anchorIdx < 0 {
		return nil, &StructuralError{Missing: "total assets"}
	}
	anchorPrior := derived[anchorIdx].Prior
	anchorCurrent := derived[anchorIdx].Current

	for i := range derived {
		share := func(value, anchor float64) (float64, bool) {
			if anchor == 0 {
				if opts.Mode == ModeStrict {
					return 0, true
				}
				anchor = Epsilon
			}
			return value / anchor * 100, false
		}
		var undef1, undef2 bool
		derived[i].PriorSharePct, undef1 = share(derived[i].Prior, anchorPrior)
		derived[i].CurrentSharePct, undef2 = share(derived[i].Current, anchorCurrent)
		derived[i].ShareUndefined = undef1 || undef2
	}

	return &models.AnalysisTable{
		Rows:        derived,
		AnchorIndex: anchorIdx,
		AnchorLabel: derived[anchorIdx].Indicator,
	}, nil
}
