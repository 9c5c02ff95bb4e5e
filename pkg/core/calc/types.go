package calc

import "fmt"

// Epsilon replaces a zero denominator in lenient mode so that growth and
// share percentages stay finite instead of raising a division fault. It is
// an availability guard, not an accounting quantity.
const Epsilon = 1e-9

// NumericMode selects how zero denominators are treated.
type NumericMode int

const (
	// ModeLenient substitutes Epsilon for a zero denominator, matching the
	// original behavior: a zero prior value yields an enormous but finite
	// growth percentage.
	ModeLenient NumericMode = iota
	// ModeStrict flags the affected column as undefined instead of doing
	// epsilon arithmetic. The stored percentage is zero and must not be
	// displayed.
	ModeStrict
)

// Options configures a calculator run.
type Options struct {
	Mode    NumericMode
	Matcher *IndicatorMatcher // nil means DefaultMatcher()
}

// StructuralError reports that the input table is missing a row the whole
// analysis depends on. It aborts the computation; no partial table is
// produced.
type StructuralError struct {
	Missing string // canonical indicator name, e.g. "total assets"
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("statement is missing a %q row; cannot compute composition ratios", e.Missing)
}

// MissingIndicatorWarning reports that a liquidity-ratio input row is absent.
// Recoverable: the derived table still renders, only the ratio is withheld.
type MissingIndicatorWarning struct {
	Missing string
}

func (w *MissingIndicatorWarning) Error() string {
	return fmt.Sprintf("missing %q row; current ratio not computed", w.Missing)
}
