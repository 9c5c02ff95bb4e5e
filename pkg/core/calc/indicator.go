package calc

import (
	"fmt"
	"os"
	"strings"

	"statement_insight/pkg/models"

	"gopkg.in/yaml.v2"
)

// AliasTable maps each canonical indicator to the label substrings that
// identify it. Matching is case-insensitive substring search, so statement
// labels in any casing (and with section numbering prefixes) still hit.
//
// Substring matching is a heuristic and false positives are possible with
// broad fallbacks; deployments with known statement layouts should override
// the defaults via config/indicators.yaml.
type AliasTable struct {
	TotalAssets         []string `yaml:"total_assets"`
	TotalAssetsFallback []string `yaml:"total_assets_fallback"`
	ShortTermAssets     []string `yaml:"short_term_assets"`
	ShortTermLiabs      []string `yaml:"short_term_liabilities"`
}

// IndicatorMatcher resolves statement rows by label.
type IndicatorMatcher struct {
	aliases AliasTable
}

// DefaultAliases covers the Vietnamese statement labels the tool was built
// around plus their English equivalents.
func DefaultAliases() AliasTable {
	return AliasTable{
		TotalAssets:         []string{"tổng cộng tài sản", "total assets"},
		TotalAssetsFallback: []string{"tài sản", "assets", "tổng", "total"},
		ShortTermAssets:     []string{"tài sản ngắn hạn", "short-term assets", "current assets"},
		ShortTermLiabs:      []string{"nợ ngắn hạn", "short-term liabilities", "current liabilities"},
	}
}

// NewMatcher builds a matcher from an alias table. Empty alias lists fall
// back to the defaults so a partial override file stays usable.
func NewMatcher(aliases AliasTable) *IndicatorMatcher {
	def := DefaultAliases()
	if len(aliases.TotalAssets) == 0 {
		aliases.TotalAssets = def.TotalAssets
	}
	if len(aliases.TotalAssetsFallback) == 0 {
		aliases.TotalAssetsFallback = def.TotalAssetsFallback
	}
	if len(aliases.ShortTermAssets) == 0 {
		aliases.ShortTermAssets = def.ShortTermAssets
	}
	if len(aliases.ShortTermLiabs) == 0 {
		aliases.ShortTermLiabs = def.ShortTermLiabs
	}
	return &IndicatorMatcher{aliases: aliases}
}

// DefaultMatcher returns a matcher over the built-in alias table.
func DefaultMatcher() *IndicatorMatcher {
	return NewMatcher(DefaultAliases())
}

// LoadMatcher reads an alias table from a YAML file.
func LoadMatcher(path string) (*IndicatorMatcher, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read indicator config: %w", err)
	}
	var aliases AliasTable
	if err := yaml.Unmarshal(data, &aliases); err != nil {
		return nil, fmt.Errorf("parse indicator config: %w", err)
	}
	return NewMatcher(aliases), nil
}

// findIndex returns the index of the first row whose label contains any of
// the given substrings, case-insensitively. -1 when no row matches.
func findIndex(rows []models.DerivedRow, substrings []string) int {
	for i := range rows {
		label := strings.ToLower(rows[i].Indicator)
		for _, sub := range substrings {
			if sub != "" && strings.Contains(label, strings.ToLower(sub)) {
				return i
			}
		}
	}
	return -1
}

// TotalAssetsIndex locates the anchor row, trying the exact aliases first
// and the broader fallback set second.
func (m *IndicatorMatcher) TotalAssetsIndex(rows []models.DerivedRow) int {
	if i := findIndex(rows, m.aliases.TotalAssets); i >= 0 {
		return i
	}
	return findIndex(rows, m.aliases.TotalAssetsFallback)
}

// ShortTermAssetsIndex locates the current-assets row.
func (m *IndicatorMatcher) ShortTermAssetsIndex(rows []models.DerivedRow) int {
	return findIndex(rows, m.aliases.ShortTermAssets)
}

// ShortTermLiabilitiesIndex locates the current-liabilities row.
func (m *IndicatorMatcher) ShortTermLiabilitiesIndex(rows []models.DerivedRow) int {
	return findIndex(rows, m.aliases.ShortTermLiabs)
}
