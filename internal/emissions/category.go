package emissions

import "strings"

// Canonical activity categories. "energy" and "food" are accepted on input
// as synonyms and normalized before any aggregation.
const (
	CategoryTransport   = "transport"
	CategoryElectricity = "electricity"
	CategoryHeating     = "heating"
	CategoryDiet        = "diet"
	CategoryWaste       = "waste"
)

// Categories lists the canonical categories in display order.
var Categories = []string{
	CategoryTransport,
	CategoryElectricity,
	CategoryHeating,
	CategoryDiet,
	CategoryWaste,
}

var categoryAliases = map[string]string{
	"energy": CategoryElectricity,
	"food":   CategoryDiet,
}

// NormalizeCategory maps input category names to their canonical form.
// Unknown names pass through lower-cased so validation can reject them.
func NormalizeCategory(category string) string {
	c := strings.ToLower(strings.TrimSpace(category))
	if canonical, ok := categoryAliases[c]; ok {
		return canonical
	}
	return c
}

// IsCategory reports whether category (after normalization) is canonical.
func IsCategory(category string) bool {
	c := NormalizeCategory(category)
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}
