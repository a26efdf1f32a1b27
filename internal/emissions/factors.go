package emissions

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed factors.yaml
var factorsYAML []byte

type factorTable struct {
	Unit    string             `yaml:"unit"`
	Default string             `yaml:"default"`
	Factors map[string]float64 `yaml:"factors"`
}

// tables is loaded once at process start and never mutated.
var tables = mustLoadTables()

func mustLoadTables() map[string]factorTable {
	loaded := map[string]factorTable{}
	if err := yaml.Unmarshal(factorsYAML, &loaded); err != nil {
		panic(fmt.Sprintf("emissions: embedded factors.yaml is malformed: %v", err))
	}
	for _, category := range Categories {
		t, ok := loaded[category]
		if !ok {
			panic(fmt.Sprintf("emissions: factors.yaml is missing category %q", category))
		}
		if _, ok := t.Factors[t.Default]; !ok {
			panic(fmt.Sprintf("emissions: factors.yaml default %q for %q has no factor", t.Default, category))
		}
	}
	return loaded
}

// Factor returns the per-unit factor for (category, subtype). When the
// subtype has no entry the category default applies; the boolean reports
// whether the subtype itself was found. The lookup checks key existence, so
// a defined factor of 0 is returned as-is rather than the default.
func Factor(category, subtype string) (float64, bool) {
	t, ok := tables[NormalizeCategory(category)]
	if !ok {
		return 0, false
	}
	if f, ok := t.Factors[subtype]; ok {
		return f, true
	}
	return t.Factors[t.Default], false
}

// Unit returns the unit a category's factors are expressed in (km, kWh, ...).
func Unit(category string) string {
	return tables[NormalizeCategory(category)].Unit
}

// DefaultSubtype returns the subtype used when none can be resolved.
func DefaultSubtype(category string) string {
	return tables[NormalizeCategory(category)].Default
}

// Subtypes returns the known subtype keys for a category.
func Subtypes(category string) []string {
	t, ok := tables[NormalizeCategory(category)]
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(t.Factors))
	for k := range t.Factors {
		keys = append(keys, k)
	}
	return keys
}
