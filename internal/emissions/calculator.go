package emissions

// Compute converts a logged quantity into estimated kg CO2e.
//
// The lookup is two-level: categories resolve to a factor table, subtypes to
// a per-unit factor within it. An unknown subtype falls back to the category
// default (petrol car for transport, mixed grid for electricity, and so on);
// an unknown category yields 0. Deterministic, no I/O.
func Compute(category, subtype string, value float64) float64 {
	c := NormalizeCategory(category)
	if _, ok := tables[c]; !ok {
		return 0
	}
	factor, _ := Factor(c, subtype)
	return factor * value
}
