package insights

import (
	"time"

	"github.com/google/uuid"

	"github.com/ecotrace/ecotrace-backend/internal/emissions"
	"github.com/ecotrace/ecotrace-backend/internal/types"
)

// FeatureWindowDays is the trailing window the feature vector aggregates.
const FeatureWindowDays = 30

// CategoryStats aggregates one canonical category inside the window.
type CategoryStats struct {
	Count       int     `json:"count"`
	EmissionsKg float64 `json:"emissions_kg"`
}

// FeatureVector is the single shared input to the rule engine, the summary
// generator and the AI prompt builder. It is recomputed fresh on every
// request and never persisted.
type FeatureVector struct {
	UserID     uuid.UUID `json:"user_id"`
	AsOf       time.Time `json:"as_of"`
	WindowDays int       `json:"window_days"`

	Categories       map[string]CategoryStats `json:"categories"`
	TotalEmissionsKg float64                  `json:"total_emissions_kg"`
	ActivityCount    int                      `json:"activity_count"`

	// Keyword-derived transport profile. Counting "car trips" by scanning
	// the free-text description is a known-fragile heuristic; it is kept
	// as-is rather than silently corrected.
	CarTrips int `json:"car_trips"`
	EcoTrips int `json:"eco_trips"`

	// Calculator-profile fields, neutral defaults when no profile exists.
	EnergySource string `json:"energy_source"`
	DietType     string `json:"diet_type"`
	LocalFood    bool   `json:"local_food"`
	FoodWaste    bool   `json:"food_waste"`
	Compost      bool   `json:"compost"`
	RecyclesAny  bool   `json:"recycles_any"`
	PlasticLevel string `json:"plastic_level"`
}

// HasData reports whether the user logged anything in this category inside
// the window. Categories without data never produce recommendations.
func (fv FeatureVector) HasData(category string) bool {
	return fv.Categories[emissions.NormalizeCategory(category)].Count > 0
}

// EmissionsFor returns the windowed emission sum for a category.
func (fv FeatureVector) EmissionsFor(category string) float64 {
	return fv.Categories[emissions.NormalizeCategory(category)].EmissionsKg
}

// BuildFeatureVector aggregates pre-fetched activity rows into a feature
// vector. Activities outside [asOf-30d, asOf] are ignored; category names
// are normalized before grouping. A nil profile yields neutral defaults.
// Never fails: zero activities produce zero sums and false has-data flags.
func BuildFeatureVector(userID uuid.UUID, activities []types.Activity, profile *types.CalculatorProfile, asOf time.Time) FeatureVector {
	fv := FeatureVector{
		UserID:       userID,
		AsOf:         asOf,
		WindowDays:   FeatureWindowDays,
		Categories:   make(map[string]CategoryStats, len(emissions.Categories)),
		EnergySource: "mixed",
		DietType:     "mixed",
		PlasticLevel: "medium",
	}

	cutoff := asOf.AddDate(0, 0, -FeatureWindowDays)
	for _, a := range activities {
		if a.Date.Before(cutoff) {
			continue
		}
		category := emissions.NormalizeCategory(a.Category)
		stats := fv.Categories[category]
		stats.Count++
		stats.EmissionsKg += a.EmissionsKg
		fv.Categories[category] = stats

		fv.ActivityCount++
		fv.TotalEmissionsKg += a.EmissionsKg

		if category == emissions.CategoryTransport {
			if emissions.MentionsCar(a.Description) {
				fv.CarTrips++
			}
			if emissions.MentionsEco(a.Description) {
				fv.EcoTrips++
			}
		}
	}

	if profile != nil {
		if profile.EnergySource != "" {
			fv.EnergySource = profile.EnergySource
		}
		if profile.DietType != "" {
			fv.DietType = profile.DietType
		}
		if profile.PlasticLevel != "" {
			fv.PlasticLevel = profile.PlasticLevel
		}
		fv.LocalFood = profile.LocalFood
		fv.FoodWaste = profile.FoodWaste
		fv.Compost = profile.Compost
		fv.RecyclesAny = profile.RecyclesPaper || profile.RecyclesPlastic ||
			profile.RecyclesGlass || profile.RecyclesMetal
	}

	return fv
}
