package insights

import (
	"fmt"
	"math"

	"github.com/ecotrace/ecotrace-backend/internal/emissions"
)

// Summary is the top-line narrative over a user's recent footprint.
type Summary struct {
	Text               string  `json:"text"`
	TopCategory        *string `json:"top_category"`
	TopCategoryKg      float64 `json:"top_category_kg"`
	TopCategoryPercent int     `json:"top_category_percent"`
	PotentialSavingsKg float64 `json:"potential_savings_kg"`
	InsightCount       int     `json:"insight_count"`
}

const onboardingSummary = "Welcome! Log a few activities (trips, power, meals) and your personal footprint picture will build up here."

// GenerateSummary derives the narrative from the feature vector and the
// rule-engine output. The zero-data case returns a fixed onboarding message
// with no top category.
func GenerateSummary(fv FeatureVector, ruleInsights []Insight) Summary {
	var potential float64
	for _, ins := range ruleInsights {
		potential += ins.SavingsKg
	}

	if fv.ActivityCount == 0 {
		return Summary{
			Text:               onboardingSummary,
			TopCategory:        nil,
			PotentialSavingsKg: round1(potential),
			InsightCount:       len(ruleInsights),
		}
	}

	top := ""
	topKg := 0.0
	for _, category := range emissions.Categories {
		stats := fv.Categories[category]
		if stats.Count == 0 {
			continue
		}
		if top == "" || stats.EmissionsKg > topKg {
			top = category
			topKg = stats.EmissionsKg
		}
	}

	percent := 0
	if fv.TotalEmissionsKg > 0 {
		percent = int(math.Round(topKg / fv.TotalEmissionsKg * 100))
	}

	text := fmt.Sprintf(
		"Over the last %d days %s was your biggest source at %.1f kg CO2e (%d%% of your total). Following the current suggestions could save about %.1f kg.",
		fv.WindowDays, top, topKg, percent, potential,
	)

	return Summary{
		Text:               text,
		TopCategory:        &top,
		TopCategoryKg:      round1(topKg),
		TopCategoryPercent: percent,
		PotentialSavingsKg: round1(potential),
		InsightCount:       len(ruleInsights),
	}
}
