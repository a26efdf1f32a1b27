package insights

import (
	"fmt"
	"strings"

	"github.com/ecotrace/ecotrace-backend/internal/emissions"
	"github.com/ecotrace/ecotrace-backend/internal/types"
)

// SystemPrompt frames the external model's role and output contract.
const SystemPrompt = `You are a carbon-footprint coach. You receive a factual summary of a user's logged activity and must reply with exactly one JSON object, no markdown fences, matching this schema:
{"summary": string, "top_insight": {"title": string, "description": string, "category": string, "savings_kg": number}, "insights": [{"title": string, "description": string, "category": string, "savings_kg": number}], "encouragement": string}
Categories must be one of: transport, electricity, heating, diet, waste. Savings are estimated kg CO2e. Base every number on the figures given; never invent data.`

// BuildUserPrompt renders the feature vector, current trends and active goal
// context into the user message. Only values already present in the inputs
// appear in the prompt.
func BuildUserPrompt(fv FeatureVector, trends []Trend, goals []types.Goal) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Activity over the last %d days: %d entries, %.1f kg CO2e total.\n",
		fv.WindowDays, fv.ActivityCount, fv.TotalEmissionsKg)

	b.WriteString("Per category:\n")
	for _, category := range emissions.Categories {
		stats := fv.Categories[category]
		if stats.Count == 0 {
			fmt.Fprintf(&b, "- %s: no data\n", category)
			continue
		}
		fmt.Fprintf(&b, "- %s: %d entries, %.1f kg CO2e\n", category, stats.Count, stats.EmissionsKg)
	}

	if fv.HasData(emissions.CategoryTransport) {
		fmt.Fprintf(&b, "Transport mix: %d car trips, %d low-carbon trips.\n", fv.CarTrips, fv.EcoTrips)
	}

	fmt.Fprintf(&b, "Profile: energy source %s, diet %s, plastic use %s", fv.EnergySource, fv.DietType, fv.PlasticLevel)
	var habits []string
	if fv.LocalFood {
		habits = append(habits, "buys local food")
	}
	if fv.FoodWaste {
		habits = append(habits, "reports food waste")
	}
	if fv.Compost {
		habits = append(habits, "composts")
	}
	if fv.RecyclesAny {
		habits = append(habits, "recycles")
	}
	if len(habits) > 0 {
		fmt.Fprintf(&b, " (%s)", strings.Join(habits, ", "))
	}
	b.WriteString(".\n")

	if len(trends) > 0 {
		b.WriteString("Week-over-week trends:\n")
		for _, t := range trends {
			fmt.Fprintf(&b, "- %s: %+d%% (%.1f kg vs %.1f kg)\n", t.Category, t.PercentChange, t.ThisWeekKg, t.LastWeekKg)
		}
	}

	if len(goals) > 0 {
		b.WriteString("Active goals:\n")
		for _, g := range goals {
			fmt.Fprintf(&b, "- %s (%s): %.1f of %.1f\n", g.Title, g.Type, g.CurrentValue, g.TargetValue)
		}
	}

	b.WriteString("Produce at most one insight per category, only for categories with data.")
	return b.String()
}
