package insights

// Resource is a static external link attached to an enriched insight.
type Resource struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// TipSheet is the static enrichment returned by the single-insight endpoint.
type TipSheet struct {
	Tips      []string   `json:"tips"`
	Resources []Resource `json:"resources"`
}

var tipSheets = map[string]TipSheet{
	"transport-swap-short-drives": {
		Tips: []string{
			"Trips under 5 km are usually faster door-to-door by bike in town.",
			"Batch errands into one round trip instead of several short drives.",
		},
		Resources: []Resource{
			{Title: "Cycling route planner", URL: "https://www.cyclestreets.net"},
		},
	},
	"transport-try-transit": {
		Tips: []string{
			"Check whether a weekly or monthly pass beats single tickets for your route.",
			"Rail averages roughly a fifth of a petrol car's emissions per kilometre.",
		},
		Resources: []Resource{
			{Title: "Door-to-door journey planner", URL: "https://www.rome2rio.com"},
		},
	},
	"transport-keep-eco-streak": {
		Tips: []string{
			"Pick one recurring car trip and make it car-free for a month.",
		},
	},
	"electricity-switch-green": {
		Tips: []string{
			"Green tariffs rarely cost more than default ones; compare before renewing.",
			"If you can't switch supplier, look for a community solar scheme.",
		},
		Resources: []Resource{
			{Title: "Electricity grid carbon intensity", URL: "https://app.electricitymaps.com"},
		},
	},
	"electricity-cut-standby": {
		Tips: []string{
			"A switchable power strip kills standby for a whole desk or TV setup at once.",
			"Check fridge and freezer seals; they are the quiet heavy users.",
		},
	},
	"heating-lower-thermostat": {
		Tips: []string{
			"Each degree down saves roughly 6-8% of heating energy.",
			"Heat the rooms you use, not the whole home.",
		},
	},
	"heating-heat-pump": {
		Tips: []string{
			"Heat pumps deliver 3-4 units of heat per unit of electricity.",
			"Many regions subsidise the switch; check local schemes first.",
		},
	},
	"diet-plant-forward": {
		Tips: []string{
			"Swapping beef for beans in one weekly meal is the single biggest food lever.",
			"Start with meals you already like that happen to be plant-based.",
		},
		Resources: []Resource{
			{Title: "Food footprint comparison", URL: "https://ourworldindata.org/food-choice-vs-eating-local"},
		},
	},
	"diet-cut-food-waste": {
		Tips: []string{
			"Plan meals before shopping and freeze what you won't eat in time.",
		},
	},
	"diet-buy-local": {
		Tips: []string{
			"Seasonal field-grown produce beats out-of-season greenhouse produce, even local.",
		},
	},
	"waste-start-composting": {
		Tips: []string{
			"A sealed kitchen caddy plus a garden bin covers most households.",
			"No garden? Many cities collect organics separately.",
		},
	},
	"waste-recycle-more": {
		Tips: []string{
			"Separate paper, glass, metal and plastic at the point where waste is created.",
		},
	},
}

// TipsFor returns the static tip sheet for an insight id. Unknown ids
// (including AI-generated ones) get an empty sheet, not an error.
func TipsFor(insightID string) TipSheet {
	if sheet, ok := tipSheets[insightID]; ok {
		return sheet
	}
	return TipSheet{Tips: []string{}, Resources: []Resource{}}
}

// RuleEncouragement picks the encouragement line for rules-sourced payloads.
// Deterministic on the trend input so cached and fresh payloads agree.
func RuleEncouragement(trends []Trend) string {
	improving := 0
	worsening := 0
	for _, t := range trends {
		switch t.Trend {
		case TrendPositive:
			improving++
		case TrendNegative:
			worsening++
		}
	}
	switch {
	case improving > 0 && worsening == 0:
		return "Great momentum, your footprint is trending down. Keep it going!"
	case improving > worsening:
		return "More categories improving than not. Small steps are adding up."
	case worsening > 0:
		return "A couple of categories crept up this week. One small change is enough to turn them around."
	default:
		return "Every activity you log sharpens your picture. Keep tracking!"
	}
}
