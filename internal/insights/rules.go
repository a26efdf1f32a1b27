package insights

import (
	"math"
	"sort"

	"github.com/ecotrace/ecotrace-backend/internal/emissions"
)

// Rule is a static condition→recommendation record. Condition and Savings
// are named pure functions over the feature vector so they stay
// independently testable; a rule whose functions panic is skipped, never
// fatal to the pass.
type Rule struct {
	ID          string
	Category    string
	Title       string
	Description string
	Priority    int
	Condition   func(FeatureVector) bool
	Savings     func(FeatureVector) float64
}

// ruleTable groups the rules by category in declared order. Within a
// category the first rule whose condition holds and whose savings estimate
// is positive wins; the rest of the category is skipped.
var ruleTable = map[string][]Rule{
	emissions.CategoryTransport: {
		{
			ID:          "transport-swap-short-drives",
			Category:    emissions.CategoryTransport,
			Title:       "Swap short drives for bike or foot",
			Description: "Several of your recent trips were by car. Replacing the shortest ones with cycling or walking cuts the biggest slice of your transport footprint.",
			Priority:    90,
			Condition:   frequentCarTrips,
			Savings:     carReductionSavings,
		},
		{
			ID:          "transport-try-transit",
			Category:    emissions.CategoryTransport,
			Title:       "Try public transport for your regular route",
			Description: "Bus and rail emit a fraction of a petrol car per kilometre. Moving one regular trip a week to transit adds up quickly.",
			Priority:    70,
			Condition:   heavyTransportEmissions,
			Savings:     transitSwitchSavings,
		},
		{
			ID:          "transport-keep-eco-streak",
			Category:    emissions.CategoryTransport,
			Title:       "Keep the low-carbon trips coming",
			Description: "You already mix in bike, foot or transit trips. Nudging one more car trip per week over to those modes locks in the habit.",
			Priority:    40,
			Condition:   mixedModeCommuter,
			Savings:     ecoNudgeSavings,
		},
	},
	emissions.CategoryElectricity: {
		{
			ID:          "electricity-switch-green",
			Category:    emissions.CategoryElectricity,
			Title:       "Switch to a greener electricity tariff",
			Description: "Your electricity profile points at a fossil-heavy supply. A renewable tariff removes most of those emissions without changing how you use power.",
			Priority:    85,
			Condition:   fossilElectricity,
			Savings:     greenTariffSavings,
		},
		{
			ID:          "electricity-cut-standby",
			Category:    emissions.CategoryElectricity,
			Title:       "Cut standby and idle load",
			Description: "Standby devices quietly burn a slice of household power. Power strips and timers typically shave around a tenth off consumption.",
			Priority:    55,
			Condition:   notableElectricityUse,
			Savings:     standbySavings,
		},
	},
	emissions.CategoryHeating: {
		{
			ID:          "heating-lower-thermostat",
			Category:    emissions.CategoryHeating,
			Title:       "Drop the thermostat one degree",
			Description: "One degree less is barely noticeable and reliably trims heating energy and emissions.",
			Priority:    75,
			Condition:   notableHeatingUse,
			Savings:     thermostatSavings,
		},
		{
			ID:          "heating-heat-pump",
			Category:    emissions.CategoryHeating,
			Title:       "Look into a heat pump",
			Description: "At your heating volume a heat pump would cut the bulk of those emissions, and subsidies often cover part of the switch.",
			Priority:    50,
			Condition:   heavyHeatingUse,
			Savings:     heatPumpSavings,
		},
	},
	emissions.CategoryDiet: {
		{
			ID:          "diet-plant-forward",
			Category:    emissions.CategoryDiet,
			Title:       "Shift a few meals plant-forward",
			Description: "Meat-centred days carry the highest food factors. Two or three plant-based days a week is the single biggest diet lever.",
			Priority:    80,
			Condition:   meatHeavyDiet,
			Savings:     plantForwardSavings,
		},
		{
			ID:          "diet-cut-food-waste",
			Category:    emissions.CategoryDiet,
			Title:       "Cut food waste",
			Description: "Food thrown away carries its full production footprint. Planning portions and using leftovers recovers that slice for free.",
			Priority:    60,
			Condition:   wastesFood,
			Savings:     foodWasteSavings,
		},
		{
			ID:          "diet-buy-local",
			Category:    emissions.CategoryDiet,
			Title:       "Buy more local and seasonal food",
			Description: "Seasonal produce from nearby skips transport and greenhouse emissions baked into out-of-season imports.",
			Priority:    45,
			Condition:   importedFoodShopper,
			Savings:     localFoodSavings,
		},
	},
	emissions.CategoryWaste: {
		{
			ID:          "waste-start-composting",
			Category:    emissions.CategoryWaste,
			Title:       "Start composting organic waste",
			Description: "Organics in landfill release methane. Composting turns that into near-zero emissions and free soil.",
			Priority:    65,
			Condition:   noCompost,
			Savings:     compostSavings,
		},
		{
			ID:          "waste-recycle-more",
			Category:    emissions.CategoryWaste,
			Title:       "Set up recycling at home",
			Description: "Separating paper, glass, metal and plastic diverts most household waste from landfill.",
			Priority:    35,
			Condition:   noRecycling,
			Savings:     recyclingSavings,
		},
	},
}

// Named predicates.

func frequentCarTrips(fv FeatureVector) bool { return fv.CarTrips >= 3 }
func heavyTransportEmissions(fv FeatureVector) bool {
	return fv.EmissionsFor(emissions.CategoryTransport) >= 20
}
func mixedModeCommuter(fv FeatureVector) bool { return fv.EcoTrips >= 2 && fv.CarTrips >= 1 }
func fossilElectricity(fv FeatureVector) bool {
	switch fv.EnergySource {
	case "coal", "gas", "mixed":
		return true
	}
	return false
}
func notableElectricityUse(fv FeatureVector) bool {
	return fv.EmissionsFor(emissions.CategoryElectricity) >= 10
}
func notableHeatingUse(fv FeatureVector) bool {
	return fv.EmissionsFor(emissions.CategoryHeating) >= 15
}
func heavyHeatingUse(fv FeatureVector) bool {
	return fv.EmissionsFor(emissions.CategoryHeating) >= 40
}
func meatHeavyDiet(fv FeatureVector) bool {
	return fv.DietType == "meat_heavy" || fv.DietType == "meat_medium" || fv.DietType == "mixed"
}
func wastesFood(fv FeatureVector) bool          { return fv.FoodWaste }
func importedFoodShopper(fv FeatureVector) bool { return !fv.LocalFood }
func noCompost(fv FeatureVector) bool           { return !fv.Compost }
func noRecycling(fv FeatureVector) bool         { return !fv.RecyclesAny }

// Named savings estimators. All are fractions of the user's own windowed
// category emissions so the figures stay anchored to logged data.

func carReductionSavings(fv FeatureVector) float64 {
	return round1(0.30 * fv.EmissionsFor(emissions.CategoryTransport))
}
func transitSwitchSavings(fv FeatureVector) float64 {
	return round1(0.40 * fv.EmissionsFor(emissions.CategoryTransport))
}
func ecoNudgeSavings(fv FeatureVector) float64 {
	return round1(0.15 * fv.EmissionsFor(emissions.CategoryTransport))
}
func greenTariffSavings(fv FeatureVector) float64 {
	return round1(0.80 * fv.EmissionsFor(emissions.CategoryElectricity))
}
func standbySavings(fv FeatureVector) float64 {
	return round1(0.10 * fv.EmissionsFor(emissions.CategoryElectricity))
}
func thermostatSavings(fv FeatureVector) float64 {
	return round1(0.08 * fv.EmissionsFor(emissions.CategoryHeating))
}
func heatPumpSavings(fv FeatureVector) float64 {
	return round1(0.60 * fv.EmissionsFor(emissions.CategoryHeating))
}
func plantForwardSavings(fv FeatureVector) float64 {
	return round1(0.30 * fv.EmissionsFor(emissions.CategoryDiet))
}
func foodWasteSavings(fv FeatureVector) float64 {
	return round1(0.10 * fv.EmissionsFor(emissions.CategoryDiet))
}
func localFoodSavings(fv FeatureVector) float64 {
	return round1(0.05 * fv.EmissionsFor(emissions.CategoryDiet))
}
func compostSavings(fv FeatureVector) float64 {
	return round1(0.30 * fv.EmissionsFor(emissions.CategoryWaste))
}
func recyclingSavings(fv FeatureVector) float64 {
	return round1(0.25 * fv.EmissionsFor(emissions.CategoryWaste))
}

// onboardingInsights is returned verbatim for users with no activity yet.
var onboardingInsights = []Insight{
	{
		ID:          "getting-started-transport",
		Title:       "Log your first trip",
		Description: "Add a trip by car, bus, bike or foot and see what it costs in CO2.",
		Category:    emissions.CategoryTransport,
		SavingsKg:   0,
		Priority:    30,
	},
	{
		ID:          "getting-started-electricity",
		Title:       "Track your electricity",
		Description: "Log a meter reading or your monthly kWh to baseline your home footprint.",
		Category:    emissions.CategoryElectricity,
		SavingsKg:   0,
		Priority:    20,
	},
	{
		ID:          "getting-started-diet",
		Title:       "Record a day of meals",
		Description: "One diet entry per day is enough to estimate your food footprint.",
		Category:    emissions.CategoryDiet,
		SavingsKg:   0,
		Priority:    10,
	},
}

// GenerateRuleInsights evaluates the rule table against a feature vector and
// returns at most one insight per category, ordered by descending priority
// and then by descending savings. Users with no logged activity get the
// fixed getting-started set instead.
func GenerateRuleInsights(fv FeatureVector) []Insight {
	if fv.ActivityCount == 0 {
		out := make([]Insight, len(onboardingInsights))
		copy(out, onboardingInsights)
		return out
	}

	var selected []Insight
	for _, category := range emissions.Categories {
		if !fv.HasData(category) {
			continue
		}
		for _, rule := range ruleTable[category] {
			matched, savings := evalRule(rule, fv)
			if !matched || savings <= 0 {
				continue
			}
			selected = append(selected, Insight{
				ID:          rule.ID,
				Title:       rule.Title,
				Description: rule.Description,
				Category:    rule.Category,
				SavingsKg:   savings,
				Priority:    rule.Priority,
			})
			break
		}
	}

	sort.SliceStable(selected, func(i, j int) bool {
		if selected[i].Priority != selected[j].Priority {
			return selected[i].Priority > selected[j].Priority
		}
		return selected[i].SavingsKg > selected[j].SavingsKg
	})
	return selected
}

// evalRule guards a single rule evaluation: a panicking condition or savings
// function marks the rule as non-matching instead of aborting the pass.
func evalRule(rule Rule, fv FeatureVector) (matched bool, savings float64) {
	defer func() {
		if r := recover(); r != nil {
			matched = false
			savings = 0
		}
	}()
	if rule.Condition == nil || rule.Savings == nil {
		return false, 0
	}
	if !rule.Condition(fv) {
		return false, 0
	}
	return true, rule.Savings(fv)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
