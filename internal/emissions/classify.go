package emissions

import "strings"

// keywordRule maps description keywords to a factor-table subtype. Rules are
// scanned in declared order; the first keyword hit wins.
type keywordRule struct {
	subtype  string
	keywords []string
}

var classifyRules = map[string][]keywordRule{
	CategoryTransport: {
		{subtype: "bike", keywords: []string{"bike", "bicycle", "cycling", "cycled"}},
		{subtype: "walk", keywords: []string{"walk", "walked", "on foot", "hike"}},
		{subtype: "bus", keywords: []string{"bus", "coach"}},
		{subtype: "train", keywords: []string{"train", "rail", "metro", "subway", "tram"}},
		{subtype: "plane_short", keywords: []string{"flight", "flew", "plane"}},
		{subtype: "motorbike", keywords: []string{"motorbike", "motorcycle", "scooter"}},
		{subtype: "car_electric", keywords: []string{"electric car", "ev"}},
		{subtype: "car_diesel", keywords: []string{"diesel"}},
		{subtype: "car_petrol", keywords: []string{"car", "drove", "drive", "taxi", "uber"}},
	},
	CategoryElectricity: {
		{subtype: "solar", keywords: []string{"solar"}},
		{subtype: "wind", keywords: []string{"wind"}},
		{subtype: "hydro", keywords: []string{"hydro"}},
		{subtype: "coal", keywords: []string{"coal"}},
		{subtype: "gas", keywords: []string{"gas"}},
	},
	CategoryHeating: {
		{subtype: "heat_pump", keywords: []string{"heat pump", "heatpump"}},
		{subtype: "wood", keywords: []string{"wood", "pellet"}},
		{subtype: "oil", keywords: []string{"oil"}},
		{subtype: "electric", keywords: []string{"electric"}},
		{subtype: "gas", keywords: []string{"gas"}},
	},
	CategoryDiet: {
		{subtype: "vegan", keywords: []string{"vegan"}},
		{subtype: "vegetarian", keywords: []string{"vegetarian", "veggie"}},
		{subtype: "pescatarian", keywords: []string{"pescatarian", "fish"}},
		{subtype: "meat_heavy", keywords: []string{"steak", "beef", "lamb", "bbq"}},
		{subtype: "meat_medium", keywords: []string{"meat", "chicken", "pork"}},
	},
	CategoryWaste: {
		{subtype: "composted", keywords: []string{"compost"}},
		{subtype: "recycled", keywords: []string{"recycl"}},
		{subtype: "incinerated", keywords: []string{"incinerat", "burn"}},
	},
}

// ClassifySubtype infers a factor-table subtype from a free-text description.
// When no keyword matches, the raw description is returned unmodified;
// callers must treat an unrecognized return value as "use category default".
//
// The heuristic is substring-based and deliberately naive: a description
// like "biked to avoid my car" matches the first declared rule ("bike").
func ClassifySubtype(category, description string) string {
	desc := strings.ToLower(description)
	for _, rule := range classifyRules[NormalizeCategory(category)] {
		for _, kw := range rule.keywords {
			if strings.Contains(desc, kw) {
				return rule.subtype
			}
		}
	}
	return description
}

var carKeywords = []string{"car", "drove", "drive", "driving", "taxi", "uber"}
var ecoKeywords = []string{"bike", "bicycle", "cycling", "cycled", "walk", "bus", "train", "metro", "subway", "tram"}

// MentionsCar reports whether a transport description looks like a car trip.
// Same keyword fragility as ClassifySubtype; see the package tests.
func MentionsCar(description string) bool {
	return containsAny(strings.ToLower(description), carKeywords)
}

// MentionsEco reports whether a transport description looks like a
// low-emission trip.
func MentionsEco(description string) bool {
	return containsAny(strings.ToLower(description), ecoKeywords)
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
