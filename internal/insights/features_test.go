package insights

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ecotrace/ecotrace-backend/internal/types"
)

func activityOn(day time.Time, category, description string, kg float64) types.Activity {
	return types.Activity{
		ID:          uuid.New(),
		Category:    category,
		Description: description,
		EmissionsKg: kg,
		Date:        day,
	}
}

func TestBuildFeatureVectorAggregates(t *testing.T) {
	asOf := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	userID := uuid.New()
	activities := []types.Activity{
		activityOn(asOf.AddDate(0, 0, -1), "transport", "drove to work", 4.2),
		activityOn(asOf.AddDate(0, 0, -2), "transport", "cycled home", 0),
		activityOn(asOf.AddDate(0, 0, -3), "energy", "monthly meter reading", 23.3),
		activityOn(asOf.AddDate(0, 0, -40), "transport", "old road trip", 50),
	}

	fv := BuildFeatureVector(userID, activities, nil, asOf)

	if fv.ActivityCount != 3 {
		t.Fatalf("expected 3 in-window activities, got %d", fv.ActivityCount)
	}
	if fv.Categories["transport"].Count != 2 {
		t.Fatalf("expected 2 transport activities, got %d", fv.Categories["transport"].Count)
	}
	// "energy" folds into electricity before aggregation.
	if fv.Categories["electricity"].EmissionsKg != 23.3 {
		t.Fatalf("expected energy row under electricity, got %+v", fv.Categories)
	}
	if _, ok := fv.Categories["energy"]; ok {
		t.Fatalf("raw energy key must not appear in the vector")
	}
	if fv.TotalEmissionsKg != 27.5 {
		t.Fatalf("expected total 27.5 excluding out-of-window row, got %v", fv.TotalEmissionsKg)
	}
	if fv.CarTrips != 1 || fv.EcoTrips != 1 {
		t.Fatalf("expected 1 car and 1 eco trip, got %d/%d", fv.CarTrips, fv.EcoTrips)
	}
}

func TestBuildFeatureVectorNeutralDefaults(t *testing.T) {
	fv := BuildFeatureVector(uuid.New(), nil, nil, time.Now())
	if fv.ActivityCount != 0 {
		t.Fatalf("expected zero activities, got %d", fv.ActivityCount)
	}
	if fv.EnergySource != "mixed" || fv.DietType != "mixed" || fv.PlasticLevel != "medium" {
		t.Fatalf("expected neutral profile defaults, got %q/%q/%q", fv.EnergySource, fv.DietType, fv.PlasticLevel)
	}
	if fv.HasData("transport") {
		t.Fatalf("empty vector must report no data")
	}
}

func TestBuildFeatureVectorUsesProfile(t *testing.T) {
	profile := &types.CalculatorProfile{
		EnergySource:  "solar",
		DietType:      "vegan",
		LocalFood:     true,
		Compost:       true,
		RecyclesGlass: true,
	}
	fv := BuildFeatureVector(uuid.New(), nil, profile, time.Now())
	if fv.EnergySource != "solar" || fv.DietType != "vegan" {
		t.Fatalf("expected profile values, got %q/%q", fv.EnergySource, fv.DietType)
	}
	if !fv.RecyclesAny {
		t.Fatalf("expected any recycling flag to be set")
	}
	// Empty profile strings keep the neutral default.
	if fv.PlasticLevel != "medium" {
		t.Fatalf("expected medium plastic default, got %q", fv.PlasticLevel)
	}
}

func TestCarTripCountingIsKeywordBased(t *testing.T) {
	asOf := time.Now().UTC()
	activities := []types.Activity{
		activityOn(asOf, "transport", "biked to avoid my car", 0),
	}
	fv := BuildFeatureVector(uuid.New(), activities, nil, asOf)
	// The description mentions both modes, so it counts as both. Documented
	// behavior of the keyword heuristic.
	if fv.CarTrips != 1 || fv.EcoTrips != 1 {
		t.Fatalf("expected the mixed description to count in both tallies, got %d/%d", fv.CarTrips, fv.EcoTrips)
	}
}
