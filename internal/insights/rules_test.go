package insights

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func vectorWith(mutate func(*FeatureVector)) FeatureVector {
	fv := FeatureVector{
		UserID:       uuid.New(),
		AsOf:         time.Now(),
		WindowDays:   FeatureWindowDays,
		Categories:   map[string]CategoryStats{},
		EnergySource: "mixed",
		DietType:     "mixed",
		PlasticLevel: "medium",
	}
	if mutate != nil {
		mutate(&fv)
	}
	return fv
}

func TestOnboardingInsightsForEmptyVector(t *testing.T) {
	got := GenerateRuleInsights(vectorWith(nil))
	if len(got) != 3 {
		t.Fatalf("expected 3 getting-started insights, got %d", len(got))
	}
	wantIDs := []string{"getting-started-transport", "getting-started-electricity", "getting-started-diet"}
	for i, id := range wantIDs {
		if got[i].ID != id {
			t.Fatalf("expected %s at position %d, got %s", id, i, got[i].ID)
		}
		if got[i].SavingsKg != 0 {
			t.Fatalf("getting-started insights carry no savings estimate")
		}
	}
}

func TestOnePerCategory(t *testing.T) {
	fv := vectorWith(func(fv *FeatureVector) {
		fv.ActivityCount = 10
		fv.Categories["transport"] = CategoryStats{Count: 5, EmissionsKg: 40}
		fv.CarTrips = 4
		fv.EcoTrips = 3
	})
	got := GenerateRuleInsights(fv)
	if len(got) != 1 {
		t.Fatalf("expected exactly one transport insight, got %d", len(got))
	}
	// Highest-priority matching rule wins even though others also match.
	if got[0].ID != "transport-swap-short-drives" {
		t.Fatalf("expected the top-priority rule, got %s", got[0].ID)
	}
	if got[0].SavingsKg != 12 { // 30% of 40
		t.Fatalf("expected 12 kg savings, got %v", got[0].SavingsKg)
	}
}

func TestNoDataNoRecommendation(t *testing.T) {
	fv := vectorWith(func(fv *FeatureVector) {
		fv.ActivityCount = 2
		fv.Categories["transport"] = CategoryStats{Count: 2, EmissionsKg: 10}
		// Waste profile flags would match waste rules, but the user never
		// logged waste, so the category stays silent.
		fv.Compost = false
	})
	for _, ins := range GenerateRuleInsights(fv) {
		if ins.Category == "waste" {
			t.Fatalf("waste insight produced without waste data")
		}
	}
}

func TestPriorityOrdering(t *testing.T) {
	fv := vectorWith(func(fv *FeatureVector) {
		fv.ActivityCount = 20
		fv.Categories["transport"] = CategoryStats{Count: 6, EmissionsKg: 50}
		fv.Categories["electricity"] = CategoryStats{Count: 4, EmissionsKg: 30}
		fv.Categories["diet"] = CategoryStats{Count: 10, EmissionsKg: 45}
		fv.CarTrips = 5
		fv.EnergySource = "coal"
		fv.DietType = "meat_heavy"
	})
	got := GenerateRuleInsights(fv)
	if len(got) != 3 {
		t.Fatalf("expected three insights, got %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i-1].Priority < got[i].Priority {
			t.Fatalf("insights out of priority order: %v", got)
		}
	}
	if got[0].ID != "transport-swap-short-drives" {
		t.Fatalf("expected transport rule first at p90, got %s", got[0].ID)
	}
}

func TestZeroSavingsRuleSkipped(t *testing.T) {
	// Transport data exists but all trips were zero-emission, so every
	// savings estimate is 0 and no transport insight should surface.
	fv := vectorWith(func(fv *FeatureVector) {
		fv.ActivityCount = 4
		fv.Categories["transport"] = CategoryStats{Count: 4, EmissionsKg: 0}
		fv.CarTrips = 3
	})
	for _, ins := range GenerateRuleInsights(fv) {
		if ins.Category == "transport" {
			t.Fatalf("transport insight with zero savings should be skipped, got %s", ins.ID)
		}
	}
}

func TestPanickingRuleIsSkipped(t *testing.T) {
	rule := Rule{
		ID:        "test-panic",
		Condition: func(FeatureVector) bool { panic("boom") },
		Savings:   func(FeatureVector) float64 { return 1 },
	}
	matched, savings := evalRule(rule, vectorWith(nil))
	if matched || savings != 0 {
		t.Fatalf("panicking rule must evaluate as non-matching")
	}
}
