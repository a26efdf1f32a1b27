package insights

import (
	"strings"
	"testing"
)

func TestGenerateSummaryOnboarding(t *testing.T) {
	fv := vectorWith(nil)
	got := GenerateSummary(fv, GenerateRuleInsights(fv))
	if got.TopCategory != nil {
		t.Fatalf("zero-data summary must carry no top category, got %v", *got.TopCategory)
	}
	if !strings.Contains(got.Text, "Welcome") {
		t.Fatalf("expected onboarding text, got %q", got.Text)
	}
	if got.InsightCount != 3 {
		t.Fatalf("expected the 3 getting-started insights counted, got %d", got.InsightCount)
	}
}

func TestGenerateSummaryTopCategory(t *testing.T) {
	fv := vectorWith(func(fv *FeatureVector) {
		fv.ActivityCount = 8
		fv.TotalEmissionsKg = 100
		fv.Categories["transport"] = CategoryStats{Count: 4, EmissionsKg: 60}
		fv.Categories["diet"] = CategoryStats{Count: 4, EmissionsKg: 40}
	})
	got := GenerateSummary(fv, nil)
	if got.TopCategory == nil || *got.TopCategory != "transport" {
		t.Fatalf("expected transport as top category, got %v", got.TopCategory)
	}
	if got.TopCategoryPercent != 60 {
		t.Fatalf("expected 60%%, got %d", got.TopCategoryPercent)
	}
	if !strings.Contains(got.Text, "transport") {
		t.Fatalf("summary text should name the category: %q", got.Text)
	}
}

func TestGenerateSummarySumsPotentialSavings(t *testing.T) {
	fv := vectorWith(func(fv *FeatureVector) {
		fv.ActivityCount = 2
		fv.TotalEmissionsKg = 10
		fv.Categories["transport"] = CategoryStats{Count: 2, EmissionsKg: 10}
	})
	ins := []Insight{
		{ID: "a", SavingsKg: 3.0},
		{ID: "b", SavingsKg: 1.5},
	}
	got := GenerateSummary(fv, ins)
	if got.PotentialSavingsKg != 4.5 {
		t.Fatalf("expected 4.5 kg potential savings, got %v", got.PotentialSavingsKg)
	}
	if got.InsightCount != 2 {
		t.Fatalf("expected 2 insights counted, got %d", got.InsightCount)
	}
}
