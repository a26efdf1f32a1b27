package insights

import (
	"testing"
	"time"
)

func samplePayload() Payload {
	top := Insight{ID: "a", Category: "transport"}
	return Payload{
		Source:     SourceRules,
		Summary:    "s",
		TopInsight: &top,
		Insights: []Insight{
			{ID: "a", Category: "transport"},
			{ID: "b", Category: "diet"},
			{ID: "c", Category: "waste"},
		},
		GeneratedAt: time.Now(),
	}
}

func TestWithoutDismissed(t *testing.T) {
	p := samplePayload().WithoutDismissed(map[string]bool{"a": true})
	if len(p.Insights) != 2 {
		t.Fatalf("expected 2 insights after dismissal, got %d", len(p.Insights))
	}
	if p.TopInsight != nil {
		t.Fatalf("dismissed top insight must be cleared")
	}
	for _, ins := range p.Insights {
		if ins.ID == "a" {
			t.Fatalf("dismissed insight still present")
		}
	}
}

func TestWithoutDismissedLeavesOriginal(t *testing.T) {
	orig := samplePayload()
	_ = orig.WithoutDismissed(map[string]bool{"a": true, "b": true})
	if len(orig.Insights) != 3 || orig.TopInsight == nil {
		t.Fatalf("filtering must not mutate the original payload")
	}
}

func TestLimited(t *testing.T) {
	if got := samplePayload().Limited(2); len(got.Insights) != 2 {
		t.Fatalf("expected 2 insights, got %d", len(got.Insights))
	}
	if got := samplePayload().Limited(0); len(got.Insights) != 3 {
		t.Fatalf("limit 0 must leave the list unchanged")
	}
	if got := samplePayload().Limited(10); len(got.Insights) != 3 {
		t.Fatalf("limit above length must be a no-op")
	}
}

func TestWellFormed(t *testing.T) {
	p := samplePayload()
	if !p.WellFormed() {
		t.Fatalf("sample payload should be well formed")
	}
	bad := samplePayload()
	bad.Source = "oracle"
	if bad.WellFormed() {
		t.Fatalf("unknown source must fail validation")
	}
	empty := samplePayload()
	empty.Summary = ""
	if empty.WellFormed() {
		t.Fatalf("missing summary must fail validation")
	}
	var nilPayload *Payload
	if nilPayload.WellFormed() {
		t.Fatalf("nil payload must fail validation")
	}
}
