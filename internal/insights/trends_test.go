package insights

import "testing"

func TestDetectTrendsSkipsZeroBaseline(t *testing.T) {
	got := DetectTrends(
		map[string]float64{"transport": 10},
		map[string]float64{"transport": 0},
	)
	if len(got) != 0 {
		t.Fatalf("zero last-week baseline must be skipped, got %v", got)
	}
}

func TestDetectTrendsDropsNoise(t *testing.T) {
	got := DetectTrends(
		map[string]float64{"transport": 10.3},
		map[string]float64{"transport": 10},
	)
	if len(got) != 0 {
		t.Fatalf("3%% change is noise and must be dropped, got %v", got)
	}
}

func TestDetectTrendsClassification(t *testing.T) {
	got := DetectTrends(
		map[string]float64{
			"transport":   8,  // -20% positive
			"electricity": 12, // +20% negative
			"diet":        10.7,
		},
		map[string]float64{
			"transport":   10,
			"electricity": 10,
			"diet":        10, // +7% neutral, reported
		},
	)
	if len(got) != 3 {
		t.Fatalf("expected 3 trends, got %d", len(got))
	}
	byCategory := map[string]Trend{}
	for _, tr := range got {
		byCategory[tr.Category] = tr
	}
	if byCategory["transport"].Trend != TrendPositive {
		t.Fatalf("a 20%% drop is positive, got %s", byCategory["transport"].Trend)
	}
	if byCategory["electricity"].Trend != TrendNegative {
		t.Fatalf("a 20%% rise is negative, got %s", byCategory["electricity"].Trend)
	}
	if byCategory["diet"].Trend != TrendNeutral {
		t.Fatalf("a 7%% rise is neutral, got %s", byCategory["diet"].Trend)
	}
}

func TestDetectTrendsOrdering(t *testing.T) {
	got := DetectTrends(
		map[string]float64{"transport": 15, "diet": 8},
		map[string]float64{"transport": 10, "diet": 10},
	)
	if len(got) != 2 {
		t.Fatalf("expected 2 trends, got %d", len(got))
	}
	// +50% transport outranks -20% diet on absolute change.
	if got[0].Category != "transport" || got[1].Category != "diet" {
		t.Fatalf("expected descending |pct| order, got %v", got)
	}
}

func TestDetectTrendsBoundary(t *testing.T) {
	// Exactly -10% classifies positive, exactly +5% is reported.
	got := DetectTrends(
		map[string]float64{"transport": 9, "diet": 10.5},
		map[string]float64{"transport": 10, "diet": 10},
	)
	byCategory := map[string]Trend{}
	for _, tr := range got {
		byCategory[tr.Category] = tr
	}
	if tr, ok := byCategory["transport"]; !ok || tr.Trend != TrendPositive {
		t.Fatalf("-10%% must classify positive, got %v", byCategory)
	}
	if tr, ok := byCategory["diet"]; !ok || tr.Trend != TrendNeutral {
		t.Fatalf("+5%% must be reported as neutral, got %v", byCategory)
	}
}
