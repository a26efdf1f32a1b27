package insights

import (
	"fmt"
	"math"
	"sort"

	"github.com/ecotrace/ecotrace-backend/internal/emissions"
)

// Trend classification tags.
const (
	TrendPositive = "positive"
	TrendNegative = "negative"
	TrendNeutral  = "neutral"
)

const (
	trendReportThreshold   = 5  // |pct| below this is noise, not reported
	trendClassifyThreshold = 10 // |pct| at or above this is a real swing
)

// DetectTrends compares per-category emission sums for this week against
// last week. Categories with a zero last-week baseline are skipped entirely
// (no percent change is defined for them); changes under 5% are dropped;
// a drop of 10% or more is positive, a rise of 10% or more negative, and
// the 5–10% band either way neutral. Output is ordered by descending
// absolute percent change.
func DetectTrends(thisWeek, lastWeek map[string]float64) []Trend {
	var out []Trend
	for _, category := range emissions.Categories {
		last := lastWeek[category]
		if last == 0 {
			continue
		}
		this := thisWeek[category]
		pct := int(math.Round((this - last) / last * 100))
		if pct > -trendReportThreshold && pct < trendReportThreshold {
			continue
		}
		out = append(out, Trend{
			Category:      category,
			PercentChange: pct,
			Trend:         classifyTrend(pct),
			Message:       trendMessage(category, pct),
			ThisWeekKg:    this,
			LastWeekKg:    last,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return abs(out[i].PercentChange) > abs(out[j].PercentChange)
	})
	return out
}

func classifyTrend(pct int) string {
	switch {
	case pct <= -trendClassifyThreshold:
		return TrendPositive
	case pct >= trendClassifyThreshold:
		return TrendNegative
	default:
		return TrendNeutral
	}
}

func trendMessage(category string, pct int) string {
	if pct < 0 {
		return fmt.Sprintf("Your %s emissions are down %d%% compared to last week.", category, -pct)
	}
	return fmt.Sprintf("Your %s emissions are up %d%% compared to last week.", category, pct)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
