package insights

import (
	"time"
)

// Source tags mark which subsystem produced a payload.
const (
	SourceAI    = "ai"
	SourceRules = "rules"
)

// Insight is a single actionable recommendation with an estimated saving.
type Insight struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	SavingsKg   float64 `json:"savings_kg"`
	Priority    int     `json:"priority"`
}

// Trend is a week-over-week change in one category's emissions.
type Trend struct {
	Category      string  `json:"category"`
	PercentChange int     `json:"percent_change"`
	Trend         string  `json:"trend"`
	Message       string  `json:"message"`
	ThisWeekKg    float64 `json:"this_week_kg"`
	LastWeekKg    float64 `json:"last_week_kg"`
}

// Payload is the externally visible insight result, cached per user for up
// to six hours when AI-sourced.
type Payload struct {
	Source        string    `json:"source"`
	Model         string    `json:"model,omitempty"`
	Summary       string    `json:"summary"`
	TopInsight    *Insight  `json:"top_insight,omitempty"`
	Insights      []Insight `json:"insights"`
	Trends        []Trend   `json:"trends"`
	Encouragement string    `json:"encouragement"`
	GeneratedAt   time.Time `json:"generated_at"`
}

// WellFormed reports whether a payload deserialized from the cache still has
// the shape callers rely on. Corrupt entries are treated as cache misses.
func (p *Payload) WellFormed() bool {
	if p == nil {
		return false
	}
	if p.Source != SourceAI && p.Source != SourceRules {
		return false
	}
	if p.Summary == "" {
		return false
	}
	if p.Insights == nil {
		return false
	}
	return true
}

// WithoutDismissed returns a copy of the payload with the given insight ids
// removed. The top insight is cleared when it was dismissed.
func (p Payload) WithoutDismissed(dismissed map[string]bool) Payload {
	if len(dismissed) == 0 {
		return p
	}
	kept := make([]Insight, 0, len(p.Insights))
	for _, ins := range p.Insights {
		if !dismissed[ins.ID] {
			kept = append(kept, ins)
		}
	}
	p.Insights = kept
	if p.TopInsight != nil && dismissed[p.TopInsight.ID] {
		p.TopInsight = nil
	}
	return p
}

// Limited caps the insight list at n (n <= 0 leaves it unchanged).
func (p Payload) Limited(n int) Payload {
	if n > 0 && len(p.Insights) > n {
		p.Insights = p.Insights[:n]
	}
	return p
}
