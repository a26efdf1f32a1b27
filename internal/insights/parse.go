package insights

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ecotrace/ecotrace-backend/internal/emissions"
)

// ErrNoJSON is returned when a model reply contains no JSON object at all.
var ErrNoJSON = errors.New("no JSON object found in reply")

// ExtractJSONObject returns the first balanced {...} substring of raw.
// Models routinely wrap their JSON in explanatory prose; brace depth is
// tracked outside string literals so braces inside values don't miscount.
func ExtractJSONObject(raw string) (string, error) {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			if start >= 0 {
				inString = true
			}
		case '{':
			if start < 0 {
				start = i
			}
			depth++
		case '}':
			if start < 0 {
				continue
			}
			depth--
			if depth == 0 {
				return raw[start : i+1], nil
			}
		}
	}
	return "", ErrNoJSON
}

type aiInsight struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	SavingsKg   float64 `json:"savings_kg"`
}

type aiReply struct {
	Summary       string      `json:"summary"`
	TopInsight    *aiInsight  `json:"top_insight"`
	Insights      []aiInsight `json:"insights"`
	Encouragement string      `json:"encouragement"`
}

// ParseAIReply turns a raw model reply into a normalized payload:
// the first JSON object is extracted and decoded, categories are
// normalized, the insight list is deduplicated by category keeping the
// first (highest-ranked) occurrence, and negative savings are clamped to 0.
// Any failure comes back as an error, never a panic.
func ParseAIReply(raw, model string, generatedAt time.Time) (*Payload, error) {
	obj, err := ExtractJSONObject(raw)
	if err != nil {
		return nil, err
	}

	var reply aiReply
	if err := json.Unmarshal([]byte(obj), &reply); err != nil {
		return nil, fmt.Errorf("decode model JSON: %w", err)
	}
	if reply.Summary == "" {
		return nil, errors.New("model reply has no summary")
	}

	payload := &Payload{
		Source:        SourceAI,
		Model:         model,
		Summary:       reply.Summary,
		Insights:      []Insight{},
		Trends:        []Trend{},
		Encouragement: reply.Encouragement,
		GeneratedAt:   generatedAt,
	}

	seen := map[string]bool{}
	priority := 100
	for _, in := range reply.Insights {
		category := emissions.NormalizeCategory(in.Category)
		if !emissions.IsCategory(category) || seen[category] {
			continue
		}
		seen[category] = true
		payload.Insights = append(payload.Insights, normalizeAIInsight(in, category, priority))
		priority -= 10
	}

	if reply.TopInsight != nil {
		category := emissions.NormalizeCategory(reply.TopInsight.Category)
		if emissions.IsCategory(category) {
			top := normalizeAIInsight(*reply.TopInsight, category, 100)
			payload.TopInsight = &top
		}
	}
	if payload.TopInsight == nil && len(payload.Insights) > 0 {
		payload.TopInsight = &payload.Insights[0]
	}

	return payload, nil
}

func normalizeAIInsight(in aiInsight, category string, priority int) Insight {
	savings := in.SavingsKg
	if savings < 0 {
		savings = 0
	}
	return Insight{
		ID:          "ai-" + category,
		Title:       in.Title,
		Description: in.Description,
		Category:    category,
		SavingsKg:   round1(savings),
		Priority:    priority,
	}
}
