package insights

import (
	"errors"
	"testing"
	"time"
)

func TestExtractJSONObject(t *testing.T) {
	raw := `Sure! Here is your result: {"summary": "ok", "note": "a { brace } inside"} Hope that helps.`
	obj, err := ExtractJSONObject(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if obj != `{"summary": "ok", "note": "a { brace } inside"}` {
		t.Fatalf("wrong object extracted: %s", obj)
	}
}

func TestExtractJSONObjectNested(t *testing.T) {
	raw := `{"a": {"b": 1}, "c": [2]}`
	obj, err := ExtractJSONObject(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if obj != raw {
		t.Fatalf("expected full object back, got %s", obj)
	}
}

func TestExtractJSONObjectEscapedQuote(t *testing.T) {
	raw := `{"text": "he said \"hi{\" and left"}`
	obj, err := ExtractJSONObject(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if obj != raw {
		t.Fatalf("escaped quotes broke extraction: %s", obj)
	}
}

func TestExtractJSONObjectNone(t *testing.T) {
	if _, err := ExtractJSONObject("no json here"); !errors.Is(err, ErrNoJSON) {
		t.Fatalf("expected ErrNoJSON, got %v", err)
	}
	if _, err := ExtractJSONObject(`{"unterminated": true`); !errors.Is(err, ErrNoJSON) {
		t.Fatalf("expected ErrNoJSON for unbalanced braces, got %v", err)
	}
}

func TestParseAIReply(t *testing.T) {
	now := time.Now()
	raw := `Model says: {
		"summary": "Transport dominates your footprint.",
		"insights": [
			{"title": "Drive less", "category": "transport", "savings_kg": 12.34},
			{"title": "Eat greener", "category": "food", "savings_kg": 5},
			{"title": "Duplicate", "category": "transport", "savings_kg": 99}
		],
		"encouragement": "Keep going!"
	}`
	payload, err := ParseAIReply(raw, "llama3.1", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload.Source != SourceAI || payload.Model != "llama3.1" {
		t.Fatalf("wrong source/model: %s/%s", payload.Source, payload.Model)
	}
	if len(payload.Insights) != 2 {
		t.Fatalf("duplicate transport insight must be dropped, got %d", len(payload.Insights))
	}
	first := payload.Insights[0]
	if first.ID != "ai-transport" || first.SavingsKg != 12.3 {
		t.Fatalf("expected first transport insight rounded to 12.3, got %+v", first)
	}
	// "food" normalizes to diet.
	if payload.Insights[1].Category != "diet" || payload.Insights[1].ID != "ai-diet" {
		t.Fatalf("expected food alias folded to diet, got %+v", payload.Insights[1])
	}
	if payload.TopInsight == nil || payload.TopInsight.ID != "ai-transport" {
		t.Fatalf("top insight should default to first insight, got %+v", payload.TopInsight)
	}
}

func TestParseAIReplyNegativeSavingsClamped(t *testing.T) {
	raw := `{"summary": "s", "insights": [{"title": "x", "category": "diet", "savings_kg": -4}]}`
	payload, err := ParseAIReply(raw, "m", time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload.Insights[0].SavingsKg != 0 {
		t.Fatalf("negative savings must clamp to 0, got %v", payload.Insights[0].SavingsKg)
	}
}

func TestParseAIReplyUnknownCategoryDropped(t *testing.T) {
	raw := `{"summary": "s", "insights": [{"title": "x", "category": "levitation"}]}`
	payload, err := ParseAIReply(raw, "m", time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(payload.Insights) != 0 {
		t.Fatalf("unknown category must be dropped, got %+v", payload.Insights)
	}
}

func TestParseAIReplyRequiresSummary(t *testing.T) {
	if _, err := ParseAIReply(`{"insights": []}`, "m", time.Now()); err == nil {
		t.Fatalf("expected error for missing summary")
	}
}

func TestParseAIReplyGarbage(t *testing.T) {
	if _, err := ParseAIReply("total nonsense", "m", time.Now()); err == nil {
		t.Fatalf("expected error for non-JSON reply")
	}
}
