package emissions

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestComputeKnownFactors(t *testing.T) {
	if got := Compute("transport", "car_petrol", 20); !almostEqual(got, 4.2) {
		t.Fatalf("expected 4.2 kg for 20 km petrol car, got %v", got)
	}
	if got := Compute("diet", "vegan", 1); !almostEqual(got, 2.9) {
		t.Fatalf("expected 2.9 kg for one vegan day, got %v", got)
	}
	if got := Compute("electricity", "mixed", 100); !almostEqual(got, 23.3) {
		t.Fatalf("expected 23.3 kg for 100 kWh mixed, got %v", got)
	}
}

func TestComputeZeroFactorIsNotMissing(t *testing.T) {
	// bike and walk carry an explicit factor of 0; they must not fall back
	// to the category default.
	if got := Compute("transport", "bike", 50); got != 0 {
		t.Fatalf("expected 0 kg for 50 km by bike, got %v", got)
	}
	if got := Compute("transport", "walk", 10); got != 0 {
		t.Fatalf("expected 0 kg for 10 km on foot, got %v", got)
	}
	if _, ok := Factor("transport", "bike"); !ok {
		t.Fatalf("expected bike to be a known transport subtype")
	}
}

func TestComputeUnknownSubtypeUsesDefault(t *testing.T) {
	def := Compute("transport", "hovercraft", 20)
	expected := Compute("transport", "car_petrol", 20)
	if !almostEqual(def, expected) {
		t.Fatalf("expected default car_petrol factor for unknown subtype, got %v", def)
	}
	if _, ok := Factor("transport", "hovercraft"); ok {
		t.Fatalf("hovercraft should not be a known subtype")
	}
}

func TestComputeUnknownCategory(t *testing.T) {
	if got := Compute("teleportation", "beam", 5); got != 0 {
		t.Fatalf("expected 0 for unknown category, got %v", got)
	}
}

func TestNormalizeCategoryAliases(t *testing.T) {
	cases := map[string]string{
		"energy":      "electricity",
		"food":        "diet",
		"transport":   "transport",
		"electricity": "electricity",
		"unknown":     "unknown",
	}
	for in, want := range cases {
		if got := NormalizeCategory(in); got != want {
			t.Fatalf("NormalizeCategory(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestUnitAndDefaultSubtype(t *testing.T) {
	if got := Unit("transport"); got != "km" {
		t.Fatalf("expected km, got %q", got)
	}
	if got := Unit("diet"); got != "day" {
		t.Fatalf("expected day, got %q", got)
	}
	if got := DefaultSubtype("waste"); got != "landfill" {
		t.Fatalf("expected landfill, got %q", got)
	}
}
