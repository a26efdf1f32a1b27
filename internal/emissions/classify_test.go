package emissions

import "testing"

func TestClassifySubtypeTransport(t *testing.T) {
	cases := []struct {
		desc string
		want string
	}{
		{"drove to the office", "car_petrol"},
		{"took the bus downtown", "bus"},
		{"morning bicycle commute", "bike"},
		{"train to the city", "train"},
		{"short flight to Berlin", "plane_short"},
		{"took an uber home", "car_petrol"},
	}
	for _, tc := range cases {
		if got := ClassifySubtype("transport", tc.desc); got != tc.want {
			t.Fatalf("ClassifySubtype(transport, %q) = %q, want %q", tc.desc, got, tc.want)
		}
	}
}

func TestClassifySubtypeFirstMatchWins(t *testing.T) {
	// Known keyword fragility: "bike" is declared before "car", so a mixed
	// description resolves to the eco mode.
	if got := ClassifySubtype("transport", "biked to avoid my car"); got != "bike" {
		t.Fatalf("expected bike for mixed description, got %q", got)
	}
}

func TestClassifySubtypeNoMatchReturnsDescription(t *testing.T) {
	if got := ClassifySubtype("transport", "teleported"); got != "teleported" {
		t.Fatalf("expected raw description back, got %q", got)
	}
}

func TestClassifySubtypeDiet(t *testing.T) {
	if got := ClassifySubtype("diet", "vegan day"); got != "vegan" {
		t.Fatalf("expected vegan, got %q", got)
	}
	if got := ClassifySubtype("food", "steak dinner"); got != "meat_heavy" {
		t.Fatalf("expected meat_heavy via food alias, got %q", got)
	}
}

func TestMentionsCarAndEco(t *testing.T) {
	if !MentionsCar("drove to work") {
		t.Fatalf("expected drove to count as a car trip")
	}
	if MentionsCar("took the train") {
		t.Fatalf("train should not count as a car trip")
	}
	if !MentionsEco("cycled along the river") {
		t.Fatalf("expected cycling to count as eco")
	}
	// The same description can hit both keyword lists.
	mixed := "biked to avoid my car"
	if !MentionsCar(mixed) || !MentionsEco(mixed) {
		t.Fatalf("expected mixed description to match both lists")
	}
}
