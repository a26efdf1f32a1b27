package services

import (
	"testing"
	"time"
)

func TestLevelForXP(t *testing.T) {
	cases := []struct {
		xp   int
		want int
	}{
		{0, 1},
		{99, 1},
		{100, 2},
		{250, 3},
		{1000, 11},
		{-5, 1},
	}
	for _, tc := range cases {
		if got := LevelForXP(tc.xp); got != tc.want {
			t.Fatalf("LevelForXP(%d) = %d, want %d", tc.xp, got, tc.want)
		}
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 15, 30, 0, 0, time.UTC)
}

func TestNextStreak(t *testing.T) {
	mon := day(2026, 8, 24)
	tue := day(2026, 8, 25)
	thu := day(2026, 8, 27)

	if got := NextStreak(0, time.Time{}, mon); got != 1 {
		t.Fatalf("first ever log starts a streak of 1, got %d", got)
	}
	if got := NextStreak(3, mon, mon); got != 3 {
		t.Fatalf("same-day log keeps the streak, got %d", got)
	}
	if got := NextStreak(3, mon, tue); got != 4 {
		t.Fatalf("next-day log extends the streak, got %d", got)
	}
	if got := NextStreak(3, mon, thu); got != 1 {
		t.Fatalf("a gap resets the streak, got %d", got)
	}
	if got := NextStreak(3, tue, mon); got != 3 {
		t.Fatalf("backdated entry leaves the streak alone, got %d", got)
	}
}

func TestNextStreakIgnoresTimeOfDay(t *testing.T) {
	lateMonday := time.Date(2026, 8, 24, 23, 59, 0, 0, time.UTC)
	earlyTuesday := time.Date(2026, 8, 25, 0, 1, 0, 0, time.UTC)
	if got := NextStreak(1, lateMonday, earlyTuesday); got != 2 {
		t.Fatalf("calendar-day comparison expected, got %d", got)
	}
}
