package services

import "testing"

func TestShareCut(t *testing.T) {
	cases := []struct {
		amount int64
		pct    int
		want   int64
	}{
		{50, 50, 25},
		{50, 10, 5},
		{50, 20, 10},
		{51, 50, 25}, // truncates, never rounds up
		{99, 33, 32},
		{100, 0, 0},
		{0, 50, 0},
		{-50, 50, -25}, // loss-making orders distribute negative cuts
		{1, 100, 1},
	}
	for _, c := range cases {
		if got := ShareCut(c.amount, c.pct); got != c.want {
			t.Errorf("ShareCut(%d, %d) = %d, want %d", c.amount, c.pct, got, c.want)
		}
	}
}

func TestParseDateRange(t *testing.T) {
	from, to, err := parseDateRange("2026-01-05", "2026-01-10")
	if err != nil {
		t.Fatalf("parseDateRange: %v", err)
	}
	if !from.Before(to) {
		t.Fatalf("from %v not before to %v", from, to)
	}
	if from.Hour() != 0 || from.Minute() != 0 {
		t.Errorf("from not at start of day: %v", from)
	}
	if to.Hour() != 23 || to.Minute() != 59 {
		t.Errorf("to not at end of day: %v", to)
	}

	if _, _, err := parseDateRange("05-01-2026", ""); err == nil {
		t.Error("expected error for malformed from date")
	}
	if _, _, err := parseDateRange("", "not-a-date"); err == nil {
		t.Error("expected error for malformed to date")
	}

	// Empty bounds widen to all history up to today.
	from, to, err = parseDateRange("", "")
	if err != nil {
		t.Fatalf("parseDateRange empty: %v", err)
	}
	if !from.IsZero() {
		t.Errorf("empty from should be zero time, got %v", from)
	}
	if to.IsZero() {
		t.Error("empty to should default to end of today")
	}
}
