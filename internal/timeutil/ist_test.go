package timeutil

import (
	"testing"
	"time"
)

func TestStartAndEndOfDay(t *testing.T) {
	// 2026-03-15 01:30 UTC is already 07:00 on the 15th in IST.
	in := time.Date(2026, 3, 15, 1, 30, 0, 0, time.UTC)

	start := StartOfDay(in)
	if start.Hour() != 0 || start.Minute() != 0 || start.Second() != 0 {
		t.Errorf("StartOfDay = %v, want midnight", start)
	}
	if start.Day() != 15 {
		t.Errorf("StartOfDay day = %d, want 15", start.Day())
	}

	end := EndOfDay(in)
	if end.Hour() != 23 || end.Minute() != 59 || end.Second() != 59 {
		t.Errorf("EndOfDay = %v, want 23:59:59", end)
	}
	if !end.After(start) {
		t.Errorf("EndOfDay %v not after StartOfDay %v", end, start)
	}
}

func TestStartOfDay_CrossesUTCDate(t *testing.T) {
	// 2026-03-15 20:00 UTC is 01:30 on the 16th in IST.
	in := time.Date(2026, 3, 15, 20, 0, 0, 0, time.UTC)
	start := StartOfDay(in)
	if start.Day() != 16 {
		t.Errorf("StartOfDay day = %d, want 16 (IST date, not UTC)", start.Day())
	}
}
