package clock

import (
	"testing"
	"time"
)

func TestDateKeyUsesISTDay(t *testing.T) {
	// 2025-03-09 19:00 UTC is 2025-03-10 00:30 IST.
	utc := time.Date(2025, 3, 9, 19, 0, 0, 0, time.UTC)
	if got := DateKey(utc); got != "2025-03-10" {
		t.Fatalf("DateKey: want=%q got=%q", "2025-03-10", got)
	}
	// 18:29 UTC is still 23:59 IST on the 9th.
	utc = time.Date(2025, 3, 9, 18, 29, 0, 0, time.UTC)
	if got := DateKey(utc); got != "2025-03-09" {
		t.Fatalf("DateKey: want=%q got=%q", "2025-03-09", got)
	}
}

func TestCutoffBoundaryInclusive(t *testing.T) {
	day := DayKey("2025-03-10")
	atCutoff := time.Date(2025, 3, 10, 21, 0, 0, 0, IST)
	justAfter := time.Date(2025, 3, 10, 21, 0, 1, 0, IST)

	if !OnTime(atCutoff, day) {
		t.Fatalf("submission at exactly 21:00:00 should be on time")
	}
	if OnTime(justAfter, day) {
		t.Fatalf("submission at 21:00:01 should be late")
	}
}

func TestCutoffRoundTrip(t *testing.T) {
	for _, day := range []DayKey{"2024-01-01", "2024-12-31", "2025-06-15"} {
		if got := DateKey(Cutoff(day)); got != day {
			t.Fatalf("round trip: want=%q got=%q", day, got)
		}
	}
}

func TestCutoffPanicsOnMalformedDay(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for malformed day key")
		}
	}()
	Cutoff("10-03-2025")
}

func TestLastNDays(t *testing.T) {
	from := time.Date(2025, 3, 10, 12, 0, 0, 0, IST)
	got := LastNDays(3, from)
	want := []DayKey{"2025-03-08", "2025-03-09", "2025-03-10"}
	if len(got) != len(want) {
		t.Fatalf("length: want=%d got=%d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("day %d: want=%q got=%q", i, want[i], got[i])
		}
	}
}

func TestLastNDaysCrossesMonthBoundary(t *testing.T) {
	from := time.Date(2025, 3, 1, 8, 0, 0, 0, IST)
	got := LastNDays(2, from)
	if got[0] != "2025-02-28" || got[1] != "2025-03-01" {
		t.Fatalf("want [2025-02-28 2025-03-01] got %v", got)
	}
}

func TestWeekStart(t *testing.T) {
	cases := []struct {
		in   time.Time
		want DayKey
	}{
		// Monday maps to itself.
		{time.Date(2025, 3, 10, 9, 0, 0, 0, IST), "2025-03-10"},
		// Wednesday maps back to Monday.
		{time.Date(2025, 3, 12, 9, 0, 0, 0, IST), "2025-03-10"},
		// Sunday maps to the previous Monday, six days back.
		{time.Date(2025, 3, 16, 9, 0, 0, 0, IST), "2025-03-10"},
	}
	for _, c := range cases {
		if got := WeekStart(c.in); got != c.want {
			t.Fatalf("WeekStart(%v): want=%q got=%q", c.in, c.want, got)
		}
	}
}

func TestAddDays(t *testing.T) {
	if got := AddDays("2025-03-01", -1); got != "2025-02-28" {
		t.Fatalf("AddDays: want=%q got=%q", "2025-02-28", got)
	}
	if got := AddDays("2024-02-28", 1); got != "2024-02-29" {
		t.Fatalf("AddDays leap: want=%q got=%q", "2024-02-29", got)
	}
}
