package streak

import (
	"testing"
	"time"

	"github.com/CoderKavin/ibdaily-backend/internal/clock"
	"github.com/CoderKavin/ibdaily-backend/internal/quality"
)

// now is mid-afternoon IST, before the 21:00 cutoff.
var now = time.Date(2025, 3, 10, 15, 0, 0, 0, clock.IST)

func onTimeAt(day clock.DayKey) Record {
	cutoff := clock.Cutoff(day)
	return Record{CreatedAt: cutoff.Add(-2 * time.Hour), Quality: quality.StatusGood}
}

func lateAt(day clock.DayKey) Record {
	cutoff := clock.Cutoff(day)
	return Record{CreatedAt: cutoff.Add(30 * time.Minute), Quality: quality.StatusGood}
}

func day(offset int) clock.DayKey {
	return clock.AddDays(clock.DateKey(now), offset)
}

func TestFourDayStreak(t *testing.T) {
	history := map[clock.DayKey]Record{
		day(-3): onTimeAt(day(-3)),
		day(-2): onTimeAt(day(-2)),
		day(-1): onTimeAt(day(-1)),
		day(0):  onTimeAt(day(0)),
	}
	if got := Current(history, now); got != 4 {
		t.Fatalf("streak: want=4 got=%d", got)
	}
}

func TestLateSubmissionCapsStreak(t *testing.T) {
	history := map[clock.DayKey]Record{
		day(-3): onTimeAt(day(-3)),
		day(-2): onTimeAt(day(-2)),
		day(-1): lateAt(day(-1)),
		day(0):  onTimeAt(day(0)),
	}
	// Scan stops at the late day: only today counts... plus nothing behind it.
	if got := Current(history, now); got != 1 {
		t.Fatalf("streak: want=1 got=%d", got)
	}

	// With two on-time days after the late one, the cap is 2.
	history = map[clock.DayKey]Record{
		day(-3): onTimeAt(day(-3)),
		day(-2): lateAt(day(-2)),
		day(-1): onTimeAt(day(-1)),
		day(0):  onTimeAt(day(0)),
	}
	if got := Current(history, now); got != 2 {
		t.Fatalf("streak: want=2 got=%d", got)
	}
}

func TestStreakLongerThanCalendarWindow(t *testing.T) {
	// An unbroken run well past the 30-day calendar counts in full; the
	// streak has no window, only gaps and late days stop it.
	history := make(map[clock.DayKey]Record, CalendarDays+11)
	for i := 0; i <= CalendarDays+10; i++ {
		history[day(-i)] = onTimeAt(day(-i))
	}
	if got := Current(history, now); got != CalendarDays+11 {
		t.Fatalf("streak: want=%d got=%d", CalendarDays+11, got)
	}
}

func TestMissingDayBreaksStreak(t *testing.T) {
	history := map[clock.DayKey]Record{
		day(-3): onTimeAt(day(-3)),
		// day(-2) missing
		day(-1): onTimeAt(day(-1)),
		day(0):  onTimeAt(day(0)),
	}
	if got := Current(history, now); got != 2 {
		t.Fatalf("streak must not skip gaps: want=2 got=%d", got)
	}
}

func TestOpenTodayIsNotPenalized(t *testing.T) {
	history := map[clock.DayKey]Record{
		day(-2): onTimeAt(day(-2)),
		day(-1): onTimeAt(day(-1)),
	}
	// No submission today, but the deadline has not passed.
	if got := Current(history, now); got != 2 {
		t.Fatalf("streak: want=2 got=%d", got)
	}
}

func TestDeadlinePassedWithoutSubmissionZeroesStreak(t *testing.T) {
	history := map[clock.DayKey]Record{
		day(-2): onTimeAt(day(-2)),
		day(-1): onTimeAt(day(-1)),
	}
	afterCutoff := clock.Cutoff(day(0)).Add(time.Minute)
	if got := Current(history, afterCutoff); got != 0 {
		t.Fatalf("streak after missed deadline: want=0 got=%d", got)
	}
}

func TestEmptyHistory(t *testing.T) {
	if got := Current(map[clock.DayKey]Record{}, now); got != 0 {
		t.Fatalf("empty history: want=0 got=%d", got)
	}
}

func TestCalendarClassification(t *testing.T) {
	history := map[clock.DayKey]Record{
		day(-2): onTimeAt(day(-2)),
		day(-1): lateAt(day(-1)),
		// day(0) missing
	}
	cal := Calendar(history, now, 3)
	if len(cal) != 3 {
		t.Fatalf("calendar length: want=3 got=%d", len(cal))
	}
	want := []struct {
		date   clock.DayKey
		status DayStatus
	}{
		{day(-2), DayOnTime},
		{day(-1), DayLate},
		{day(0), DayMissed},
	}
	for i, w := range want {
		if cal[i].Date != w.date || cal[i].Status != w.status {
			t.Fatalf("calendar[%d]: want=%s/%s got=%s/%s", i, w.date, w.status, cal[i].Date, cal[i].Status)
		}
	}
}
