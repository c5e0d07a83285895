package reminder

import (
	"testing"
	"time"

	"github.com/CoderKavin/ibdaily-backend/internal/clock"
)

// at returns an instant the given number of minutes before today's cutoff.
func at(minutesBeforeCutoff int) time.Time {
	day := clock.DayKey("2025-03-10")
	return clock.Cutoff(day).Add(-time.Duration(minutesBeforeCutoff) * time.Minute)
}

func intPtr(v int) *int { return &v }

func TestSubmittedTodayShortCircuitsEverything(t *testing.T) {
	in := Input{
		HasSubmittedToday: true,
		Prefs:             DefaultPrefs(),
		Now:               at(DefaultLastCallMinutes),
	}
	if got := Decide(in); got != "" {
		t.Fatalf("want no reminder got=%s", got)
	}
}

func TestDisabledPrefsSuppress(t *testing.T) {
	prefs := DefaultPrefs()
	prefs.Enabled = false
	if got := Decide(Input{Prefs: prefs, Now: at(DefaultLastCallMinutes)}); got != "" {
		t.Fatalf("want no reminder got=%s", got)
	}
}

func TestQuietHoursOvernightWraparound(t *testing.T) {
	prefs := DefaultPrefs()
	prefs.QuietHoursStart = intPtr(22)
	prefs.QuietHoursEnd = intPtr(7)

	day := clock.DayKey("2025-03-10")
	mkHour := func(h int) time.Time {
		c := clock.Cutoff(day).In(clock.IST)
		return time.Date(c.Year(), c.Month(), c.Day(), h, 30, 0, 0, clock.IST)
	}

	// 23:30 and 03:30 are suppressed; 12:30 is not (but is also outside any
	// window, so suppression is observed via the hour check alone).
	for _, h := range []int{23, 3} {
		if !inQuietHours(mkHour(h).Hour(), 22, 7) {
			t.Fatalf("hour %d should be quiet", h)
		}
	}
	if inQuietHours(mkHour(12).Hour(), 22, 7) {
		t.Fatalf("hour 12 should not be quiet")
	}

	// Full path: last-call window at 20:45 is outside the 22-7 quiet span.
	if got := Decide(Input{Prefs: prefs, Now: at(DefaultLastCallMinutes)}); got != TypeLastCall {
		t.Fatalf("want=LAST_CALL got=%q", got)
	}

	// Shift quiet hours over the window and it goes silent.
	prefs.QuietHoursStart = intPtr(20)
	prefs.QuietHoursEnd = intPtr(7)
	if got := Decide(Input{Prefs: prefs, Now: at(DefaultLastCallMinutes)}); got != "" {
		t.Fatalf("want no reminder got=%s", got)
	}
}

func TestDeadlinePassed(t *testing.T) {
	if got := Decide(Input{Prefs: DefaultPrefs(), Now: at(0)}); got != "" {
		t.Fatalf("at cutoff: want no reminder got=%s", got)
	}
	if got := Decide(Input{Prefs: DefaultPrefs(), Now: at(-10)}); got != "" {
		t.Fatalf("after cutoff: want no reminder got=%s", got)
	}
}

func TestRemindWindow(t *testing.T) {
	prefs := DefaultPrefs()
	for _, m := range []int{85, 90, 95} {
		if got := Decide(Input{Prefs: prefs, Now: at(m)}); got != TypeRemind {
			t.Fatalf("%d min left: want=REMIND got=%q", m, got)
		}
	}
	// Just outside the tolerance band.
	for _, m := range []int{84, 96} {
		if got := Decide(Input{Prefs: prefs, Now: at(m)}); got != "" {
			t.Fatalf("%d min left: want no reminder got=%s", m, got)
		}
	}
}

func TestLastCallWindowWinsOverlap(t *testing.T) {
	// Configure overlapping windows: remind at 20, last call at 15. At 17
	// minutes left both bands are open; LAST_CALL takes precedence.
	prefs := DefaultPrefs()
	prefs.RemindMinutes = 20
	prefs.LastCallMinutes = 15
	if got := Decide(Input{Prefs: prefs, Now: at(17)}); got != TypeLastCall {
		t.Fatalf("want=LAST_CALL got=%q", got)
	}
}

func TestAlreadySentIsIdempotent(t *testing.T) {
	prefs := DefaultPrefs()
	sent := map[Type]bool{TypeLastCall: true}
	if got := Decide(Input{Prefs: prefs, AlreadySent: sent, Now: at(15)}); got != "" {
		t.Fatalf("want no duplicate reminder got=%s", got)
	}

	sent = map[Type]bool{TypeRemind: true}
	if got := Decide(Input{Prefs: prefs, AlreadySent: sent, Now: at(90)}); got != "" {
		t.Fatalf("want no duplicate reminder got=%s", got)
	}

	// A sent REMIND does not block a later LAST_CALL.
	if got := Decide(Input{Prefs: prefs, AlreadySent: sent, Now: at(15)}); got != TypeLastCall {
		t.Fatalf("want=LAST_CALL got=%q", got)
	}
}
