// Package clock converts instants to canonical civil days and computes the
// daily submission deadline. Every function takes explicit time inputs so the
// engines built on top stay deterministic under test.
package clock

import (
	"fmt"
	"time"
)

// DayKey is a calendar date in YYYY-MM-DD form, always in IST civil time.
// Two instants carry the same DayKey iff they fall on the same IST day.
type DayKey string

const dayKeyLayout = "2006-01-02"

// DeadlineHour is the daily submission cutoff in IST civil time.
const DeadlineHour = 21

// IST is the fixed civil timezone (UTC+5:30) all day math runs in, independent
// of the host's local timezone.
var IST = time.FixedZone("IST", 5*3600+30*60)

// DateKey formats an instant as its IST civil day.
func DateKey(t time.Time) DayKey {
	return DayKey(t.In(IST).Format(dayKeyLayout))
}

// Cutoff returns the deadline instant (21:00 IST) for the given day.
// A malformed DayKey is a programmer error and panics: a silently wrong date
// here would corrupt streak and leaderboard history.
func Cutoff(day DayKey) time.Time {
	t, err := time.ParseInLocation(dayKeyLayout, string(day), IST)
	if err != nil {
		panic(fmt.Sprintf("clock: malformed day key %q: %v", day, err))
	}
	return time.Date(t.Year(), t.Month(), t.Day(), DeadlineHour, 0, 0, 0, IST)
}

// OnTime reports whether a submission created at createdAt made the deadline
// for its day. The boundary is inclusive: landing exactly at 21:00:00 counts.
func OnTime(createdAt time.Time, day DayKey) bool {
	return !createdAt.After(Cutoff(day))
}

// LastNDays returns the n most recent IST civil days ending at from's day,
// oldest first.
func LastNDays(n int, from time.Time) []DayKey {
	days := make([]DayKey, 0, n)
	end := from.In(IST)
	for i := n - 1; i >= 0; i-- {
		days = append(days, DayKey(end.AddDate(0, 0, -i).Format(dayKeyLayout)))
	}
	return days
}

// AddDays shifts a DayKey by delta civil days.
func AddDays(day DayKey, delta int) DayKey {
	t, err := time.ParseInLocation(dayKeyLayout, string(day), IST)
	if err != nil {
		panic(fmt.Sprintf("clock: malformed day key %q: %v", day, err))
	}
	return DayKey(t.AddDate(0, 0, delta).Format(dayKeyLayout))
}

// WeekStart returns the Monday of the week containing t, in IST civil time.
// Sunday maps to the previous Monday, six days back.
func WeekStart(t time.Time) DayKey {
	local := t.In(IST)
	offset := int(local.Weekday()) - int(time.Monday)
	if local.Weekday() == time.Sunday {
		offset = 6
	}
	return DayKey(local.AddDate(0, 0, -offset).Format(dayKeyLayout))
}
