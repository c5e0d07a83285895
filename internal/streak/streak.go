// Package streak derives a member's consecutive on-time streak and submission
// calendar from their raw submission history. State is recomputed on demand;
// nothing here is persisted.
package streak

import (
	"time"

	"github.com/CoderKavin/ibdaily-backend/internal/clock"
	"github.com/CoderKavin/ibdaily-backend/internal/quality"
)

// CalendarDays is the default history window shown to members.
const CalendarDays = 30

// Record is the slice of a submission the calculators need.
type Record struct {
	CreatedAt time.Time
	Quality   quality.Status
}

// DayStatus classifies one calendar day.
type DayStatus string

const (
	DayOnTime DayStatus = "on-time"
	DayLate   DayStatus = "late"
	DayMissed DayStatus = "missed"
)

type CalendarDay struct {
	Date   clock.DayKey `json:"date"`
	Status DayStatus    `json:"status"`
}

// Current computes the consecutive on-time streak ending at (or just before)
// now's day.
//
// If today's deadline has passed with no submission the streak is already
// broken. Otherwise today only counts when its submission is on time; an
// unsubmitted-but-still-open today just shifts the scan start to yesterday.
// The backward scan stops at the first missing or late day; gaps are never
// skipped.
func Current(history map[clock.DayKey]Record, now time.Time) int {
	today := clock.DateKey(now)
	sub, submittedToday := history[today]

	if !submittedToday && now.After(clock.Cutoff(today)) {
		return 0
	}

	// Scan from today only when today already counts; otherwise today is
	// still open and the scan starts at yesterday.
	start := clock.AddDays(today, -1)
	if submittedToday && clock.OnTime(sub.CreatedAt, today) {
		start = today
	}

	count := 0
	for day := start; ; day = clock.AddDays(day, -1) {
		rec, ok := history[day]
		if !ok || !clock.OnTime(rec.CreatedAt, day) {
			break
		}
		count++
	}
	return count
}

// Calendar classifies each of the last n days as on-time, late, or missed,
// oldest first. Unlike Current, today is always included even while still
// open.
func Calendar(history map[clock.DayKey]Record, now time.Time, n int) []CalendarDay {
	days := clock.LastNDays(n, now)
	out := make([]CalendarDay, 0, n)
	for _, day := range days {
		status := DayMissed
		if rec, ok := history[day]; ok {
			if clock.OnTime(rec.CreatedAt, day) {
				status = DayOnTime
			} else {
				status = DayLate
			}
		}
		out = append(out, CalendarDay{Date: day, Status: status})
	}
	return out
}
