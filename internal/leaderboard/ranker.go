// Package leaderboard ranks cohort members over a trailing 30-day window of
// submissions, with deterministic tie-breaks and percentile tiers.
package leaderboard

import (
	"sort"
	"time"

	"github.com/CoderKavin/ibdaily-backend/internal/clock"
	"github.com/CoderKavin/ibdaily-backend/internal/quality"
	"github.com/CoderKavin/ibdaily-backend/internal/streak"
	"github.com/google/uuid"
)

// WindowDays is the trailing window the ranking considers.
const WindowDays = 30

type Tier string

const (
	TierTop        Tier = "TOP"
	TierMiddle     Tier = "MIDDLE"
	TierCatchingUp Tier = "CATCHING_UP"
)

// Percentile boundaries on rank/total, inclusive.
const (
	topTierRatio    = 0.2
	middleTierRatio = 0.8
)

// Member is one cohort member's submission history keyed by day.
type Member struct {
	UserID  uuid.UUID
	History map[clock.DayKey]streak.Record
}

// Entry is one ranked leaderboard row.
type Entry struct {
	UserID           uuid.UUID  `json:"user_id"`
	Rank             int        `json:"rank"`
	Tier             Tier       `json:"tier"`
	CurrentStreak    int        `json:"current_streak"`
	OnTimeCount30    int        `json:"on_time_count_30_days"`
	LatestSubmission *time.Time `json:"latest_submission,omitempty"`
}

// Rank orders members by current streak desc, then on-time GOOD submissions in
// the window desc, then earliest latest-submission time (members without any
// submission sort last), then user ID for a stable total order. Ranks are
// 1-based with no gaps.
func Rank(members []Member, now time.Time) []Entry {
	window := make(map[clock.DayKey]bool, WindowDays)
	for _, day := range clock.LastNDays(WindowDays, now) {
		window[day] = true
	}

	entries := make([]Entry, 0, len(members))
	for _, m := range members {
		e := Entry{
			UserID:        m.UserID,
			CurrentStreak: streak.Current(m.History, now),
		}
		for day, rec := range m.History {
			if !window[day] {
				continue
			}
			if clock.OnTime(rec.CreatedAt, day) && rec.Quality == quality.StatusGood {
				e.OnTimeCount30++
			}
			if e.LatestSubmission == nil || rec.CreatedAt.After(*e.LatestSubmission) {
				t := rec.CreatedAt
				e.LatestSubmission = &t
			}
		}
		entries = append(entries, e)
	}

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.CurrentStreak != b.CurrentStreak {
			return a.CurrentStreak > b.CurrentStreak
		}
		if a.OnTimeCount30 != b.OnTimeCount30 {
			return a.OnTimeCount30 > b.OnTimeCount30
		}
		switch {
		case a.LatestSubmission == nil && b.LatestSubmission == nil:
			// fall through to user ID
		case a.LatestSubmission == nil:
			return false
		case b.LatestSubmission == nil:
			return true
		case !a.LatestSubmission.Equal(*b.LatestSubmission):
			return a.LatestSubmission.Before(*b.LatestSubmission)
		}
		return a.UserID.String() < b.UserID.String()
	})

	total := len(entries)
	for i := range entries {
		entries[i].Rank = i + 1
		entries[i].Tier = tierFor(i+1, total)
	}
	return entries
}

func tierFor(rank, total int) Tier {
	if total <= 2 {
		return TierTop
	}
	ratio := float64(rank) / float64(total)
	switch {
	case ratio <= topTierRatio:
		return TierTop
	case ratio <= middleTierRatio:
		return TierMiddle
	default:
		return TierCatchingUp
	}
}
