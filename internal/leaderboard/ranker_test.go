package leaderboard

import (
	"testing"
	"time"

	"github.com/CoderKavin/ibdaily-backend/internal/clock"
	"github.com/CoderKavin/ibdaily-backend/internal/quality"
	"github.com/CoderKavin/ibdaily-backend/internal/streak"
	"github.com/google/uuid"
)

var now = time.Date(2025, 3, 10, 20, 30, 0, 0, clock.IST)

func historyOf(days int, submitAt time.Duration, q quality.Status) map[clock.DayKey]streak.Record {
	h := make(map[clock.DayKey]streak.Record, days)
	today := clock.DateKey(now)
	for i := 0; i < days; i++ {
		day := clock.AddDays(today, -i)
		h[day] = streak.Record{CreatedAt: clock.Cutoff(day).Add(-submitAt), Quality: q}
	}
	return h
}

func TestHigherStreakRanksFirst(t *testing.T) {
	strong := Member{UserID: uuid.New(), History: historyOf(5, 3*time.Hour, quality.StatusGood)}
	weak := Member{UserID: uuid.New(), History: historyOf(2, 3*time.Hour, quality.StatusGood)}

	entries := Rank([]Member{weak, strong}, now)
	if entries[0].UserID != strong.UserID {
		t.Fatalf("want strong member first")
	}
	if entries[0].Rank != 1 || entries[1].Rank != 2 {
		t.Fatalf("ranks: want 1,2 got %d,%d", entries[0].Rank, entries[1].Rank)
	}
	if entries[0].CurrentStreak != 5 {
		t.Fatalf("streak: want=5 got=%d", entries[0].CurrentStreak)
	}
}

func TestEarlierSubmitterWinsTie(t *testing.T) {
	// Same streak (3) and same on-time count (4); the member whose latest
	// submission landed earlier in the day ranks higher.
	early := Member{UserID: uuid.New(), History: historyOf(5, 6*time.Hour, quality.StatusGood)}
	late := Member{UserID: uuid.New(), History: historyOf(5, 1*time.Hour, quality.StatusGood)}

	// Break streaks equally at 3 by removing day -3 from both.
	cut := clock.AddDays(clock.DateKey(now), -3)
	delete(early.History, cut)
	delete(late.History, cut)

	entries := Rank([]Member{late, early}, now)
	if entries[0].UserID != early.UserID {
		t.Fatalf("want earlier submitter first")
	}
	if entries[0].CurrentStreak != 3 || entries[1].CurrentStreak != 3 {
		t.Fatalf("setup: want equal streaks of 3, got %d and %d", entries[0].CurrentStreak, entries[1].CurrentStreak)
	}
}

func TestLowEffortSubmissionsDoNotCountOnTime(t *testing.T) {
	good := Member{UserID: uuid.New(), History: historyOf(3, 2*time.Hour, quality.StatusGood)}
	sloppy := Member{UserID: uuid.New(), History: historyOf(3, 2*time.Hour, quality.StatusLowEffort)}

	entries := Rank([]Member{sloppy, good}, now)
	if entries[0].UserID != good.UserID {
		t.Fatalf("want good-quality member first")
	}
	if entries[0].OnTimeCount30 != 3 {
		t.Fatalf("good on-time count: want=3 got=%d", entries[0].OnTimeCount30)
	}
	if entries[1].OnTimeCount30 != 0 {
		t.Fatalf("low-effort on-time count: want=0 got=%d", entries[1].OnTimeCount30)
	}
}

func TestMemberWithoutSubmissionsSortsLast(t *testing.T) {
	active := Member{UserID: uuid.New(), History: historyOf(1, 2*time.Hour, quality.StatusGood)}
	idle := Member{UserID: uuid.New(), History: map[clock.DayKey]streak.Record{}}

	entries := Rank([]Member{idle, active}, now)
	if entries[1].UserID != idle.UserID {
		t.Fatalf("want idle member last")
	}
	if entries[1].LatestSubmission != nil {
		t.Fatalf("idle member must have nil latest submission")
	}
}

func TestTwoMembersAreBothTop(t *testing.T) {
	a := Member{UserID: uuid.New(), History: historyOf(4, 2*time.Hour, quality.StatusGood)}
	b := Member{UserID: uuid.New(), History: map[clock.DayKey]streak.Record{}}

	for _, e := range Rank([]Member{a, b}, now) {
		if e.Tier != TierTop {
			t.Fatalf("with <=2 members everyone is TOP, got %s for rank %d", e.Tier, e.Rank)
		}
	}
}

func TestTierBoundaries(t *testing.T) {
	// Ten members with strictly decreasing streaks: ranks 1..10.
	members := make([]Member, 0, 10)
	for i := 0; i < 10; i++ {
		members = append(members, Member{
			UserID:  uuid.New(),
			History: historyOf(10-i, 2*time.Hour, quality.StatusGood),
		})
	}
	entries := Rank(members, now)

	wantTiers := map[int]Tier{
		1:  TierTop,        // 0.1
		2:  TierTop,        // 0.2 inclusive
		3:  TierMiddle,     // 0.3
		8:  TierMiddle,     // 0.8 inclusive
		9:  TierCatchingUp, // 0.9
		10: TierCatchingUp,
	}
	for rank, want := range wantTiers {
		if got := entries[rank-1].Tier; got != want {
			t.Fatalf("rank %d: tier want=%s got=%s", rank, want, got)
		}
	}
}

func TestRanksAreDense(t *testing.T) {
	members := []Member{
		{UserID: uuid.New(), History: historyOf(2, time.Hour, quality.StatusGood)},
		{UserID: uuid.New(), History: historyOf(2, time.Hour, quality.StatusGood)},
		{UserID: uuid.New(), History: historyOf(2, time.Hour, quality.StatusGood)},
	}
	entries := Rank(members, now)
	for i, e := range entries {
		if e.Rank != i+1 {
			t.Fatalf("rank at index %d: want=%d got=%d", i, i+1, e.Rank)
		}
	}
}
