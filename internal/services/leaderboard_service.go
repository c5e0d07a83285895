package services

import (
	"fmt"
	"time"

	"github.com/CoderKavin/ibdaily-backend/internal/cache"
	"github.com/CoderKavin/ibdaily-backend/internal/clock"
	"github.com/CoderKavin/ibdaily-backend/internal/dto"
	"github.com/CoderKavin/ibdaily-backend/internal/leaderboard"
	"github.com/CoderKavin/ibdaily-backend/internal/models"
	"github.com/CoderKavin/ibdaily-backend/internal/quality"
	"github.com/CoderKavin/ibdaily-backend/internal/streak"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const leaderboardCacheTTL = 2 * time.Minute

func leaderboardCacheKey(cohortID uuid.UUID) string {
	return "leaderboard:" + cohortID.String()
}

type LeaderboardService struct {
	db      *gorm.DB
	cohorts *CohortService
	cache   *cache.Cache
}

func NewLeaderboardService(db *gorm.DB, cohorts *CohortService, c *cache.Cache) *LeaderboardService {
	return &LeaderboardService{db: db, cohorts: cohorts, cache: c}
}

// Get ranks a cohort over the trailing 30 days. Results are cached briefly;
// submissions invalidate the cache so fresh entries show up immediately.
func (s *LeaderboardService) Get(cohortID, viewerID uuid.UUID, now time.Time) (*dto.LeaderboardResponse, error) {
	if _, err := s.cohorts.Membership(cohortID, viewerID); err != nil {
		return nil, err
	}

	key := leaderboardCacheKey(cohortID)
	if s.cache != nil {
		var cached dto.LeaderboardResponse
		if s.cache.GetJSON(key, &cached) {
			return &cached, nil
		}
	}

	members, err := s.cohorts.Memberships(cohortID)
	if err != nil {
		return nil, err
	}

	histories, err := s.histories(cohortID, now)
	if err != nil {
		return nil, err
	}

	input := make([]leaderboard.Member, 0, len(members))
	for _, m := range members {
		input = append(input, leaderboard.Member{
			UserID:  m.UserID,
			History: histories[m.UserID],
		})
	}

	entries := leaderboard.Rank(input, now)
	s.ratchetBestRanks(cohortID, entries)

	resp := &dto.LeaderboardResponse{
		CohortID:  cohortID,
		Entries:   entries,
		FetchedAt: now,
	}
	if s.cache != nil {
		s.cache.SetJSON(key, resp, leaderboardCacheTTL)
	}
	return resp, nil
}

// histories loads every member's 30-day window in one query.
func (s *LeaderboardService) histories(cohortID uuid.UUID, now time.Time) (map[uuid.UUID]map[clock.DayKey]streak.Record, error) {
	days := clock.LastNDays(leaderboard.WindowDays, now)
	var rows []models.Submission
	err := s.db.
		Where("cohort_id = ? AND date_key >= ?", cohortID, string(days[0])).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load submissions: %w", err)
	}

	histories := make(map[uuid.UUID]map[clock.DayKey]streak.Record)
	for _, r := range rows {
		h := histories[r.UserID]
		if h == nil {
			h = make(map[clock.DayKey]streak.Record)
			histories[r.UserID] = h
		}
		h[clock.DayKey(r.DateKey)] = streak.Record{
			CreatedAt: r.CreatedAt,
			Quality:   quality.Status(r.QualityStatus),
		}
	}
	return histories, nil
}

// ratchetBestRanks records personal-best ranks. A better rank is a smaller
// number, so the guard flips relative to the streak ratchet.
func (s *LeaderboardService) ratchetBestRanks(cohortID uuid.UUID, entries []leaderboard.Entry) {
	for _, e := range entries {
		s.db.Model(&models.CohortMembership{}).
			Where("cohort_id = ? AND user_id = ? AND (best_rank IS NULL OR best_rank > ?)", cohortID, e.UserID, e.Rank).
			Update("best_rank", e.Rank)
	}
}
