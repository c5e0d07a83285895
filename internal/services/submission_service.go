package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/CoderKavin/ibdaily-backend/internal/cache"
	"github.com/CoderKavin/ibdaily-backend/internal/clock"
	"github.com/CoderKavin/ibdaily-backend/internal/dto"
	"github.com/CoderKavin/ibdaily-backend/internal/models"
	"github.com/CoderKavin/ibdaily-backend/internal/quality"
	"github.com/CoderKavin/ibdaily-backend/internal/streak"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrCohortLocked = errors.New("cohort is locked")
	ErrNoSubmission = errors.New("no submission for this day")
)

type SubmissionService struct {
	db        *gorm.DB
	cohorts   *CohortService
	cache     *cache.Cache
	sanitizer *bluemonday.Policy
}

func NewSubmissionService(db *gorm.DB, cohorts *CohortService, c *cache.Cache) *SubmissionService {
	return &SubmissionService{
		db:        db,
		cohorts:   cohorts,
		cache:     c,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// Submit records today's bullets for a user in a cohort. Resubmitting the same
// day replaces the earlier entry, including its created_at, so a late rewrite
// of an on-time submission counts as late.
func (s *SubmissionService) Submit(userID, cohortID uuid.UUID, bullets []string, now time.Time) (*dto.SubmitResponse, *dto.ValidationErrorResponse, error) {
	if _, err := s.cohorts.Membership(cohortID, userID); err != nil {
		return nil, nil, err
	}

	canSubmit, err := s.cohorts.CanSubmit(cohortID, now)
	if err != nil {
		return nil, nil, err
	}
	if !canSubmit {
		return nil, nil, ErrCohortLocked
	}

	clean := make([]string, len(bullets))
	for i, b := range bullets {
		clean[i] = strings.TrimSpace(s.sanitizer.Sanitize(b))
	}

	today := clock.DateKey(now)
	prevBullets, err := s.bulletsFor(userID, cohortID, clock.AddDays(today, -1))
	if err != nil {
		return nil, nil, err
	}

	result := quality.Check(clean, prevBullets)
	if len(result.ValidationErrors) > 0 {
		return nil, &dto.ValidationErrorResponse{
			Error:            true,
			Message:          "submission did not meet the format requirements",
			ValidationErrors: result.ValidationErrors,
		}, nil
	}

	raw, err := json.Marshal(clean)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode bullets: %w", err)
	}

	sub := models.Submission{
		ID:            uuid.New(),
		UserID:        userID,
		CohortID:      cohortID,
		DateKey:       string(today),
		Bullets:       datatypes.JSON(raw),
		QualityStatus: string(result.Status),
		CreatedAt:     now,
	}
	err = s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "cohort_id"}, {Name: "date_key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"bullets":        sub.Bullets,
			"quality_status": sub.QualityStatus,
			"created_at":     now,
		}),
	}).Create(&sub).Error
	if err != nil {
		return nil, nil, fmt.Errorf("failed to save submission: %w", err)
	}

	current, err := s.CurrentStreak(userID, cohortID, now)
	if err != nil {
		return nil, nil, err
	}
	s.ratchetBestStreak(userID, cohortID, current)
	s.invalidateLeaderboard(cohortID)

	return &dto.SubmitResponse{
		ID:            sub.ID,
		DateKey:       string(today),
		Bullets:       clean,
		QualityStatus: string(result.Status),
		Reasons:       result.Reasons,
		OnTime:        clock.OnTime(now, today),
		Streak:        current,
		CreatedAt:     now,
	}, nil, nil
}

// History loads all of a member's submissions in the cohort keyed by civil
// day. Days with no row are simply absent. The streak walks arbitrarily far
// back, so no date window is applied here; windowing belongs to the
// leaderboard and calendar views.
func (s *SubmissionService) History(userID, cohortID uuid.UUID) (map[clock.DayKey]streak.Record, error) {
	var rows []models.Submission
	err := s.db.
		Where("user_id = ? AND cohort_id = ?", userID, cohortID).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load submissions: %w", err)
	}

	history := make(map[clock.DayKey]streak.Record, len(rows))
	for _, r := range rows {
		history[clock.DayKey(r.DateKey)] = streak.Record{
			CreatedAt: r.CreatedAt,
			Quality:   quality.Status(r.QualityStatus),
		}
	}
	return history, nil
}

// CurrentStreak recomputes the streak from stored submissions.
func (s *SubmissionService) CurrentStreak(userID, cohortID uuid.UUID, now time.Time) (int, error) {
	history, err := s.History(userID, cohortID)
	if err != nil {
		return 0, err
	}
	return streak.Current(history, now), nil
}

// StreakView assembles the streak screen: current streak, the monotonic best,
// and the 30-day calendar.
func (s *SubmissionService) StreakView(userID, cohortID uuid.UUID, now time.Time) (*dto.StreakResponse, error) {
	m, err := s.cohorts.Membership(cohortID, userID)
	if err != nil {
		return nil, err
	}

	history, err := s.History(userID, cohortID)
	if err != nil {
		return nil, err
	}
	current := streak.Current(history, now)
	s.ratchetBestStreak(userID, cohortID, current)

	best := m.BestStreak
	if current > best {
		best = current
	}
	return &dto.StreakResponse{
		Streak:     current,
		BestStreak: best,
		Calendar:   streak.Calendar(history, now, streak.CalendarDays),
	}, nil
}

// Today returns the user's submission for the current civil day, if any.
func (s *SubmissionService) Today(userID, cohortID uuid.UUID, now time.Time) (*models.Submission, error) {
	var sub models.Submission
	err := s.db.
		Where("user_id = ? AND cohort_id = ? AND date_key = ?", userID, cohortID, string(clock.DateKey(now))).
		First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoSubmission
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load submission: %w", err)
	}
	return &sub, nil
}

func (s *SubmissionService) bulletsFor(userID, cohortID uuid.UUID, day clock.DayKey) ([]string, error) {
	var sub models.Submission
	err := s.db.
		Where("user_id = ? AND cohort_id = ? AND date_key = ?", userID, cohortID, string(day)).
		First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load previous submission: %w", err)
	}

	var bullets []string
	if err := json.Unmarshal(sub.Bullets, &bullets); err != nil {
		return nil, fmt.Errorf("failed to decode bullets: %w", err)
	}
	return bullets, nil
}

// ratchetBestStreak bumps the stored best only when the new value beats it.
// The guarded UPDATE makes concurrent bumps safe without a transaction.
func (s *SubmissionService) ratchetBestStreak(userID, cohortID uuid.UUID, current int) {
	s.db.Model(&models.CohortMembership{}).
		Where("cohort_id = ? AND user_id = ? AND best_streak < ?", cohortID, userID, current).
		Update("best_streak", current)
}

func (s *SubmissionService) invalidateLeaderboard(cohortID uuid.UUID) {
	if s.cache != nil {
		s.cache.Delete(leaderboardCacheKey(cohortID))
	}
}
