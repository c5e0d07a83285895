package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/CoderKavin/ibdaily-backend/internal/cohort"
	"github.com/CoderKavin/ibdaily-backend/internal/dto"
	"github.com/CoderKavin/ibdaily-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrCohortNotFound = errors.New("cohort not found")
	ErrNotMember      = errors.New("not a member of this cohort")
	ErrAlreadyMember  = errors.New("already a member of this cohort")
)

type CohortService struct {
	db   *gorm.DB
	subs *SubscriptionService
}

func NewCohortService(db *gorm.DB, subs *SubscriptionService) *CohortService {
	return &CohortService{db: db, subs: subs}
}

// Create starts a cohort in trial and enrolls the creator as owner.
func (s *CohortService) Create(name string, ownerID uuid.UUID, now time.Time) (*models.Cohort, error) {
	if name == "" {
		return nil, errors.New("cohort name is required")
	}

	c := models.Cohort{
		ID:          uuid.New(),
		Name:        name,
		Status:      string(cohort.StatusTrial),
		TrialEndsAt: cohort.TrialEndDate(now),
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&c).Error; err != nil {
			return err
		}
		membership := models.CohortMembership{
			ID:       uuid.New(),
			CohortID: c.ID,
			UserID:   ownerID,
			Role:     "owner",
			JoinedAt: now,
		}
		return tx.Create(&membership).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create cohort: %w", err)
	}
	return &c, nil
}

// Join enrolls a user; the unique (cohort, user) index guards double joins.
func (s *CohortService) Join(cohortID, userID uuid.UUID, now time.Time) error {
	var c models.Cohort
	if err := s.db.First(&c, "id = ?", cohortID).Error; err != nil {
		return ErrCohortNotFound
	}

	membership := models.CohortMembership{
		ID:       uuid.New(),
		CohortID: cohortID,
		UserID:   userID,
		Role:     "member",
		JoinedAt: now,
	}
	result := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&membership)
	if result.Error != nil {
		return fmt.Errorf("failed to join cohort: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrAlreadyMember
	}
	return nil
}

// Membership fetches a user's membership or ErrNotMember.
func (s *CohortService) Membership(cohortID, userID uuid.UUID) (*models.CohortMembership, error) {
	var m models.CohortMembership
	err := s.db.Where("cohort_id = ? AND user_id = ?", cohortID, userID).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotMember
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load membership: %w", err)
	}
	return &m, nil
}

// Memberships lists all members of a cohort.
func (s *CohortService) Memberships(cohortID uuid.UUID) ([]models.CohortMembership, error) {
	var members []models.CohortMembership
	if err := s.db.Where("cohort_id = ?", cohortID).Find(&members).Error; err != nil {
		return nil, fmt.Errorf("failed to load members: %w", err)
	}
	return members, nil
}

// Status recomputes the effective cohort status from current facts and lazily
// writes it back when it differs from the persisted value. The persisted row
// is a write-back cache, not the source of truth.
func (s *CohortService) Status(cohortID uuid.UUID, now time.Time) (*dto.CohortStatusResponse, error) {
	var c models.Cohort
	if err := s.db.First(&c, "id = ?", cohortID).Error; err != nil {
		return nil, ErrCohortNotFound
	}

	var memberCount int64
	s.db.Model(&models.CohortMembership{}).Where("cohort_id = ?", cohortID).Count(&memberCount)

	paidCount, err := s.subs.PaidCount(cohortID, now)
	if err != nil {
		return nil, err
	}

	info := cohort.ComputeStatus(cohort.StatusInput{
		Current:     cohort.Status(c.Status),
		TrialEndsAt: c.TrialEndsAt,
		ActivatedAt: c.ActivatedAt,
		PaidCount:   paidCount,
		MemberCount: int(memberCount),
		Now:         now,
	})

	if string(info.Status) != c.Status {
		updates := map[string]interface{}{"status": string(info.Status)}
		if info.JustActivated && c.ActivatedAt == nil {
			updates["activated_at"] = now
		}
		// Lost updates are harmless: the transition is idempotent and the
		// next recomputation converges.
		if err := s.db.Model(&c).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to persist cohort status: %w", err)
		}
	}

	return &dto.CohortStatusResponse{
		ID:                    c.ID,
		Name:                  c.Name,
		Status:                string(info.Status),
		CanSubmit:             info.CanSubmit,
		IsTrialExpired:        info.IsTrialExpired,
		DaysUntilTrialEnd:     info.DaysUntilTrialEnd,
		ShowActivationCounter: info.ShowActivationCounter,
		ActivationCounterText: cohort.ActivationCounterText(paidCount),
		PaidCount:             paidCount,
		MemberCount:           int(memberCount),
	}, nil
}

// CanSubmit is the narrow check the submission path needs.
func (s *CohortService) CanSubmit(cohortID uuid.UUID, now time.Time) (bool, error) {
	status, err := s.Status(cohortID, now)
	if err != nil {
		return false, err
	}
	return status.CanSubmit, nil
}

// ActiveCohortIDs returns cohorts currently accepting submissions, used by the
// reminder loop. The paid count feeds the recomputation here too: a cohort
// whose persisted row still says TRIAL but which has enough paid seats must
// count as active even if nobody has hit the status endpoint since.
func (s *CohortService) ActiveCohortIDs(now time.Time) ([]uuid.UUID, error) {
	var cohorts []models.Cohort
	if err := s.db.Find(&cohorts).Error; err != nil {
		return nil, fmt.Errorf("failed to load cohorts: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(cohorts))
	for _, c := range cohorts {
		paidCount, err := s.subs.PaidCount(c.ID, now)
		if err != nil {
			return nil, err
		}
		info := cohort.ComputeStatus(cohort.StatusInput{
			Current:     cohort.Status(c.Status),
			TrialEndsAt: c.TrialEndsAt,
			ActivatedAt: c.ActivatedAt,
			PaidCount:   paidCount,
			Now:         now,
		})
		if info.CanSubmit {
			ids = append(ids, c.ID)
		}
	}
	return ids, nil
}
