package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Cohort's Status and ActivatedAt are the last persisted values; the effective
// status is always recomputed and written back lazily when it changes.
type Cohort struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string         `gorm:"not null;size:100" json:"name"`
	Status      string         `gorm:"size:20;not null;default:'TRIAL'" json:"status"`
	TrialEndsAt time.Time      `gorm:"not null" json:"trial_ends_at"`
	ActivatedAt *time.Time     `json:"activated_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// CohortMembership joins a user to a cohort. BestStreak and BestRank are
// monotonic ratchets: updated only to a strictly better value, by the streak
// and leaderboard call sites, never decreased.
type CohortMembership struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CohortID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_memberships_cohort_user" json:"cohort_id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_memberships_cohort_user" json:"user_id"`
	Role       string    `gorm:"size:20;default:'member'" json:"role"`
	BestStreak int       `gorm:"default:0" json:"best_streak"`
	BestRank   *int      `json:"best_rank,omitempty"`
	JoinedAt   time.Time `gorm:"not null" json:"joined_at"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Cohort     Cohort    `gorm:"foreignKey:CohortID" json:"-"`
	User       User      `gorm:"foreignKey:UserID" json:"-"`
}
