package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Submission is one member's daily entry, unique per (user, cohort, day).
// Resubmitting on the same day upserts content and CreatedAt, which can flip
// the on-time/late classification retroactively.
type Submission struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID        uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_submissions_user_cohort_day" json:"user_id"`
	CohortID      uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_submissions_user_cohort_day;index" json:"cohort_id"`
	DateKey       string         `gorm:"size:10;not null;uniqueIndex:idx_submissions_user_cohort_day;index" json:"date_key"`
	Bullets       datatypes.JSON `gorm:"type:jsonb;not null" json:"bullets"`
	QualityStatus string         `gorm:"size:20;not null;default:'GOOD'" json:"quality_status"`
	CreatedAt     time.Time      `gorm:"not null;index" json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	User          User           `gorm:"foreignKey:UserID" json:"-"`
	Cohort        Cohort         `gorm:"foreignKey:CohortID" json:"-"`
}
