package models

import (
	"time"

	"github.com/google/uuid"
)

// NotificationPrefs holds a user's reminder settings. Quiet hours are local
// civil hours (0-23); nil disables the quiet window.
type NotificationPrefs struct {
	ID                    uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID                uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	IsEnabled             bool      `gorm:"default:true" json:"is_enabled"`
	RemindMinutesBefore   int       `gorm:"default:90" json:"remind_minutes_before_cutoff"`
	LastCallMinutesBefore int       `gorm:"default:15" json:"last_call_minutes_before_cutoff"`
	QuietHoursStart       *int      `json:"quiet_hours_start,omitempty"`
	QuietHoursEnd         *int      `json:"quiet_hours_end,omitempty"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
	User                  User      `gorm:"foreignKey:UserID" json:"-"`
}

// ReminderLog is the append-only idempotency record for sent reminders.
// Existence of a row is the only signal that a reminder of that type already
// went out today; the unique index is the sole concurrency guard.
type ReminderLog struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reminder_logs_claim" json:"user_id"`
	CohortID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reminder_logs_claim" json:"cohort_id"`
	DateKey   string    `gorm:"size:10;not null;uniqueIndex:idx_reminder_logs_claim;index" json:"date_key"`
	Type      string    `gorm:"size:20;not null;uniqueIndex:idx_reminder_logs_claim" json:"type"`
	CreatedAt time.Time `json:"created_at"`
}
