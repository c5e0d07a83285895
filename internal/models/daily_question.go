package models

import (
	"time"

	"github.com/google/uuid"
)

// DailyQuestion is the reflection prompt shown to all members for one day,
// generated once per DayKey and cached here.
type DailyQuestion struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	DateKey   string    `gorm:"size:10;not null;uniqueIndex" json:"date_key"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	Source    string    `gorm:"size:20;default:'ai'" json:"source"`
	CreatedAt time.Time `json:"created_at"`
}
