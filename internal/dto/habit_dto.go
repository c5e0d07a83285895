package dto

import (
	"time"

	"github.com/CoderKavin/ibdaily-backend/internal/leaderboard"
	"github.com/CoderKavin/ibdaily-backend/internal/streak"
	"github.com/google/uuid"
)

type SubmitRequest struct {
	Bullets []string `json:"bullets"`
}

type SubmitResponse struct {
	ID            uuid.UUID `json:"id"`
	DateKey       string    `json:"date_key"`
	Bullets       []string  `json:"bullets"`
	QualityStatus string    `json:"quality_status"`
	Reasons       []string  `json:"reasons,omitempty"`
	OnTime        bool      `json:"on_time"`
	Streak        int       `json:"streak"`
	CreatedAt     time.Time `json:"created_at"`
}

type ValidationErrorResponse struct {
	Error            bool     `json:"error"`
	Message          string   `json:"message"`
	ValidationErrors []string `json:"validation_errors"`
}

type StreakResponse struct {
	Streak     int                  `json:"streak"`
	BestStreak int                  `json:"best_streak"`
	Calendar   []streak.CalendarDay `json:"calendar"`
}

type CreateCohortRequest struct {
	Name string `json:"name"`
}

type CohortStatusResponse struct {
	ID                    uuid.UUID `json:"id"`
	Name                  string    `json:"name"`
	Status                string    `json:"status"`
	CanSubmit             bool      `json:"can_submit"`
	IsTrialExpired        bool      `json:"is_trial_expired"`
	DaysUntilTrialEnd     int       `json:"days_until_trial_end"`
	ShowActivationCounter bool      `json:"show_activation_counter"`
	ActivationCounterText string    `json:"activation_counter_text,omitempty"`
	PaidCount             int       `json:"paid_count"`
	MemberCount           int       `json:"member_count"`
}

type LeaderboardResponse struct {
	CohortID  uuid.UUID           `json:"cohort_id"`
	Entries   []leaderboard.Entry `json:"entries"`
	FetchedAt time.Time           `json:"fetched_at"`
}

type PrefsRequest struct {
	IsEnabled             *bool `json:"is_enabled"`
	RemindMinutesBefore   *int  `json:"remind_minutes_before_cutoff"`
	LastCallMinutesBefore *int  `json:"last_call_minutes_before_cutoff"`
	QuietHoursStart       *int  `json:"quiet_hours_start"`
	QuietHoursEnd         *int  `json:"quiet_hours_end"`
	ClearQuietHours       bool  `json:"clear_quiet_hours,omitempty"`
}

type DailyQuestionResponse struct {
	DateKey string `json:"date_key"`
	Text    string `json:"text"`
}
