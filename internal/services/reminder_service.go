package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/CoderKavin/ibdaily-backend/internal/clock"
	"github.com/CoderKavin/ibdaily-backend/internal/dto"
	"github.com/CoderKavin/ibdaily-backend/internal/models"
	"github.com/CoderKavin/ibdaily-backend/internal/reminder"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReminderService struct {
	db      *gorm.DB
	cohorts *CohortService
	mailer  *Mailer
}

func NewReminderService(db *gorm.DB, cohorts *CohortService, mailer *Mailer) *ReminderService {
	return &ReminderService{db: db, cohorts: cohorts, mailer: mailer}
}

// Prefs returns the user's reminder settings, falling back to defaults when
// no row exists yet.
func (s *ReminderService) Prefs(userID uuid.UUID) (*models.NotificationPrefs, error) {
	var p models.NotificationPrefs
	err := s.db.Where("user_id = ?", userID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		d := reminder.DefaultPrefs()
		return &models.NotificationPrefs{
			UserID:                userID,
			IsEnabled:             d.Enabled,
			RemindMinutesBefore:   d.RemindMinutes,
			LastCallMinutesBefore: d.LastCallMinutes,
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load prefs: %w", err)
	}
	return &p, nil
}

// UpdatePrefs applies a partial update, creating the row on first use.
func (s *ReminderService) UpdatePrefs(userID uuid.UUID, req dto.PrefsRequest) (*models.NotificationPrefs, error) {
	var p models.NotificationPrefs
	err := s.db.Where("user_id = ?", userID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		d := reminder.DefaultPrefs()
		p = models.NotificationPrefs{
			ID:                    uuid.New(),
			UserID:                userID,
			IsEnabled:             d.Enabled,
			RemindMinutesBefore:   d.RemindMinutes,
			LastCallMinutesBefore: d.LastCallMinutes,
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to load prefs: %w", err)
	}

	if req.IsEnabled != nil {
		p.IsEnabled = *req.IsEnabled
	}
	if req.RemindMinutesBefore != nil {
		p.RemindMinutesBefore = *req.RemindMinutesBefore
	}
	if req.LastCallMinutesBefore != nil {
		p.LastCallMinutesBefore = *req.LastCallMinutesBefore
	}
	if req.ClearQuietHours {
		p.QuietHoursStart = nil
		p.QuietHoursEnd = nil
	} else {
		if req.QuietHoursStart != nil {
			p.QuietHoursStart = req.QuietHoursStart
		}
		if req.QuietHoursEnd != nil {
			p.QuietHoursEnd = req.QuietHoursEnd
		}
	}

	if err := s.db.Save(&p).Error; err != nil {
		return nil, fmt.Errorf("failed to save prefs: %w", err)
	}
	return &p, nil
}

// RunOnce walks every member of every submittable cohort and sends whatever
// reminder is due right now. Safe to call from overlapping ticks: the claim
// row is inserted before the mail goes out, so a duplicate tick loses the
// insert and skips the send.
func (s *ReminderService) RunOnce(now time.Time) {
	cohortIDs, err := s.cohorts.ActiveCohortIDs(now)
	if err != nil {
		slog.Error("reminder sweep failed to list cohorts", "error", err)
		return
	}

	today := clock.DateKey(now)
	for _, cohortID := range cohortIDs {
		members, err := s.cohorts.Memberships(cohortID)
		if err != nil {
			slog.Error("reminder sweep failed to list members", "cohort_id", cohortID, "error", err)
			continue
		}
		for _, m := range members {
			s.process(m.UserID, cohortID, today, now)
		}
	}
}

func (s *ReminderService) process(userID, cohortID uuid.UUID, today clock.DayKey, now time.Time) {
	prefs, err := s.Prefs(userID)
	if err != nil {
		slog.Error("reminder sweep failed to load prefs", "user_id", userID, "error", err)
		return
	}

	var submitted int64
	s.db.Model(&models.Submission{}).
		Where("user_id = ? AND cohort_id = ? AND date_key = ?", userID, cohortID, string(today)).
		Count(&submitted)

	sent, err := s.sentToday(userID, cohortID, today)
	if err != nil {
		slog.Error("reminder sweep failed to load log", "user_id", userID, "error", err)
		return
	}

	kind := reminder.Decide(reminder.Input{
		HasSubmittedToday: submitted > 0,
		Prefs: reminder.Prefs{
			Enabled:         prefs.IsEnabled,
			RemindMinutes:   prefs.RemindMinutesBefore,
			LastCallMinutes: prefs.LastCallMinutesBefore,
			QuietHoursStart: prefs.QuietHoursStart,
			QuietHoursEnd:   prefs.QuietHoursEnd,
		},
		AlreadySent: sent,
		Now:         now,
	})
	if kind == "" {
		return
	}

	claimed, err := s.tryClaim(userID, cohortID, today, kind)
	if err != nil {
		slog.Error("reminder claim failed", "user_id", userID, "type", kind, "error", err)
		return
	}
	if !claimed {
		return
	}

	if err := s.send(userID, kind, now); err != nil {
		// The claim stays; we deliberately do not retry a failed send
		// within the same day rather than risk double-delivery.
		slog.Error("reminder send failed", "user_id", userID, "type", kind, "error", err)
		return
	}
	slog.Info("reminder sent", "user_id", userID, "cohort_id", cohortID, "type", kind)
}

func (s *ReminderService) sentToday(userID, cohortID uuid.UUID, today clock.DayKey) (map[reminder.Type]bool, error) {
	var logs []models.ReminderLog
	err := s.db.
		Where("user_id = ? AND cohort_id = ? AND date_key = ?", userID, cohortID, string(today)).
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	sent := make(map[reminder.Type]bool, len(logs))
	for _, l := range logs {
		sent[reminder.Type(l.Type)] = true
	}
	return sent, nil
}

// tryClaim inserts the idempotency row; ON CONFLICT DO NOTHING means exactly
// one caller wins per (user, cohort, day, type).
func (s *ReminderService) tryClaim(userID, cohortID uuid.UUID, today clock.DayKey, kind reminder.Type) (bool, error) {
	log := models.ReminderLog{
		ID:       uuid.New(),
		UserID:   userID,
		CohortID: cohortID,
		DateKey:  string(today),
		Type:     string(kind),
	}
	result := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&log)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (s *ReminderService) send(userID uuid.UUID, kind reminder.Type, now time.Time) error {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}

	cutoff := clock.Cutoff(clock.DateKey(now)).In(clock.IST)
	var subject, body string
	switch kind {
	case reminder.TypeLastCall:
		subject = "Last call: log today's study before 9 PM"
		body = fmt.Sprintf("Hi %s,\n\nYour daily check-in closes at %s. A couple of bullets is all it takes to keep your streak alive.\n", user.Name, cutoff.Format("3:04 PM"))
	default:
		subject = "Reminder: log today's study"
		body = fmt.Sprintf("Hi %s,\n\nYou haven't checked in yet today. The cutoff is %s - don't let the streak slip.\n", user.Name, cutoff.Format("3:04 PM"))
	}
	return s.mailer.Send(user.Email, subject, body)
}

// StartScheduler sweeps on a fixed interval until ctx is cancelled.
func (s *ReminderService) StartScheduler(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.RunOnce(time.Now())
			}
		}
	}()
}
