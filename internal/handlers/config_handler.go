package handlers

import (
	"github.com/CoderKavin/ibdaily-backend/internal/clock"
	"github.com/CoderKavin/ibdaily-backend/internal/cohort"
	"github.com/CoderKavin/ibdaily-backend/internal/leaderboard"
	"github.com/CoderKavin/ibdaily-backend/internal/quality"
	"github.com/CoderKavin/ibdaily-backend/internal/reminder"
	"github.com/gofiber/fiber/v2"
)

type ConfigHandler struct{}

func NewConfigHandler() *ConfigHandler {
	return &ConfigHandler{}
}

// Get exposes the product rule constants read-only so clients render limits
// and copy without hardcoding them.
func (h *ConfigHandler) Get(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"deadline_hour_ist":            clock.DeadlineHour,
		"trial_days":                   cohort.TrialDays,
		"activation_threshold":         cohort.ActivationThreshold,
		"counter_visibility_threshold": cohort.CounterVisibilityThreshold,
		"min_bullets":                  quality.MinBullets,
		"max_bullets":                  quality.MaxBullets,
		"min_bullet_len":               quality.MinBulletLen,
		"max_bullet_len":               quality.MaxBulletLen,
		"similarity_threshold":         quality.SimilarityThreshold,
		"leaderboard_window_days":      leaderboard.WindowDays,
		"default_remind_minutes":       reminder.DefaultRemindMinutes,
		"default_last_call_minutes":    reminder.DefaultLastCallMinutes,
	})
}
