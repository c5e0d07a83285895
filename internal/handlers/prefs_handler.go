package handlers

import (
	"github.com/CoderKavin/ibdaily-backend/internal/auth"
	"github.com/CoderKavin/ibdaily-backend/internal/dto"
	"github.com/CoderKavin/ibdaily-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type PrefsHandler struct {
	reminders *services.ReminderService
}

func NewPrefsHandler(reminders *services.ReminderService) *PrefsHandler {
	return &PrefsHandler{reminders: reminders}
}

func (h *PrefsHandler) Get(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	prefs, err := h.reminders.Prefs(userID)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(prefs)
}

func (h *PrefsHandler) Update(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.PrefsRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := validatePrefs(&req); err != nil {
		return badRequest(c, err.Error())
	}

	prefs, err := h.reminders.UpdatePrefs(userID, req)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(prefs)
}

func validatePrefs(req *dto.PrefsRequest) error {
	if req.RemindMinutesBefore != nil && *req.RemindMinutesBefore <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "remind_minutes_before_cutoff must be positive")
	}
	if req.LastCallMinutesBefore != nil && *req.LastCallMinutesBefore <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "last_call_minutes_before_cutoff must be positive")
	}
	for _, h := range []*int{req.QuietHoursStart, req.QuietHoursEnd} {
		if h != nil && (*h < 0 || *h > 23) {
			return fiber.NewError(fiber.StatusBadRequest, "quiet hours must be between 0 and 23")
		}
	}
	return nil
}
