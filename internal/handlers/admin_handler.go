package handlers

import (
	"time"

	"github.com/CoderKavin/ibdaily-backend/internal/models"
	"github.com/CoderKavin/ibdaily-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AdminHandler struct {
	db        *gorm.DB
	reminders *services.ReminderService
}

func NewAdminHandler(db *gorm.DB, reminders *services.ReminderService) *AdminHandler {
	return &AdminHandler{db: db, reminders: reminders}
}

// RunReminders triggers a reminder sweep outside the scheduler, mainly for
// ops debugging. The claim table keeps it from double-sending.
func (h *AdminHandler) RunReminders(c *fiber.Ctx) error {
	h.reminders.RunOnce(time.Now())
	return c.JSON(fiber.Map{"success": true})
}

func (h *AdminHandler) ListLogs(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 100)
	if limit < 1 || limit > 1000 {
		limit = 100
	}

	var logs []models.SystemLog
	if err := h.db.Order("created_at DESC").Limit(limit).Find(&logs).Error; err != nil {
		return internalError(c)
	}
	return c.JSON(logs)
}
