package handlers

import (
	"errors"
	"time"

	"github.com/CoderKavin/ibdaily-backend/internal/auth"
	"github.com/CoderKavin/ibdaily-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type LeaderboardHandler struct {
	leaderboards *services.LeaderboardService
}

func NewLeaderboardHandler(leaderboards *services.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboards: leaderboards}
}

func (h *LeaderboardHandler) Get(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return unauthorized(c)
	}
	cohortID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid cohort id")
	}

	resp, err := h.leaderboards.Get(cohortID, userID, time.Now())
	if err != nil {
		if errors.Is(err, services.ErrNotMember) {
			return forbidden(c, err.Error())
		}
		return internalError(c)
	}
	return c.JSON(resp)
}
