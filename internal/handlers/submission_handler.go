package handlers

import (
	"errors"
	"time"

	"github.com/CoderKavin/ibdaily-backend/internal/auth"
	"github.com/CoderKavin/ibdaily-backend/internal/dto"
	"github.com/CoderKavin/ibdaily-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type SubmissionHandler struct {
	submissions *services.SubmissionService
}

func NewSubmissionHandler(submissions *services.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{submissions: submissions}
}

func (h *SubmissionHandler) Submit(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return unauthorized(c)
	}
	cohortID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid cohort id")
	}

	var req dto.SubmitRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	resp, validation, err := h.submissions.Submit(userID, cohortID, req.Bullets, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotMember):
			return forbidden(c, err.Error())
		case errors.Is(err, services.ErrCohortLocked):
			return forbidden(c, err.Error())
		case errors.Is(err, services.ErrCohortNotFound):
			return notFound(c, err.Error())
		default:
			return internalError(c)
		}
	}
	if validation != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(validation)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *SubmissionHandler) Today(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return unauthorized(c)
	}
	cohortID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid cohort id")
	}

	sub, err := h.submissions.Today(userID, cohortID, time.Now())
	if err != nil {
		if errors.Is(err, services.ErrNoSubmission) {
			return notFound(c, err.Error())
		}
		return internalError(c)
	}
	return c.JSON(sub)
}

func (h *SubmissionHandler) Streak(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return unauthorized(c)
	}
	cohortID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid cohort id")
	}

	resp, err := h.submissions.StreakView(userID, cohortID, time.Now())
	if err != nil {
		if errors.Is(err, services.ErrNotMember) {
			return forbidden(c, err.Error())
		}
		return internalError(c)
	}
	return c.JSON(resp)
}
