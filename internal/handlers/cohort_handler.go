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

type CohortHandler struct {
	cohorts *services.CohortService
}

func NewCohortHandler(cohorts *services.CohortService) *CohortHandler {
	return &CohortHandler{cohorts: cohorts}
}

func (h *CohortHandler) Create(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreateCohortRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cohort, err := h.cohorts.Create(req.Name, userID, time.Now())
	if err != nil {
		return badRequest(c, err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(cohort)
}

func (h *CohortHandler) Join(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return unauthorized(c)
	}
	cohortID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid cohort id")
	}

	if err := h.cohorts.Join(cohortID, userID, time.Now()); err != nil {
		switch {
		case errors.Is(err, services.ErrCohortNotFound):
			return notFound(c, err.Error())
		case errors.Is(err, services.ErrAlreadyMember):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		default:
			return internalError(c)
		}
	}
	return c.JSON(fiber.Map{"success": true})
}

func (h *CohortHandler) Status(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return unauthorized(c)
	}
	cohortID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid cohort id")
	}

	if _, err := h.cohorts.Membership(cohortID, userID); err != nil {
		if errors.Is(err, services.ErrNotMember) {
			return forbidden(c, err.Error())
		}
		return internalError(c)
	}

	status, err := h.cohorts.Status(cohortID, time.Now())
	if err != nil {
		if errors.Is(err, services.ErrCohortNotFound) {
			return notFound(c, err.Error())
		}
		return internalError(c)
	}
	return c.JSON(status)
}
