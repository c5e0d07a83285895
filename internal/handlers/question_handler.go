package handlers

import (
	"time"

	"github.com/CoderKavin/ibdaily-backend/internal/dto"
	"github.com/CoderKavin/ibdaily-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type QuestionHandler struct {
	questions *services.QuestionService
}

func NewQuestionHandler(questions *services.QuestionService) *QuestionHandler {
	return &QuestionHandler{questions: questions}
}

func (h *QuestionHandler) Today(c *fiber.Ctx) error {
	q, err := h.questions.Today(c.Context(), time.Now())
	if err != nil {
		return internalError(c)
	}
	return c.JSON(dto.DailyQuestionResponse{
		DateKey: q.DateKey,
		Text:    q.Text,
	})
}
