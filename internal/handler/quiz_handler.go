package handler

import (
	"pokesoul/internal/domain"
	"pokesoul/internal/dto"
	"pokesoul/internal/service"

	"github.com/gofiber/fiber/v2"
)

// QuizHandler handles questionnaire-related HTTP requests
type QuizHandler struct {
	service service.QuizService
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizService) *QuizHandler {
	return &QuizHandler{
		service: service,
	}
}

// GetQuestionnaire handles GET /api/questions
func (h *QuizHandler) GetQuestionnaire(c *fiber.Ctx) error {
	resp, err := h.service.GetQuestionnaire(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// SubmitAnswers handles POST /api/profiles
func (h *QuizHandler) SubmitAnswers(c *fiber.Ctx) error {
	var req dto.SubmitAnswersRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}

	resp, err := h.service.SubmitAnswers(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}
