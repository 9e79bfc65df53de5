package handler

import (
	"pokesoul/internal/domain"
	"pokesoul/internal/dto"
	"pokesoul/internal/logger"
	"pokesoul/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// MatchHandler handles matching-related HTTP requests
type MatchHandler struct {
	service service.MatchService
}

// NewMatchHandler creates a new MatchHandler instance
func NewMatchHandler(service service.MatchService) *MatchHandler {
	return &MatchHandler{
		service: service,
	}
}

// FindMatch handles POST /api/match
func (h *MatchHandler) FindMatch(c *fiber.Ctx) error {
	var req dto.MatchRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	if req.UserProfileID == "" {
		return domain.NewInvalidInputError("user_profile_id is required")
	}

	resp, err := h.service.FindAndSaveMatch(c.Context(), req.UserProfileID)
	if err != nil {
		logger.Get().Warn("Matching failed",
			zap.Error(err),
			zap.String("userProfileID", req.UserProfileID),
		)
		return err
	}
	return c.JSON(resp)
}

// GetMatchHistory handles GET /api/profiles/:id/results
func (h *MatchHandler) GetMatchHistory(c *fiber.Ctx) error {
	profileID := c.Params("id")
	if profileID == "" {
		return domain.NewInvalidInputError("profile id is required")
	}

	resp, err := h.service.GetMatchHistory(c.Context(), profileID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
