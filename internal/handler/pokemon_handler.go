package handler

import (
	"pokesoul/internal/domain"
	"pokesoul/internal/service"

	"github.com/gofiber/fiber/v2"
)

// PokemonHandler handles catalog-related HTTP requests
type PokemonHandler struct {
	service service.CatalogService
}

// NewPokemonHandler creates a new PokemonHandler instance
func NewPokemonHandler(service service.CatalogService) *PokemonHandler {
	return &PokemonHandler{
		service: service,
	}
}

// GetPokemonByName handles GET /api/pokemons/:name
func (h *PokemonHandler) GetPokemonByName(c *fiber.Ctx) error {
	name := c.Params("name")
	if name == "" {
		return domain.NewInvalidInputError("pokemon name is required")
	}

	resp, err := h.service.GetPokemonByName(c.Context(), name)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
