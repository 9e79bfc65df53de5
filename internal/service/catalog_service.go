package service

import (
	"context"

	"pokesoul/internal/adapter/pokeapi"
	"pokesoul/internal/domain"
	"pokesoul/internal/dto"
	"pokesoul/internal/logger"
	"pokesoul/internal/util"

	"go.uber.org/zap"
)

// CatalogService defines the interface for the Pokemon candidate catalog.
type CatalogService interface {
	// GetPokemonByName looks up a candidate case-insensitively.
	GetPokemonByName(ctx context.Context, name string) (*dto.PokemonResponse, error)

	// ImportPokemon fetches one Pokemon from the external data source,
	// normalizes it and upserts it into the catalog. Returns the stored name.
	ImportPokemon(ctx context.Context, nameOrID string) (string, error)
}

// catalogService implements CatalogService
type catalogService struct {
	pokemons domain.PokemonRepository
	client   *pokeapi.Client
}

// NewCatalogService creates a new instance of catalogService
func NewCatalogService(pokemons domain.PokemonRepository, client *pokeapi.Client) CatalogService {
	return &catalogService{
		pokemons: pokemons,
		client:   client,
	}
}

// GetPokemonByName implements CatalogService
func (s *catalogService) GetPokemonByName(ctx context.Context, name string) (*dto.PokemonResponse, error) {
	pokemon, err := s.pokemons.GetByName(ctx, name)
	if err != nil {
		return nil, domain.NewInternalError("Failed to look up pokemon", err)
	}
	if pokemon == nil {
		return nil, domain.NewPokemonNotFoundError(name)
	}
	response := toPokemonResponse(pokemon)
	return &response, nil
}

// ImportPokemon implements CatalogService
func (s *catalogService) ImportPokemon(ctx context.Context, nameOrID string) (string, error) {
	raw, err := s.client.GetPokemon(ctx, nameOrID)
	if err != nil {
		return "", domain.NewInternalError("Failed to fetch pokemon from data source", err)
	}

	pokemon := toDomainFromRaw(raw)

	// Keep the id stable across re-imports of an existing candidate.
	existing, err := s.pokemons.GetByName(ctx, pokemon.Name)
	if err != nil {
		return "", domain.NewInternalError("Failed to look up pokemon", err)
	}
	if existing != nil {
		pokemon.ID = existing.ID
		pokemon.CreatedAt = existing.CreatedAt
	} else {
		pokemon.ID = util.NewULID()
	}

	if err := pokemon.Validate(); err != nil {
		return "", err
	}
	if err := s.pokemons.Save(ctx, pokemon); err != nil {
		return "", domain.NewInternalError("Failed to save pokemon", err)
	}

	logger.Get().Info("Imported pokemon",
		zap.String("name", pokemon.Name),
		zap.Int("popularity", pokemon.PopularityScore),
	)
	return pokemon.Name, nil
}

// toDomainFromRaw maps a normalized external record to the catalog model.
func toDomainFromRaw(raw *pokeapi.RawPokemon) *domain.Pokemon {
	pokemon := domain.NewPokemon(raw.Name)
	pokemon.Types = raw.Types
	pokemon.Color = raw.Color
	pokemon.Habitat = raw.Habitat
	pokemon.Abilities = raw.Abilities
	pokemon.FlavorText = raw.FlavorText
	pokemon.HP = raw.Stats["hp"]
	pokemon.Attack = raw.Stats["attack"]
	pokemon.Defense = raw.Stats["defense"]
	pokemon.SpecialAttack = raw.Stats["special-attack"]
	pokemon.SpecialDefense = raw.Stats["special-defense"]
	pokemon.Speed = raw.Stats["speed"]
	pokemon.PopularityScore = estimatePopularity(raw)
	pokemon.ImageURL = raw.ImageURL
	pokemon.CriesURL = raw.CriesURL
	return pokemon
}

// estimatePopularity derives an iteration-order hint from appearance counts.
// Moves are heavily down-weighted so a large movepool does not dominate.
func estimatePopularity(raw *pokeapi.RawPokemon) int {
	return raw.GameIndices + raw.HeldItems + raw.Moves/10
}
