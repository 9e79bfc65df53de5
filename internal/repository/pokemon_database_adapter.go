package repository

import (
	"context"
	"database/sql"
	"fmt"
	"pokesoul/internal/domain"
	"pokesoul/internal/repository/models"
	"pokesoul/internal/util"
	"time"

	"github.com/jmoiron/sqlx"
)

const pokemonColumns = `
	id, name, types, color, habitat, abilities, flavor_text,
	hp, attack, defense, special_attack, special_defense, speed,
	popularity_score, image_url, cries_url, created_at, updated_at`

// PokemonDatabaseAdapter implements domain.PokemonRepository using sqlx.DB
type PokemonDatabaseAdapter struct {
	db *sqlx.DB
}

// NewPokemonDatabaseAdapter creates a new instance of PokemonDatabaseAdapter
func NewPokemonDatabaseAdapter(db *sqlx.DB) domain.PokemonRepository {
	return &PokemonDatabaseAdapter{db: db}
}

func toDomainPokemon(m *models.Pokemon) *domain.Pokemon {
	if m == nil {
		return nil
	}
	return &domain.Pokemon{
		ID:              m.ID,
		Name:            m.Name,
		Types:           m.Types,
		Color:           m.Color.String,
		Habitat:         m.Habitat.String,
		Abilities:       m.Abilities,
		FlavorText:      m.FlavorText.String,
		HP:              m.HP,
		Attack:          m.Attack,
		Defense:         m.Defense,
		SpecialAttack:   m.SpecialAttack,
		SpecialDefense:  m.SpecialDefense,
		Speed:           m.Speed,
		PopularityScore: m.PopularityScore,
		ImageURL:        m.ImageURL.String,
		CriesURL:        m.CriesURL.String,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func toModelPokemon(p *domain.Pokemon) *models.Pokemon {
	if p == nil {
		return nil
	}
	return &models.Pokemon{
		ID:              p.ID,
		Name:            p.Name,
		Types:           models.StringSlice(p.Types),
		Color:           util.StringToNullString(p.Color),
		Habitat:         util.StringToNullString(p.Habitat),
		Abilities:       models.StringSlice(p.Abilities),
		FlavorText:      util.StringToNullString(p.FlavorText),
		HP:              p.HP,
		Attack:          p.Attack,
		Defense:         p.Defense,
		SpecialAttack:   p.SpecialAttack,
		SpecialDefense:  p.SpecialDefense,
		Speed:           p.Speed,
		PopularityScore: p.PopularityScore,
		ImageURL:        util.StringToNullString(p.ImageURL),
		CriesURL:        util.StringToNullString(p.CriesURL),
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

// GetAllOrderedByPopularity implements domain.PokemonRepository
func (a *PokemonDatabaseAdapter) GetAllOrderedByPopularity(ctx context.Context) ([]*domain.Pokemon, error) {
	query := `SELECT` + pokemonColumns + `
	FROM pokemons
	ORDER BY popularity_score DESC, name ASC`

	var modelPokemons []models.Pokemon
	if err := a.db.SelectContext(ctx, &modelPokemons, query); err != nil {
		return nil, fmt.Errorf("failed to get pokemons: %w", err)
	}

	pokemons := make([]*domain.Pokemon, 0, len(modelPokemons))
	for i := range modelPokemons {
		pokemons = append(pokemons, toDomainPokemon(&modelPokemons[i]))
	}
	return pokemons, nil
}

// GetByID implements domain.PokemonRepository
func (a *PokemonDatabaseAdapter) GetByID(ctx context.Context, id string) (*domain.Pokemon, error) {
	query := `SELECT` + pokemonColumns + `
	FROM pokemons
	WHERE id = $1`

	var modelPokemon models.Pokemon
	err := a.db.GetContext(ctx, &modelPokemon, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get pokemon by ID %s: %w", id, err)
	}
	return toDomainPokemon(&modelPokemon), nil
}

// GetByName implements domain.PokemonRepository with a case-insensitive lookup.
func (a *PokemonDatabaseAdapter) GetByName(ctx context.Context, name string) (*domain.Pokemon, error) {
	query := `SELECT` + pokemonColumns + `
	FROM pokemons
	WHERE LOWER(name) = LOWER($1)`

	var modelPokemon models.Pokemon
	err := a.db.GetContext(ctx, &modelPokemon, query, name)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get pokemon by name %s: %w", name, err)
	}
	return toDomainPokemon(&modelPokemon), nil
}

// Save implements domain.PokemonRepository. Candidates are upserted by name
// so the ingestion job can be re-run without duplicating the catalog.
func (a *PokemonDatabaseAdapter) Save(ctx context.Context, pokemon *domain.Pokemon) error {
	if err := pokemon.Validate(); err != nil {
		return err
	}

	modelPokemon := toModelPokemon(pokemon)
	if modelPokemon.ID == "" {
		modelPokemon.ID = util.NewULID()
	}
	now := time.Now()
	if modelPokemon.CreatedAt.IsZero() {
		modelPokemon.CreatedAt = now
	}
	modelPokemon.UpdatedAt = now

	query := `INSERT INTO pokemons (
		id, name, types, color, habitat, abilities, flavor_text,
		hp, attack, defense, special_attack, special_defense, speed,
		popularity_score, image_url, cries_url, created_at, updated_at
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18
	)
	ON CONFLICT (name) DO UPDATE SET
		types = EXCLUDED.types,
		color = EXCLUDED.color,
		habitat = EXCLUDED.habitat,
		abilities = EXCLUDED.abilities,
		flavor_text = EXCLUDED.flavor_text,
		hp = EXCLUDED.hp,
		attack = EXCLUDED.attack,
		defense = EXCLUDED.defense,
		special_attack = EXCLUDED.special_attack,
		special_defense = EXCLUDED.special_defense,
		speed = EXCLUDED.speed,
		popularity_score = EXCLUDED.popularity_score,
		image_url = EXCLUDED.image_url,
		cries_url = EXCLUDED.cries_url,
		updated_at = EXCLUDED.updated_at`

	_, err := a.db.ExecContext(ctx, query,
		modelPokemon.ID,
		modelPokemon.Name,
		modelPokemon.Types,
		modelPokemon.Color,
		modelPokemon.Habitat,
		modelPokemon.Abilities,
		modelPokemon.FlavorText,
		modelPokemon.HP,
		modelPokemon.Attack,
		modelPokemon.Defense,
		modelPokemon.SpecialAttack,
		modelPokemon.SpecialDefense,
		modelPokemon.Speed,
		modelPokemon.PopularityScore,
		modelPokemon.ImageURL,
		modelPokemon.CriesURL,
		modelPokemon.CreatedAt,
		modelPokemon.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save pokemon %s: %w", pokemon.Name, err)
	}

	pokemon.ID = modelPokemon.ID
	pokemon.CreatedAt = modelPokemon.CreatedAt
	pokemon.UpdatedAt = modelPokemon.UpdatedAt
	return nil
}
