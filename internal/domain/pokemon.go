package domain

import (
	"context"
	"time"
)

// Pokemon represents a catalog candidate the matching engine scores against.
// Records are created and updated by the ingestion job; the matching engine
// only ever reads them.
type Pokemon struct {
	ID         string
	Name       string
	Types      []string
	Color      string
	Habitat    string
	Abilities  []string
	FlavorText string

	HP             int
	Attack         int
	Defense        int
	SpecialAttack  int
	SpecialDefense int
	Speed          int

	// PopularityScore is only an iteration-order hint, never a scoring factor.
	PopularityScore int

	ImageURL string
	CriesURL string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewPokemon creates a new Pokemon instance
func NewPokemon(name string) *Pokemon {
	now := time.Now()
	return &Pokemon{
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate validates the pokemon
func (p *Pokemon) Validate() error {
	if p.Name == "" {
		return NewInvalidInputError("pokemon name is required")
	}
	return nil
}

// Stat returns the base stat value for a canonical stat name
// (hp, attack, defense, special-attack, special-defense, speed).
// Unknown names return 0.
func (p *Pokemon) Stat(name string) int {
	switch name {
	case "hp":
		return p.HP
	case "attack":
		return p.Attack
	case "defense":
		return p.Defense
	case "special-attack":
		return p.SpecialAttack
	case "special-defense":
		return p.SpecialDefense
	case "speed":
		return p.Speed
	default:
		return 0
	}
}

// PokemonRepository defines the port for the Pokemon candidate store.
type PokemonRepository interface {
	// GetAllOrderedByPopularity returns all candidates, popularity descending,
	// name ascending as a stable secondary order.
	GetAllOrderedByPopularity(ctx context.Context) ([]*Pokemon, error)

	// GetByID returns nil, nil when no candidate exists for the id.
	GetByID(ctx context.Context, id string) (*Pokemon, error)

	// GetByName performs a case-insensitive lookup; nil, nil when absent.
	GetByName(ctx context.Context, name string) (*Pokemon, error)

	// Save upserts a candidate by name. Only the ingestion job writes.
	Save(ctx context.Context, pokemon *Pokemon) error
}
