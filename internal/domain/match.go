package domain

import (
	"context"
	"time"
)

// UserPreferences is the structured preference set extracted from an answer
// record. Lists are de-duplicated with insertion order preserved; stat
// preferences tally how often each stat was chosen. Built fresh per matching
// run and never persisted.
type UserPreferences struct {
	Types           []string
	Colors          []string
	Habitats        []string
	Abilities       []string
	PersonalityTags []string
	StatPreferences map[string]int
}

// NewUserPreferences returns an empty preference set.
func NewUserPreferences() *UserPreferences {
	return &UserPreferences{
		Types:           []string{},
		Colors:          []string{},
		Habitats:        []string{},
		Abilities:       []string{},
		PersonalityTags: []string{},
		StatPreferences: map[string]int{},
	}
}

// MatchProfile is the matching-ready projection of a preference set. The
// derived archetype is always the last entry of PersonalityTags.
type MatchProfile struct {
	Types           []string
	Color           string
	Habitat         string
	AbilityKeywords []string
	PersonalityTags []string
	StatPreferences map[string]int
}

// MatchResult records the winner of one matching run. Rows are append-only:
// every rerun creates a new row, prior rows are never updated or deleted.
type MatchResult struct {
	ID            string
	UserProfileID string
	PokemonID     string
	TotalScore    float64
	CreatedAt     time.Time
}

// MatchResultRepository defines the port for the append-only result store.
type MatchResultRepository interface {
	Save(ctx context.Context, result *MatchResult) error
	GetByUserProfileID(ctx context.Context, userProfileID string) ([]*MatchResult, error)
}
