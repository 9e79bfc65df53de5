package repository

import (
	"context"
	"fmt"
	"pokesoul/internal/domain"
	"pokesoul/internal/repository/models"
	"pokesoul/internal/util"
	"time"

	"github.com/jmoiron/sqlx"
)

// MatchResultDatabaseAdapter implements domain.MatchResultRepository using
// sqlx.DB. The result table is append-only: there is no update or delete path.
type MatchResultDatabaseAdapter struct {
	db *sqlx.DB
}

// NewMatchResultDatabaseAdapter creates a new instance of MatchResultDatabaseAdapter
func NewMatchResultDatabaseAdapter(db *sqlx.DB) domain.MatchResultRepository {
	return &MatchResultDatabaseAdapter{db: db}
}

func toDomainMatchResult(m *models.MatchResult) *domain.MatchResult {
	if m == nil {
		return nil
	}
	return &domain.MatchResult{
		ID:            m.ID,
		UserProfileID: m.UserProfileID,
		PokemonID:     m.PokemonID,
		TotalScore:    m.TotalScore,
		CreatedAt:     m.CreatedAt,
	}
}

// Save implements domain.MatchResultRepository
func (a *MatchResultDatabaseAdapter) Save(ctx context.Context, result *domain.MatchResult) error {
	if result.UserProfileID == "" || result.PokemonID == "" {
		return domain.NewInvalidInputError("match result requires a user profile id and a pokemon id")
	}
	if result.ID == "" {
		result.ID = util.NewULID()
	}
	if result.CreatedAt.IsZero() {
		result.CreatedAt = time.Now()
	}

	query := `INSERT INTO match_results (id, user_profile_id, pokemon_id, total_score, created_at)
	VALUES ($1, $2, $3, $4, $5)`
	_, err := a.db.ExecContext(ctx, query,
		result.ID, result.UserProfileID, result.PokemonID, result.TotalScore, result.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save match result: %w", err)
	}
	return nil
}

// GetByUserProfileID implements domain.MatchResultRepository
func (a *MatchResultDatabaseAdapter) GetByUserProfileID(ctx context.Context, userProfileID string) ([]*domain.MatchResult, error) {
	var modelResults []models.MatchResult
	query := `SELECT id, user_profile_id, pokemon_id, total_score, created_at
	FROM match_results
	WHERE user_profile_id = $1
	ORDER BY total_score DESC, created_at DESC`
	if err := a.db.SelectContext(ctx, &modelResults, query, userProfileID); err != nil {
		return nil, fmt.Errorf("failed to get match results for profile %s: %w", userProfileID, err)
	}

	results := make([]*domain.MatchResult, 0, len(modelResults))
	for i := range modelResults {
		results = append(results, toDomainMatchResult(&modelResults[i]))
	}
	return results, nil
}
