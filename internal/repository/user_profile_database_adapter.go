package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"pokesoul/internal/domain"
	"pokesoul/internal/repository/models"
	"pokesoul/internal/util"
	"time"

	"github.com/jmoiron/sqlx"
)

// UserProfileDatabaseAdapter implements domain.UserProfileRepository using sqlx.DB
type UserProfileDatabaseAdapter struct {
	db *sqlx.DB
}

// NewUserProfileDatabaseAdapter creates a new instance of UserProfileDatabaseAdapter
func NewUserProfileDatabaseAdapter(db *sqlx.DB) domain.UserProfileRepository {
	return &UserProfileDatabaseAdapter{db: db}
}

func toDomainUserProfile(m *models.UserProfile) (*domain.UserProfile, error) {
	if m == nil {
		return nil, nil
	}
	answers := map[string]string{}
	if m.Answers != "" {
		if err := json.Unmarshal([]byte(m.Answers), &answers); err != nil {
			return nil, fmt.Errorf("failed to decode answers for profile %s: %w", m.ID, err)
		}
	}
	return &domain.UserProfile{
		ID:        m.ID,
		Answers:   answers,
		CreatedAt: m.CreatedAt,
	}, nil
}

// GetByID implements domain.UserProfileRepository
func (a *UserProfileDatabaseAdapter) GetByID(ctx context.Context, id string) (*domain.UserProfile, error) {
	var modelProfile models.UserProfile
	query := `SELECT id, answers, created_at
	FROM user_profiles
	WHERE id = $1`
	err := a.db.GetContext(ctx, &modelProfile, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user profile by ID %s: %w", id, err)
	}
	return toDomainUserProfile(&modelProfile)
}

// Save implements domain.UserProfileRepository
func (a *UserProfileDatabaseAdapter) Save(ctx context.Context, profile *domain.UserProfile) error {
	if err := profile.Validate(); err != nil {
		return err
	}
	if profile.ID == "" {
		profile.ID = util.NewULID()
	}
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = time.Now()
	}

	answersJSON, err := json.Marshal(profile.Answers)
	if err != nil {
		return fmt.Errorf("failed to encode answers: %w", err)
	}

	query := `INSERT INTO user_profiles (id, answers, created_at)
	VALUES ($1, $2, $3)`
	_, err = a.db.ExecContext(ctx, query, profile.ID, string(answersJSON), profile.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save user profile: %w", err)
	}
	return nil
}
