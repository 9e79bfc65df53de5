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

// QuestionDatabaseAdapter implements domain.QuestionRepository using sqlx.DB
type QuestionDatabaseAdapter struct {
	db *sqlx.DB
}

// NewQuestionDatabaseAdapter creates a new instance of QuestionDatabaseAdapter
func NewQuestionDatabaseAdapter(db *sqlx.DB) domain.QuestionRepository {
	return &QuestionDatabaseAdapter{db: db}
}

func toDomainQuestion(m *models.Question) *domain.Question {
	if m == nil {
		return nil
	}
	return &domain.Question{
		ID:         m.ID,
		Identifier: m.Identifier,
		Text:       m.Text,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func toDomainOption(m *models.AnswerOption) *domain.AnswerOption {
	if m == nil {
		return nil
	}
	return &domain.AnswerOption{
		ID:         m.ID,
		QuestionID: m.QuestionID,
		Text:       m.Text,
		Value:      m.Value,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// GetAllQuestions implements domain.QuestionRepository. Options are attached
// to their questions, both ordered deterministically.
func (a *QuestionDatabaseAdapter) GetAllQuestions(ctx context.Context) ([]*domain.Question, error) {
	var modelQuestions []models.Question
	query := `SELECT id, identifier, text, created_at, updated_at
	FROM questions
	ORDER BY identifier ASC`
	if err := a.db.SelectContext(ctx, &modelQuestions, query); err != nil {
		return nil, fmt.Errorf("failed to get questions: %w", err)
	}

	questions := make([]*domain.Question, 0, len(modelQuestions))
	for i := range modelQuestions {
		question := toDomainQuestion(&modelQuestions[i])
		options, err := a.GetOptionsByQuestionID(ctx, question.ID)
		if err != nil {
			return nil, err
		}
		question.Options = options
		questions = append(questions, question)
	}
	return questions, nil
}

// GetQuestionByID implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) GetQuestionByID(ctx context.Context, id string) (*domain.Question, error) {
	var modelQuestion models.Question
	query := `SELECT id, identifier, text, created_at, updated_at
	FROM questions
	WHERE id = $1`
	err := a.db.GetContext(ctx, &modelQuestion, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get question by ID %s: %w", id, err)
	}
	return toDomainQuestion(&modelQuestion), nil
}

// GetQuestionByIdentifier implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) GetQuestionByIdentifier(ctx context.Context, identifier string) (*domain.Question, error) {
	var modelQuestion models.Question
	query := `SELECT id, identifier, text, created_at, updated_at
	FROM questions
	WHERE identifier = $1`
	err := a.db.GetContext(ctx, &modelQuestion, query, identifier)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get question by identifier %s: %w", identifier, err)
	}
	return toDomainQuestion(&modelQuestion), nil
}

// GetOptionByID implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) GetOptionByID(ctx context.Context, id string) (*domain.AnswerOption, error) {
	var modelOption models.AnswerOption
	query := `SELECT id, question_id, text, value, created_at, updated_at
	FROM answer_options
	WHERE id = $1`
	err := a.db.GetContext(ctx, &modelOption, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get answer option by ID %s: %w", id, err)
	}
	return toDomainOption(&modelOption), nil
}

// GetOptionsByQuestionID implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) GetOptionsByQuestionID(ctx context.Context, questionID string) ([]*domain.AnswerOption, error) {
	var modelOptions []models.AnswerOption
	query := `SELECT id, question_id, text, value, created_at, updated_at
	FROM answer_options
	WHERE question_id = $1
	ORDER BY text ASC`
	if err := a.db.SelectContext(ctx, &modelOptions, query, questionID); err != nil {
		return nil, fmt.Errorf("failed to get options for question %s: %w", questionID, err)
	}

	options := make([]*domain.AnswerOption, 0, len(modelOptions))
	for i := range modelOptions {
		options = append(options, toDomainOption(&modelOptions[i]))
	}
	return options, nil
}

// SaveQuestion implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) SaveQuestion(ctx context.Context, question *domain.Question) error {
	if err := question.Validate(); err != nil {
		return err
	}
	if question.ID == "" {
		question.ID = util.NewULID()
	}
	now := time.Now()
	if question.CreatedAt.IsZero() {
		question.CreatedAt = now
	}
	question.UpdatedAt = now

	query := `INSERT INTO questions (id, identifier, text, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5)`
	_, err := a.db.ExecContext(ctx, query,
		question.ID, question.Identifier, question.Text, question.CreatedAt, question.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save question %s: %w", question.Identifier, err)
	}
	return nil
}

// SaveOption implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) SaveOption(ctx context.Context, option *domain.AnswerOption) error {
	if option.QuestionID == "" {
		return domain.NewInvalidInputError("answer option requires a question id")
	}
	if option.ID == "" {
		option.ID = util.NewULID()
	}
	now := time.Now()
	if option.CreatedAt.IsZero() {
		option.CreatedAt = now
	}
	option.UpdatedAt = now

	query := `INSERT INTO answer_options (id, question_id, text, value, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := a.db.ExecContext(ctx, query,
		option.ID, option.QuestionID, option.Text, option.Value, option.CreatedAt, option.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save answer option %s: %w", option.Text, err)
	}
	return nil
}
