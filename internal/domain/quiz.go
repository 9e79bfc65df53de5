package domain

import (
	"context"
	"time"
)

// Question represents a questionnaire question, e.g. "What is your favorite color?".
type Question struct {
	ID         string
	Identifier string // stable key used in answer records, e.g. "favorite_color"
	Text       string
	Options    []*AnswerOption
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewQuestion creates a new Question instance
func NewQuestion(identifier, text string) *Question {
	now := time.Now()
	return &Question{
		Identifier: identifier,
		Text:       text,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Validate validates the question
func (q *Question) Validate() error {
	if q.Identifier == "" {
		return NewInvalidInputError("question identifier is required")
	}
	if q.Text == "" {
		return NewInvalidInputError("question text is required")
	}
	return nil
}

// AnswerOption belongs to exactly one question. Value carries a JSON object
// whose keys are the semantic tags the preference extractor understands
// (type, color, habitat, ability, stat, shape).
type AnswerOption struct {
	ID         string
	QuestionID string
	Text       string
	Value      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// UserProfile is a completed quiz session: an immutable answer record mapping
// question identifier to the chosen option id.
type UserProfile struct {
	ID        string
	Answers   map[string]string
	CreatedAt time.Time
}

// NewUserProfile creates a new UserProfile instance
func NewUserProfile(answers map[string]string) *UserProfile {
	return &UserProfile{
		Answers:   answers,
		CreatedAt: time.Now(),
	}
}

// Validate validates the user profile
func (p *UserProfile) Validate() error {
	if len(p.Answers) == 0 {
		return NewInvalidInputError("answers are required")
	}
	return nil
}

// QuestionRepository defines the port for the question/option store.
// Writes are owned by quiz authoring (seeding); the matcher only reads options.
type QuestionRepository interface {
	GetAllQuestions(ctx context.Context) ([]*Question, error)
	GetQuestionByID(ctx context.Context, id string) (*Question, error)
	GetQuestionByIdentifier(ctx context.Context, identifier string) (*Question, error)
	GetOptionByID(ctx context.Context, id string) (*AnswerOption, error)
	GetOptionsByQuestionID(ctx context.Context, questionID string) ([]*AnswerOption, error)
	SaveQuestion(ctx context.Context, question *Question) error
	SaveOption(ctx context.Context, option *AnswerOption) error
}

// UserProfileRepository defines the port for the answer-record store.
type UserProfileRepository interface {
	GetByID(ctx context.Context, id string) (*UserProfile, error)
	Save(ctx context.Context, profile *UserProfile) error
}
