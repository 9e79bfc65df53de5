package models

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// StringSlice is a custom type for persisting string arrays as JSON text.
type StringSlice []string

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	jsonData, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	var bytesToParse []byte
	switch v := value.(type) {
	case []byte:
		bytesToParse = v
	case string:
		bytesToParse = []byte(v)
	default:
		return errors.New("StringSlice Scan: unsupported type " + fmt.Sprintf("%T", value))
	}

	if len(bytesToParse) == 0 || string(bytesToParse) == "null" {
		*s = StringSlice{}
		return nil
	}

	return json.Unmarshal(bytesToParse, s)
}

// Pokemon is the database model for a catalog candidate.
type Pokemon struct {
	ID              string         `db:"id"`
	Name            string         `db:"name"`
	Types           StringSlice    `db:"types"`
	Color           sql.NullString `db:"color"`
	Habitat         sql.NullString `db:"habitat"`
	Abilities       StringSlice    `db:"abilities"`
	FlavorText      sql.NullString `db:"flavor_text"`
	HP              int            `db:"hp"`
	Attack          int            `db:"attack"`
	Defense         int            `db:"defense"`
	SpecialAttack   int            `db:"special_attack"`
	SpecialDefense  int            `db:"special_defense"`
	Speed           int            `db:"speed"`
	PopularityScore int            `db:"popularity_score"`
	ImageURL        sql.NullString `db:"image_url"`
	CriesURL        sql.NullString `db:"cries_url"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
}

// Question is the database model for a questionnaire question.
type Question struct {
	ID         string    `db:"id"`
	Identifier string    `db:"identifier"`
	Text       string    `db:"text"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

// AnswerOption is the database model for an answer option.
// Value holds the JSON-encoded semantic tag payload.
type AnswerOption struct {
	ID         string    `db:"id"`
	QuestionID string    `db:"question_id"`
	Text       string    `db:"text"`
	Value      string    `db:"value"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

// UserProfile is the database model for a completed answer record.
// Answers is the JSON-encoded question-identifier to option-id map.
type UserProfile struct {
	ID        string    `db:"id"`
	Answers   string    `db:"answers"`
	CreatedAt time.Time `db:"created_at"`
}

// MatchResult is the database model for one append-only match result row.
type MatchResult struct {
	ID            string    `db:"id"`
	UserProfileID string    `db:"user_profile_id"`
	PokemonID     string    `db:"pokemon_id"`
	TotalScore    float64   `db:"total_score"`
	CreatedAt     time.Time `db:"created_at"`
}
