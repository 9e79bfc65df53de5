package dto

import "time"

// MatchRequest is the request body for matching a Pokemon to a profile
type MatchRequest struct {
	UserProfileID string `json:"user_profile_id"`
}

// MatchResponse represents a completed match in the API response
type MatchResponse struct {
	UserProfileID string          `json:"user_profile_id"`
	Pokemon       PokemonResponse `json:"pokemon"`
	MatchScore    float64         `json:"match_score"`
	Message       string          `json:"message"`
}

// MatchHistoryItem is one prior match result row for a profile
type MatchHistoryItem struct {
	PokemonID   string    `json:"pokemon_id"`
	PokemonName string    `json:"pokemon_name,omitempty"`
	TotalScore  float64   `json:"total_score"`
	CreatedAt   time.Time `json:"created_at"`
}

// MatchHistoryResponse lists the append-only match history of a profile
type MatchHistoryResponse struct {
	UserProfileID string             `json:"user_profile_id"`
	Results       []MatchHistoryItem `json:"results"`
}
