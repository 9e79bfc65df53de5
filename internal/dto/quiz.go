package dto

import "time"

// AnswerOptionResponse represents an answer option in the API response.
// The semantic tag payload stays server-side; clients only see id and label.
type AnswerOptionResponse struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// QuestionResponse represents a questionnaire question in the API response
type QuestionResponse struct {
	ID         string                 `json:"id"`
	Identifier string                 `json:"identifier"`
	Text       string                 `json:"text"`
	Options    []AnswerOptionResponse `json:"options"`
}

// QuestionnaireResponse lists the full questionnaire
type QuestionnaireResponse struct {
	Questions []QuestionResponse `json:"questions"`
}

// SubmitAnswersRequest is the request body for completing a quiz:
// a map from question identifier to the chosen option id.
type SubmitAnswersRequest struct {
	Answers map[string]string `json:"answers"`
}

// UserProfileResponse represents a created answer record in the API response
type UserProfileResponse struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}
