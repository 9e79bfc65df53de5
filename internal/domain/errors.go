package domain

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput ErrorCode = "INVALID_INPUT"
	CodeNotFound     ErrorCode = "NOT_FOUND"
	CodeValidation   ErrorCode = "VALIDATION_ERROR"

	// Matcher specific errors
	CodeProfileNotFound ErrorCode = "PROFILE_NOT_FOUND"
	CodeNoAnswers       ErrorCode = "NO_ANSWERS"
	CodeNoMatchFound    ErrorCode = "NO_MATCH_FOUND"
	CodePokemonNotFound ErrorCode = "POKEMON_NOT_FOUND"
	CodeCacheError      ErrorCode = "CACHE_ERROR"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Helper constructors for common errors

func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewValidationError(message string) *DomainError {
	return NewError(CodeValidation, message, nil)
}

func NewInternalError(message string, cause error) *DomainError {
	return NewError(CodeInternal, message, cause)
}

func NewProfileNotFoundError(profileID string) *DomainError {
	return NewError(CodeProfileNotFound, fmt.Sprintf("User profile not found: %s", profileID), nil)
}

func NewNoAnswersError(profileID string) *DomainError {
	return NewError(CodeNoAnswers, fmt.Sprintf("User profile has no answers: %s", profileID), nil)
}

func NewNoMatchFoundError() *DomainError {
	return NewError(CodeNoMatchFound, "No suitable Pokemon found for this profile", nil)
}

func NewPokemonNotFoundError(name string) *DomainError {
	return NewError(CodePokemonNotFound, fmt.Sprintf("Pokemon not found: %s", name), nil)
}
