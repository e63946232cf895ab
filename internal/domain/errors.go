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

	// Catalog errors
	CodeParseError    ErrorCode = "PARSE_ERROR"
	CodeLevelNotFound ErrorCode = "LEVEL_NOT_FOUND"
	CodeLevelLocked   ErrorCode = "LEVEL_LOCKED"
	CodeEmptyLevel    ErrorCode = "EMPTY_LEVEL"

	// Session errors
	CodeSessionNotFound ErrorCode = "SESSION_NOT_FOUND"
	CodeInvalidState    ErrorCode = "INVALID_STATE"

	// Request validation errors
	CodeValidation    ErrorCode = "VALIDATION_ERROR"
	CodeMissingField  ErrorCode = "MISSING_FIELD"
	CodeInvalidFormat ErrorCode = "INVALID_FORMAT"
	CodeOutOfRange    ErrorCode = "OUT_OF_RANGE"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
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

// Helper functions for common errors
func NewInternalError(message string, cause error) *DomainError {
	return NewError(CodeInternal, message, cause)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewParseError(message string, cause error) *DomainError {
	return NewError(CodeParseError, message, cause)
}

func NewLevelNotFoundError(levelID int) *DomainError {
	return NewError(CodeLevelNotFound, fmt.Sprintf("Level not found with ID: %d", levelID), nil)
}

func NewLevelLockedError(levelID, highestUnlocked int) *DomainError {
	err := NewError(CodeLevelLocked, fmt.Sprintf("Level %d is locked", levelID), nil)
	err.Context = map[string]interface{}{"highest_unlocked": highestUnlocked}
	return err
}

func NewEmptyLevelError(levelID int) *DomainError {
	return NewError(CodeEmptyLevel, fmt.Sprintf("Level %d contains no playable exercises", levelID), nil)
}

func NewSessionNotFoundError(sessionID string) *DomainError {
	return NewError(CodeSessionNotFound, fmt.Sprintf("Session not found with ID: %s", sessionID), nil)
}

// NewInvalidStateError signals an operation invoked on a session
// outside the state that allows it. This is a caller bug, never
// swallowed silently.
func NewInvalidStateError(op string, state SessionState) *DomainError {
	return NewError(CodeInvalidState, fmt.Sprintf("Operation %q is not valid in session state %q", op, state), nil)
}

// ValidationError represents a single field-level request validation failure
type ValidationError struct {
	Field   string `json:"field"`
	Value   string `json:"value,omitempty"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors aggregates field-level failures for one request
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s", e[0].Error())
}

func NewMissingFieldError(field string) ValidationError {
	return ValidationError{Field: field, Message: "is required"}
}

func NewInvalidFormatError(field, value string) ValidationError {
	return ValidationError{Field: field, Value: value, Message: "has an invalid format"}
}

func NewOutOfRangeError(field string, value, min, max int) ValidationError {
	return ValidationError{
		Field:   field,
		Value:   fmt.Sprintf("%d", value),
		Message: fmt.Sprintf("must be between %d and %d", min, max),
	}
}
