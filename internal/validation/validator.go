package validation

import (
	"regexp"
	"strings"

	"rse-quest/internal/domain"
)

// maxLevelID bounds level ids accepted from the outside
const maxLevelID = 10000

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateLevelID validates a level id path or body parameter
func (v *Validator) ValidateLevelID(levelID int) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if levelID < 1 || levelID > maxLevelID {
		errors = append(errors, domain.NewOutOfRangeError("level_id", levelID, 1, maxLevelID))
	}

	return errors
}

// ValidateSessionID validates a session id path parameter
func (v *Validator) ValidateSessionID(sessionID string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(sessionID) == "" {
		errors = append(errors, domain.NewMissingFieldError("session_id"))
	} else if !isValidULID(sessionID) {
		errors = append(errors, domain.NewInvalidFormatError("session_id", sessionID))
	}

	return errors
}

// isValidULID checks if the string is a valid ULID format
func isValidULID(s string) bool {
	// ULID is 26 characters long, base32 encoded
	if len(s) != 26 {
		return false
	}
	// Check if all characters are valid base32 (Crockford's Base32)
	validULID := regexp.MustCompile(`^[0-9A-HJKMNP-TV-Z]{26}$`)
	return validULID.MatchString(s)
}
