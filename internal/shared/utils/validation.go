package utils

import (
	"fmt"
	"regexp"
	"unicode/utf8"
)

// Size limits (in bytes)
const (
	MaxMessageSize = 16 * 1024  // 16KB - single WebSocket message
	MaxContentSize = 256 * 1024 // 256KB - single content store value
)

// String length limits
const (
	MaxIDLength         = 128
	MaxActionNameLength = 64
)

// Regular expressions for validation
var (
	// SafeIDPattern allows alphanumeric, hyphens, underscores
	SafeIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
)

// ValidateString validates a string field
func ValidateString(value, fieldName string, minLen, maxLen int, required bool) error {
	if value == "" {
		if required {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}

	if !utf8.ValidString(value) {
		return fmt.Errorf("%s contains invalid UTF-8", fieldName)
	}

	length := utf8.RuneCountInString(value)
	if length < minLen {
		return fmt.Errorf("%s must be at least %d characters", fieldName, minLen)
	}
	if length > maxLen {
		return fmt.Errorf("%s must be at most %d characters", fieldName, maxLen)
	}

	return nil
}

// ValidateID validates an ID field (app id, window id, session id, content key)
func ValidateID(id, fieldName string, required bool) error {
	if err := ValidateString(id, fieldName, 1, MaxIDLength, required); err != nil {
		return err
	}

	if id != "" && !SafeIDPattern.MatchString(id) {
		return fmt.Errorf("%s contains invalid characters (only alphanumeric, hyphens, and underscores allowed)", fieldName)
	}

	return nil
}

// ValidateContent validates a content store value
func ValidateContent(value string) error {
	if len(value) > MaxContentSize {
		return fmt.Errorf("content size %d bytes exceeds maximum %d bytes", len(value), MaxContentSize)
	}
	if !utf8.ValidString(value) {
		return fmt.Errorf("content contains invalid UTF-8")
	}
	return nil
}
