package errors

import (
	"strings"
	"unicode"
)

// maxNameLength bounds node names and track identifiers.
const maxNameLength = 1024

// ValidateNodeName checks that a node name can round-trip through the textual
// "-name" visit notation used in track sequences.
//
// Rules:
//   - No empty names
//   - No control characters
//   - No leading "-" (reserved for reverse traversal)
//   - Maximum length of 1024 bytes
func ValidateNodeName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "node name cannot be empty")
	}
	if len(name) > maxNameLength {
		return New(ErrCodeInvalidInput, "node name too long (max %d characters)", maxNameLength)
	}
	if strings.HasPrefix(name, "-") {
		return New(ErrCodeInvalidInput, "node name %q cannot start with '-'", name)
	}
	if hasControl(name) {
		return New(ErrCodeInvalidInput, "node name %q contains control characters", name)
	}
	return nil
}

// ValidateTrackID checks a track identifier. Track IDs double as the default
// edge color, so they follow the same character rules as node names except
// that a leading "-" is allowed.
func ValidateTrackID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "track id cannot be empty")
	}
	if len(id) > maxNameLength {
		return New(ErrCodeInvalidInput, "track id too long (max %d characters)", maxNameLength)
	}
	if hasControl(id) {
		return New(ErrCodeInvalidInput, "track id %q contains control characters", id)
	}
	return nil
}

func hasControl(s string) bool {
	for _, r := range s {
		if unicode.IsControl(r) {
			return true
		}
	}
	return false
}
