// Package utils holds small input helpers shared by the controllers.
package utils

import (
	"fmt"
	"strings"
)

// MinPasswordLength applies to new accounts and password changes.
const MinPasswordLength = 8

// ValidatePassword checks a candidate password and returns a user-facing
// message when it is rejected.
func ValidatePassword(password string) (bool, string) {
	if len(password) < MinPasswordLength {
		return false, fmt.Sprintf("Password must be at least %d characters", MinPasswordLength)
	}
	return true, ""
}

// SanitizeInput cleans free-text fields such as document titles and approver
// comments: surrounding whitespace is trimmed and null bytes are stripped.
func SanitizeInput(input string) string {
	input = strings.TrimSpace(input)
	return strings.ReplaceAll(input, "\x00", "")
}
