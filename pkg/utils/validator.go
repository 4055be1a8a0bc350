package utils

import (
	"fmt"
	"regexp"
)

var projectTextRegex = regexp.MustCompile(`^[A-Za-z0-9\s]+$`)

// ValidateProjectText validates a manually entered project identifier.
// Only letters, digits and spaces are accepted; account codes in the
// bookkeeping system cannot carry anything else.
func ValidateProjectText(text string) error {
	if text == "" {
		return fmt.Errorf("project text is empty")
	}
	if !projectTextRegex.MatchString(text) {
		return fmt.Errorf("project text contains characters outside [A-Za-z0-9 ]: %s", text)
	}
	return nil
}

// ValidateEmail validates an email address
func ValidateEmail(email string) error {
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format: %s", email)
	}
	return nil
}

// SanitizeString removes control characters from free-text answers
func SanitizeString(s string) string {
	return regexp.MustCompile(`[\x00-\x1f\x7f]`).ReplaceAllString(s, "")
}
