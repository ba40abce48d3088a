package utils

import (
	"regexp"
	"strings"
)

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

	// Docket-style case numbers: letters, digits and dashes, e.g. HD-2026-001.
	caseNumberPattern = regexp.MustCompile(`^[A-Z0-9][A-Z0-9-]*$`)
)

// ValidateEmail reports whether email looks like a deliverable address.
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidatePassword enforces the minimum password length.
func ValidatePassword(password string) (bool, string) {
	if len(password) < 8 {
		return false, "Password must be at least 8 characters"
	}
	return true, ""
}

// NormalizeCaseNumber uppercases a case number and reports whether the result
// is well formed.
func NormalizeCaseNumber(raw string) (string, bool) {
	n := strings.ToUpper(strings.TrimSpace(raw))
	return n, caseNumberPattern.MatchString(n)
}

// SanitizeInput trims surrounding whitespace and strips null bytes.
func SanitizeInput(input string) string {
	input = strings.TrimSpace(input)
	return strings.ReplaceAll(input, "\x00", "")
}
