// utils/validator.go - Input validation
package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// MinCommentWords is the minimum word count for a review comment.
const MinCommentWords = 50

// ValidateEmail checks if email is valid
func ValidateEmail(email string) bool {
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return emailRegex.MatchString(email)
}

// ValidatePassword checks password strength
func ValidatePassword(password string) (bool, string) {
	if len(password) < 8 {
		return false, "Password must be at least 8 characters"
	}

	return true, ""
}

// SanitizeInput removes potentially harmful characters
func SanitizeInput(input string) string {
	// Remove leading/trailing spaces
	input = strings.TrimSpace(input)

	// Remove null bytes
	input = strings.ReplaceAll(input, "\x00", "")

	return input
}

// ValidateID parses a numeric identifier from its string form. All entity ids
// are integers; request parameters are normalized here, at the boundary, so no
// dual string/numeric lookups exist further down.
func ValidateID(raw string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id: %q", raw)
	}
	return id, nil
}

// ValidateReviewScore checks a review score is on the 0-100 scale.
func ValidateReviewScore(score int) (bool, string) {
	if score < 0 || score > 100 {
		return false, "Score must be between 0 and 100"
	}
	return true, ""
}

// WordCount counts whitespace-separated words.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// ValidateReviewComment sanitizes a comment and enforces the minimum word
// count. Returns the sanitized comment and its word count.
func ValidateReviewComment(comment string) (string, int, error) {
	sanitized := SanitizeInput(comment)
	if sanitized == "" {
		return "", 0, fmt.Errorf("comment is required")
	}

	words := WordCount(sanitized)
	if words < MinCommentWords {
		return sanitized, words, fmt.Errorf("comment must be at least %d words (currently %d)", MinCommentWords, words)
	}

	return sanitized, words, nil
}

// ValidateDimensionScore checks a rating dimension is on the 1-5 scale.
func ValidateDimensionScore(score int) bool {
	return score >= 1 && score <= 5
}
