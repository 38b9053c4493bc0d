package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"
)

// Input validation and sanitization utilities

var (
	userIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_.@-]{1,64}$`)
)

// MaxPromptLength bounds console prompts after sanitisation.
const MaxPromptLength = 500

// SanitizeString removes dangerous characters from strings
func SanitizeString(input string) string {
	input = strings.ReplaceAll(input, "\x00", "")

	var result strings.Builder
	for _, r := range input {
		if r >= 32 || r == '\t' || r == '\n' {
			result.WriteRune(r)
		}
	}

	return strings.TrimSpace(result.String())
}

// SanitizePrompt cleans a console prompt and enforces MaxPromptLength.
func SanitizePrompt(prompt string) (string, error) {
	prompt = SanitizeString(prompt)
	if len([]rune(prompt)) > MaxPromptLength {
		return "", fmt.Errorf("prompt exceeds %d characters", MaxPromptLength)
	}
	return prompt, nil
}

// ValidateUserID validates console user id format
func ValidateUserID(user string) error {
	if user == "" {
		return fmt.Errorf("user ID cannot be empty")
	}
	if !userIDPattern.MatchString(user) {
		return fmt.Errorf("invalid user ID format (alphanumeric, dot, at, dash, underscore only, max 64 chars)")
	}
	return nil
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": msg})
}
