package service

import (
	"errors"
	"regexp"
	"strings"
)

// emailPattern mirrors the format the admin UI enforces: dot/dash separated
// word runs on both sides of the @, TLD segments of at least two letters.
var emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

func isValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// normalizeEmail folds an address into its canonical stored form.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validLength(s string, min, max int) bool {
	n := len([]rune(s))
	return n >= min && n <= max
}

// Validation errors shared by the services. Handlers map these to 400.
var (
	ErrInvalidEmail           = errors.New("please provide a valid email address")
	ErrNameLength             = errors.New("name must be between 2 and 100 characters")
	ErrPositionLength         = errors.New("position must be between 2 and 100 characters")
	ErrInvalidSalaryFrequency = errors.New("salary frequency must be monthly, yearly, or hourly")
)
