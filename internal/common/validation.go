package common

import (
	"fmt"
	"regexp"
	"strings"

	"friendgraph/internal/relation"
)

var emailRegex = regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`)

// NormalizeEmail is the single place emails are canonicalized; stored emails
// and lookups both go through it so matching is case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func ValidateEmail(email string) error {
	email = NormalizeEmail(email)
	if email == "" {
		return fmt.Errorf("%w: email is required", relation.ErrValidation)
	}
	if len(email) > 255 || !emailRegex.MatchString(email) {
		return fmt.Errorf("%w: invalid email format", relation.ErrValidation)
	}
	return nil
}

func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: name is required", relation.ErrValidation)
	}
	if len(name) > 100 {
		return fmt.Errorf("%w: name must be at most 100 characters", relation.ErrValidation)
	}
	return nil
}

func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("%w: password is required", relation.ErrValidation)
	}
	if len(password) < 6 {
		return fmt.Errorf("%w: password must be at least 6 characters long", relation.ErrValidation)
	}
	// bcrypt ignores everything past 72 bytes
	if len(password) > 72 {
		return fmt.Errorf("%w: password must be at most 72 characters long", relation.ErrValidation)
	}
	return nil
}
