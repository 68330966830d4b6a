// Package utils: input normalization shared by the services and the
// CSV importers, so lookups and uniqueness checks always see the same
// canonical form.
package utils

import (
	"errors"
	"strings"
)

// NormalizeCode canonicalizes customer/location codes to uppercase.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// ValidEmail is a cheap shape check; real verification is out of scope.
func ValidEmail(email string) error {
	parts := strings.Split(email, "@")
	if len(parts) != 2 || parts[0] == "" || !strings.Contains(parts[1], ".") {
		return errors.New("invalid email format")
	}
	return nil
}
