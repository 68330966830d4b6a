package helper

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stockguard/damage_service/internal/domain"
	"gorm.io/gorm"
)

// NotFoundError maps to 404 at the transport layer.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Entity)
}

func NotFound(entity string) error {
	return &NotFoundError{Entity: entity}
}

// InvalidTransitionError names both ends of the rejected move so the
// caller can show a precise diagnostic. Maps to 400.
type InvalidTransitionError struct {
	From domain.Status
	To   domain.Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot change status from %s to %s", e.From, e.To)
}

// ValidationError maps to 400: the request was understood but the
// payload violates a schema or business rule.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func Validationf(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ConflictError maps to 409 (duplicate code, sku, email, username).
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

func Conflictf(format string, args ...any) error {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

// IsDuplicateKey reports whether err is a uniqueness violation from the
// storage layer. Postgres in production, sqlite in tests.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "UNIQUE constraint")
}
