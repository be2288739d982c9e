// Package apperrors defines the domain error kinds shared by all
// controllers. Handlers recognize these explicitly; anything else is
// treated as a storage failure and its detail stays in the logs.
package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrEmptyCart    = errors.New("cart is empty")
	ErrUnauthorized = errors.New("unauthorized")
)

// InsufficientStockError names the offending SKU so the caller knows
// which line of the cart to fix.
type InsufficientStockError struct {
	SKUCode string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for SKU: %s", e.SKUCode)
}

// NotFound wraps ErrNotFound with the entity name, keeping errors.Is intact.
func NotFound(entity string) error {
	return fmt.Errorf("%s %w", entity, ErrNotFound)
}

// Conflict wraps ErrConflict with a description of the duplicate.
func Conflict(what string) error {
	return fmt.Errorf("%s %w", what, ErrConflict)
}

// IsDomain reports whether err is one of the recognized domain kinds,
// as opposed to an unclassified persistence failure.
func IsDomain(err error) bool {
	var insufficient *InsufficientStockError
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrEmptyCart) ||
		errors.Is(err, ErrUnauthorized) ||
		errors.As(err, &insufficient)
}
