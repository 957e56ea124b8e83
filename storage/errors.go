package storage

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned by Update/Delete/Get for ids the store does not hold.
	ErrNotFound = errors.New("store: record not found")
	// ErrConstraint is returned when a uniqueness constraint is violated,
	// e.g. inserting a second user with the same email.
	ErrConstraint = errors.New("store: constraint violation")
)

// ValidationError reports a write rejected by the schema before it reaches
// the database: a missing required field, an out-of-range rating, an unknown
// enum value.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("store: validation: %s %s", e.Field, e.Reason)
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// classify maps gorm failures onto the facade's error taxonomy. Anything
// unrecognized stays wrapped as an opaque store error.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrConstraint
	default:
		return fmt.Errorf("store: %w", err)
	}
}
