// Package services implements the storefront's write rules on top of the
// repositories: reference checks, delete restrictions and multi-row
// transactions.
package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/pkg/validate"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrProtected          = errors.New("protected by related rows")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError carries field errors found while writing, such as a
// reference to a row that does not exist.
type ValidationError struct {
	Errors validate.Errors
}

func (e *ValidationError) Error() string { return e.Errors.Error() }

func invalid(errs validate.Errors) error { return &ValidationError{Errors: errs} }

// ProtectedError is returned when a delete is blocked by dependent rows.
type ProtectedError struct {
	Model   string // verbose name of the row being deleted
	Name    string
	Related string // verbose plural of the dependants
	Count   int64
}

func (e *ProtectedError) Error() string {
	return fmt.Sprintf("Cannot delete %s “%s” because %d related %s still reference it.", e.Model, e.Name, e.Count, e.Related)
}

func (e *ProtectedError) Unwrap() error { return ErrProtected }

// notFound maps gorm's missing-row error onto ErrNotFound.
func notFound(err error, what string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %d: %w", what, id, ErrNotFound)
	}
	return fmt.Errorf("%s %d: %w", what, id, err)
}
