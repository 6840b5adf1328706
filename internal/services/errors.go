// internal/services/errors.go
package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Domain error kinds. Every error returned by a service that is caused by
// the caller wraps exactly one of these; anything else is internal.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrReference  = errors.New("referenced record does not exist")
)

func validationError(message string) error {
	return fmt.Errorf("%w: %s", ErrValidation, message)
}

// NotFoundError names the missing resource and matches ErrNotFound.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func notFoundError(resource string) error {
	return &NotFoundError{Resource: resource}
}

func conflictError(message string) error {
	return fmt.Errorf("%w: %s", ErrConflict, message)
}

func referenceError(message string) error {
	return fmt.Errorf("%w: %s", ErrReference, message)
}

// storageError maps the storage constraint signals to domain errors. The
// message of a unique violation depends on which record was written, so the
// caller supplies it; other failures are wrapped unchanged.
func storageError(err error, resource, duplicateMessage string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return notFoundError(resource)
	case errors.Is(err, gorm.ErrDuplicatedKey) && duplicateMessage != "":
		return conflictError(duplicateMessage)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return referenceError(fmt.Sprintf("%s references a record that does not exist", resource))
	default:
		return fmt.Errorf("database error: %w", err)
	}
}
