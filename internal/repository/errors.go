package repository

import (
	"errors"
	"fmt"
)

// NotFoundError signals that the target entity is absent. Recoverable by the
// caller, typically surfaced as a 404.
type NotFoundError struct {
	ID int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("not found, id is %d", e.ID)
}

// DuplicateError signals a uniqueness violation on create. ExistingID is the
// id of the entity that already holds the contested value.
type DuplicateError struct {
	ExistingID int
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate, id is %d", e.ExistingID)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}

// IsDuplicate reports whether err is (or wraps) a DuplicateError.
func IsDuplicate(err error) bool {
	var e *DuplicateError
	return errors.As(err, &e)
}
