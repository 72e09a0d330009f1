package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrEntityNotFound   *notFoundError
	ErrInvalidRating    = errors.New("invalid rating, safety_rating must be between 1 and 5")
	ErrSelfRating       = errors.New("rater and rated user must differ")
	ErrEmptyContent     = errors.New("content must not be empty")
	ErrMissingContentID = errors.New("content_id is required")
	ErrConcurrentUpdate = errors.New("profile update conflicted too many times")
)

type notFoundError struct {
	EntityType string
	ID         uuid.UUID
}

func (e *notFoundError) Error() string {
	return fmt.Sprintf("%s with ID '%s' not found", e.EntityType, e.ID.String())
}

func NewNotFoundError(entityType string, id uuid.UUID) error {
	return &notFoundError{
		EntityType: entityType,
		ID:         id,
	}
}

func IsNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	var notFoundError *notFoundError
	ok := errors.As(err, &notFoundError)
	return ok
}
