package apperrors

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound indicates a referenced user or recipe does not exist.
// Callers should not retry.
var ErrNotFound = errors.New("not found")

// ErrInvalidOperation indicates the request itself is invalid (self-follow,
// empty comment text, missing identity). No mutation occurs. No retry.
var ErrInvalidOperation = errors.New("invalid operation")

// IsTransient reports whether err came from a store timeout or connectivity
// failure. The whole operation is safe to retry because every store mutation
// is an idempotent primitive.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, context.DeadlineExceeded) ||
		mongo.IsTimeout(err) ||
		mongo.IsNetworkError(err)
}
