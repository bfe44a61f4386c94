package repository

import (
	"context"

	"github.com/rechunk/rechunk/internal/model"
)

// TokenRepository stores issued session tokens until they are consumed.
type TokenRepository interface {
	// Create persists a freshly issued token row.
	Create(ctx context.Context, t *model.SessionToken) error
	// Consume atomically deletes the row matching (projectID, token) and
	// returns errs.ErrNotFound if no row was deleted. The delete-and-count
	// shape is what makes a token single-use under concurrent verification.
	Consume(ctx context.Context, projectID, tok string) error
}
