package postgres

import (
	"context"

	"github.com/rechunk/rechunk/internal/errs"
	"github.com/rechunk/rechunk/internal/model"
)

// TokenRepo implements TokenRepository using PostgreSQL.
type TokenRepo struct{ db *DB }

// NewTokenRepo constructs a session-token repository.
func NewTokenRepo(db *DB) *TokenRepo { return &TokenRepo{db: db} }

// Create persists an issued token row.
func (r *TokenRepo) Create(ctx context.Context, t *model.SessionToken) error {
	const q = `
INSERT INTO tokens (id, project_id, token)
VALUES ($1,$2,$3)
RETURNING created_at`
	return r.db.Pool.QueryRow(ctx, q, t.ID, t.ProjectID, t.Token).Scan(&t.CreatedAt)
}

// Consume deletes the row matching (project_id, token) in a single statement.
// Two concurrent verifications race on the same DELETE; exactly one sees a row
// affected, the other gets errs.ErrNotFound. That is the single-use guarantee.
func (r *TokenRepo) Consume(ctx context.Context, projectID, tok string) error {
	const q = `DELETE FROM tokens WHERE project_id=$1 AND token=$2`
	ct, err := r.db.Pool.Exec(ctx, q, projectID, tok)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}
