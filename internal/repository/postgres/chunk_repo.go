package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/rechunk/rechunk/internal/errs"
	"github.com/rechunk/rechunk/internal/model"
)

// ChunkRepo implements ChunkRepository using PostgreSQL. Every statement filters
// on project_id so a chunk id from another tenant can never match.
type ChunkRepo struct{ db *DB }

// NewChunkRepo constructs a chunk repository.
func NewChunkRepo(db *DB) *ChunkRepo { return &ChunkRepo{db: db} }

// Upsert inserts or replaces the payload under the composite key (project_id, id).
func (r *ChunkRepo) Upsert(ctx context.Context, projectID, chunkID string, data []byte) (*model.Chunk, error) {
	const q = `
INSERT INTO chunks (project_id, id, data)
VALUES ($1,$2,$3)
ON CONFLICT (project_id, id)
DO UPDATE SET data=EXCLUDED.data, updated_at=now()
RETURNING project_id, id, data, created_at, updated_at`
	var c model.Chunk
	err := r.db.Pool.QueryRow(ctx, q, projectID, chunkID, data).Scan(
		&c.ProjectID, &c.ID, &c.Data, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Get returns a single chunk by composite key.
func (r *ChunkRepo) Get(ctx context.Context, projectID, chunkID string) (*model.Chunk, error) {
	const q = `
SELECT project_id, id, data, created_at, updated_at
FROM chunks WHERE project_id=$1 AND id=$2`
	var c model.Chunk
	err := r.db.Pool.QueryRow(ctx, q, projectID, chunkID).Scan(
		&c.ProjectID, &c.ID, &c.Data, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// ListByProject returns all chunks of a project ordered by id.
func (r *ChunkRepo) ListByProject(ctx context.Context, projectID string) ([]model.Chunk, error) {
	const q = `
SELECT project_id, id, data, created_at, updated_at
FROM chunks WHERE project_id=$1
ORDER BY id ASC`
	rows, err := r.db.Pool.Query(ctx, q, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Chunk
	for rows.Next() {
		var c model.Chunk
		if err = rows.Scan(&c.ProjectID, &c.ID, &c.Data, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Delete removes a chunk; deleting a missing chunk is a no-op.
func (r *ChunkRepo) Delete(ctx context.Context, projectID, chunkID string) error {
	const q = `DELETE FROM chunks WHERE project_id=$1 AND id=$2`
	_, err := r.db.Pool.Exec(ctx, q, projectID, chunkID)
	return err
}
