package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/rechunk/rechunk/internal/errs"
	"github.com/rechunk/rechunk/internal/model"
)

// ProjectRepo implements ProjectRepository using PostgreSQL.
type ProjectRepo struct{ db *DB }

// NewProjectRepo constructs a project repository.
func NewProjectRepo(db *DB) *ProjectRepo { return &ProjectRepo{db: db} }

// Create inserts a new project row. Credential keys carry unique constraints;
// a collision surfaces as the driver's unique violation error.
func (r *ProjectRepo) Create(ctx context.Context, p *model.Project) error {
	const q = `
INSERT INTO projects (id, read_key, write_key, public_key, private_key)
VALUES ($1,$2,$3,$4,$5)
RETURNING created_at, updated_at`
	row := r.db.Pool.QueryRow(ctx, q, p.ID, p.ReadKey, p.WriteKey, p.PublicKey, p.PrivateKey)
	return row.Scan(&p.CreatedAt, &p.UpdatedAt)
}

// GetByID returns the full project record including keys.
func (r *ProjectRepo) GetByID(ctx context.Context, id string) (*model.Project, error) {
	const q = `
SELECT id, read_key, write_key, public_key, private_key, created_at, updated_at
FROM projects WHERE id=$1`
	var p model.Project
	err := r.db.Pool.QueryRow(ctx, q, id).Scan(
		&p.ID, &p.ReadKey, &p.WriteKey, &p.PublicKey, &p.PrivateKey, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}
