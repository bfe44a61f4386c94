package repository

import (
	"context"

	"github.com/rechunk/rechunk/internal/model"
)

// ChunkRepository provides project-scoped access to chunk payloads. Every
// operation takes a projectID that must come from a verified credential; the
// repository filters on it unconditionally so cross-project access fails closed.
type ChunkRepository interface {
	// Upsert inserts the chunk on first write and replaces its payload on
	// subsequent writes, bumping updated_at.
	Upsert(ctx context.Context, projectID, chunkID string, data []byte) (*model.Chunk, error)
	// Get returns a single chunk by composite key.
	Get(ctx context.Context, projectID, chunkID string) (*model.Chunk, error)
	// ListByProject returns all chunks owned by the project.
	ListByProject(ctx context.Context, projectID string) ([]model.Chunk, error)
	// Delete removes a chunk. Deleting a non-existent chunk is not an error.
	Delete(ctx context.Context, projectID, chunkID string) error
}
