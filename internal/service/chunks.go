package service

import (
	"context"
	"errors"

	"github.com/rechunk/rechunk/internal/model"
	"github.com/rechunk/rechunk/internal/repository"
)

// ChunkService defines project-scoped chunk storage operations. The projectID
// argument on every method must come from a verified credential; the service
// performs no authentication of its own.
type ChunkService interface {
	// Put upserts a chunk payload under (projectID, chunkID).
	Put(ctx context.Context, projectID, chunkID string, data []byte) (*model.Chunk, error)
	// Get returns a single chunk.
	Get(ctx context.Context, projectID, chunkID string) (*model.Chunk, error)
	// List returns all chunks of a project.
	List(ctx context.Context, projectID string) ([]model.Chunk, error)
	// Delete removes a chunk; idempotent.
	Delete(ctx context.Context, projectID, chunkID string) error
}

type ChunkServiceImpl struct {
	repo repository.ChunkRepository
}

// NewChunkService constructs ChunkService.
func NewChunkService(repo repository.ChunkRepository) *ChunkServiceImpl {
	return &ChunkServiceImpl{repo: repo}
}

// Put validates input and delegates the upsert to the repository.
func (s *ChunkServiceImpl) Put(ctx context.Context, projectID, chunkID string, data []byte) (*model.Chunk, error) {
	if projectID == "" || chunkID == "" {
		return nil, errors.New("validation: empty projectID/chunkID")
	}
	if len(data) == 0 {
		return nil, errors.New("validation: empty payload")
	}
	return s.repo.Upsert(ctx, projectID, chunkID, data)
}

// Get fetches a single chunk by composite key.
func (s *ChunkServiceImpl) Get(ctx context.Context, projectID, chunkID string) (*model.Chunk, error) {
	if projectID == "" || chunkID == "" {
		return nil, errors.New("validation: empty projectID/chunkID")
	}
	return s.repo.Get(ctx, projectID, chunkID)
}

// List returns all chunks owned by the project.
func (s *ChunkServiceImpl) List(ctx context.Context, projectID string) ([]model.Chunk, error) {
	if projectID == "" {
		return nil, errors.New("validation: empty projectID")
	}
	return s.repo.ListByProject(ctx, projectID)
}

// Delete removes a chunk. A missing chunk is not an error.
func (s *ChunkServiceImpl) Delete(ctx context.Context, projectID, chunkID string) error {
	if projectID == "" || chunkID == "" {
		return errors.New("validation: empty projectID/chunkID")
	}
	return s.repo.Delete(ctx, projectID, chunkID)
}
