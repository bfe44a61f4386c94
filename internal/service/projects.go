// Package service contains application services for projects, chunks, signing,
// and session tokens.
package service

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"

	"github.com/rechunk/rechunk/internal/keys"
	"github.com/rechunk/rechunk/internal/model"
	"github.com/rechunk/rechunk/internal/repository"
)

// ProjectService defines project lifecycle operations.
type ProjectService interface {
	// Create provisions a new project: credentials, RSA key pair, storage row.
	// The returned record is the only response that ever carries the private key.
	Create(ctx context.Context) (*model.Project, error)
	// Get returns the stored project record, keys included; transport layers
	// sanitize before exposure.
	Get(ctx context.Context, id string) (*model.Project, error)
}

type ProjectServiceImpl struct {
	projects repository.ProjectRepository
}

// NewProjectService constructs ProjectService with required dependencies.
func NewProjectService(projects repository.ProjectRepository) *ProjectServiceImpl {
	return &ProjectServiceImpl{projects: projects}
}

// Create generates the project identity and key material. A key generation
// failure aborts creation; nothing is persisted.
func (s *ProjectServiceImpl) Create(ctx context.Context) (*model.Project, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	readID, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	writeID, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}

	pub, priv, err := keys.GenerateProjectKeys()
	if err != nil {
		return nil, err
	}

	p := &model.Project{
		ID:         id.String(),
		ReadKey:    "read-" + readID.String(),
		WriteKey:   "write-" + writeID.String(),
		PublicKey:  pub,
		PrivateKey: priv,
	}
	if err := s.projects.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Get loads a project by id.
func (s *ProjectServiceImpl) Get(ctx context.Context, id string) (*model.Project, error) {
	if id == "" {
		return nil, errors.New("validation: empty project id")
	}
	return s.projects.GetByID(ctx, id)
}
