// Package repository defines storage interfaces implemented by concrete backends.
package repository

import (
	"context"

	"github.com/rechunk/rechunk/internal/model"
)

// ProjectRepository provides access to project records. Projects are immutable
// after creation; there is no update or delete.
type ProjectRepository interface {
	// Create inserts a new project with its credentials and key pair.
	Create(ctx context.Context, p *model.Project) error
	// GetByID loads a project by ID, including credential keys and the private
	// key for server-side use. Callers must sanitize before exposure.
	GetByID(ctx context.Context, id string) (*model.Project, error)
}
