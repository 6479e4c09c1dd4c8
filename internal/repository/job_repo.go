package repository

import (
	"context"

	"github.com/jas0nkim/pricewatch/internal/entity"
)

// JobRepository persists scheduled crawl jobs.
type JobRepository interface {
	// Create inserts a new job with its pre-generated id. Returns
	// ErrJobIDConflict if the id already exists and ErrProjectNotFound for an
	// unknown project.
	Create(ctx context.Context, job *entity.Job) error
	// FindByID retrieves a single job, or ErrJobNotFound.
	FindByID(ctx context.Context, id string) (*entity.Job, error)
	// ListByProject returns the project's jobs ordered by creation time,
	// optionally filtered by status.
	ListByProject(ctx context.Context, project string, status *entity.JobStatus) ([]*entity.Job, error)
	// TransitionStatus atomically moves a job to the given status, but only
	// if its current status is one of from (compare-and-swap). Returns
	// ErrJobNotFound or ErrInvalidTransition.
	TransitionStatus(ctx context.Context, id string, from []entity.JobStatus, to entity.JobStatus) error
}
