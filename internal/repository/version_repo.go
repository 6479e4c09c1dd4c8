package repository

import "context"

// VersionRepository manages deployable version records per project.
type VersionRepository interface {
	// AddVersion allocates the next version number for the named project
	// (monotonic per project, starting at 1) and stores it with status Added.
	// Returns ErrProjectNotFound for an unknown project.
	AddVersion(ctx context.Context, project string) (int, error)
	// DeleteVersion soft-deletes a version. Returns ErrVersionNotFound if the
	// version does not exist and ErrVersionInUse if a pending or running job
	// still references it. Deleting an already-deleted version is a no-op.
	DeleteVersion(ctx context.Context, project string, number int) error
	// ActiveVersion returns the most recently added, non-deleted version
	// number, or ErrNoActiveVersion.
	ActiveVersion(ctx context.Context, project string) (int, error)
}
