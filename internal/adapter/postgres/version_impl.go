package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jas0nkim/pricewatch/internal/entity"
	"github.com/jas0nkim/pricewatch/internal/repository"
)

// VersionRepoImpl provides a concrete implementation for the
// VersionRepository interface using PostgreSQL.
type VersionRepoImpl struct {
	db *pgxpool.Pool
}

// NewVersionRepo creates a new instance of VersionRepoImpl.
func NewVersionRepo(db *pgxpool.Pool) *VersionRepoImpl {
	return &VersionRepoImpl{db: db}
}

// AddVersion allocates the next version number for the project inside the
// insert itself, so concurrent adds cannot hand out the same number.
func (r *VersionRepoImpl) AddVersion(ctx context.Context, project string) (int, error) {
	projectID, err := r.projectID(ctx, project)
	if err != nil {
		return 0, err
	}

	query := `
		INSERT INTO schedules_versions (project_id, number, status)
		SELECT $1, COALESCE(MAX(number), 0) + 1, $2
		FROM schedules_versions
		WHERE project_id = $1
		RETURNING number;
	`
	var number int
	if err := r.db.QueryRow(ctx, query, projectID, entity.VersionStatusAdded).Scan(&number); err != nil {
		return 0, err
	}
	return number, nil
}

// DeleteVersion soft-deletes a version unless a pending or running job still
// references it. The in-use guard lives in the update statement so the check
// and the flip are one atomic operation.
func (r *VersionRepoImpl) DeleteVersion(ctx context.Context, project string, number int) error {
	projectID, err := r.projectID(ctx, project)
	if err != nil {
		return err
	}

	query := `
		UPDATE schedules_versions v
		SET status = $3
		WHERE v.project_id = $1 AND v.number = $2
		  AND NOT EXISTS (
			SELECT 1 FROM schedules_jobs j
			WHERE j.project_id = v.project_id AND j.version = v.number
			  AND j.status IN ($4, $5)
		  );
	`
	tag, err := r.db.Exec(ctx, query, projectID, number,
		entity.VersionStatusDeleted, entity.JobStatusPending, entity.JobStatusRunning)
	if err != nil {
		return err
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	var exists bool
	check := `SELECT EXISTS(SELECT 1 FROM schedules_versions WHERE project_id = $1 AND number = $2);`
	if err := r.db.QueryRow(ctx, check, projectID, number).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return repository.ErrVersionNotFound
	}
	return repository.ErrVersionInUse
}

// ActiveVersion returns the most recently added, non-deleted version number.
func (r *VersionRepoImpl) ActiveVersion(ctx context.Context, project string) (int, error) {
	query := `
		SELECT v.number
		FROM schedules_versions v
		JOIN schedules_projects p ON p.id = v.project_id
		WHERE p.name = $1 AND v.status = $2
		ORDER BY v.number DESC
		LIMIT 1;
	`
	var number int
	err := r.db.QueryRow(ctx, query, project, entity.VersionStatusAdded).Scan(&number)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, repository.ErrNoActiveVersion
	}
	if err != nil {
		return 0, err
	}
	return number, nil
}

func (r *VersionRepoImpl) projectID(ctx context.Context, project string) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `SELECT id FROM schedules_projects WHERE name = $1;`, project).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, repository.ErrProjectNotFound
	}
	if err != nil {
		return 0, err
	}
	return id, nil
}
