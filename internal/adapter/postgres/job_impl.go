package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jas0nkim/pricewatch/internal/entity"
	"github.com/jas0nkim/pricewatch/internal/repository"
)

const uniqueViolationCode = "23505"

// JobRepoImpl provides a concrete implementation for the JobRepository
// interface using PostgreSQL.
type JobRepoImpl struct {
	db *pgxpool.Pool
}

// NewJobRepo creates a new instance of JobRepoImpl.
func NewJobRepo(db *pgxpool.Pool) *JobRepoImpl {
	return &JobRepoImpl{db: db}
}

// Create inserts a new job row with its pre-generated id. A primary key
// violation maps to ErrJobIDConflict so the scheduler can retry with a fresh
// id.
func (r *JobRepoImpl) Create(ctx context.Context, job *entity.Job) error {
	argsJSON, err := json.Marshal(job.Args)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO schedules_jobs (id, project_id, version, spider, status, args)
		SELECT $1, p.id, $3, $4, $5, $6
		FROM schedules_projects p
		WHERE p.name = $2
		RETURNING created_at, updated_at;
	`
	err = r.db.QueryRow(ctx, query,
		job.ID, job.Project, job.Version, job.Spider, job.Status, argsJSON,
	).Scan(&job.CreatedAt, &job.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrProjectNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return repository.ErrJobIDConflict
	}
	return err
}

// FindByID retrieves a single job.
func (r *JobRepoImpl) FindByID(ctx context.Context, id string) (*entity.Job, error) {
	query := `
		SELECT j.id, p.name, j.version, j.spider, j.status, j.args, j.created_at, j.updated_at
		FROM schedules_jobs j
		JOIN schedules_projects p ON p.id = j.project_id
		WHERE j.id = $1;
	`
	job, err := scanJob(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrJobNotFound
	}
	if err != nil {
		return nil, err
	}
	return job, nil
}

// ListByProject returns the project's jobs ordered by creation time,
// optionally filtered by status.
func (r *JobRepoImpl) ListByProject(ctx context.Context, project string, status *entity.JobStatus) ([]*entity.Job, error) {
	query := `
		SELECT j.id, p.name, j.version, j.spider, j.status, j.args, j.created_at, j.updated_at
		FROM schedules_jobs j
		JOIN schedules_projects p ON p.id = j.project_id
		WHERE p.name = $1
	`
	args := []any{project}
	if status != nil {
		query += ` AND j.status = $2`
		args = append(args, *status)
	}
	query += ` ORDER BY j.created_at ASC;`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []*entity.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

// TransitionStatus applies a compare-and-swap status update: the row only
// changes when its current status is one of from.
func (r *JobRepoImpl) TransitionStatus(ctx context.Context, id string, from []entity.JobStatus, to entity.JobStatus) error {
	froms := make([]int16, len(from))
	for i, s := range from {
		froms[i] = int16(s)
	}

	query := `
		UPDATE schedules_jobs
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = ANY($3);
	`
	tag, err := r.db.Exec(ctx, query, to, id, froms)
	if err != nil {
		return err
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM schedules_jobs WHERE id = $1);`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return repository.ErrJobNotFound
	}
	return repository.ErrInvalidTransition
}

func scanJob(row pgx.Row) (*entity.Job, error) {
	var job entity.Job
	var argsJSON []byte
	err := row.Scan(&job.ID, &job.Project, &job.Version, &job.Spider, &job.Status, &argsJSON, &job.CreatedAt, &job.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(argsJSON, &job.Args); err != nil {
		return nil, err
	}
	return &job, nil
}
