package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/jas0nkim/pricewatch/internal/entity"
	"github.com/jas0nkim/pricewatch/internal/identity"
	"github.com/jas0nkim/pricewatch/internal/repository"
	"github.com/jas0nkim/pricewatch/pkg/metrics"
	"github.com/jas0nkim/pricewatch/pkg/utils"
)

// ErrInvalidArguments means the scheduling request supplied neither or both
// of the two mutually exclusive target modes (skus+domain, urls).
var ErrInvalidArguments = errors.New("exactly one of skus+domain or urls must be supplied")

// maxJobIDAttempts bounds the retry loop when the store rejects a freshly
// generated job id. Exhausting it points at a storage anomaly, not bad luck.
const maxJobIDAttempts = 3

// ScheduleRequest describes one crawl job to create. Version 0 means "use the
// project's active version". Extra carries operator-injected key/value pairs
// forwarded to the execution layer untouched.
type ScheduleRequest struct {
	Project string
	Spider  string
	Version int
	SKUs    []string
	Domain  string
	URLs    []string
	Extra   map[string]string
}

// Scheduler creates, lists and cancels crawl jobs and manages deployable
// versions per project.
type Scheduler interface {
	AddVersion(ctx context.Context, project string) (int, error)
	DeleteVersion(ctx context.Context, project string, version int) error
	ActiveVersion(ctx context.Context, project string) (int, error)
	Schedule(ctx context.Context, req ScheduleRequest) (string, error)
	ListJobs(ctx context.Context, project string, status *entity.JobStatus) (map[string]*entity.Job, error)
	MarkRunning(ctx context.Context, jobID string) error
	MarkFinished(ctx context.Context, jobID string) error
	Cancel(ctx context.Context, jobID string) error
	Close() error
}

type schedulerUseCase struct {
	versionRepo repository.VersionRepository
	jobRepo     repository.JobRepository
	dispatch    repository.DispatchQueue
	closers     []io.Closer
}

// NewScheduler creates the scheduler use case. Any closers passed in are
// released by Close, so callers can defer a single Close on every exit path.
func NewScheduler(
	versionRepo repository.VersionRepository,
	jobRepo repository.JobRepository,
	dispatch repository.DispatchQueue,
	closers ...io.Closer,
) Scheduler {
	return &schedulerUseCase{
		versionRepo: versionRepo,
		jobRepo:     jobRepo,
		dispatch:    dispatch,
		closers:     closers,
	}
}

func (uc *schedulerUseCase) AddVersion(ctx context.Context, project string) (int, error) {
	number, err := uc.versionRepo.AddVersion(ctx, project)
	if err != nil {
		return 0, fmt.Errorf("failed to add version for project %s: %w", project, err)
	}
	slog.Info("Version added", "project", project, "version", number)
	return number, nil
}

func (uc *schedulerUseCase) DeleteVersion(ctx context.Context, project string, version int) error {
	if err := uc.versionRepo.DeleteVersion(ctx, project, version); err != nil {
		return fmt.Errorf("failed to delete version %d of project %s: %w", version, project, err)
	}
	slog.Info("Version deleted", "project", project, "version", version)
	return nil
}

func (uc *schedulerUseCase) ActiveVersion(ctx context.Context, project string) (int, error) {
	return uc.versionRepo.ActiveVersion(ctx, project)
}

// Schedule validates the target mode, resolves the version, deduplicates the
// target list, persists the job as Pending and hands it to the dispatch
// queue. A dispatch push failure is logged but not returned: the job is
// durable and an executor can still pick it up.
func (uc *schedulerUseCase) Schedule(ctx context.Context, req ScheduleRequest) (string, error) {
	args, err := buildJobArgs(req)
	if err != nil {
		return "", err
	}

	version := req.Version
	if version == 0 {
		version, err = uc.versionRepo.ActiveVersion(ctx, req.Project)
		if err != nil {
			return "", fmt.Errorf("failed to resolve version for project %s: %w", req.Project, err)
		}
	}

	for attempt := 1; attempt <= maxJobIDAttempts; attempt++ {
		jobID, err := identity.NewJobID()
		if err != nil {
			return "", err
		}
		job := &entity.Job{
			ID:      jobID,
			Project: req.Project,
			Version: version,
			Spider:  req.Spider,
			Status:  entity.JobStatusPending,
			Args:    args,
		}
		if err := uc.jobRepo.Create(ctx, job); err != nil {
			if errors.Is(err, repository.ErrJobIDConflict) {
				slog.Warn("Job id collision, regenerating", "job_id", jobID, "attempt", attempt)
				continue
			}
			return "", fmt.Errorf("failed to create job: %w", err)
		}

		metrics.JobsScheduledTotal.WithLabelValues(req.Project, req.Spider).Inc()
		if err := uc.dispatch.PushJob(ctx, jobID); err != nil {
			slog.Warn("Failed to push job to dispatch queue", "job_id", jobID, "error", err)
		}
		slog.Info("Job scheduled", "job_id", jobID, "project", req.Project, "spider", req.Spider, "version", version)
		return jobID, nil
	}
	return "", fmt.Errorf("exhausted %d job id attempts: %w", maxJobIDAttempts, repository.ErrJobIDConflict)
}

func (uc *schedulerUseCase) ListJobs(ctx context.Context, project string, status *entity.JobStatus) (map[string]*entity.Job, error) {
	jobs, err := uc.jobRepo.ListByProject(ctx, project, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs for project %s: %w", project, err)
	}
	result := make(map[string]*entity.Job, len(jobs))
	for _, job := range jobs {
		result[job.ID] = job
	}
	return result, nil
}

func (uc *schedulerUseCase) MarkRunning(ctx context.Context, jobID string) error {
	return uc.transition(ctx, jobID, entity.JobStatusRunning)
}

func (uc *schedulerUseCase) MarkFinished(ctx context.Context, jobID string) error {
	return uc.transition(ctx, jobID, entity.JobStatusFinished)
}

func (uc *schedulerUseCase) Cancel(ctx context.Context, jobID string) error {
	return uc.transition(ctx, jobID, entity.JobStatusCanceled)
}

// transition applies the state machine via a compare-and-swap in the store,
// so a race between two callers resolves to exactly one winner.
func (uc *schedulerUseCase) transition(ctx context.Context, jobID string, to entity.JobStatus) error {
	if err := uc.jobRepo.TransitionStatus(ctx, jobID, entity.TransitionSources(to), to); err != nil {
		return fmt.Errorf("failed to mark job %s %s: %w", jobID, to, err)
	}
	metrics.JobTransitionsTotal.WithLabelValues(to.String()).Inc()
	slog.Info("Job status changed", "job_id", jobID, "status", to.String())
	return nil
}

func (uc *schedulerUseCase) Close() error {
	var errs []error
	for _, c := range uc.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func buildJobArgs(req ScheduleRequest) (entity.JobArgs, error) {
	hasSKUs := len(req.SKUs) > 0
	hasURLs := len(req.URLs) > 0
	if hasSKUs == hasURLs || (hasSKUs && req.Domain == "") {
		return entity.JobArgs{}, ErrInvalidArguments
	}
	args := entity.JobArgs{Extra: req.Extra}
	if hasSKUs {
		args.SKUs = utils.DedupeTargets(req.SKUs)
		args.Domain = req.Domain
	} else {
		args.URLs = utils.DedupeTargets(req.URLs)
	}
	return args, nil
}
