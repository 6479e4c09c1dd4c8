package repository

import "errors"

// Referential and storage errors surfaced synchronously to scheduling
// callers. None of these are retried automatically; ErrJobIDConflict is the
// one exception, retried a bounded number of times with fresh ids by the
// scheduler.
var (
	ErrProjectNotFound   = errors.New("project not found")
	ErrVersionNotFound   = errors.New("version not found")
	ErrNoActiveVersion   = errors.New("project has no active version")
	ErrVersionInUse      = errors.New("version is referenced by pending or running jobs")
	ErrJobNotFound       = errors.New("job not found")
	ErrJobIDConflict     = errors.New("job id already exists")
	ErrInvalidTransition = errors.New("job status transition not allowed")
	ErrRawDataNotFound   = errors.New("raw data not found")
	ErrQueueEmpty        = errors.New("queue is empty")
)
