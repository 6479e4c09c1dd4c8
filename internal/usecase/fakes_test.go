package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jas0nkim/pricewatch/internal/entity"
	"github.com/jas0nkim/pricewatch/internal/repository"
)

// fakeStore is an in-memory stand-in for the postgres-backed version and job
// repositories, with the same locking and compare-and-swap semantics.
type fakeStore struct {
	mu             sync.Mutex
	projects       map[string]struct{}
	versions       map[string][]*fakeVersion
	jobs           map[string]*entity.Job
	forceConflicts int
	clock          time.Time
}

type fakeVersion struct {
	number int
	status entity.VersionStatus
}

func newFakeStore(projects ...string) *fakeStore {
	s := &fakeStore{
		projects: make(map[string]struct{}),
		versions: make(map[string][]*fakeVersion),
		jobs:     make(map[string]*entity.Job),
		clock:    time.Now(),
	}
	for _, p := range projects {
		s.projects[p] = struct{}{}
	}
	return s
}

func (s *fakeStore) AddVersion(_ context.Context, project string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[project]; !ok {
		return 0, repository.ErrProjectNotFound
	}
	next := 1
	for _, v := range s.versions[project] {
		if v.number >= next {
			next = v.number + 1
		}
	}
	s.versions[project] = append(s.versions[project], &fakeVersion{number: next, status: entity.VersionStatusAdded})
	return next, nil
}

func (s *fakeStore) DeleteVersion(_ context.Context, project string, number int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[project]; !ok {
		return repository.ErrProjectNotFound
	}
	for _, v := range s.versions[project] {
		if v.number != number {
			continue
		}
		for _, job := range s.jobs {
			if job.Project == project && job.Version == number &&
				(job.Status == entity.JobStatusPending || job.Status == entity.JobStatusRunning) {
				return repository.ErrVersionInUse
			}
		}
		v.status = entity.VersionStatusDeleted
		return nil
	}
	return repository.ErrVersionNotFound
}

func (s *fakeStore) ActiveVersion(_ context.Context, project string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	active := 0
	for _, v := range s.versions[project] {
		if v.status == entity.VersionStatusAdded && v.number > active {
			active = v.number
		}
	}
	if active == 0 {
		return 0, repository.ErrNoActiveVersion
	}
	return active, nil
}

func (s *fakeStore) Create(_ context.Context, job *entity.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[job.Project]; !ok {
		return repository.ErrProjectNotFound
	}
	if s.forceConflicts > 0 {
		s.forceConflicts--
		return repository.ErrJobIDConflict
	}
	if _, ok := s.jobs[job.ID]; ok {
		return repository.ErrJobIDConflict
	}
	s.clock = s.clock.Add(time.Millisecond)
	job.CreatedAt = s.clock
	job.UpdatedAt = s.clock
	s.jobs[job.ID] = job
	return nil
}

func (s *fakeStore) FindByID(_ context.Context, id string) (*entity.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[id]
	if !ok {
		return nil, repository.ErrJobNotFound
	}
	return job, nil
}

func (s *fakeStore) ListByProject(_ context.Context, project string, status *entity.JobStatus) ([]*entity.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var jobs []*entity.Job
	for _, job := range s.jobs {
		if job.Project != project {
			continue
		}
		if status != nil && job.Status != *status {
			continue
		}
		jobs = append(jobs, job)
	}
	sort.Slice(jobs, func(i, j int) bool { return jobs[i].CreatedAt.Before(jobs[j].CreatedAt) })
	return jobs, nil
}

func (s *fakeStore) TransitionStatus(_ context.Context, id string, from []entity.JobStatus, to entity.JobStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[id]
	if !ok {
		return repository.ErrJobNotFound
	}
	for _, f := range from {
		if job.Status == f {
			job.Status = to
			return nil
		}
	}
	return repository.ErrInvalidTransition
}

type fakeDispatchQueue struct {
	mu     sync.Mutex
	jobIDs []string
}

func (q *fakeDispatchQueue) PushJob(_ context.Context, jobID string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.jobIDs = append(q.jobIDs, jobID)
	return nil
}

func (q *fakeDispatchQueue) PopJob(_ context.Context) (string, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.jobIDs) == 0 {
		return "", repository.ErrQueueEmpty
	}
	jobID := q.jobIDs[0]
	q.jobIDs = q.jobIDs[1:]
	return jobID, nil
}

type countingCloser struct {
	closed int
	err    error
}

func (c *countingCloser) Close() error {
	c.closed++
	return c.err
}
