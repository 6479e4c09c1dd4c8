package entity

import "time"

// JobStatus tracks a scheduled crawl run through its lifecycle. The numeric
// codes are persisted and part of the external contract.
type JobStatus int16

const (
	JobStatusCanceled JobStatus = 0
	JobStatusPending  JobStatus = 1
	JobStatusRunning  JobStatus = 2
	JobStatusFinished JobStatus = 3
)

func (s JobStatus) String() string {
	switch s {
	case JobStatusCanceled:
		return "canceled"
	case JobStatusPending:
		return "pending"
	case JobStatusRunning:
		return "running"
	case JobStatusFinished:
		return "finished"
	}
	return "unknown"
}

// jobTransitions is the closed transition table. Finished and Canceled are
// terminal.
var jobTransitions = map[JobStatus][]JobStatus{
	JobStatusRunning:  {JobStatusPending},
	JobStatusFinished: {JobStatusRunning},
	JobStatusCanceled: {JobStatusPending, JobStatusRunning},
}

// TransitionSources returns the statuses a job may be in for a transition to
// the given target status to be legal. An empty slice means the target is
// unreachable (Pending is only ever set at creation).
func TransitionSources(to JobStatus) []JobStatus {
	return jobTransitions[to]
}

// CanTransition reports whether moving from s to the given status is legal.
func (s JobStatus) CanTransition(to JobStatus) bool {
	for _, from := range jobTransitions[to] {
		if from == s {
			return true
		}
	}
	return false
}

// JobArgs is the argument payload handed to the external execution layer.
// Exactly one of {SKUs+Domain} or {URLs} is populated. Extra carries arbitrary
// operator-injected key/value pairs.
type JobArgs struct {
	SKUs   []string          `json:"skus,omitempty"`
	Domain string            `json:"domain,omitempty"`
	URLs   []string          `json:"urls,omitempty"`
	Extra  map[string]string `json:"extra,omitempty"`
}

// Job is one scheduled crawl run. ID is a UUIDv4 string generated before
// persistence; Version is the project version number the job was scheduled
// under and never changes afterwards.
type Job struct {
	ID        string
	Project   string
	Version   int
	Spider    string
	Status    JobStatus
	Args      JobArgs
	CreatedAt time.Time
	UpdatedAt time.Time
}
