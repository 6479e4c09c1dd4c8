package response

import "time"

type AddVersionResponse struct {
	Status  string `json:"status"`
	Project string `json:"project"`
	Version int    `json:"version"`
}

type ScheduleResponse struct {
	Status string `json:"status"`
	JobID  string `json:"job_id"`
}

// JobSummary is a DTO for one job, mirroring entity.Job. Status is reported
// both as the persisted code and its display label.
type JobSummary struct {
	ID          string            `json:"id"`
	Project     string            `json:"project"`
	Version     int               `json:"version"`
	Spider      string            `json:"spider"`
	Status      int               `json:"status"`
	StatusLabel string            `json:"status_label"`
	SKUs        []string          `json:"skus,omitempty"`
	Domain      string            `json:"domain,omitempty"`
	URLs        []string          `json:"urls,omitempty"`
	Extra       map[string]string `json:"extra,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}

type ListJobsResponse struct {
	Status string                `json:"status"`
	Jobs   map[string]JobSummary `json:"jobs"`
}
