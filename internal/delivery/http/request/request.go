package request

type AddVersionRequest struct {
	Project string `json:"project"`
}

type DelVersionRequest struct {
	Project string `json:"project"`
	Version int    `json:"version"`
}

type ScheduleRequest struct {
	Project string            `json:"project"`
	Spider  string            `json:"spider"`
	Version int               `json:"version,omitempty"`
	SKUs    []string          `json:"skus,omitempty"`
	Domain  string            `json:"domain,omitempty"`
	URLs    []string          `json:"urls,omitempty"`
	Extra   map[string]string `json:"extra,omitempty"`
}

type CancelRequest struct {
	JobID string `json:"job_id"`
}
