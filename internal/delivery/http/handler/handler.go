package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/jas0nkim/pricewatch/internal/delivery/http/request"
	"github.com/jas0nkim/pricewatch/internal/delivery/http/response"
	"github.com/jas0nkim/pricewatch/internal/entity"
	"github.com/jas0nkim/pricewatch/internal/repository"
	"github.com/jas0nkim/pricewatch/internal/usecase"
)

type Handler struct {
	scheduler usecase.Scheduler
}

func NewHandler(scheduler usecase.Scheduler) *Handler {
	return &Handler{
		scheduler: scheduler,
	}
}

func (h *Handler) HandleAddVersion(w http.ResponseWriter, r *http.Request) {
	var req request.AddVersionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Project == "" {
		h.writeJSONError(w, "Project is required", http.StatusBadRequest)
		return
	}

	version, err := h.scheduler.AddVersion(r.Context(), req.Project)
	if err != nil {
		h.writeSchedulerError(w, "add version", err)
		return
	}
	h.writeJSON(w, http.StatusCreated, response.AddVersionResponse{
		Status:  "ok",
		Project: req.Project,
		Version: version,
	})
}

func (h *Handler) HandleDelVersion(w http.ResponseWriter, r *http.Request) {
	var req request.DelVersionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Project == "" || req.Version <= 0 {
		h.writeJSONError(w, "Project and version are required", http.StatusBadRequest)
		return
	}

	if err := h.scheduler.DeleteVersion(r.Context(), req.Project, req.Version); err != nil {
		h.writeSchedulerError(w, "delete version", err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) HandleSchedule(w http.ResponseWriter, r *http.Request) {
	var req request.ScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Project == "" || req.Spider == "" {
		h.writeJSONError(w, "Project and spider are required", http.StatusBadRequest)
		return
	}

	jobID, err := h.scheduler.Schedule(r.Context(), usecase.ScheduleRequest{
		Project: req.Project,
		Spider:  req.Spider,
		Version: req.Version,
		SKUs:    req.SKUs,
		Domain:  req.Domain,
		URLs:    req.URLs,
		Extra:   req.Extra,
	})
	if err != nil {
		h.writeSchedulerError(w, "schedule", err)
		return
	}
	h.writeJSON(w, http.StatusCreated, response.ScheduleResponse{Status: "ok", JobID: jobID})
}

func (h *Handler) HandleListJobs(w http.ResponseWriter, r *http.Request) {
	project := r.URL.Query().Get("project")
	if project == "" {
		h.writeJSONError(w, "Project query parameter is required", http.StatusBadRequest)
		return
	}
	var statusFilter *entity.JobStatus
	if s := r.URL.Query().Get("status"); s != "" {
		code, err := strconv.Atoi(s)
		if err != nil {
			h.writeJSONError(w, "Invalid status filter", http.StatusBadRequest)
			return
		}
		status := entity.JobStatus(code)
		statusFilter = &status
	}

	jobs, err := h.scheduler.ListJobs(r.Context(), project, statusFilter)
	if err != nil {
		h.writeSchedulerError(w, "list jobs", err)
		return
	}

	resp := response.ListJobsResponse{Status: "ok", Jobs: make(map[string]response.JobSummary, len(jobs))}
	for id, job := range jobs {
		resp.Jobs[id] = response.JobSummary{
			ID:          job.ID,
			Project:     job.Project,
			Version:     job.Version,
			Spider:      job.Spider,
			Status:      int(job.Status),
			StatusLabel: job.Status.String(),
			SKUs:        job.Args.SKUs,
			Domain:      job.Args.Domain,
			URLs:        job.Args.URLs,
			Extra:       job.Args.Extra,
			CreatedAt:   job.CreatedAt,
		}
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	var req request.CancelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.JobID == "" {
		h.writeJSONError(w, "Job id is required", http.StatusBadRequest)
		return
	}

	if err := h.scheduler.Cancel(r.Context(), req.JobID); err != nil {
		h.writeSchedulerError(w, "cancel", err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeSchedulerError maps the scheduling error taxonomy onto HTTP statuses:
// referential errors are 404, an in-use version is 409, invalid usage is 400,
// anything else is a logged 500.
func (h *Handler) writeSchedulerError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, repository.ErrProjectNotFound),
		errors.Is(err, repository.ErrVersionNotFound),
		errors.Is(err, repository.ErrNoActiveVersion),
		errors.Is(err, repository.ErrJobNotFound):
		h.writeJSONError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, repository.ErrVersionInUse):
		h.writeJSONError(w, err.Error(), http.StatusConflict)
	case errors.Is(err, usecase.ErrInvalidArguments),
		errors.Is(err, repository.ErrInvalidTransition):
		h.writeJSONError(w, err.Error(), http.StatusBadRequest)
	default:
		slog.Error("Scheduler operation failed", "op", op, "error", err)
		h.writeJSONError(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Failed to write JSON response", "error", err)
	}
}

func (h *Handler) writeJSONError(w http.ResponseWriter, message string, status int) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
