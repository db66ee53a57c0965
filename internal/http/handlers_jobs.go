package httpx

import (
	"net/http"
	"strings"

	"github.com/pulsewatch/pulsewatch/internal/domain/model"
	"github.com/pulsewatch/pulsewatch/internal/service"
)

// JobHandlers provides HTTP handlers for monitored-job operations.
type JobHandlers struct {
	Svc *service.JobService
	// BaseURL is used to render the absolute ping URL for each job.
	BaseURL string
}

// jobResponse decorates a job with its ready-to-paste ping URL.
type jobResponse struct {
	*model.MonitoredJob
	PingURL string `json:"ping_url"`
}

func (h *JobHandlers) respond(job *model.MonitoredJob) jobResponse {
	return jobResponse{
		MonitoredJob: job,
		PingURL:      strings.TrimSuffix(h.BaseURL, "/") + "/ping/" + job.PingToken,
	}
}

// CreateJob handles HTTP requests to register a new monitored job.
func (h *JobHandlers) CreateJob(w http.ResponseWriter, r *http.Request) {
	account, ok := accountID(w, r)
	if !ok {
		return
	}

	var req model.CreateJobRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	job, err := h.Svc.Create(r.Context(), account, &req)
	if err != nil {
		writeServiceError(w, "create_failed", err)
		return
	}

	WriteJSON(w, http.StatusCreated, h.respond(job))
}

// ListJobs handles HTTP requests to list the account's monitored jobs.
func (h *JobHandlers) ListJobs(w http.ResponseWriter, r *http.Request) {
	account, ok := accountID(w, r)
	if !ok {
		return
	}

	jobs, err := h.Svc.List(r.Context(), account)
	if err != nil {
		writeServiceError(w, "list_failed", err)
		return
	}

	out := make([]jobResponse, 0, len(jobs))
	for _, job := range jobs {
		out = append(out, h.respond(job))
	}
	WriteJSON(w, http.StatusOK, out)
}

// GetJob handles HTTP requests to fetch a single monitored job.
func (h *JobHandlers) GetJob(w http.ResponseWriter, r *http.Request) {
	account, ok := accountID(w, r)
	if !ok {
		return
	}

	job, err := h.Svc.GetByID(r.Context(), account, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, "get_failed", err)
		return
	}

	WriteJSON(w, http.StatusOK, h.respond(job))
}

// UpdateJob handles HTTP requests to modify a monitored job. Schedule changes
// recompute the job's expected next ping.
func (h *JobHandlers) UpdateJob(w http.ResponseWriter, r *http.Request) {
	account, ok := accountID(w, r)
	if !ok {
		return
	}

	var req model.UpdateJobRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	job, err := h.Svc.Update(r.Context(), account, r.PathValue("id"), &req)
	if err != nil {
		writeServiceError(w, "update_failed", err)
		return
	}

	WriteJSON(w, http.StatusOK, h.respond(job))
}

// DeleteJob handles HTTP requests to delete a monitored job along with its
// executions and notification bindings.
func (h *JobHandlers) DeleteJob(w http.ResponseWriter, r *http.Request) {
	account, ok := accountID(w, r)
	if !ok {
		return
	}

	if err := h.Svc.Delete(r.Context(), account, r.PathValue("id")); err != nil {
		writeServiceError(w, "delete_failed", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// PauseJob handles HTTP requests to suspend monitoring for a job.
func (h *JobHandlers) PauseJob(w http.ResponseWriter, r *http.Request) {
	account, ok := accountID(w, r)
	if !ok {
		return
	}

	if err := h.Svc.Pause(r.Context(), account, r.PathValue("id")); err != nil {
		writeServiceError(w, "pause_failed", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ResumeJob handles HTTP requests to resume monitoring for a paused job.
func (h *JobHandlers) ResumeJob(w http.ResponseWriter, r *http.Request) {
	account, ok := accountID(w, r)
	if !ok {
		return
	}

	if err := h.Svc.Resume(r.Context(), account, r.PathValue("id")); err != nil {
		writeServiceError(w, "resume_failed", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

const defaultExecutionLimit = 50

// ListExecutions handles HTTP requests for a job's recent execution log.
func (h *JobHandlers) ListExecutions(w http.ResponseWriter, r *http.Request) {
	account, ok := accountID(w, r)
	if !ok {
		return
	}

	limit := parseIntQuery(r, "limit", defaultExecutionLimit)
	execs, err := h.Svc.ListExecutions(r.Context(), account, r.PathValue("id"), limit)
	if err != nil {
		writeServiceError(w, "list_failed", err)
		return
	}

	WriteJSON(w, http.StatusOK, execs)
}
