package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/pulsewatch/pulsewatch/internal/domain/model"
	"github.com/pulsewatch/pulsewatch/internal/service"
)

// maxPingBodyBytes bounds how much of a ping body we read. Larger output logs
// are truncated by the ping service, not rejected here.
const maxPingBodyBytes = 1 << 20

// PingHandlers provides the unauthenticated ping ingest endpoints.
type PingHandlers struct {
	Svc *service.PingService
}

// pingRequest is the optional JSON body of a ping. A bare request (empty body,
// or a GET) reports a successful run.
type pingRequest struct {
	Status    string     `json:"status"`
	OutputLog string     `json:"output_log"`
	StartedAt *time.Time `json:"started_at"`
	EndedAt   *time.Time `json:"ended_at"`
}

// Ping handles heartbeat pings. Token lookup is the only gate; there is no
// authentication on this path so cron jobs can call it with plain curl.
func (h *PingHandlers) Ping(w http.ResponseWriter, r *http.Request) {
	sub, err := parsePingBody(r)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_ping", Err: err})
		return
	}

	job, err := h.Svc.ProcessPing(r.Context(), r.PathValue("token"), sub)
	if err != nil {
		writeServiceError(w, "ping_failed", err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"status":     "ok",
		"job_status": string(job.Status),
	})
}

// parsePingBody reads the optional submission body. An empty body or a GET
// reports a bare success. A JSON body may carry a status and run details; any
// other body also counts as a success, with the text kept as the output log so
// `curl -d "$(tail mylog)"` works without ceremony.
func parsePingBody(r *http.Request) (service.PingSubmission, error) {
	sub := service.PingSubmission{Status: model.ExecutionStatusSuccess}

	if r.Method == http.MethodGet || r.Body == nil {
		return sub, nil
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxPingBodyBytes))
	if err != nil {
		return sub, errors.New("read request body")
	}
	if len(body) == 0 {
		return sub, nil
	}

	var req pingRequest
	if err := json.Unmarshal(body, &req); err != nil {
		sub.OutputLog = string(body)
		return sub, nil
	}

	if req.Status != "" {
		status := model.ExecutionStatus(req.Status)
		switch status {
		case model.ExecutionStatusSuccess, model.ExecutionStatusFailed, model.ExecutionStatusSkipped:
			sub.Status = status
		default:
			return sub, errors.New("status must be success, failed or skipped")
		}
	}

	sub.OutputLog = req.OutputLog
	sub.StartedAt = req.StartedAt
	sub.EndedAt = req.EndedAt
	return sub, nil
}
