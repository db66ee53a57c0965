package httpx

import (
	"log/slog"
	"net/http"

	"github.com/pulsewatch/pulsewatch/internal/ports"
	"github.com/pulsewatch/pulsewatch/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Jobs     *service.JobService
	Pings    *service.PingService
	Channels *service.ChannelService
	Settings *service.SettingService

	// Verifier authenticates the /api routes. Ping and health stay open.
	Verifier ports.TokenVerifier

	// BaseURL renders absolute ping URLs in job responses.
	BaseURL string

	Logger *slog.Logger
}

// NewRouter creates and configures the HTTP router.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	jobs := &JobHandlers{Svc: services.Jobs, BaseURL: services.BaseURL}
	pings := &PingHandlers{Svc: services.Pings}
	channels := &ChannelHandlers{Svc: services.Channels}
	settings := &SettingHandlers{Svc: services.Settings}

	auth := RequireAuth(services.Verifier)

	// Unauthenticated surface: heartbeat ingest and health checks.
	mux.Handle("POST /ping/{token}", http.HandlerFunc(pings.Ping))
	mux.Handle("GET /ping/{token}", http.HandlerFunc(pings.Ping))
	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	// Job CRUD and lifecycle.
	mux.Handle("POST /api/jobs", auth(http.HandlerFunc(jobs.CreateJob)))
	mux.Handle("GET /api/jobs", auth(http.HandlerFunc(jobs.ListJobs)))
	mux.Handle("GET /api/jobs/{id}", auth(http.HandlerFunc(jobs.GetJob)))
	mux.Handle("PATCH /api/jobs/{id}", auth(http.HandlerFunc(jobs.UpdateJob)))
	mux.Handle("DELETE /api/jobs/{id}", auth(http.HandlerFunc(jobs.DeleteJob)))
	mux.Handle("POST /api/jobs/{id}/pause", auth(http.HandlerFunc(jobs.PauseJob)))
	mux.Handle("POST /api/jobs/{id}/resume", auth(http.HandlerFunc(jobs.ResumeJob)))
	mux.Handle("GET /api/jobs/{id}/executions", auth(http.HandlerFunc(jobs.ListExecutions)))

	// Notification channels.
	mux.Handle("POST /api/channels", auth(http.HandlerFunc(channels.CreateChannel)))
	mux.Handle("GET /api/channels", auth(http.HandlerFunc(channels.ListChannels)))
	mux.Handle("GET /api/channels/{id}", auth(http.HandlerFunc(channels.GetChannel)))
	mux.Handle("PATCH /api/channels/{id}", auth(http.HandlerFunc(channels.UpdateChannel)))
	mux.Handle("DELETE /api/channels/{id}", auth(http.HandlerFunc(channels.DeleteChannel)))
	mux.Handle("POST /api/channels/{id}/verify", auth(http.HandlerFunc(channels.VerifyChannel)))

	// Per-job notification bindings.
	mux.Handle("GET /api/jobs/{id}/notifications", auth(http.HandlerFunc(settings.ListSettings)))
	mux.Handle("PUT /api/jobs/{id}/notifications", auth(http.HandlerFunc(settings.UpsertSetting)))
	mux.Handle("DELETE /api/notifications/{id}", auth(http.HandlerFunc(settings.DeleteSetting)))

	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return Recover(logger)(Logging(logger)(mux))
}
