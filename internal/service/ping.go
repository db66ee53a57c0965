package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pulsewatch/pulsewatch/internal/core"
	"github.com/pulsewatch/pulsewatch/internal/data"
	"github.com/pulsewatch/pulsewatch/internal/domain/model"
	"github.com/pulsewatch/pulsewatch/internal/domain/schedule"
	"github.com/pulsewatch/pulsewatch/internal/notify"
	"github.com/pulsewatch/pulsewatch/internal/observability/statsd"
	"github.com/pulsewatch/pulsewatch/internal/service/dispatcher"
)

const (
	// tokenCacheTTL bounds how long a token→job-id mapping is cached. The
	// mapping is immutable for the life of a job, so a long TTL is safe; the
	// fresh row is always re-read by id.
	tokenCacheTTL = 24 * time.Hour

	// maxOutputLogBytes caps the stored execution output.
	maxOutputLogBytes = 64 * 1024
)

// ErrUnknownPingToken is returned when no job matches the presented token.
var ErrUnknownPingToken = errors.New("unknown ping token")

// PingSubmission carries the optional execution details attached to a ping.
// Zero values mean "a bare ping": status success, timestamps now.
type PingSubmission struct {
	Status    model.ExecutionStatus
	OutputLog string
	StartedAt *time.Time
	EndedAt   *time.Time
}

// PingServiceOptions groups dependencies for PingService.
type PingServiceOptions struct {
	Jobs       core.MonitoredJobRepository // Required: job store
	Executions core.ExecutionRepository    // Required: execution log
	Cache      core.CacheRepository        // Optional: token→job-id cache
	CacheTTL   time.Duration               // Optional: token cache lifetime, default 24h
	Dispatcher *dispatcher.Dispatcher      // Optional: recovery notifications
	Logger     *slog.Logger                // Optional: structured logger
	Metrics    statsd.Sink                 // Optional: ingest counters
}

// PingService ingests heartbeat pings: it resolves the token, applies the
// atomic ping write, appends the execution record and raises a recovery event
// when the ping pulls a job out of late or errored.
type PingService struct {
	jobs       core.MonitoredJobRepository
	executions core.ExecutionRepository
	cache      core.CacheRepository
	cacheTTL   time.Duration
	dispatcher *dispatcher.Dispatcher
	logger     *slog.Logger
	metrics    statsd.Sink
}

// NewPingService constructs a new PingService.
func NewPingService(opts PingServiceOptions) (*PingService, error) {
	if opts.Jobs == nil {
		return nil, errors.New("MonitoredJobRepository is required")
	}
	if opts.Executions == nil {
		return nil, errors.New("ExecutionRepository is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ttl := opts.CacheTTL
	if ttl <= 0 {
		ttl = tokenCacheTTL
	}

	return &PingService{
		jobs:       opts.Jobs,
		executions: opts.Executions,
		cache:      opts.Cache,
		cacheTTL:   ttl,
		dispatcher: opts.Dispatcher,
		logger:     logger.With("component", "ping_service"),
		metrics:    opts.Metrics,
	}, nil
}

// ProcessPing handles one inbound ping for the given token. The returned job
// reflects the state after the ping was applied.
//
// A ping is proof of life regardless of the execution status it carries, so
// even a ping reporting a failed run moves the job to healthy; the failure
// itself lives in the execution log.
func (s *PingService) ProcessPing(
	ctx context.Context,
	token string,
	sub PingSubmission,
) (*model.MonitoredJob, error) {
	if token == "" {
		return nil, ErrUnknownPingToken
	}

	now := time.Now().UTC()

	job, err := s.resolveJob(ctx, token)
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.Count("ping.received", 1, nil)
	}

	// Paused jobs are not monitored: the ping is archived but neither status
	// nor the due time moves.
	if job.Status == model.JobStatusPaused {
		s.appendExecution(ctx, job.ID, sub, now)
		return job, nil
	}

	wasAlertable := job.Status.Alertable()

	params := core.RecordPingParams{JobID: job.ID, Now: now}
	next, calcErr := schedule.NextPing(job.ScheduleType, job.ScheduleValue, now)
	if calcErr != nil {
		// Unparsable schedule: accept the ping, clear the due time and let the
		// operator fix the schedule. The job cannot go overdue meanwhile.
		s.logger.WarnContext(ctx, "schedule calculation failed, clearing due time",
			"job_id", job.ID,
			"schedule_type", job.ScheduleType,
			"schedule_value", job.ScheduleValue,
			"error", calcErr,
		)
	} else {
		params.ExpectedNextPingAt = &next
	}

	applied, err := s.jobs.RecordPing(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("record ping for job %s: %w", job.ID, err)
	}

	s.appendExecution(ctx, job.ID, sub, now)

	if !applied {
		// A newer ping already holds the row; this one only contributes its
		// execution record.
		s.logger.DebugContext(ctx, "stale ping ignored", "job_id", job.ID)
		return job, nil
	}

	job.Status = model.JobStatusHealthy
	job.LastPingedAt = &now
	job.ExpectedNextPingAt = params.ExpectedNextPingAt

	if wasAlertable {
		s.notifyRecovery(ctx, job, sub, now)
	}

	return job, nil
}

// resolveJob turns a ping token into a fresh job row, consulting the cache for
// the token→id mapping first. Cache trouble degrades to a direct lookup.
func (s *PingService) resolveJob(ctx context.Context, token string) (*model.MonitoredJob, error) {
	cacheKey := "ping:token:" + token

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, cacheKey)
		if err != nil {
			s.logger.WarnContext(ctx, "token cache read failed", "error", err)
		} else if len(cached) > 0 {
			job, err := s.jobs.GetForMonitor(ctx, string(cached))
			if err == nil {
				return job, nil
			}
			if !errors.Is(err, data.ErrJobNotFound) {
				return nil, fmt.Errorf("get job by cached id: %w", err)
			}
			// The job behind the mapping is gone; drop the stale entry.
			if _, delErr := s.cache.Delete(ctx, cacheKey); delErr != nil {
				s.logger.WarnContext(ctx, "token cache delete failed", "error", delErr)
			}
			return nil, ErrUnknownPingToken
		}
	}

	job, err := s.jobs.GetByPingToken(ctx, token)
	if err != nil {
		if errors.Is(err, data.ErrJobNotFound) {
			return nil, ErrUnknownPingToken
		}
		return nil, fmt.Errorf("get job by ping token: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, []byte(job.ID), s.cacheTTL); err != nil {
			s.logger.WarnContext(ctx, "token cache write failed", "error", err)
		}
	}
	return job, nil
}

// appendExecution archives the ping in the execution log. Failures here are
// logged, not returned: acknowledging the heartbeat outranks the audit trail.
func (s *PingService) appendExecution(
	ctx context.Context,
	jobID string,
	sub PingSubmission,
	now time.Time,
) {
	status := sub.Status
	if status == "" {
		status = model.ExecutionStatusSuccess
	}

	startedAt := now
	if sub.StartedAt != nil {
		startedAt = sub.StartedAt.UTC()
	}
	var endedAt *time.Time
	if sub.EndedAt != nil {
		t := sub.EndedAt.UTC()
		endedAt = &t
	}

	output := sub.OutputLog
	if len(output) > maxOutputLogBytes {
		output = output[:maxOutputLogBytes]
	}

	exec := &model.JobExecution{
		ID:        uuid.NewString(),
		JobID:     jobID,
		Status:    status,
		StartedAt: startedAt,
		EndedAt:   endedAt,
		OutputLog: output,
	}
	if err := s.executions.Append(ctx, exec); err != nil {
		s.logger.ErrorContext(ctx, "failed to append execution record",
			"job_id", jobID, "error", err)
	}
}

// notifyRecovery raises a recovery event in the background so delivery latency
// never delays the ping acknowledgement.
func (s *PingService) notifyRecovery(
	ctx context.Context,
	job *model.MonitoredJob,
	sub PingSubmission,
	now time.Time,
) {
	if s.metrics != nil {
		s.metrics.Count("ping.recovery", 1, nil)
	}
	s.logger.InfoContext(ctx, "job recovered", "job_id", job.ID, "job_name", job.Name)

	if s.dispatcher == nil {
		return
	}

	payload := notify.EventPayload{
		JobID:              job.ID,
		JobName:            job.Name,
		ScheduleType:       job.ScheduleType,
		ScheduleValue:      job.ScheduleValue,
		CurrentStatus:      model.JobStatusHealthy,
		EventKind:          notify.EventKindRecovery,
		LastPingedAt:       job.LastPingedAt,
		ExpectedNextPingAt: job.ExpectedNextPingAt,
		ExecutionLog:       sub.OutputLog,
		OccurredAt:         now,
	}

	go s.dispatcher.Dispatch(context.WithoutCancel(ctx), payload)
}
