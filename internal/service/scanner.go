package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pulsewatch/pulsewatch/internal/core"
	"github.com/pulsewatch/pulsewatch/internal/domain/model"
	"github.com/pulsewatch/pulsewatch/internal/domain/schedule"
	"github.com/pulsewatch/pulsewatch/internal/notify"
	"github.com/pulsewatch/pulsewatch/internal/observability/statsd"
	"github.com/pulsewatch/pulsewatch/internal/service/dispatcher"
)

// ScannerServiceOptions groups dependencies for ScannerService.
type ScannerServiceOptions struct {
	Jobs       core.MonitoredJobRepository // Required: job store
	Executions core.ExecutionRepository    // Required: execution log
	Dispatcher *dispatcher.Dispatcher      // Optional: lateness/failure notifications
	Config     core.ScannerConfig          // Optional: zero value takes defaults
	Logger     *slog.Logger                // Optional: structured logger
	Metrics    statsd.Sink                 // Optional: scan metrics
}

// ScannerService classifies overdue jobs as late or errored. It never marks a
// job healthy; only a ping does that.
type ScannerService struct {
	jobs       core.MonitoredJobRepository
	executions core.ExecutionRepository
	dispatcher *dispatcher.Dispatcher
	cfg        core.ScannerConfig
	logger     *slog.Logger
	metrics    statsd.Sink
}

var _ core.LateJobScanner = (*ScannerService)(nil)

// NewScannerService constructs a new ScannerService.
func NewScannerService(opts ScannerServiceOptions) (*ScannerService, error) {
	if opts.Jobs == nil {
		return nil, errors.New("MonitoredJobRepository is required")
	}
	if opts.Executions == nil {
		return nil, errors.New("ExecutionRepository is required")
	}

	cfg := opts.Config
	cfg.Sanitize()

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &ScannerService{
		jobs:       opts.Jobs,
		executions: opts.Executions,
		dispatcher: opts.Dispatcher,
		cfg:        cfg,
		logger:     logger.With("component", "late_job_scanner"),
		metrics:    opts.Metrics,
	}, nil
}

// Tick runs one scan pass: it loads overdue jobs, classifies each one and
// applies the transition with an optimistic guard so a ping racing the scan
// always wins. Per-job failures are logged and skipped; only a failure of the
// overdue query itself aborts the tick.
func (s *ScannerService) Tick(ctx context.Context, now time.Time) (int, error) {
	started := time.Now()

	overdue, err := s.jobs.FindOverdue(ctx, now, s.cfg.BatchSize)
	if err != nil {
		return 0, fmt.Errorf("find overdue jobs: %w", err)
	}

	if s.metrics != nil {
		s.metrics.Gauge("scanner.overdue", float64(len(overdue)), nil)
	}

	transitioned := 0
	for _, job := range overdue {
		if job.ExpectedNextPingAt == nil {
			// FindOverdue filters these out; guard against a repo that doesn't.
			continue
		}

		newStatus := s.classify(ctx, job, now)
		if newStatus == job.Status {
			continue
		}

		applied, markErr := s.jobs.MarkOverdue(ctx, core.MarkOverdueParams{
			JobID:              job.ID,
			FromStatus:         job.Status,
			ExpectedNextPingAt: *job.ExpectedNextPingAt,
			NewStatus:          newStatus,
			Now:                now,
		})
		if markErr != nil {
			s.logger.ErrorContext(ctx, "failed to mark job overdue",
				"job_id", job.ID, "new_status", newStatus, "error", markErr)
			continue
		}
		if !applied {
			s.logger.DebugContext(ctx, "job changed underneath the scanner, skipping",
				"job_id", job.ID)
			continue
		}

		transitioned++
		s.logger.InfoContext(ctx, "job marked overdue",
			"job_id", job.ID,
			"job_name", job.Name,
			"from_status", job.Status,
			"new_status", newStatus,
		)

		s.recordTransition(ctx, job, newStatus, now)
		s.notifyTransition(ctx, job, newStatus, now)
	}

	if s.metrics != nil {
		s.metrics.Count("scanner.transitions", int64(transitioned), nil)
		s.metrics.Timing("scanner.tick", time.Since(started), nil)
	}
	return transitioned, nil
}

// classify decides the target status for an overdue job. A job far enough past
// its due time escalates from late to errored; everything else becomes (or
// stays) late. A schedule that no longer parses blocks escalation because the
// nominal period is unknown.
func (s *ScannerService) classify(
	ctx context.Context,
	job *model.MonitoredJob,
	now time.Time,
) model.JobStatus {
	// Measured from the due time itself, not the end of the grace window: the
	// threshold already accounts for the grace period.
	overdueBy := now.Sub(*job.ExpectedNextPingAt)

	period, err := schedule.NominalPeriod(job.ScheduleType, job.ScheduleValue)
	if err != nil {
		s.logger.WarnContext(ctx, "cannot compute nominal period, skipping escalation",
			"job_id", job.ID,
			"schedule_type", job.ScheduleType,
			"schedule_value", job.ScheduleValue,
			"error", err,
		)
		return model.JobStatusLate
	}

	threshold := time.Duration(s.cfg.EscalationMultiplier * float64(job.GracePeriod()+period))
	if overdueBy > threshold {
		return model.JobStatusErrored
	}
	return model.JobStatusLate
}

// recordTransition archives the missed window in the execution log.
func (s *ScannerService) recordTransition(
	ctx context.Context,
	job *model.MonitoredJob,
	newStatus model.JobStatus,
	now time.Time,
) {
	execStatus := model.ExecutionStatusLate
	if newStatus == model.JobStatusErrored {
		execStatus = model.ExecutionStatusErrored
	}

	exec := &model.JobExecution{
		ID:        uuid.NewString(),
		JobID:     job.ID,
		Status:    execStatus,
		StartedAt: now,
		OutputLog: fmt.Sprintf("expected ping by %s was not received",
			job.ExpectedNextPingAt.UTC().Format(time.RFC3339)),
	}
	if err := s.executions.Append(ctx, exec); err != nil {
		s.logger.ErrorContext(ctx, "failed to append execution record",
			"job_id", job.ID, "error", err)
	}
}

func (s *ScannerService) notifyTransition(
	ctx context.Context,
	job *model.MonitoredJob,
	newStatus model.JobStatus,
	now time.Time,
) {
	if s.dispatcher == nil {
		return
	}

	kind := notify.EventKindLateness
	if newStatus == model.JobStatusErrored {
		kind = notify.EventKindFailure
	}

	s.dispatcher.Dispatch(ctx, notify.EventPayload{
		JobID:              job.ID,
		JobName:            job.Name,
		ScheduleType:       job.ScheduleType,
		ScheduleValue:      job.ScheduleValue,
		CurrentStatus:      newStatus,
		EventKind:          kind,
		LastPingedAt:       job.LastPingedAt,
		ExpectedNextPingAt: job.ExpectedNextPingAt,
		OccurredAt:         now,
	})
}
