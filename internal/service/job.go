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
)

// JobServiceOptions groups dependencies for JobService.
type JobServiceOptions struct {
	Repo       core.MonitoredJobRepository // Required: job store
	Executions core.ExecutionRepository    // Required: execution log reads
	Logger     *slog.Logger                // Optional: structured logger
}

// JobService provides the account-facing CRUD and lifecycle operations for
// monitored jobs. It owns token minting and due-time computation; the data
// layer only persists what it is handed.
type JobService struct {
	repo       core.MonitoredJobRepository
	executions core.ExecutionRepository
	logger     *slog.Logger
}

// NewJobService constructs a new JobService.
func NewJobService(opts JobServiceOptions) (*JobService, error) {
	if opts.Repo == nil {
		return nil, errors.New("MonitoredJobRepository is required")
	}
	if opts.Executions == nil {
		return nil, errors.New("ExecutionRepository is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &JobService{
		repo:       opts.Repo,
		executions: opts.Executions,
		logger:     logger.With("component", "job_service"),
	}, nil
}

// Create registers a new monitored job. The job starts in status active with a
// freshly minted ping token and a due time computed from now.
func (s *JobService) Create(
	ctx context.Context,
	accountID string,
	req *model.CreateJobRequest,
) (*model.MonitoredJob, error) {
	if accountID == "" {
		return nil, errors.New("account id is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := schedule.Validate(req.ScheduleType, req.ScheduleValue); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	next, err := schedule.NextPing(req.ScheduleType, req.ScheduleValue, now)
	if err != nil {
		return nil, fmt.Errorf("compute first due time: %w", err)
	}

	job := &model.MonitoredJob{
		ID:                 uuid.NewString(),
		AccountID:          accountID,
		Name:               req.Name,
		PingToken:          uuid.NewString(),
		ScheduleType:       req.ScheduleType,
		ScheduleValue:      req.ScheduleValue,
		GracePeriodSeconds: req.GracePeriodSeconds,
		Status:             model.JobStatusActive,
		ExpectedNextPingAt: &next,
	}

	if err := s.repo.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}

	s.logger.InfoContext(ctx, "job created",
		"job_id", job.ID,
		"name", job.Name,
		"schedule_type", job.ScheduleType,
		"schedule_value", job.ScheduleValue,
	)
	return job, nil
}

// GetByID returns one job owned by the account.
func (s *JobService) GetByID(ctx context.Context, accountID, id string) (*model.MonitoredJob, error) {
	return s.repo.GetByID(ctx, accountID, id)
}

// List returns all jobs owned by the account.
func (s *JobService) List(ctx context.Context, accountID string) ([]*model.MonitoredJob, error) {
	return s.repo.List(ctx, accountID)
}

// Update applies a partial edit. Changing the schedule recomputes the due time
// from now, so the next expectation always reflects the new cadence rather
// than the old one.
func (s *JobService) Update(
	ctx context.Context,
	accountID, id string,
	req *model.UpdateJobRequest,
) (*model.MonitoredJob, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	job, err := s.repo.GetByID(ctx, accountID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		job.Name = *req.Name
	}
	if req.GracePeriodSeconds != nil {
		job.GracePeriodSeconds = *req.GracePeriodSeconds
	}
	if req.TouchesSchedule() {
		if err := schedule.Validate(*req.ScheduleType, *req.ScheduleValue); err != nil {
			return nil, err
		}
		job.ScheduleType = *req.ScheduleType
		job.ScheduleValue = *req.ScheduleValue

		next, calcErr := schedule.NextPing(job.ScheduleType, job.ScheduleValue, time.Now().UTC())
		if calcErr != nil {
			return nil, fmt.Errorf("compute due time: %w", calcErr)
		}
		job.ExpectedNextPingAt = &next
	}

	updated, err := s.repo.Update(ctx, job)
	if err != nil {
		return nil, fmt.Errorf("update job: %w", err)
	}
	if !updated {
		return nil, fmt.Errorf("update job %s: job vanished", id)
	}

	s.logger.InfoContext(ctx, "job updated", "job_id", job.ID)
	return job, nil
}

// Pause suspends monitoring. A paused job keeps accepting pings for the audit
// log but never goes late.
func (s *JobService) Pause(ctx context.Context, accountID, id string) error {
	return s.setStatus(ctx, accountID, id, model.JobStatusPaused)
}

// Resume re-arms monitoring. The due time restarts from now; the job owes its
// next ping one full schedule period out, not retroactively.
func (s *JobService) Resume(ctx context.Context, accountID, id string) error {
	job, err := s.repo.GetByID(ctx, accountID, id)
	if err != nil {
		return err
	}
	if job.Status != model.JobStatusPaused {
		return fmt.Errorf("job %s is not paused", id)
	}

	next, err := schedule.NextPing(job.ScheduleType, job.ScheduleValue, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("compute due time: %w", err)
	}

	job.Status = model.JobStatusActive
	job.ExpectedNextPingAt = &next

	updated, err := s.repo.Update(ctx, job)
	if err != nil {
		return fmt.Errorf("resume job: %w", err)
	}
	if !updated {
		return fmt.Errorf("resume job %s: job vanished", id)
	}

	s.logger.InfoContext(ctx, "job resumed", "job_id", id)
	return nil
}

// Delete removes a job along with its executions and channel bindings.
func (s *JobService) Delete(ctx context.Context, accountID, id string) error {
	deleted, err := s.repo.Delete(ctx, accountID, id)
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	if !deleted {
		return data.ErrJobNotFound
	}

	s.logger.InfoContext(ctx, "job deleted", "job_id", id)
	return nil
}

// ListExecutions returns a job's recent execution records, newest first.
func (s *JobService) ListExecutions(
	ctx context.Context,
	accountID, jobID string,
	limit int,
) ([]*model.JobExecution, error) {
	return s.executions.ListByJob(ctx, accountID, jobID, limit)
}

func (s *JobService) setStatus(
	ctx context.Context,
	accountID, id string,
	status model.JobStatus,
) error {
	updated, err := s.repo.SetStatus(ctx, accountID, id, status)
	if err != nil {
		return fmt.Errorf("set job status: %w", err)
	}
	if !updated {
		return data.ErrJobNotFound
	}

	s.logger.InfoContext(ctx, "job status changed", "job_id", id, "status", status)
	return nil
}
