// Package core defines the port interfaces between the heartbeat monitoring
// services and their collaborators (job store, channel store, cache). Services
// depend on these interfaces; concrete implementations live in internal/data.
package core

import (
	"context"
	"time"

	"github.com/pulsewatch/pulsewatch/internal/domain/model"
)

// RecordPingParams carries the atomic state change applied when a ping arrives.
// ExpectedNextPingAt is nil when the schedule could not be computed; the job
// then keeps no due time until its schedule is fixed.
type RecordPingParams struct {
	JobID              string
	Now                time.Time
	ExpectedNextPingAt *time.Time
}

// MarkOverdueParams carries the scanner's optimistic status transition. The
// write only applies while the job still has the status and due time the
// scanner observed; a concurrent ping invalidates it.
type MarkOverdueParams struct {
	JobID              string
	FromStatus         model.JobStatus
	ExpectedNextPingAt time.Time
	NewStatus          model.JobStatus
	Now                time.Time
}

// MonitoredJobRepository defines job store operations. All account-facing reads
// are scoped by account id; cross-account access surfaces as not-found.
type MonitoredJobRepository interface {
	// Create persists a new job row. The job must arrive with id, token and an
	// initial expected_next_ping_at already populated.
	Create(ctx context.Context, job *model.MonitoredJob) error

	// GetByID fetches one job owned by the account.
	GetByID(ctx context.Context, accountID, id string) (*model.MonitoredJob, error)

	// GetByPingToken resolves a job by its opaque ping token. Tokens are
	// unguessable, so this lookup is deliberately not account-scoped.
	GetByPingToken(ctx context.Context, token string) (*model.MonitoredJob, error)

	// GetForMonitor fetches a job by id without account scoping. Reserved for
	// monitor-side flows (ping ingest, scanner) that hold a trusted job id.
	GetForMonitor(ctx context.Context, id string) (*model.MonitoredJob, error)

	// List returns all jobs owned by the account, newest first.
	List(ctx context.Context, accountID string) ([]*model.MonitoredJob, error)

	// Update persists CRUD edits (name, schedule, grace, recomputed due time).
	// Returns false when the job does not exist for the account.
	Update(ctx context.Context, job *model.MonitoredJob) (bool, error)

	// SetStatus transitions a job's status for pause/resume style operations.
	SetStatus(ctx context.Context, accountID, id string, status model.JobStatus) (bool, error)

	// RecordPing atomically applies last_pinged_at, expected_next_ping_at and
	// status=healthy. The update is guarded so a stale ping can never move
	// last_pinged_at backwards; returns false when the guard rejected the write
	// or the job vanished.
	RecordPing(ctx context.Context, p RecordPingParams) (bool, error)

	// FindOverdue returns jobs whose grace window has elapsed, excluding paused
	// and already-errored jobs. Jobs with no due time are never overdue.
	FindOverdue(ctx context.Context, now time.Time, limit int) ([]*model.MonitoredJob, error)

	// MarkOverdue applies the scanner's classification with an optimistic
	// guard; returns false when a concurrent ping won the race.
	MarkOverdue(ctx context.Context, p MarkOverdueParams) (bool, error)

	// Delete removes a job and cascades its executions and channel bindings.
	Delete(ctx context.Context, accountID, id string) (bool, error)
}

// ExecutionRepository appends to and reads a job's immutable execution log.
type ExecutionRepository interface {
	// Append inserts one audit row. Rows are never updated afterwards.
	Append(ctx context.Context, exec *model.JobExecution) error

	// ListByJob returns recent executions for a job the account owns.
	ListByJob(ctx context.Context, accountID, jobID string, limit int) ([]*model.JobExecution, error)
}

// ChannelRepository defines notification channel store operations.
type ChannelRepository interface {
	Create(ctx context.Context, ch *model.NotificationChannel) error
	GetByID(ctx context.Context, accountID, id string) (*model.NotificationChannel, error)
	List(ctx context.Context, accountID string) ([]*model.NotificationChannel, error)

	// Update persists name/config edits along with the caller-decided
	// is_verified and verification token values.
	Update(ctx context.Context, ch *model.NotificationChannel) (bool, error)

	// MarkVerified flips is_verified when the verification token matches.
	MarkVerified(ctx context.Context, accountID, id, token string) (bool, error)

	Delete(ctx context.Context, accountID, id string) (bool, error)
}

// SettingRepository defines job↔channel binding operations.
type SettingRepository interface {
	// Upsert creates the binding or replaces the trigger flags of an existing
	// one; at most one binding exists per (job, channel) pair.
	Upsert(ctx context.Context, s *model.JobNotificationSetting) error

	// ListByJob returns all bindings for a job the account owns.
	ListByJob(ctx context.Context, accountID, jobID string) ([]*model.JobNotificationSetting, error)

	// VerifiedBindings returns the job's bindings joined with their channels,
	// filtered to verified channels only. This is the dispatcher's read path.
	VerifiedBindings(ctx context.Context, jobID string) ([]*model.ChannelBinding, error)

	Delete(ctx context.Context, accountID, id string) (bool, error)
}

// CacheRepository is a minimal byte cache used to short-circuit hot lookups
// (ping token → job id).
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) (bool, error)
}
