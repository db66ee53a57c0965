package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/pulsewatch/pulsewatch/internal/core"
	"github.com/pulsewatch/pulsewatch/internal/data/pgxutil"
	"github.com/pulsewatch/pulsewatch/internal/domain/model"
)

// JobRepo provides database operations for monitored jobs.
type JobRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewJobRepo creates a new JobRepo instance with the given database connection.
func NewJobRepo(db *sql.DB) *JobRepo {
	return &JobRepo{
		DB:           db,
		timeProvider: &RealTimeProvider{},
	}
}

// jobColumns defines the column list for MonitoredJob SELECT queries to ensure
// consistent field mapping.
const jobColumns = `id, account_id, name, ping_token, schedule_type, schedule_value,
	grace_period_seconds, status, last_pinged_at, expected_next_ping_at, created_at, updated_at`

// Create persists a new job row.
func (r *JobRepo) Create(ctx context.Context, job *model.MonitoredJob) error {
	if job == nil {
		return errors.New("job is required")
	}

	query := `
		INSERT INTO monitored_jobs
			(id, account_id, name, ping_token, schedule_type, schedule_value,
			 grace_period_seconds, status, last_pinged_at, expected_next_ping_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	now := r.timeProvider.Now().UTC()
	_, err := r.DB.ExecContext(ctx, query,
		job.ID, job.AccountID, job.Name, job.PingToken, job.ScheduleType, job.ScheduleValue,
		job.GracePeriodSeconds, job.Status, job.LastPingedAt, job.ExpectedNextPingAt, now, now,
	)
	if err != nil {
		return fmt.Errorf("create job: %w", err)
	}

	job.CreatedAt = now
	job.UpdatedAt = now
	return nil
}

// GetByID fetches one job owned by the account. Unknown ids and cross-account
// ids both return ErrJobNotFound.
func (r *JobRepo) GetByID(ctx context.Context, accountID, id string) (*model.MonitoredJob, error) {
	query := `SELECT ` + jobColumns + ` FROM monitored_jobs WHERE id = $1 AND account_id = $2`
	return r.getOne(ctx, query, id, accountID)
}

// GetByPingToken resolves a job by its opaque ping token.
func (r *JobRepo) GetByPingToken(ctx context.Context, token string) (*model.MonitoredJob, error) {
	query := `SELECT ` + jobColumns + ` FROM monitored_jobs WHERE ping_token = $1`
	return r.getOne(ctx, query, token)
}

// GetForMonitor fetches a job by id without account scoping, for monitor-side
// flows that already hold a trusted job id.
func (r *JobRepo) GetForMonitor(ctx context.Context, id string) (*model.MonitoredJob, error) {
	query := `SELECT ` + jobColumns + ` FROM monitored_jobs WHERE id = $1`
	return r.getOne(ctx, query, id)
}

func (r *JobRepo) getOne(ctx context.Context, query string, args ...any) (*model.MonitoredJob, error) {
	var job model.MonitoredJob
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, queryErr := conn.Query(ctx, query, args...)
		if queryErr != nil {
			return queryErr
		}
		defer rows.Close()

		collected, collectErr := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.MonitoredJob])
		if collectErr != nil {
			return collectErr
		}
		job = collected
		return nil
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("get job: %w", err)
	}
	return &job, nil
}

// List returns all jobs owned by the account, newest first.
func (r *JobRepo) List(ctx context.Context, accountID string) ([]*model.MonitoredJob, error) {
	query := `
		SELECT ` + jobColumns + `
		FROM monitored_jobs
		WHERE account_id = $1
		ORDER BY created_at DESC
	`

	var jobs []*model.MonitoredJob
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, queryErr := conn.Query(ctx, query, accountID)
		if queryErr != nil {
			return queryErr
		}
		defer rows.Close()

		collected, collectErr := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[model.MonitoredJob])
		if collectErr != nil {
			return collectErr
		}
		jobs = collected
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return jobs, nil
}

// Update persists CRUD edits. Ping bookkeeping fields are written here too so
// schedule edits can reset expected_next_ping_at in the same statement.
func (r *JobRepo) Update(ctx context.Context, job *model.MonitoredJob) (bool, error) {
	if job == nil {
		return false, errors.New("job is required")
	}

	query := `
		UPDATE monitored_jobs
		SET name = $3,
		    schedule_type = $4,
		    schedule_value = $5,
		    grace_period_seconds = $6,
		    status = $7,
		    expected_next_ping_at = $8,
		    updated_at = $9
		WHERE id = $1 AND account_id = $2
	`

	res, err := r.DB.ExecContext(ctx, query,
		job.ID, job.AccountID, job.Name, job.ScheduleType, job.ScheduleValue,
		job.GracePeriodSeconds, job.Status, job.ExpectedNextPingAt, r.timeProvider.Now().UTC(),
	)
	if err != nil {
		return false, fmt.Errorf("update job: %w", err)
	}
	return rowsAffected(res), nil
}

// SetStatus transitions a job's status for pause/resume style operations.
func (r *JobRepo) SetStatus(
	ctx context.Context,
	accountID, id string,
	status model.JobStatus,
) (bool, error) {
	query := `
		UPDATE monitored_jobs
		SET status = $3, updated_at = $4
		WHERE id = $1 AND account_id = $2
	`

	res, err := r.DB.ExecContext(ctx, query, id, accountID, status, r.timeProvider.Now().UTC())
	if err != nil {
		return false, fmt.Errorf("set job status: %w", err)
	}
	return rowsAffected(res), nil
}

// RecordPing atomically applies the ping write. The guard rejects writes that
// would move last_pinged_at backwards, so concurrent pings settle on the
// newest one instead of silently losing it.
func (r *JobRepo) RecordPing(ctx context.Context, p core.RecordPingParams) (bool, error) {
	query := `
		UPDATE monitored_jobs
		SET last_pinged_at = $2,
		    expected_next_ping_at = $3,
		    status = $4,
		    updated_at = $2
		WHERE id = $1
		  AND (last_pinged_at IS NULL OR last_pinged_at <= $2)
	`

	res, err := r.DB.ExecContext(ctx, query,
		p.JobID, p.Now.UTC(), p.ExpectedNextPingAt, model.JobStatusHealthy,
	)
	if err != nil {
		return false, fmt.Errorf("record ping: %w", err)
	}
	return rowsAffected(res), nil
}

// FindOverdue returns jobs past their grace window, oldest due time first.
// Paused jobs are not monitored; errored jobs have already been escalated and
// are only reconsidered once a ping arrives.
func (r *JobRepo) FindOverdue(
	ctx context.Context,
	now time.Time,
	limit int,
) ([]*model.MonitoredJob, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive, got %d", limit)
	}

	query := `
		SELECT ` + jobColumns + `
		FROM monitored_jobs
		WHERE status NOT IN ($2, $3)
		  AND expected_next_ping_at IS NOT NULL
		  AND expected_next_ping_at + make_interval(secs => grace_period_seconds) < $1
		ORDER BY expected_next_ping_at ASC
		LIMIT $4
	`

	var jobs []*model.MonitoredJob
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, queryErr := conn.Query(ctx, query,
			now.UTC(), model.JobStatusPaused, model.JobStatusErrored, limit,
		)
		if queryErr != nil {
			return queryErr
		}
		defer rows.Close()

		collected, collectErr := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[model.MonitoredJob])
		if collectErr != nil {
			return collectErr
		}
		jobs = collected
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query overdue jobs: %w", err)
	}
	return jobs, nil
}

// MarkOverdue applies the scanner's classification. The WHERE clause doubles as
// an optimistic version check: if a ping landed since the scanner read the row,
// status or expected_next_ping_at no longer match and the write is a no-op.
func (r *JobRepo) MarkOverdue(ctx context.Context, p core.MarkOverdueParams) (bool, error) {
	query := `
		UPDATE monitored_jobs
		SET status = $4, updated_at = $5
		WHERE id = $1
		  AND status = $2
		  AND expected_next_ping_at = $3
	`

	res, err := r.DB.ExecContext(ctx, query,
		p.JobID, p.FromStatus, p.ExpectedNextPingAt.UTC(), p.NewStatus, p.Now.UTC(),
	)
	if err != nil {
		return false, fmt.Errorf("mark job overdue: %w", err)
	}
	return rowsAffected(res), nil
}

// Delete removes a job; executions and channel bindings cascade at the schema level.
func (r *JobRepo) Delete(ctx context.Context, accountID, id string) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		`DELETE FROM monitored_jobs WHERE id = $1 AND account_id = $2`, id, accountID)
	if err != nil {
		return false, fmt.Errorf("delete job: %w", err)
	}
	return rowsAffected(res), nil
}

func rowsAffected(res sql.Result) bool {
	n, err := res.RowsAffected()
	return err == nil && n > 0
}
