package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pulsewatch/pulsewatch/internal/data/pgxutil"
	"github.com/pulsewatch/pulsewatch/internal/domain/model"
)

// ExecutionRepo provides database operations for the append-only execution log.
type ExecutionRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewExecutionRepo creates a new ExecutionRepo instance with the given database connection.
func NewExecutionRepo(db *sql.DB) *ExecutionRepo {
	return &ExecutionRepo{
		DB:           db,
		timeProvider: &RealTimeProvider{},
	}
}

// Append inserts one execution record. Records are never updated or deleted
// individually; they only go away when their job is deleted.
func (r *ExecutionRepo) Append(ctx context.Context, exec *model.JobExecution) error {
	if exec == nil {
		return errors.New("execution is required")
	}

	query := `
		INSERT INTO job_executions (id, job_id, status, started_at, ended_at, output_log, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	now := r.timeProvider.Now().UTC()
	_, err := r.DB.ExecContext(ctx, query,
		exec.ID, exec.JobID, exec.Status, exec.StartedAt, exec.EndedAt, exec.OutputLog, now,
	)
	if err != nil {
		return fmt.Errorf("append execution: %w", err)
	}

	exec.CreatedAt = now
	return nil
}

// ListByJob returns the most recent executions for a job the account owns.
// The join against monitored_jobs enforces ownership; a job the account does
// not own yields ErrJobNotFound rather than an empty page.
func (r *ExecutionRepo) ListByJob(
	ctx context.Context,
	accountID, jobID string,
	limit int,
) ([]*model.JobExecution, error) {
	if limit <= 0 {
		limit = 50
	}

	var owned bool
	if err := r.DB.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM monitored_jobs WHERE id = $1 AND account_id = $2)`,
		jobID, accountID,
	).Scan(&owned); err != nil {
		return nil, fmt.Errorf("check job ownership: %w", err)
	}
	if !owned {
		return nil, ErrJobNotFound
	}

	query := `
		SELECT id, job_id, status, started_at, ended_at, output_log, created_at
		FROM job_executions
		WHERE job_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	var execs []*model.JobExecution
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, queryErr := conn.Query(ctx, query, jobID, limit)
		if queryErr != nil {
			return queryErr
		}
		defer rows.Close()

		collected, collectErr := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[model.JobExecution])
		if collectErr != nil {
			return collectErr
		}
		execs = collected
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list executions: %w", err)
	}
	return execs, nil
}
