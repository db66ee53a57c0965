package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pulsewatch/pulsewatch/internal/data/pgxutil"
	"github.com/pulsewatch/pulsewatch/internal/domain/model"
)

// SettingRepo provides database operations for job↔channel notification bindings.
type SettingRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewSettingRepo creates a new SettingRepo instance with the given database connection.
func NewSettingRepo(db *sql.DB) *SettingRepo {
	return &SettingRepo{
		DB:           db,
		timeProvider: &RealTimeProvider{},
	}
}

// Upsert creates the binding or replaces the trigger flags of an existing one.
// The UNIQUE(job_id, channel_id) constraint backs the ON CONFLICT clause, so
// repeated upserts for the same pair converge on a single row.
func (r *SettingRepo) Upsert(ctx context.Context, s *model.JobNotificationSetting) error {
	if s == nil {
		return errors.New("setting is required")
	}

	query := `
		INSERT INTO job_notification_settings
			(id, job_id, channel_id, notify_on_failure, notify_on_lateness, notify_on_recovery,
			 created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		ON CONFLICT (job_id, channel_id) DO UPDATE
		SET notify_on_failure = EXCLUDED.notify_on_failure,
		    notify_on_lateness = EXCLUDED.notify_on_lateness,
		    notify_on_recovery = EXCLUDED.notify_on_recovery,
		    updated_at = EXCLUDED.updated_at
		RETURNING id, created_at, updated_at
	`

	now := r.timeProvider.Now().UTC()
	err := r.DB.QueryRowContext(ctx, query,
		s.ID, s.JobID, s.ChannelID,
		s.NotifyOnFailure, s.NotifyOnLateness, s.NotifyOnRecovery, now,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			switch pgErr.ConstraintName {
			case "job_notification_settings_channel_id_fkey":
				return ErrChannelNotFound
			default:
				return ErrJobNotFound
			}
		}
		return fmt.Errorf("upsert setting: %w", err)
	}
	return nil
}

// ListByJob returns all bindings for a job the account owns.
func (r *SettingRepo) ListByJob(
	ctx context.Context,
	accountID, jobID string,
) ([]*model.JobNotificationSetting, error) {
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
		SELECT id, job_id, channel_id, notify_on_failure, notify_on_lateness, notify_on_recovery,
		       created_at, updated_at
		FROM job_notification_settings
		WHERE job_id = $1
		ORDER BY created_at ASC
	`

	var settings []*model.JobNotificationSetting
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, queryErr := conn.Query(ctx, query, jobID)
		if queryErr != nil {
			return queryErr
		}
		defer rows.Close()

		collected, collectErr := pgx.CollectRows(rows,
			pgx.RowToAddrOfStructByName[model.JobNotificationSetting])
		if collectErr != nil {
			return collectErr
		}
		settings = collected
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	return settings, nil
}

// VerifiedBindings joins a job's bindings with their channels, keeping verified
// channels only. Unverified channels are silently excluded so a half-configured
// email destination can never receive alerts.
func (r *SettingRepo) VerifiedBindings(
	ctx context.Context,
	jobID string,
) ([]*model.ChannelBinding, error) {
	query := `
		SELECT s.id, s.job_id, s.channel_id,
		       s.notify_on_failure, s.notify_on_lateness, s.notify_on_recovery,
		       s.created_at, s.updated_at,
		       c.id, c.account_id, c.type, c.name, c.configuration_details,
		       c.is_verified, c.verification_token, c.created_at, c.updated_at
		FROM job_notification_settings s
		JOIN notification_channels c ON c.id = s.channel_id
		WHERE s.job_id = $1 AND c.is_verified = TRUE
		ORDER BY s.created_at ASC
	`

	var bindings []*model.ChannelBinding
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, queryErr := conn.Query(ctx, query, jobID)
		if queryErr != nil {
			return queryErr
		}
		defer rows.Close()

		for rows.Next() {
			var b model.ChannelBinding
			scanErr := rows.Scan(
				&b.Setting.ID, &b.Setting.JobID, &b.Setting.ChannelID,
				&b.Setting.NotifyOnFailure, &b.Setting.NotifyOnLateness, &b.Setting.NotifyOnRecovery,
				&b.Setting.CreatedAt, &b.Setting.UpdatedAt,
				&b.Channel.ID, &b.Channel.AccountID, &b.Channel.Type, &b.Channel.Name,
				&b.Channel.Config, &b.Channel.IsVerified, &b.Channel.VerificationToken,
				&b.Channel.CreatedAt, &b.Channel.UpdatedAt,
			)
			if scanErr != nil {
				return scanErr
			}
			bindings = append(bindings, &b)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("query verified bindings: %w", err)
	}
	return bindings, nil
}

// Delete removes one binding owned by the account (via its job).
func (r *SettingRepo) Delete(ctx context.Context, accountID, id string) (bool, error) {
	query := `
		DELETE FROM job_notification_settings s
		USING monitored_jobs j
		WHERE s.id = $1 AND j.id = s.job_id AND j.account_id = $2
	`

	res, err := r.DB.ExecContext(ctx, query, id, accountID)
	if err != nil {
		return false, fmt.Errorf("delete setting: %w", err)
	}
	return rowsAffected(res), nil
}
