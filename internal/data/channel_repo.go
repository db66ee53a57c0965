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

// ChannelRepo provides database operations for notification channels.
type ChannelRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewChannelRepo creates a new ChannelRepo instance with the given database connection.
func NewChannelRepo(db *sql.DB) *ChannelRepo {
	return &ChannelRepo{
		DB:           db,
		timeProvider: &RealTimeProvider{},
	}
}

const channelColumns = `id, account_id, type, name, configuration_details,
	is_verified, verification_token, created_at, updated_at`

// Create persists a new channel row. Config is stored as JSONB.
func (r *ChannelRepo) Create(ctx context.Context, ch *model.NotificationChannel) error {
	if ch == nil {
		return errors.New("channel is required")
	}

	cfg, err := ch.Config.MarshalConfig()
	if err != nil {
		return fmt.Errorf("marshal channel config: %w", err)
	}

	query := `
		INSERT INTO notification_channels
			(id, account_id, type, name, configuration_details,
			 is_verified, verification_token, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	now := r.timeProvider.Now().UTC()
	_, err = r.DB.ExecContext(ctx, query,
		ch.ID, ch.AccountID, ch.Type, ch.Name, cfg,
		ch.IsVerified, ch.VerificationToken, now, now,
	)
	if err != nil {
		return fmt.Errorf("create channel: %w", err)
	}

	ch.CreatedAt = now
	ch.UpdatedAt = now
	return nil
}

// GetByID fetches one channel owned by the account.
func (r *ChannelRepo) GetByID(
	ctx context.Context,
	accountID, id string,
) (*model.NotificationChannel, error) {
	query := `SELECT ` + channelColumns + ` FROM notification_channels WHERE id = $1 AND account_id = $2`

	var ch model.NotificationChannel
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, queryErr := conn.Query(ctx, query, id, accountID)
		if queryErr != nil {
			return queryErr
		}
		defer rows.Close()

		collected, collectErr := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.NotificationChannel])
		if collectErr != nil {
			return collectErr
		}
		ch = collected
		return nil
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrChannelNotFound
		}
		return nil, fmt.Errorf("get channel: %w", err)
	}
	return &ch, nil
}

// List returns all channels owned by the account, newest first.
func (r *ChannelRepo) List(ctx context.Context, accountID string) ([]*model.NotificationChannel, error) {
	query := `
		SELECT ` + channelColumns + `
		FROM notification_channels
		WHERE account_id = $1
		ORDER BY created_at DESC
	`

	var channels []*model.NotificationChannel
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, queryErr := conn.Query(ctx, query, accountID)
		if queryErr != nil {
			return queryErr
		}
		defer rows.Close()

		collected, collectErr := pgx.CollectRows(rows,
			pgx.RowToAddrOfStructByName[model.NotificationChannel])
		if collectErr != nil {
			return collectErr
		}
		channels = collected
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list channels: %w", err)
	}
	return channels, nil
}

// Update persists channel edits, including verification state. The channel
// type is immutable after creation and is deliberately absent from the SET list.
func (r *ChannelRepo) Update(ctx context.Context, ch *model.NotificationChannel) (bool, error) {
	if ch == nil {
		return false, errors.New("channel is required")
	}

	cfg, err := ch.Config.MarshalConfig()
	if err != nil {
		return false, fmt.Errorf("marshal channel config: %w", err)
	}

	query := `
		UPDATE notification_channels
		SET name = $3,
		    configuration_details = $4,
		    is_verified = $5,
		    verification_token = $6,
		    updated_at = $7
		WHERE id = $1 AND account_id = $2
	`

	res, err := r.DB.ExecContext(ctx, query,
		ch.ID, ch.AccountID, ch.Name, cfg,
		ch.IsVerified, ch.VerificationToken, r.timeProvider.Now().UTC(),
	)
	if err != nil {
		return false, fmt.Errorf("update channel: %w", err)
	}
	return rowsAffected(res), nil
}

// MarkVerified flips a channel to verified when the presented token matches.
// A stale or wrong token leaves the row untouched and returns false.
func (r *ChannelRepo) MarkVerified(ctx context.Context, accountID, id, token string) (bool, error) {
	if token == "" {
		return false, errors.New("verification token is required")
	}

	query := `
		UPDATE notification_channels
		SET is_verified = TRUE, verification_token = '', updated_at = $4
		WHERE id = $1 AND account_id = $2 AND verification_token = $3 AND is_verified = FALSE
	`

	res, err := r.DB.ExecContext(ctx, query, id, accountID, token, r.timeProvider.Now().UTC())
	if err != nil {
		return false, fmt.Errorf("mark channel verified: %w", err)
	}
	return rowsAffected(res), nil
}

// Delete removes a channel; job notification settings referencing it cascade.
func (r *ChannelRepo) Delete(ctx context.Context, accountID, id string) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		`DELETE FROM notification_channels WHERE id = $1 AND account_id = $2`, id, accountID)
	if err != nil {
		return false, fmt.Errorf("delete channel: %w", err)
	}
	return rowsAffected(res), nil
}
