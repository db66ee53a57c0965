package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/pulsewatch/pulsewatch/internal/core"
	"github.com/pulsewatch/pulsewatch/internal/data"
	"github.com/pulsewatch/pulsewatch/internal/domain/model"
)

// SettingServiceOptions groups dependencies for SettingService.
type SettingServiceOptions struct {
	Settings core.SettingRepository      // Required: binding store
	Jobs     core.MonitoredJobRepository // Required: job ownership checks
	Channels core.ChannelRepository      // Required: channel ownership checks
	Logger   *slog.Logger                // Optional: structured logger
}

// SettingService manages the bindings between jobs and notification channels.
// Both sides of a binding must belong to the same account.
type SettingService struct {
	settings core.SettingRepository
	jobs     core.MonitoredJobRepository
	channels core.ChannelRepository
	logger   *slog.Logger
}

// NewSettingService constructs a new SettingService.
func NewSettingService(opts SettingServiceOptions) (*SettingService, error) {
	if opts.Settings == nil {
		return nil, errors.New("SettingRepository is required")
	}
	if opts.Jobs == nil {
		return nil, errors.New("MonitoredJobRepository is required")
	}
	if opts.Channels == nil {
		return nil, errors.New("ChannelRepository is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &SettingService{
		settings: opts.Settings,
		jobs:     opts.Jobs,
		channels: opts.Channels,
		logger:   logger.With("component", "setting_service"),
	}, nil
}

// Upsert binds a channel to a job, or replaces the trigger flags of an
// existing binding. Ownership of both the job and the channel is checked
// before anything is written; a channel from another account surfaces as
// not-found, never as forbidden.
func (s *SettingService) Upsert(
	ctx context.Context,
	accountID, jobID string,
	req *model.UpsertSettingRequest,
) (*model.JobNotificationSetting, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.jobs.GetByID(ctx, accountID, jobID); err != nil {
		return nil, err
	}
	if _, err := s.channels.GetByID(ctx, accountID, req.ChannelID); err != nil {
		return nil, err
	}

	setting := &model.JobNotificationSetting{
		ID:               uuid.NewString(),
		JobID:            jobID,
		ChannelID:        req.ChannelID,
		NotifyOnFailure:  req.NotifyOnFailure,
		NotifyOnLateness: req.NotifyOnLateness,
		NotifyOnRecovery: req.NotifyOnRecovery,
	}

	if err := s.settings.Upsert(ctx, setting); err != nil {
		return nil, fmt.Errorf("upsert setting: %w", err)
	}

	s.logger.InfoContext(ctx, "notification setting upserted",
		"setting_id", setting.ID,
		"job_id", jobID,
		"channel_id", req.ChannelID,
	)
	return setting, nil
}

// ListByJob returns all bindings for a job the account owns.
func (s *SettingService) ListByJob(
	ctx context.Context,
	accountID, jobID string,
) ([]*model.JobNotificationSetting, error) {
	return s.settings.ListByJob(ctx, accountID, jobID)
}

// Delete removes one binding owned by the account.
func (s *SettingService) Delete(ctx context.Context, accountID, id string) error {
	deleted, err := s.settings.Delete(ctx, accountID, id)
	if err != nil {
		return fmt.Errorf("delete setting: %w", err)
	}
	if !deleted {
		return data.ErrSettingNotFound
	}

	s.logger.InfoContext(ctx, "notification setting deleted", "setting_id", id)
	return nil
}
