// Package devseed populates a development database with demo monitoring data.
// It is only invoked when the process runs with DEV=true.
package devseed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pulsewatch/pulsewatch/internal/domain/model"
	"github.com/pulsewatch/pulsewatch/internal/service"
)

// Services bundles the dependencies needed for development seeding.
type Services struct {
	Jobs     *service.JobService
	Channels *service.ChannelService
	Settings *service.SettingService
}

// Run seeds demo jobs, channels and notification bindings for the given
// account. Seeding is idempotent: jobs and channels already present by name
// are reused rather than duplicated.
func Run(ctx context.Context, svcs Services, accountID string, logger *slog.Logger) error {
	if accountID == "" {
		return errors.New("account id is required for seeding")
	}

	jobs, err := seedJobs(ctx, svcs.Jobs, accountID, logger)
	if err != nil {
		return err
	}

	channels, err := seedChannels(ctx, svcs.Channels, accountID, logger)
	if err != nil {
		return err
	}

	return seedSettings(ctx, svcs.Settings, accountID, jobs, channels, logger)
}

func defaultJobSeeds() []*model.CreateJobRequest {
	return []*model.CreateJobRequest{
		{
			Name:               "nightly-backup",
			ScheduleType:       model.ScheduleTypeCron,
			ScheduleValue:      "0 3 * * *",
			GracePeriodSeconds: 900,
		},
		{
			Name:               "queue-drain-heartbeat",
			ScheduleType:       model.ScheduleTypeInterval,
			ScheduleValue:      "5m",
			GracePeriodSeconds: 60,
		},
		{
			Name:               "weekly-report",
			ScheduleType:       model.ScheduleTypeCron,
			ScheduleValue:      "0 8 * * 1",
			GracePeriodSeconds: 3600,
		},
	}
}

func defaultChannelSeeds() []*model.CreateChannelRequest {
	return []*model.CreateChannelRequest{
		{
			Type:   model.ChannelTypeSlack,
			Name:   "dev-slack",
			Config: model.ChannelConfig{WebhookURL: "https://hooks.slack.com/services/T0/B0/devwebhook"},
		},
		{
			Type: model.ChannelTypeWebhook,
			Name: "dev-webhook",
			Config: model.ChannelConfig{
				URL:     "http://localhost:9090/hooks/pulsewatch",
				Headers: map[string]string{"X-Env": "dev"},
			},
		},
	}
}

func seedJobs(
	ctx context.Context,
	svc *service.JobService,
	accountID string,
	logger *slog.Logger,
) (map[string]*model.MonitoredJob, error) {
	existing, err := svc.List(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	byName := make(map[string]*model.MonitoredJob, len(existing))
	for _, job := range existing {
		byName[job.Name] = job
	}

	for _, req := range defaultJobSeeds() {
		if _, ok := byName[req.Name]; ok {
			if logger != nil {
				logger.InfoContext(ctx, "seed job already exists", "name", req.Name)
			}
			continue
		}
		job, createErr := svc.Create(ctx, accountID, req)
		if createErr != nil {
			return nil, fmt.Errorf("create seed job %q: %w", req.Name, createErr)
		}
		byName[job.Name] = job
		if logger != nil {
			logger.InfoContext(ctx, "created seed job",
				"name", job.Name, "ping_token", job.PingToken)
		}
	}

	return byName, nil
}

func seedChannels(
	ctx context.Context,
	svc *service.ChannelService,
	accountID string,
	logger *slog.Logger,
) (map[string]*model.NotificationChannel, error) {
	existing, err := svc.List(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("list channels: %w", err)
	}
	byName := make(map[string]*model.NotificationChannel, len(existing))
	for _, ch := range existing {
		byName[ch.Name] = ch
	}

	for _, req := range defaultChannelSeeds() {
		if _, ok := byName[req.Name]; ok {
			if logger != nil {
				logger.InfoContext(ctx, "seed channel already exists", "name", req.Name)
			}
			continue
		}
		ch, createErr := svc.Create(ctx, accountID, req)
		if createErr != nil {
			return nil, fmt.Errorf("create seed channel %q: %w", req.Name, createErr)
		}
		byName[ch.Name] = ch
		if logger != nil {
			logger.InfoContext(ctx, "created seed channel", "name", ch.Name, "type", ch.Type)
		}
	}

	return byName, nil
}

func seedSettings(
	ctx context.Context,
	svc *service.SettingService,
	accountID string,
	jobs map[string]*model.MonitoredJob,
	channels map[string]*model.NotificationChannel,
	logger *slog.Logger,
) error {
	slackChannel, ok := channels["dev-slack"]
	if !ok {
		return errors.New("seed channel dev-slack missing")
	}

	for _, jobName := range []string{"nightly-backup", "queue-drain-heartbeat"} {
		job, ok := jobs[jobName]
		if !ok {
			return fmt.Errorf("seed job %q missing", jobName)
		}
		_, err := svc.Upsert(ctx, accountID, job.ID, &model.UpsertSettingRequest{
			ChannelID:        slackChannel.ID,
			NotifyOnFailure:  true,
			NotifyOnLateness: true,
			NotifyOnRecovery: true,
		})
		if err != nil {
			return fmt.Errorf("bind %q to dev-slack: %w", jobName, err)
		}
		if logger != nil {
			logger.InfoContext(ctx, "bound seed job to channel",
				"job", jobName, "channel", slackChannel.Name)
		}
	}

	return nil
}
