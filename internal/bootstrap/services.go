package bootstrap

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/pulsewatch/pulsewatch/config"
	"github.com/pulsewatch/pulsewatch/internal/data"
	"github.com/pulsewatch/pulsewatch/internal/observability/statsd"
	"github.com/pulsewatch/pulsewatch/internal/service"
	"github.com/pulsewatch/pulsewatch/internal/service/dispatcher"
)

// ServiceDependencies contains the infrastructure needed to build services.
type ServiceDependencies struct {
	DB     *sql.DB
	Redis  redis.UniversalClient
	Config config.AppConfig
	Logger *slog.Logger
}

// ServiceContainer holds the wired application services.
type ServiceContainer struct {
	Jobs       *service.JobService
	Pings      *service.PingService
	Channels   *service.ChannelService
	Settings   *service.SettingService
	Dispatcher *dispatcher.Dispatcher
	Metrics    *statsd.Client
}

// NewServices wires repositories, the notification dispatcher and the
// application services from shared infrastructure.
func NewServices(deps ServiceDependencies) (*ServiceContainer, error) {
	metrics, err := statsd.NewClient(statsd.Config{
		Enabled: deps.Config.Observability.Metrics.IsEnabled(),
		Address: deps.Config.Observability.Metrics.StatsdAddress,
		Prefix:  deps.Config.Observability.Metrics.Prefix,
		Logger:  deps.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("init statsd client: %w", err)
	}

	jobRepo := data.NewJobRepo(deps.DB)
	executionRepo := data.NewExecutionRepo(deps.DB)
	channelRepo := data.NewChannelRepo(deps.DB)
	settingRepo := data.NewSettingRepo(deps.DB)

	senders, err := buildSenders(deps.Config.Notifier, deps.Logger)
	if err != nil {
		return nil, fmt.Errorf("build notification senders: %w", err)
	}

	disp, err := dispatcher.New(dispatcher.Options{
		Settings:    settingRepo,
		Senders:     senders,
		Logger:      deps.Logger,
		Metrics:     metrics,
		SendTimeout: deps.Config.Notifier.SendTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("init dispatcher: %w", err)
	}

	jobSvc, err := service.NewJobService(service.JobServiceOptions{
		Repo:       jobRepo,
		Executions: executionRepo,
		Logger:     deps.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("init job service: %w", err)
	}

	pingOpts := service.PingServiceOptions{
		Jobs:       jobRepo,
		Executions: executionRepo,
		CacheTTL:   deps.Config.Cache.PingTokenTTL,
		Dispatcher: disp,
		Logger:     deps.Logger,
		Metrics:    metrics,
	}
	if deps.Redis != nil {
		pingOpts.Cache = data.NewRedisCacheRepo(deps.Redis)
	}
	pingSvc, err := service.NewPingService(pingOpts)
	if err != nil {
		return nil, fmt.Errorf("init ping service: %w", err)
	}

	channelSvc, err := service.NewChannelService(service.ChannelServiceOptions{
		Repo:   channelRepo,
		Logger: deps.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("init channel service: %w", err)
	}

	settingSvc, err := service.NewSettingService(service.SettingServiceOptions{
		Settings: settingRepo,
		Jobs:     jobRepo,
		Channels: channelRepo,
		Logger:   deps.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("init setting service: %w", err)
	}

	return &ServiceContainer{
		Jobs:       jobSvc,
		Pings:      pingSvc,
		Channels:   channelSvc,
		Settings:   settingSvc,
		Dispatcher: disp,
		Metrics:    metrics,
	}, nil
}
