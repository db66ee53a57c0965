// Command pulsewatch runs the heartbeat monitoring service. Which services a
// process hosts (the HTTP API, the late-job scanner, or both) is controlled
// by the SERVICES environment variable.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/pulsewatch/pulsewatch/config"
	"github.com/pulsewatch/pulsewatch/internal/bootstrap"
	"github.com/pulsewatch/pulsewatch/internal/devseed"
)

func main() {
	logger := bootstrap.InitLogger()

	if err := run(context.Background(), logger); err != nil {
		logger.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}

	if err := bootstrap.ValidateServiceConfig(&cfg); err != nil {
		return err
	}

	logStartupInfo(logger, &cfg)

	db, err := bootstrap.ConnectDB(bootstrap.DatabaseConfig{
		DBConfig: cfg.Postgres,
		Logger:   logger,
	})
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			logger.Error("close database", "error", closeErr)
		}
	}()

	if cfg.Postgres.RunMigrationsOnStart {
		if err := bootstrap.RunMigrations(ctx, db, logger); err != nil {
			return err
		}
	}

	redisClient, err := bootstrap.ConnectRedis(bootstrap.DatabaseConfig{
		RedisConfig: cfg.Redis,
		Logger:      logger,
	})
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := redisClient.Close(); closeErr != nil {
			logger.Error("close redis", "error", closeErr)
		}
	}()

	verifier, err := bootstrap.BuildVerifier(ctx, cfg.Auth, cfg.IsDev, logger)
	if err != nil {
		return err
	}

	deps := bootstrap.ServiceDependencies{
		DB:     db,
		Redis:  redisClient,
		Config: cfg,
		Logger: logger,
	}

	services, err := bootstrap.NewServices(deps)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := services.Metrics.Close(); closeErr != nil {
			logger.Error("close statsd client", "error", closeErr)
		}
	}()

	if cfg.IsDev {
		seedErr := devseed.Run(ctx, devseed.Services{
			Jobs:     services.Jobs,
			Channels: services.Channels,
			Settings: services.Settings,
		}, cfg.Auth.DevAuth.AccountID, logger)
		if seedErr != nil {
			logger.Warn("dev seeding failed", "error", seedErr)
		}
	}

	return bootstrap.RunServicesWithShutdown(ctx, bootstrap.RunOptions{
		Config:   cfg,
		Deps:     deps,
		Services: services,
		Verifier: verifier,
		Logger:   logger,
	})
}

func logStartupInfo(logger *slog.Logger, cfg *config.AppConfig) {
	logger.Info("starting pulsewatch",
		"services", bootstrap.GetEnabledServices(cfg),
		"dev_mode", cfg.IsDev,
		"auth_mode", cfg.Auth.Mode,
		"scanner_interval", cfg.Scanner.Interval,
	)
}
