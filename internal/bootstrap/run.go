package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/pulsewatch/pulsewatch/config"
	"github.com/pulsewatch/pulsewatch/internal/adapters/scanner"
	"github.com/pulsewatch/pulsewatch/internal/ports"
)

// RunOptions carries everything needed to run the enabled services.
type RunOptions struct {
	Config   config.AppConfig
	Deps     ServiceDependencies
	Services *ServiceContainer
	Verifier ports.TokenVerifier
	Logger   *slog.Logger
}

// RunServicesWithShutdown starts the enabled services and blocks until a
// termination signal arrives or any service fails. All services share one
// context, so the first failure tears the rest down.
func RunServicesWithShutdown(ctx context.Context, opts RunOptions) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	if opts.Config.IsHTTPServerEnabled() {
		srv := NewHTTPServer(opts.Config.HTTP, opts.Services, opts.Verifier, opts.Logger)
		g.Go(func() error {
			return StartHTTPServer(gctx, srv, opts.Config.HTTP, opts.Logger)
		})
	}

	if opts.Config.IsScannerEnabled() {
		runner, err := scanner.NewRunner(scanner.RunnerOptions{
			DB:         opts.Deps.DB,
			Config:     opts.Config.Scanner,
			Dispatcher: opts.Services.Dispatcher,
			Logger:     opts.Logger,
			Metrics:    opts.Services.Metrics,
		})
		if err != nil {
			return fmt.Errorf("init scanner runner: %w", err)
		}
		g.Go(func() error {
			return runner.Run(gctx)
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("service exited: %w", err)
	}

	opts.Logger.Info("all services stopped")
	return nil
}
