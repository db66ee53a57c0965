// Package scanner provides the adapter that runs the late-job scanner loop.
package scanner

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pulsewatch/pulsewatch/config"
	"github.com/pulsewatch/pulsewatch/internal/core"
	"github.com/pulsewatch/pulsewatch/internal/data"
	"github.com/pulsewatch/pulsewatch/internal/observability/statsd"
	"github.com/pulsewatch/pulsewatch/internal/service"
	"github.com/pulsewatch/pulsewatch/internal/service/dispatcher"
)

// Runner drives the late-job scanner on a fixed interval until its context is
// cancelled.
type Runner struct {
	scanner  core.LateJobScanner
	interval time.Duration
	logger   *slog.Logger
}

// RunnerOptions holds the dependencies for creating a Runner.
type RunnerOptions struct {
	DB         *sql.DB
	Config     config.ScannerConfig
	Dispatcher *dispatcher.Dispatcher
	Logger     *slog.Logger

	// Optional dependency injection for testing/decoupling
	Scanner core.LateJobScanner
	Metrics statsd.Sink
}

// NewRunner creates a new scanner runner with the given options.
func NewRunner(opts RunnerOptions) (*Runner, error) {
	if err := validateRunnerOptions(&opts); err != nil {
		return nil, err
	}

	scn := opts.Scanner
	if scn == nil {
		svc, err := wireScannerService(opts)
		if err != nil {
			return nil, fmt.Errorf("wire scanner service: %w", err)
		}
		scn = svc
	}

	return &Runner{
		scanner:  scn,
		interval: opts.Config.Interval,
		logger:   opts.Logger.With("component", "scanner_runner"),
	}, nil
}

// validateRunnerOptions validates and sets defaults for RunnerOptions.
func validateRunnerOptions(opts *RunnerOptions) error {
	if opts.DB == nil && opts.Scanner == nil {
		return errors.New("database connection is required")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	opts.Config.Sanitize()
	return nil
}

// wireScannerService wires up all dependencies for the scanner service.
func wireScannerService(opts RunnerOptions) (*service.ScannerService, error) {
	return service.NewScannerService(service.ScannerServiceOptions{
		Jobs:       data.NewJobRepo(opts.DB),
		Executions: data.NewExecutionRepo(opts.DB),
		Dispatcher: opts.Dispatcher,
		Config: core.ScannerConfig{
			BatchSize:            opts.Config.BatchSize,
			EscalationMultiplier: opts.Config.EscalationMultiplier,
		},
		Logger:  opts.Logger,
		Metrics: opts.Metrics,
	})
}

// Run starts the scan loop and blocks until the context is cancelled.
// Returns nil on graceful shutdown (context.Canceled), error otherwise.
func (r *Runner) Run(ctx context.Context) error {
	r.logger.InfoContext(ctx, "starting late-job scanner", "interval", r.interval)

	// Jitter the first tick so multiple instances starting together do not
	// scan in lockstep.
	r.waitWithJitter(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	// Shutdown can land during the jitter wait; do not scan with a dead context.
	if ctx.Err() == nil {
		r.tick(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			r.logger.InfoContext(ctx, "late-job scanner stopping", "reason", ctx.Err())
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()

		case <-ticker.C:
			r.tick(ctx)
		}
	}
}

func (r *Runner) tick(ctx context.Context) {
	transitioned, err := r.scanner.Tick(ctx, time.Now().UTC())
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		r.logger.ErrorContext(ctx, "scan tick failed", "error", err)
		return
	}
	if transitioned > 0 {
		r.logger.InfoContext(ctx, "scan tick transitioned jobs", "count", transitioned)
	}
}

// waitWithJitter sleeps a random duration up to 10% of the interval.
func (r *Runner) waitWithJitter(ctx context.Context) {
	maxJitter := int64(r.interval / 10)
	if maxJitter <= 0 {
		return
	}

	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		r.logger.WarnContext(ctx, "failed to generate jitter, skipping", "error", err)
		return
	}

	jitterNanos := binary.BigEndian.Uint64(buf[:]) % uint64(maxJitter)
	jitter := time.Duration(int64(jitterNanos)) // #nosec G115 - bounded by maxJitter which is int64

	select {
	case <-time.After(jitter):
	case <-ctx.Done():
	}
}
