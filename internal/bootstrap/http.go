package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/pulsewatch/pulsewatch/config"
	httpx "github.com/pulsewatch/pulsewatch/internal/http"
	"github.com/pulsewatch/pulsewatch/internal/ports"
)

// NewHTTPServer builds the API server around the router.
func NewHTTPServer(
	cfg config.HTTPConfig,
	services *ServiceContainer,
	verifier ports.TokenVerifier,
	logger *slog.Logger,
) *http.Server {
	router := httpx.NewRouter(httpx.RouterServices{
		Jobs:     services.Jobs,
		Pings:    services.Pings,
		Channels: services.Channels,
		Settings: services.Settings,
		Verifier: verifier,
		BaseURL:  cfg.BaseURL,
		Logger:   logger,
	})

	return &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
}

// StartHTTPServer runs the server until the context is cancelled, then shuts
// it down within the configured grace period.
func StartHTTPServer(ctx context.Context, srv *http.Server, cfg config.HTTPConfig, logger *slog.Logger) error {
	errCh := make(chan error, 1)

	go func() {
		logger.Info("http server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.ShutdownGrace)
	defer cancel()

	logger.Info("http server shutting down", "grace", cfg.ShutdownGrace)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return nil
}
