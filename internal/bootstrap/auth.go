package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pulsewatch/pulsewatch/config"
	"github.com/pulsewatch/pulsewatch/internal/adapters/devauth"
	"github.com/pulsewatch/pulsewatch/internal/adapters/oidc"
	"github.com/pulsewatch/pulsewatch/internal/ports"
)

// BuildVerifier selects the token verifier for the HTTP API.
//
// Mock mode hands out a fixed development identity and never talks to an
// identity provider. A dev process without an issuer falls back to mock so
// local runs do not need an identity provider. OIDC mode runs discovery
// against the issuer at startup, so a misconfigured issuer fails the boot
// instead of the first request.
//
//nolint:ireturn // the verifier implementation is chosen by configuration.
func BuildVerifier(ctx context.Context, cfg config.AuthConfig, isDev bool, logger *slog.Logger) (ports.TokenVerifier, error) {
	if cfg.Mode == config.AuthModeMock || (isDev && cfg.OIDC.IssuerURL == "") {
		if logger != nil {
			logger.Warn("authentication running in mock mode",
				"account_id", cfg.DevAuth.AccountID)
		}
		return devauth.NewVerifier(devauth.Config{
			AccountID: cfg.DevAuth.AccountID,
			Email:     cfg.DevAuth.Email,
		})
	}

	verifier, err := oidc.NewVerifier(ctx, oidc.VerifierConfig{
		IssuerURL: cfg.OIDC.IssuerURL,
		ClientID:  cfg.OIDC.ClientID,
	})
	if err != nil {
		return nil, fmt.Errorf("init oidc verifier: %w", err)
	}

	if logger != nil {
		logger.Info("oidc verifier initialized", "issuer", cfg.OIDC.IssuerURL)
	}
	return verifier, nil
}
