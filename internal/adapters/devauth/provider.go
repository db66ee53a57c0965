package devauth

// Package devauth provides a static, config-driven TokenVerifier for local
// development. It accepts any non-empty bearer token and always returns the
// configured identity.

import (
	"context"
	"errors"

	domainauth "github.com/pulsewatch/pulsewatch/internal/domain/auth"
	"github.com/pulsewatch/pulsewatch/internal/ports"
)

// Config controls the dev verifier identity.
type Config struct {
	AccountID string
	Email     string
}

// Verifier implements ports.TokenVerifier for local development.
type Verifier struct {
	identity domainauth.Identity
}

var _ ports.TokenVerifier = (*Verifier)(nil)

// NewVerifier creates a static verifier for the configured account.
func NewVerifier(cfg Config) (*Verifier, error) {
	if cfg.AccountID == "" {
		return nil, errors.New("account id is required")
	}
	return &Verifier{
		identity: domainauth.Identity{AccountID: cfg.AccountID, Email: cfg.Email},
	}, nil
}

// Verify returns the configured identity for any non-empty token.
func (v *Verifier) Verify(_ context.Context, rawToken string) (domainauth.Identity, error) {
	if rawToken == "" {
		return domainauth.Identity{}, errors.New("bearer token is required")
	}
	return v.identity, nil
}
