package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters; HTTP middleware consumes them.

import (
	"context"

	domainauth "github.com/pulsewatch/pulsewatch/internal/domain/auth"
)

// TokenVerifier validates a bearer token and returns the identity it proves.
type TokenVerifier interface {
	// Verify checks the raw bearer token and returns the authenticated
	// identity. An invalid, expired, or malformed token is an error.
	Verify(ctx context.Context, rawToken string) (domainauth.Identity, error)
}
