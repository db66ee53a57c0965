package auth

// Package auth contains domain-level types for request authentication.
// It is pure and free of framework/adapter concerns.

import "time"

// Identity represents the authenticated principal attached to a request.
// Adapters map provider-specific claims into this shape.
type Identity struct {
	// AccountID is the stable account identifier (the token subject).
	AccountID string
	// Email is informational only; it plays no part in authorization.
	Email     string
	ExpiresAt time.Time
}

// Valid reports whether the identity names an account and has not expired.
func (i Identity) Valid(now time.Time) bool {
	if i.AccountID == "" {
		return false
	}
	return i.ExpiresAt.IsZero() || now.Before(i.ExpiresAt)
}
