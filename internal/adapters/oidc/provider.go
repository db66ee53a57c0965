package oidc

// Package oidc verifies OIDC bearer tokens against a provider's JWKS.

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	gooidc "github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	domainauth "github.com/pulsewatch/pulsewatch/internal/domain/auth"
	"github.com/pulsewatch/pulsewatch/internal/ports"
)

// Verifier implements ports.TokenVerifier using OIDC discovery and JWKS.
type Verifier struct {
	verifier *gooidc.IDTokenVerifier
}

var _ ports.TokenVerifier = (*Verifier)(nil)

// VerifierConfig holds configuration for the OIDC verifier.
type VerifierConfig struct {
	// IssuerURL is the provider issuer; discovery runs against it once.
	IssuerURL string
	// ClientID is the audience presented tokens must carry.
	ClientID string
	// HTTPClient is optional and defaults to a 30s-timeout client.
	HTTPClient *http.Client
}

// NewVerifier creates a token verifier, performing OIDC discovery eagerly so
// a misconfigured issuer fails at startup rather than on the first request.
func NewVerifier(ctx context.Context, cfg VerifierConfig) (*Verifier, error) {
	if cfg.IssuerURL == "" {
		return nil, errors.New("issuer URL is required")
	}
	if cfg.ClientID == "" {
		return nil, errors.New("client ID is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, httpClient)
	issuer := strings.TrimSuffix(cfg.IssuerURL, "/")
	issuer = strings.TrimSuffix(issuer, "/.well-known/openid-configuration")
	provider, err := gooidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("oidc discovery: %w", err)
	}

	return &Verifier{
		verifier: provider.Verifier(&gooidc.Config{ClientID: cfg.ClientID}),
	}, nil
}

// tokenClaims is the subset of ID token claims we read.
type tokenClaims struct {
	Sub   string `json:"sub"`
	Email string `json:"email"`
}

// Verify checks signature, issuer, audience and expiry, then maps the claims
// onto a domain identity. The token subject is the account id.
func (v *Verifier) Verify(ctx context.Context, rawToken string) (domainauth.Identity, error) {
	if rawToken == "" {
		return domainauth.Identity{}, errors.New("bearer token is required")
	}

	idToken, err := v.verifier.Verify(ctx, rawToken)
	if err != nil {
		return domainauth.Identity{}, fmt.Errorf("verify token: %w", err)
	}

	var claims tokenClaims
	if err := idToken.Claims(&claims); err != nil {
		return domainauth.Identity{}, fmt.Errorf("parse token claims: %w", err)
	}

	id := mapClaims(claims, idToken.Expiry)
	if !id.Valid(time.Now()) {
		return domainauth.Identity{}, errors.New("token has no usable subject")
	}
	return id, nil
}

// mapClaims converts raw token claims into a domain identity.
func mapClaims(c tokenClaims, expiry time.Time) domainauth.Identity {
	return domainauth.Identity{
		AccountID: c.Sub,
		Email:     c.Email,
		ExpiresAt: expiry,
	}
}
