package oidc

import (
	"context"
	"testing"
	"time"
)

func TestNewVerifierValidation(t *testing.T) {
	if _, err := NewVerifier(context.Background(), VerifierConfig{ClientID: "pulsewatch"}); err == nil {
		t.Error("expected error for missing issuer URL")
	}
	if _, err := NewVerifier(context.Background(), VerifierConfig{IssuerURL: "https://idp.example.com"}); err == nil {
		t.Error("expected error for missing client ID")
	}
}

func TestMapClaims(t *testing.T) {
	expiry := time.Now().Add(time.Hour)
	id := mapClaims(tokenClaims{Sub: "acct-42", Email: "ops@example.com"}, expiry)

	if id.AccountID != "acct-42" {
		t.Errorf("AccountID = %q, want acct-42", id.AccountID)
	}
	if id.Email != "ops@example.com" {
		t.Errorf("Email = %q", id.Email)
	}
	if !id.ExpiresAt.Equal(expiry) {
		t.Errorf("ExpiresAt = %v, want %v", id.ExpiresAt, expiry)
	}
	if !id.Valid(time.Now()) {
		t.Error("mapped identity should be valid")
	}
}

func TestMapClaimsMissingSubject(t *testing.T) {
	id := mapClaims(tokenClaims{Email: "ops@example.com"}, time.Now().Add(time.Hour))
	if id.Valid(time.Now()) {
		t.Error("identity without a subject must not validate")
	}
}
