package auth

import (
	"testing"
	"time"
)

func TestIdentityValid(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name string
		id   Identity
		want bool
	}{
		{"account with future expiry", Identity{AccountID: "acct-1", ExpiresAt: now.Add(time.Hour)}, true},
		{"account without expiry", Identity{AccountID: "acct-1"}, true},
		{"expired token", Identity{AccountID: "acct-1", ExpiresAt: now.Add(-time.Minute)}, false},
		{"missing account", Identity{ExpiresAt: now.Add(time.Hour)}, false},
		{"zero value", Identity{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.id.Valid(now); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}
