package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelConfigValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{"plain address", "ops@example.com", false},
		{"display name form", "Ops Team <ops@example.com>", false},
		{"subdomain", "alerts@mon.internal.example.co.uk", false},
		{"empty", "", true},
		{"no at sign", "example.com", true},
		{"no domain", "ops@", true},
		{"local-only host", "ops@localhost", true},
		{"bare public suffix", "ops@com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := ChannelConfig{Email: tt.email}
			err := cfg.Validate(ChannelTypeEmail)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestChannelConfigValidateSlack(t *testing.T) {
	cfg := ChannelConfig{WebhookURL: "https://hooks.slack.com/services/T000/B000/XXXX"}
	assert.NoError(t, cfg.Validate(ChannelTypeSlack))

	for _, bad := range []string{
		"",
		"https://example.com/webhook",
		"http://hooks.slack.com/services/T000/B000/XXXX",
		"hooks.slack.com/services/T000",
	} {
		cfg := ChannelConfig{WebhookURL: bad}
		assert.Error(t, cfg.Validate(ChannelTypeSlack), "expected %q to be rejected", bad)
	}
}

func TestChannelConfigValidatePagerDuty(t *testing.T) {
	cfg := ChannelConfig{RoutingKey: "0123456789abcdef0123456789abcdef"}
	require.Len(t, cfg.RoutingKey, 32)
	assert.NoError(t, cfg.Validate(ChannelTypePagerDuty))

	for _, bad := range []string{
		"",
		"short",
		"0123456789abcdef0123456789abcde",    // 31 chars
		"0123456789abcdef0123456789abcdef0",  // 33 chars
		"0123456789abcdef0123456789abcde-",   // non-alphanumeric
		"0123456789 bcdef0123456789abcdef",   // embedded space
	} {
		cfg := ChannelConfig{RoutingKey: bad}
		assert.Error(t, cfg.Validate(ChannelTypePagerDuty), "expected %q to be rejected", bad)
	}
}

func TestChannelConfigValidateWebhook(t *testing.T) {
	cfg := ChannelConfig{
		URL:     "https://alerts.example.com/hook",
		Headers: map[string]string{"Authorization": "Bearer abc", "X-Env": "prod"},
	}
	assert.NoError(t, cfg.Validate(ChannelTypeWebhook))

	cfg = ChannelConfig{URL: "http://alerts.example.com/hook"}
	assert.NoError(t, cfg.Validate(ChannelTypeWebhook))

	for name, bad := range map[string]ChannelConfig{
		"empty url":      {},
		"ftp scheme":     {URL: "ftp://example.com/hook"},
		"no host":        {URL: "https:///hook"},
		"crlf in header": {URL: "https://example.com", Headers: map[string]string{"X-Bad": "a\r\nb"}},
		"empty header":   {URL: "https://example.com", Headers: map[string]string{"": "v"}},
	} {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, bad.Validate(ChannelTypeWebhook))
		})
	}
}

func TestChannelTypeVerifiedByDefault(t *testing.T) {
	assert.False(t, ChannelTypeEmail.VerifiedByDefault())
	assert.True(t, ChannelTypeSlack.VerifiedByDefault())
	assert.True(t, ChannelTypePagerDuty.VerifiedByDefault())
	assert.True(t, ChannelTypeWebhook.VerifiedByDefault())
}

func TestChannelConfigEqual(t *testing.T) {
	a := ChannelConfig{Email: "ops@example.com"}
	b := ChannelConfig{Email: "ops@example.com"}
	assert.True(t, a.Equal(b))

	b.Email = "other@example.com"
	assert.False(t, a.Equal(b))

	w1 := ChannelConfig{URL: "https://x.example.com", Headers: map[string]string{"A": "1"}}
	w2 := ChannelConfig{URL: "https://x.example.com", Headers: map[string]string{"A": "1"}}
	assert.True(t, w1.Equal(w2))

	w2.Headers["A"] = "2"
	assert.False(t, w1.Equal(w2))
}

func TestCreateChannelRequestValidate(t *testing.T) {
	req := CreateChannelRequest{
		Type:   ChannelTypeSlack,
		Name:   "team-alerts",
		Config: ChannelConfig{WebhookURL: "https://hooks.slack.com/services/T/B/X"},
	}
	assert.NoError(t, req.Validate())

	req.Name = ""
	assert.Error(t, req.Validate())

	req = CreateChannelRequest{Type: ChannelType("sms"), Name: "x"}
	assert.Error(t, req.Validate())
}
