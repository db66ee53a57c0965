package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/mail"
	"net/url"
	"regexp"
	"strings"
	"time"

	"golang.org/x/net/publicsuffix"
)

// ChannelType identifies the transport behind a notification channel.
//
//nolint:recvcheck // UnmarshalText needs pointer receiver, Valid needs value receiver
type ChannelType string

const (
	// ChannelTypeEmail delivers notifications by email.
	ChannelTypeEmail ChannelType = "email"
	// ChannelTypeSlack posts to a Slack incoming webhook.
	ChannelTypeSlack ChannelType = "slack"
	// ChannelTypePagerDuty triggers a PagerDuty Events API v2 alert.
	ChannelTypePagerDuty ChannelType = "pagerduty"
	// ChannelTypeWebhook posts the payload to an arbitrary HTTP endpoint.
	ChannelTypeWebhook ChannelType = "webhook"
)

// slackWebhookPrefix is the required host prefix for Slack incoming webhooks.
const slackWebhookPrefix = "https://hooks.slack.com/"

// pagerdutyRoutingKeyRe matches a 32-character alphanumeric Events API routing key.
var pagerdutyRoutingKeyRe = regexp.MustCompile(`^[A-Za-z0-9]{32}$`)

// UnmarshalText implements encoding.TextUnmarshaler for ChannelType.
func (t *ChannelType) UnmarshalText(text []byte) error {
	v := ChannelType(strings.ToLower(strings.TrimSpace(string(text))))
	if !v.Valid() {
		return fmt.Errorf("invalid channel type: %q", string(text))
	}
	*t = v
	return nil
}

// Valid returns true if the ChannelType is supported.
func (t ChannelType) Valid() bool {
	switch t {
	case ChannelTypeEmail, ChannelTypeSlack, ChannelTypePagerDuty, ChannelTypeWebhook:
		return true
	default:
		return false
	}
}

// VerifiedByDefault reports whether channels of this type are born verified.
// Email is the exception: it must prove ownership of the address first.
func (t ChannelType) VerifiedByDefault() bool {
	return t != ChannelTypeEmail
}

// ChannelConfig holds the union of per-type configuration fields. Exactly the
// fields relevant to the channel's type are populated; the rest stay empty.
// Persisted as JSONB.
type ChannelConfig struct {
	// Email address for email channels.
	Email string `json:"email,omitempty"`
	// WebhookURL for slack channels (must be a Slack incoming-webhook URL).
	WebhookURL string `json:"webhook_url,omitempty"`
	// RoutingKey for pagerduty channels (Events API v2).
	RoutingKey string `json:"routing_key,omitempty"`
	// URL and optional Headers for generic webhook channels.
	URL     string            `json:"url,omitempty"`
	Headers map[string]string `json:"headers,omitempty"`
}

// Validate checks the configuration against the schema for the given channel type.
// Validation happens at create/update time; the dispatcher trusts persisted config.
func (c *ChannelConfig) Validate(t ChannelType) error {
	switch t {
	case ChannelTypeEmail:
		return c.validateEmail()
	case ChannelTypeSlack:
		return c.validateSlack()
	case ChannelTypePagerDuty:
		return c.validatePagerDuty()
	case ChannelTypeWebhook:
		return c.validateWebhook()
	default:
		return fmt.Errorf("invalid channel type: %q", t)
	}
}

func (c *ChannelConfig) validateEmail() error {
	addr := strings.TrimSpace(c.Email)
	if addr == "" {
		return errors.New("email is required")
	}
	parsed, err := mail.ParseAddress(addr)
	if err != nil {
		return fmt.Errorf("invalid email address: %w", err)
	}
	at := strings.LastIndex(parsed.Address, "@")
	if at < 0 {
		return errors.New("invalid email address")
	}
	host := strings.ToLower(parsed.Address[at+1:])
	// Reject addresses whose domain has no recognised public suffix (e.g. "user@localhost")
	// or that are a bare suffix like "user@com".
	if suffix, icann := publicsuffix.PublicSuffix(host); !icann || suffix == host {
		return fmt.Errorf("email domain %q has no recognised public suffix", host)
	}
	return nil
}

func (c *ChannelConfig) validateSlack() error {
	u := strings.TrimSpace(c.WebhookURL)
	if u == "" {
		return errors.New("webhook_url is required")
	}
	if !strings.HasPrefix(u, slackWebhookPrefix) {
		return fmt.Errorf("webhook_url must begin with %s", slackWebhookPrefix)
	}
	return nil
}

func (c *ChannelConfig) validatePagerDuty() error {
	if !pagerdutyRoutingKeyRe.MatchString(strings.TrimSpace(c.RoutingKey)) {
		return errors.New("routing_key must be a 32-character alphanumeric string")
	}
	return nil
}

func (c *ChannelConfig) validateWebhook() error {
	raw := strings.TrimSpace(c.URL)
	if raw == "" {
		return errors.New("url is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("url scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("url host is required")
	}
	for k, v := range c.Headers {
		if strings.TrimSpace(k) == "" {
			return errors.New("header names must not be empty")
		}
		if strings.ContainsAny(k, "\r\n") || strings.ContainsAny(v, "\r\n") {
			return fmt.Errorf("header %q contains invalid characters", k)
		}
	}
	return nil
}

// Equal reports whether two configurations are identical. Used to decide whether
// an email channel edit must reset verification.
func (c *ChannelConfig) Equal(other ChannelConfig) bool {
	if c.Email != other.Email || c.WebhookURL != other.WebhookURL ||
		c.RoutingKey != other.RoutingKey || c.URL != other.URL {
		return false
	}
	if len(c.Headers) != len(other.Headers) {
		return false
	}
	for k, v := range c.Headers {
		if other.Headers[k] != v {
			return false
		}
	}
	return true
}

// MarshalConfig serialises the config for JSONB storage.
func (c *ChannelConfig) MarshalConfig() (json.RawMessage, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal channel config: %w", err)
	}
	return b, nil
}

// NotificationChannel is an operator-owned notification destination.
type NotificationChannel struct {
	ID                string        `json:"id"          db:"id"`
	AccountID         string        `json:"account_id"  db:"account_id"`
	Type              ChannelType   `json:"type"        db:"type"`
	Name              string        `json:"name"        db:"name"`
	Config            ChannelConfig `json:"configuration_details" db:"configuration_details"`
	IsVerified        bool          `json:"is_verified" db:"is_verified"`
	VerificationToken string        `json:"-"           db:"verification_token"`
	CreatedAt         time.Time     `json:"created_at"  db:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"  db:"updated_at"`
}

// CreateChannelRequest represents a request to register a notification channel.
type CreateChannelRequest struct {
	Type   ChannelType   `json:"type"`
	Name   string        `json:"name"`
	Config ChannelConfig `json:"configuration_details"`
}

// Validate validates the CreateChannelRequest fields.
func (r *CreateChannelRequest) Validate() error {
	if !r.Type.Valid() {
		return errors.New("invalid channel type")
	}
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("name is required")
	}
	if len(r.Name) > 255 {
		return errors.New("name must be at most 255 characters")
	}
	return r.Config.Validate(r.Type)
}

// UpdateChannelRequest carries a partial channel update. The channel type itself
// is immutable; only name and configuration may change.
type UpdateChannelRequest struct {
	Name   *string        `json:"name,omitempty"`
	Config *ChannelConfig `json:"configuration_details,omitempty"`
}

// Validate validates the fields present in the UpdateChannelRequest against the
// channel's existing type.
func (r *UpdateChannelRequest) Validate(t ChannelType) error {
	if r.Name != nil {
		if strings.TrimSpace(*r.Name) == "" {
			return errors.New("name must not be empty")
		}
		if len(*r.Name) > 255 {
			return errors.New("name must be at most 255 characters")
		}
	}
	if r.Config != nil {
		return r.Config.Validate(t)
	}
	return nil
}
