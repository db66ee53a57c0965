package config

import (
	"strings"
	"time"
)

// ScannerConfig contains late-job scanner service configuration.
type ScannerConfig struct {
	// Interval is the scanner tick interval.
	Interval time.Duration `env:"SCANNER_INTERVAL" envDefault:"30s"`

	// BatchSize bounds how many overdue jobs one tick processes.
	BatchSize int `env:"SCANNER_BATCH_SIZE" envDefault:"100"`

	// EscalationMultiplier scales the late-to-errored threshold. A job overdue
	// by more than multiplier x (grace + nominal period) is marked errored.
	EscalationMultiplier float64 `env:"SCANNER_ESCALATION_MULTIPLIER" envDefault:"3"`
}

// Sanitize applies guardrails to scanner configuration values.
func (s *ScannerConfig) Sanitize() {
	if s.Interval < time.Second {
		s.Interval = 30 * time.Second
	}
	if s.BatchSize < 1 {
		s.BatchSize = 100
	}
	if s.EscalationMultiplier <= 0 {
		s.EscalationMultiplier = 3
	}
}

// NotifierConfig contains notification dispatch configuration.
type NotifierConfig struct {
	// SendTimeout bounds each individual channel delivery.
	SendTimeout time.Duration `env:"NOTIFIER_SEND_TIMEOUT" envDefault:"10s"`

	// SendGrid configures the email sender. Email channels stay disabled
	// until an API key is set.
	SendGrid SendGridConfig `envPrefix:"SENDGRID_"`

	// Slack configures the Slack webhook sender.
	Slack SlackSenderConfig `envPrefix:"SLACK_"`

	// PagerDuty configures the PagerDuty events sender.
	PagerDuty PagerDutySenderConfig `envPrefix:"PAGERDUTY_"`
}

// Sanitize applies guardrails to notifier configuration values.
func (n *NotifierConfig) Sanitize() {
	if n.SendTimeout <= 0 {
		n.SendTimeout = 10 * time.Second
	}
	n.SendGrid.sanitize()
}

// SendGridConfig contains SendGrid email delivery configuration.
type SendGridConfig struct {
	APIKey    string `env:"API_KEY"`
	FromEmail string `env:"FROM_EMAIL" envDefault:"alerts@pulsewatch.local"`
	FromName  string `env:"FROM_NAME"  envDefault:"Pulsewatch"`
}

func (c *SendGridConfig) sanitize() {
	c.APIKey = strings.TrimSpace(c.APIKey)
	c.FromEmail = strings.TrimSpace(c.FromEmail)
}

// IsEnabled returns true when email delivery is configured.
func (c *SendGridConfig) IsEnabled() bool {
	return c.APIKey != "" && c.FromEmail != ""
}

// SlackSenderConfig contains Slack webhook sender configuration.
// The webhook URL itself lives on each notification channel.
type SlackSenderConfig struct {
	Username string        `env:"USERNAME" envDefault:"pulsewatch"`
	Timeout  time.Duration `env:"TIMEOUT"  envDefault:"5s"`
}

// PagerDutySenderConfig contains PagerDuty Events API v2 sender configuration.
// The routing key lives on each notification channel.
type PagerDutySenderConfig struct {
	Source    string        `env:"SOURCE"    envDefault:"pulsewatch"`
	Component string        `env:"COMPONENT" envDefault:"pulsewatch"`
	Timeout   time.Duration `env:"TIMEOUT"   envDefault:"5s"`
}
