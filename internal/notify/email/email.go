// Package email delivers heartbeat notifications through SendGrid.
package email

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/pulsewatch/pulsewatch/internal/domain/model"
	"github.com/pulsewatch/pulsewatch/internal/notify"
)

// Config captures SendGrid settings shared by all email channels.
type Config struct {
	APIKey    string
	FromEmail string
	FromName  string
}

// Sender sends plain-text alert emails to the address configured on each channel.
type Sender struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

var _ notify.Sender = (*Sender)(nil)

// NewSender constructs an email sender. The API key and from address are
// process-level configuration; the recipient comes from each channel row.
func NewSender(cfg Config) (*Sender, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("sendgrid api key is required")
	}
	if strings.TrimSpace(cfg.FromEmail) == "" {
		return nil, errors.New("from email is required")
	}

	fromName := strings.TrimSpace(cfg.FromName)
	if fromName == "" {
		fromName = "Pulsewatch"
	}

	return &Sender{
		client:    sendgrid.NewSendClient(cfg.APIKey),
		fromEmail: cfg.FromEmail,
		fromName:  fromName,
	}, nil
}

// Send delivers a single plain-text alert email.
func (s *Sender) Send(ctx context.Context, cfg model.ChannelConfig, payload notify.EventPayload) error {
	recipient := strings.TrimSpace(cfg.Email)
	if recipient == "" {
		return errors.New("email address is not configured")
	}

	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail("", recipient)
	body := buildBody(payload)
	message := mail.NewSingleEmail(from, payload.Headline(), to, body, body)

	resp, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid api status %d: %s", resp.StatusCode, strings.TrimSpace(resp.Body))
	}
	return nil
}

func buildBody(payload notify.EventPayload) string {
	b := strings.Builder{}
	b.WriteString(payload.Headline())
	b.WriteString("\n\n")
	b.WriteString(explain(payload))
	b.WriteString("\n\nJOB SUMMARY:\n")
	fmt.Fprintf(&b, "Job: %s (%s)\n", payload.JobName, payload.JobID)
	fmt.Fprintf(&b, "Status: %s\n", payload.CurrentStatus)
	fmt.Fprintf(&b, "Schedule: %s %s\n", payload.ScheduleType, payload.ScheduleValue)
	fmt.Fprintf(&b, "Last ping: %s\n", formatTime(payload.LastPingedAt))
	fmt.Fprintf(&b, "Expected by: %s\n", formatTime(payload.ExpectedNextPingAt))
	if payload.ExecutionLog != "" {
		b.WriteString("\nDETAIL:\n")
		b.WriteString(payload.ExecutionLog)
		b.WriteByte('\n')
	}
	return b.String()
}

func explain(payload notify.EventPayload) string {
	switch payload.EventKind {
	case notify.EventKindFailure:
		return "This job has not reported a ping for far longer than its schedule allows.\n" +
			"This usually means the job is no longer running: cron did not execute,\n" +
			"the host is down, or the script failed before completion."
	case notify.EventKindLateness:
		return "This job missed its expected ping window. It may still be running slowly\n" +
			"or may have failed to start."
	case notify.EventKindRecovery:
		return "This job has started pinging again and is back to healthy."
	default:
		return ""
	}
}

func formatTime(t *time.Time) string {
	if t == nil {
		return "never"
	}
	return t.UTC().Format(time.RFC3339)
}
