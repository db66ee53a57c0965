// Package slack delivers heartbeat notifications to Slack incoming webhooks.
package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pulsewatch/pulsewatch/internal/domain/model"
	"github.com/pulsewatch/pulsewatch/internal/notify"
)

// Config captures the subset of Slack webhook behaviour we need.
type Config struct {
	Username string
	Timeout  time.Duration
	Client   *http.Client
}

// Sender posts formatted messages to the webhook URL configured on each channel.
type Sender struct {
	username string
	client   *http.Client
}

var _ notify.Sender = (*Sender)(nil)

// NewSender builds a Slack webhook sender.
func NewSender(cfg Config) *Sender {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	hc := cfg.Client
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}

	username := strings.TrimSpace(cfg.Username)
	if username == "" {
		username = "pulsewatch"
	}

	return &Sender{
		username: username,
		client:   hc,
	}
}

// Send posts a formatted message to the channel's incoming webhook. Delivery is
// single-attempt: a transport failure means the alert is lost for this event.
func (s *Sender) Send(ctx context.Context, cfg model.ChannelConfig, payload notify.EventPayload) error {
	webhookURL := strings.TrimSpace(cfg.WebhookURL)
	if webhookURL == "" {
		return errors.New("slack webhook url is not configured")
	}

	body, err := json.Marshal(s.formatMessage(payload))
	if err != nil {
		return fmt.Errorf("encode slack payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create slack request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("slack request failed: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return handleErrorResponse(resp)
	}

	return drainSuccess(resp)
}

func (s *Sender) formatMessage(payload notify.EventPayload) map[string]any {
	text := strings.Builder{}
	text.WriteString("*")
	text.WriteString(payload.Headline())
	text.WriteString("*\n")

	appendField(&text, "Job", fmt.Sprintf("`%s` (%s)", payload.JobName, payload.JobID))
	appendField(&text, "Status", string(payload.CurrentStatus))
	appendField(&text, "Schedule", fmt.Sprintf("%s %s", payload.ScheduleType, payload.ScheduleValue))
	appendField(&text, "Last ping", formatTime(payload.LastPingedAt))
	appendField(&text, "Expected by", formatTime(payload.ExpectedNextPingAt))
	if payload.ExecutionLog != "" {
		appendField(&text, "Detail", payload.ExecutionLog)
	}

	occurred := payload.OccurredAt
	if occurred.IsZero() {
		occurred = time.Now()
	}
	text.WriteString("_")
	text.WriteString(occurred.UTC().Format(time.RFC3339))
	text.WriteString("_")

	return map[string]any{
		"text":     text.String(),
		"username": s.username,
	}
}

func appendField(text *strings.Builder, label, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	text.WriteString("• ")
	text.WriteString(label)
	text.WriteString(": ")
	text.WriteString(value)
	text.WriteByte('\n')
}

func formatTime(t *time.Time) string {
	if t == nil {
		return "never"
	}
	return t.UTC().Format(time.RFC3339)
}

func drainSuccess(resp *http.Response) error {
	if _, err := io.Copy(io.Discard, resp.Body); err != nil {
		closeErr := resp.Body.Close()
		if closeErr != nil {
			return errors.Join(
				fmt.Errorf("drain slack response body: %w", err),
				fmt.Errorf("close response body: %w", closeErr),
			)
		}
		return fmt.Errorf("drain slack response body: %w", err)
	}
	if err := resp.Body.Close(); err != nil {
		return fmt.Errorf("close response body: %w", err)
	}
	return nil
}

func handleErrorResponse(resp *http.Response) error {
	respBody, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		closeErr := resp.Body.Close()
		if closeErr != nil {
			return errors.Join(
				fmt.Errorf("read slack error response: %w", readErr),
				fmt.Errorf("close response body: %w", closeErr),
			)
		}
		return fmt.Errorf("read slack error response: %w", readErr)
	}
	if err := resp.Body.Close(); err != nil {
		return fmt.Errorf("close response body: %w", err)
	}

	return fmt.Errorf("slack api %s: %s", resp.Status, strings.TrimSpace(string(respBody)))
}
