// Package webhook delivers heartbeat notifications as JSON POSTs to
// operator-configured HTTP endpoints.
package webhook

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

// Config captures runtime configuration for the generic webhook sender.
type Config struct {
	Timeout time.Duration
	Client  *http.Client
}

// Sender posts the normalized event payload to the channel's URL with any
// configured extra headers.
type Sender struct {
	client *http.Client
}

var _ notify.Sender = (*Sender)(nil)

// NewSender constructs a webhook sender.
func NewSender(cfg Config) *Sender {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	hc := cfg.Client
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}

	return &Sender{client: hc}
}

// wirePayload is the JSON document posted to webhook endpoints. Field names are
// part of the public contract; do not rename them.
type wirePayload struct {
	JobID              string `json:"job_id"`
	JobName            string `json:"job_name"`
	ScheduleType       string `json:"schedule_type"`
	ScheduleValue      string `json:"schedule_value"`
	CurrentStatus      string `json:"current_status"`
	EventKind          string `json:"event_kind"`
	LastPingedAt       string `json:"last_pinged_at,omitempty"`
	ExpectedNextPingAt string `json:"expected_next_ping_at,omitempty"`
	ExecutionLog       string `json:"execution_log,omitempty"`
	OccurredAt         string `json:"occurred_at"`
}

// Send posts the payload. Delivery is single-attempt with a bounded timeout.
func (s *Sender) Send(ctx context.Context, cfg model.ChannelConfig, payload notify.EventPayload) error {
	target := strings.TrimSpace(cfg.URL)
	if target == "" {
		return errors.New("webhook url is not configured")
	}

	occurred := payload.OccurredAt
	if occurred.IsZero() {
		occurred = time.Now()
	}

	wp := wirePayload{
		JobID:         payload.JobID,
		JobName:       payload.JobName,
		ScheduleType:  string(payload.ScheduleType),
		ScheduleValue: payload.ScheduleValue,
		CurrentStatus: string(payload.CurrentStatus),
		EventKind:     string(payload.EventKind),
		ExecutionLog:  payload.ExecutionLog,
		OccurredAt:    occurred.UTC().Format(time.RFC3339),
	}
	if payload.LastPingedAt != nil {
		wp.LastPingedAt = payload.LastPingedAt.UTC().Format(time.RFC3339)
	}
	if payload.ExpectedNextPingAt != nil {
		wp.ExpectedNextPingAt = payload.ExpectedNextPingAt.UTC().Format(time.RFC3339)
	}

	body, err := json.Marshal(wp)
	if err != nil {
		return fmt.Errorf("encode webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range cfg.Headers {
		req.Header.Set(k, v)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook request failed: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("webhook endpoint %s: %s", resp.Status, strings.TrimSpace(string(respBody)))
	}

	return nil
}
