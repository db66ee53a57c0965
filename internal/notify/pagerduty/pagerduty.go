// Package pagerduty delivers heartbeat notifications via the PagerDuty Events API v2.
package pagerduty

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

// APIEndpoint is the PagerDuty Events API v2 ingest URL.
const APIEndpoint = "https://events.pagerduty.com/v2/enqueue"

// Config captures runtime configuration for the PagerDuty sender.
type Config struct {
	Source    string
	Component string
	Timeout   time.Duration
	Client    *http.Client

	// Endpoint overrides APIEndpoint, for tests.
	Endpoint string
}

// Sender publishes events using the routing key configured on each channel.
type Sender struct {
	source    string
	component string
	endpoint  string
	client    *http.Client
}

var _ notify.Sender = (*Sender)(nil)

// NewSender constructs a PagerDuty events sender.
func NewSender(cfg Config) *Sender {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	hc := cfg.Client
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}

	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		endpoint = APIEndpoint
	}

	return &Sender{
		source:    fallbackString(strings.TrimSpace(cfg.Source), "pulsewatch"),
		component: fallbackString(strings.TrimSpace(cfg.Component), "pulsewatch"),
		endpoint:  endpoint,
		client:    hc,
	}
}

// Send submits a trigger event to PagerDuty; recoveries resolve the incident
// opened for the same job so on-call state tracks the heartbeat.
func (s *Sender) Send(ctx context.Context, cfg model.ChannelConfig, payload notify.EventPayload) error {
	key := strings.TrimSpace(cfg.RoutingKey)
	if key == "" {
		return errors.New("pagerduty routing key is not configured")
	}

	body, err := json.Marshal(s.buildEvent(key, payload))
	if err != nil {
		return fmt.Errorf("encode pagerduty payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create pagerduty request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("pagerduty request failed: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return handleErrorResponse(resp)
	}

	return drainSuccess(resp)
}

func (s *Sender) buildEvent(routingKey string, payload notify.EventPayload) map[string]any {
	action := "trigger"
	severity := "critical"
	switch payload.EventKind {
	case notify.EventKindLateness:
		severity = "warning"
	case notify.EventKindRecovery:
		action = "resolve"
	}

	occurredAt := payload.OccurredAt.UTC()
	if occurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}

	custom := map[string]any{
		"job_id":         payload.JobID,
		"job_name":       payload.JobName,
		"schedule_type":  string(payload.ScheduleType),
		"schedule_value": payload.ScheduleValue,
		"status":         string(payload.CurrentStatus),
		"event_kind":     string(payload.EventKind),
	}
	if payload.LastPingedAt != nil {
		custom["last_pinged_at"] = payload.LastPingedAt.UTC().Format(time.RFC3339)
	}
	if payload.ExpectedNextPingAt != nil {
		custom["expected_next_ping_at"] = payload.ExpectedNextPingAt.UTC().Format(time.RFC3339)
	}
	if payload.ExecutionLog != "" {
		custom["execution_log"] = payload.ExecutionLog
	}

	// One incident per job: lateness and failure trigger it, recovery resolves it.
	dedupKey := "pulsewatch:" + payload.JobID

	return map[string]any{
		"routing_key":  routingKey,
		"event_action": action,
		"dedup_key":    dedupKey,
		"payload": map[string]any{
			"summary":        payload.Headline(),
			"severity":       severity,
			"source":         s.source,
			"component":      s.component,
			"timestamp":      occurredAt.Format(time.RFC3339),
			"custom_details": custom,
		},
	}
}

func fallbackString(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func drainSuccess(resp *http.Response) error {
	if _, err := io.Copy(io.Discard, resp.Body); err != nil {
		closeErr := resp.Body.Close()
		if closeErr != nil {
			return errors.Join(
				fmt.Errorf("drain pagerduty response body: %w", err),
				fmt.Errorf("close response body: %w", closeErr),
			)
		}
		return fmt.Errorf("drain pagerduty response body: %w", err)
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
				fmt.Errorf("read pagerduty error response: %w", readErr),
				fmt.Errorf("close response body: %w", closeErr),
			)
		}
		return fmt.Errorf("read pagerduty error response: %w", readErr)
	}
	if err := resp.Body.Close(); err != nil {
		return fmt.Errorf("close response body: %w", err)
	}

	return fmt.Errorf("pagerduty api %s: %s", resp.Status, strings.TrimSpace(string(respBody)))
}
