// Package dispatcher fans monitoring events out to every verified notification
// channel bound to a job. Delivery is best-effort: a failing channel is logged
// and skipped, never retried, and never blocks the monitoring pipeline.
package dispatcher

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/pulsewatch/pulsewatch/internal/core"
	"github.com/pulsewatch/pulsewatch/internal/domain/model"
	"github.com/pulsewatch/pulsewatch/internal/notify"
	"github.com/pulsewatch/pulsewatch/internal/observability/statsd"
)

const defaultSendTimeout = 10 * time.Second

// Options groups dependencies for Dispatcher.
type Options struct {
	Settings    core.SettingRepository            // Required: verified-binding reads
	Senders     map[model.ChannelType]notify.Sender // Required: sender per channel type
	Logger      *slog.Logger                      // Optional: structured logger
	Metrics     statsd.Sink                       // Optional: delivery counters
	SendTimeout time.Duration                     // Optional: per-send deadline, default 10s
}

// Dispatcher resolves a job's channel bindings and delivers one event to every
// channel whose trigger flag matches the event kind.
type Dispatcher struct {
	settings    core.SettingRepository
	senders     map[model.ChannelType]notify.Sender
	logger      *slog.Logger
	metrics     statsd.Sink
	sendTimeout time.Duration
}

// New constructs a Dispatcher.
func New(opts Options) (*Dispatcher, error) {
	if opts.Settings == nil {
		return nil, errors.New("SettingRepository is required")
	}
	if len(opts.Senders) == 0 {
		return nil, errors.New("at least one sender is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	timeout := opts.SendTimeout
	if timeout <= 0 {
		timeout = defaultSendTimeout
	}

	return &Dispatcher{
		settings:    opts.Settings,
		senders:     opts.Senders,
		logger:      logger.With("component", "dispatcher"),
		metrics:     opts.Metrics,
		sendTimeout: timeout,
	}, nil
}

// Dispatch delivers the event to all matching verified channels concurrently
// and returns once every delivery attempt has finished. Errors are absorbed
// here: notification failures must never bubble into ping handling or the
// scanner.
func (d *Dispatcher) Dispatch(ctx context.Context, payload notify.EventPayload) {
	bindings, err := d.settings.VerifiedBindings(ctx, payload.JobID)
	if err != nil {
		d.logger.ErrorContext(ctx, "failed to load channel bindings",
			"job_id", payload.JobID, "error", err)
		return
	}

	var wg sync.WaitGroup
	for _, b := range bindings {
		if !triggered(b.Setting, payload.EventKind) {
			continue
		}

		sender, ok := d.senders[b.Channel.Type]
		if !ok {
			d.logger.WarnContext(ctx, "no sender registered for channel type",
				"channel_type", b.Channel.Type, "channel_id", b.Channel.ID)
			continue
		}

		wg.Add(1)
		go func(ch model.NotificationChannel) {
			defer wg.Done()
			d.send(ctx, sender, ch, payload)
		}(b.Channel)
	}
	wg.Wait()
}

func (d *Dispatcher) send(
	ctx context.Context,
	sender notify.Sender,
	ch model.NotificationChannel,
	payload notify.EventPayload,
) {
	sendCtx, cancel := context.WithTimeout(ctx, d.sendTimeout)
	defer cancel()

	err := sender.Send(sendCtx, ch.Config, payload)

	tags := map[string]string{
		"channel": string(ch.Type),
		"kind":    string(payload.EventKind),
	}
	if err != nil {
		if d.metrics != nil {
			d.metrics.Count("notify.failed", 1, tags)
		}
		d.logger.ErrorContext(ctx, "notification delivery failed",
			"channel_id", ch.ID,
			"channel_type", ch.Type,
			"job_id", payload.JobID,
			"event_kind", payload.EventKind,
			"error", err,
		)
		return
	}

	if d.metrics != nil {
		d.metrics.Count("notify.sent", 1, tags)
	}
	d.logger.InfoContext(ctx, "notification delivered",
		"channel_id", ch.ID,
		"channel_type", ch.Type,
		"job_id", payload.JobID,
		"event_kind", payload.EventKind,
	)
}

// triggered maps an event kind to its per-binding opt-in flag.
func triggered(s model.JobNotificationSetting, kind notify.EventKind) bool {
	switch kind {
	case notify.EventKindFailure:
		return s.NotifyOnFailure
	case notify.EventKindLateness:
		return s.NotifyOnLateness
	case notify.EventKindRecovery:
		return s.NotifyOnRecovery
	default:
		return false
	}
}
