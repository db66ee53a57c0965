// Package notify defines the normalized notification payload contract and the
// sender capability interface implemented by each channel transport.
package notify

import (
	"context"
	"time"

	"github.com/pulsewatch/pulsewatch/internal/domain/model"
)

// EventKind classifies the status transition that triggered a notification.
type EventKind string

const (
	// EventKindFailure is raised when the scanner escalates a job to errored.
	EventKindFailure EventKind = "failure"
	// EventKindLateness is raised when the scanner marks a job late.
	EventKindLateness EventKind = "lateness"
	// EventKindRecovery is raised when a ping returns a late/errored job to healthy.
	EventKindRecovery EventKind = "recovery"
)

// Valid returns true if the EventKind is known.
func (k EventKind) Valid() bool {
	return k == EventKindFailure || k == EventKindLateness || k == EventKindRecovery
}

// EventPayload is the normalized message passed to every channel sender
// regardless of transport.
type EventPayload struct {
	JobID              string
	JobName            string
	ScheduleType       model.ScheduleType
	ScheduleValue      string
	CurrentStatus      model.JobStatus
	EventKind          EventKind
	LastPingedAt       *time.Time
	ExpectedNextPingAt *time.Time
	ExecutionLog       string
	OccurredAt         time.Time
}

// Sender delivers a payload through one channel type. Implementations receive
// the channel's persisted configuration per call because channels are
// operator-defined rows, not process-level singletons.
type Sender interface {
	Send(ctx context.Context, cfg model.ChannelConfig, payload EventPayload) error
}

// SenderFunc adapts a function to the Sender interface (useful for tests).
type SenderFunc func(ctx context.Context, cfg model.ChannelConfig, payload EventPayload) error

// Send implements the Sender interface.
func (f SenderFunc) Send(ctx context.Context, cfg model.ChannelConfig, payload EventPayload) error {
	if f == nil {
		return nil
	}
	return f(ctx, cfg, payload)
}

// Headline returns a short human summary for the event, shared by senders that
// need a subject or title line.
func (p EventPayload) Headline() string {
	switch p.EventKind {
	case EventKindFailure:
		return "[CRITICAL] " + p.JobName + " appears to be down"
	case EventKindLateness:
		return "[WARNING] " + p.JobName + " is running late"
	case EventKindRecovery:
		return "[RESOLVED] " + p.JobName + " recovered"
	default:
		return p.JobName
	}
}
