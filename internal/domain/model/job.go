// Package model defines the core data types used throughout the pulsewatch
// heartbeat monitoring system.
package model

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// ScheduleType selects how a job's expected ping time is computed.
//
//nolint:recvcheck // UnmarshalText needs pointer receiver, Valid needs value receiver
type ScheduleType string

// JobStatus represents the current health of a monitored job.
type JobStatus string

const (
	// ScheduleTypeCron is a standard five/six-field cron expression.
	ScheduleTypeCron ScheduleType = "cron"
	// ScheduleTypeInterval is a fixed cadence of the form "<N><unit>" with unit m, h or d.
	ScheduleTypeInterval ScheduleType = "interval"

	// JobStatusActive indicates a freshly created job that has not pinged yet.
	JobStatusActive JobStatus = "active"
	// JobStatusHealthy indicates the job pinged within its expected window.
	JobStatusHealthy JobStatus = "healthy"
	// JobStatusLate indicates the job missed its window but is within the escalation threshold.
	JobStatusLate JobStatus = "late"
	// JobStatusErrored indicates the job has been overdue long enough to be treated as failed.
	JobStatusErrored JobStatus = "errored"
	// JobStatusPaused indicates monitoring is suspended; the scanner ignores the job.
	JobStatusPaused JobStatus = "paused"
)

// UnmarshalText implements encoding.TextUnmarshaler for ScheduleType to allow env/JSON parsing.
func (t *ScheduleType) UnmarshalText(text []byte) error {
	v := ScheduleType(strings.ToLower(strings.TrimSpace(string(text))))
	if !v.Valid() {
		return fmt.Errorf("invalid schedule type: %q", string(text))
	}
	*t = v
	return nil
}

// Valid returns true if the ScheduleType is one of the supported kinds.
func (t ScheduleType) Valid() bool {
	return t == ScheduleTypeCron || t == ScheduleTypeInterval
}

// Valid returns true if the JobStatus is a known state.
func (s JobStatus) Valid() bool {
	switch s {
	case JobStatusActive, JobStatusHealthy, JobStatusLate, JobStatusErrored, JobStatusPaused:
		return true
	default:
		return false
	}
}

// Alertable reports whether a ping arriving in this state constitutes a recovery.
func (s JobStatus) Alertable() bool {
	return s == JobStatusLate || s == JobStatusErrored
}

// MonitoredJob is a heartbeat-monitored unit of work. The system never runs the
// job; it only observes pings against the schedule below.
type MonitoredJob struct {
	ID                 string       `json:"id"                             db:"id"`
	AccountID          string       `json:"account_id"                     db:"account_id"`
	Name               string       `json:"name"                           db:"name"`
	PingToken          string       `json:"ping_token"                     db:"ping_token"`
	ScheduleType       ScheduleType `json:"schedule_type"                  db:"schedule_type"`
	ScheduleValue      string       `json:"schedule_value"                 db:"schedule_value"`
	GracePeriodSeconds int          `json:"grace_period_seconds"           db:"grace_period_seconds"`
	Status             JobStatus    `json:"status"                         db:"status"`
	LastPingedAt       *time.Time   `json:"last_pinged_at,omitempty"       db:"last_pinged_at"`
	ExpectedNextPingAt *time.Time   `json:"expected_next_ping_at,omitempty" db:"expected_next_ping_at"`
	CreatedAt          time.Time    `json:"created_at"                     db:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at"                     db:"updated_at"`
}

// GracePeriod returns the configured grace window as a duration.
func (j *MonitoredJob) GracePeriod() time.Duration {
	return time.Duration(j.GracePeriodSeconds) * time.Second
}

// intervalValueRe matches the interval schedule grammar. The schedule package owns
// full parsing; this is only the cheap shape check used during request validation.
var intervalValueRe = regexp.MustCompile(`^\d+[mhd]$`)

// CreateJobRequest represents a request to register a new monitored job.
type CreateJobRequest struct {
	Name               string       `json:"name"`
	ScheduleType       ScheduleType `json:"schedule_type"`
	ScheduleValue      string       `json:"schedule_value"`
	GracePeriodSeconds int          `json:"grace_period_seconds"`
}

// Validate validates the CreateJobRequest fields.
func (r *CreateJobRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("name is required")
	}
	if len(r.Name) > 255 {
		return errors.New("name must be at most 255 characters")
	}
	if !r.ScheduleType.Valid() {
		return errors.New("invalid schedule type")
	}
	if strings.TrimSpace(r.ScheduleValue) == "" {
		return errors.New("schedule value is required")
	}
	if r.ScheduleType == ScheduleTypeInterval && !intervalValueRe.MatchString(r.ScheduleValue) {
		return fmt.Errorf("invalid interval value %q: expected <N><unit> with unit m, h or d", r.ScheduleValue)
	}
	if r.GracePeriodSeconds < 0 {
		return errors.New("grace period must be >= 0")
	}
	return nil
}

// UpdateJobRequest carries a partial job update. Nil fields are left untouched.
// Changing the schedule forces a recompute of expected_next_ping_at.
type UpdateJobRequest struct {
	Name               *string       `json:"name,omitempty"`
	ScheduleType       *ScheduleType `json:"schedule_type,omitempty"`
	ScheduleValue      *string       `json:"schedule_value,omitempty"`
	GracePeriodSeconds *int          `json:"grace_period_seconds,omitempty"`
}

// Validate validates the fields present in the UpdateJobRequest.
func (r *UpdateJobRequest) Validate() error {
	if r.Name != nil {
		if strings.TrimSpace(*r.Name) == "" {
			return errors.New("name must not be empty")
		}
		if len(*r.Name) > 255 {
			return errors.New("name must be at most 255 characters")
		}
	}
	if r.ScheduleType != nil && !r.ScheduleType.Valid() {
		return errors.New("invalid schedule type")
	}
	if (r.ScheduleType != nil) != (r.ScheduleValue != nil) {
		return errors.New("schedule type and value must be updated together")
	}
	if r.ScheduleType != nil && *r.ScheduleType == ScheduleTypeInterval &&
		!intervalValueRe.MatchString(*r.ScheduleValue) {
		return fmt.Errorf("invalid interval value %q: expected <N><unit> with unit m, h or d", *r.ScheduleValue)
	}
	if r.GracePeriodSeconds != nil && *r.GracePeriodSeconds < 0 {
		return errors.New("grace period must be >= 0")
	}
	return nil
}

// TouchesSchedule reports whether applying the update changes the schedule definition.
func (r *UpdateJobRequest) TouchesSchedule() bool {
	return r.ScheduleType != nil || r.ScheduleValue != nil
}
