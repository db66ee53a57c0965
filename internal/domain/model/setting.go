package model

import (
	"errors"
	"strings"
	"time"
)

// JobNotificationSetting binds one job to one channel with independent trigger
// flags per event kind. At most one binding exists per (job, channel) pair;
// creating a second upserts the first.
type JobNotificationSetting struct {
	ID               string    `json:"id"                 db:"id"`
	JobID            string    `json:"job_id"             db:"job_id"`
	ChannelID        string    `json:"channel_id"         db:"channel_id"`
	NotifyOnFailure  bool      `json:"notify_on_failure"  db:"notify_on_failure"`
	NotifyOnLateness bool      `json:"notify_on_lateness" db:"notify_on_lateness"`
	NotifyOnRecovery bool      `json:"notify_on_recovery" db:"notify_on_recovery"`
	CreatedAt        time.Time `json:"created_at"         db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"         db:"updated_at"`
}

// ChannelBinding is a notification setting joined with its channel, as consumed
// by the dispatcher. Only verified channels are ever loaded into bindings.
type ChannelBinding struct {
	Setting JobNotificationSetting
	Channel NotificationChannel
}

// UpsertSettingRequest creates or replaces the binding between a job and a channel.
type UpsertSettingRequest struct {
	ChannelID        string `json:"channel_id"`
	NotifyOnFailure  bool   `json:"notify_on_failure"`
	NotifyOnLateness bool   `json:"notify_on_lateness"`
	NotifyOnRecovery bool   `json:"notify_on_recovery"`
}

// Validate validates the UpsertSettingRequest fields.
func (r *UpsertSettingRequest) Validate() error {
	if strings.TrimSpace(r.ChannelID) == "" {
		return errors.New("channel_id is required")
	}
	return nil
}
