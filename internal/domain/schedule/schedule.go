// Package schedule computes when a monitored job's next ping is due. It is a
// pure calculator: deterministic given its inputs, with no I/O and no clock
// access beyond the optional now-dependent cron period estimate.
package schedule

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/pulsewatch/pulsewatch/internal/domain/model"
)

// cronParser accepts standard five-field cron expressions, an optional leading
// seconds field, and descriptors like @hourly.
var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

var intervalRe = regexp.MustCompile(`^(\d+)([mhd])$`)

// unitDurations maps interval units to their fixed lengths.
var unitDurations = map[string]time.Duration{
	"m": time.Minute,
	"h": time.Hour,
	"d": 24 * time.Hour,
}

// NextPing returns the first time strictly after from at which a ping is expected.
// Invalid schedule definitions are reported as errors, never panics.
func NextPing(scheduleType model.ScheduleType, scheduleValue string, from time.Time) (time.Time, error) {
	switch scheduleType {
	case model.ScheduleTypeCron:
		sched, err := cronParser.Parse(scheduleValue)
		if err != nil {
			return time.Time{}, fmt.Errorf("parse cron expression %q: %w", scheduleValue, err)
		}
		next := sched.Next(from)
		if next.IsZero() {
			return time.Time{}, fmt.Errorf("cron expression %q has no future occurrence", scheduleValue)
		}
		return next, nil

	case model.ScheduleTypeInterval:
		d, err := ParseInterval(scheduleValue)
		if err != nil {
			return time.Time{}, err
		}
		return from.Add(d), nil

	default:
		return time.Time{}, fmt.Errorf("unknown schedule type: %q", scheduleType)
	}
}

// NominalPeriod estimates the typical cadence of a schedule. For intervals it is
// exact; for cron it is the gap between the first two occurrences after now,
// which is an approximation for irregular expressions (e.g. "once a month").
// Callers must treat it as an escalation heuristic, not a correctness input.
func NominalPeriod(scheduleType model.ScheduleType, scheduleValue string) (time.Duration, error) {
	switch scheduleType {
	case model.ScheduleTypeCron:
		sched, err := cronParser.Parse(scheduleValue)
		if err != nil {
			return 0, fmt.Errorf("parse cron expression %q: %w", scheduleValue, err)
		}
		first := sched.Next(time.Now())
		if first.IsZero() {
			return 0, fmt.Errorf("cron expression %q has no future occurrence", scheduleValue)
		}
		second := sched.Next(first)
		if second.IsZero() {
			return 0, fmt.Errorf("cron expression %q has a single future occurrence", scheduleValue)
		}
		return second.Sub(first), nil

	case model.ScheduleTypeInterval:
		return ParseInterval(scheduleValue)

	default:
		return 0, fmt.Errorf("unknown schedule type: %q", scheduleType)
	}
}

// ParseInterval parses an interval schedule value of the form "<N><unit>" with
// unit m, h or d.
func ParseInterval(value string) (time.Duration, error) {
	m := intervalRe.FindStringSubmatch(value)
	if m == nil {
		return 0, fmt.Errorf("invalid interval value %q: expected <N><unit> with unit m, h or d", value)
	}
	n, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid interval count %q: %w", m[1], err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("interval count must be positive, got %d", n)
	}
	return time.Duration(n) * unitDurations[m[2]], nil
}

// Validate reports whether the schedule definition parses. Used by request
// validation so malformed schedules are rejected before they are persisted.
func Validate(scheduleType model.ScheduleType, scheduleValue string) error {
	_, err := NextPing(scheduleType, scheduleValue, time.Unix(0, 0).UTC())
	return err
}
