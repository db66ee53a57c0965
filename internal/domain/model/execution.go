package model

import "time"

// ExecutionStatus classifies a single entry in a job's append-only audit log.
type ExecutionStatus string

const (
	// ExecutionStatusSuccess records a received ping.
	ExecutionStatusSuccess ExecutionStatus = "success"
	// ExecutionStatusFailed records an explicitly reported failure.
	ExecutionStatusFailed ExecutionStatus = "failed"
	// ExecutionStatusLate records a lateness detection by the scanner.
	ExecutionStatusLate ExecutionStatus = "late"
	// ExecutionStatusSkipped records a run the operator marked as intentionally skipped.
	ExecutionStatusSkipped ExecutionStatus = "skipped"
	// ExecutionStatusErrored records an escalation to errored by the scanner.
	ExecutionStatusErrored ExecutionStatus = "errored"
)

// Valid returns true if the ExecutionStatus is a known value.
func (s ExecutionStatus) Valid() bool {
	switch s {
	case ExecutionStatusSuccess, ExecutionStatusFailed, ExecutionStatusLate,
		ExecutionStatusSkipped, ExecutionStatusErrored:
		return true
	default:
		return false
	}
}

// JobExecution is one immutable row of a job's execution history. One record is
// appended per ping received and one per lateness/error detection event; rows are
// never updated after creation.
type JobExecution struct {
	ID        string          `json:"id"                 db:"id"`
	JobID     string          `json:"job_id"             db:"job_id"`
	Status    ExecutionStatus `json:"status"             db:"status"`
	StartedAt time.Time       `json:"started_at"         db:"started_at"`
	EndedAt   *time.Time      `json:"ended_at,omitempty" db:"ended_at"`
	OutputLog string          `json:"output_log"         db:"output_log"`
	CreatedAt time.Time       `json:"created_at"         db:"created_at"`
}
