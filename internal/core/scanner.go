package core

import (
	"context"
	"time"
)

// LateJobScanner defines the interface for the periodic overdue-job scan.
type LateJobScanner interface {
	// Tick scans for overdue jobs, classifies them late or errored, and
	// triggers notifications for status transitions. Returns the number of
	// jobs transitioned. Per-job errors are logged and skipped; only a failure
	// of the overdue query itself is returned.
	Tick(ctx context.Context, now time.Time) (int, error)
}

// ScannerConfig holds configuration for the late-job scanner.
type ScannerConfig struct {
	// BatchSize bounds how many overdue jobs one tick processes.
	BatchSize int
	// EscalationMultiplier scales the escalation threshold: a job overdue by
	// more than multiplier × (grace + nominal period) moves from late to
	// errored. The nominal period is a heuristic for irregular cron schedules,
	// so the threshold is approximate.
	EscalationMultiplier float64
}

// DefaultScannerConfig returns a ScannerConfig with the standard thresholds.
func DefaultScannerConfig() ScannerConfig {
	return ScannerConfig{
		BatchSize:            100,
		EscalationMultiplier: 3,
	}
}

// Sanitize applies guardrails to scanner configuration values.
func (c *ScannerConfig) Sanitize() {
	if c.BatchSize <= 0 {
		c.BatchSize = 100
	}
	if c.EscalationMultiplier <= 0 {
		c.EscalationMultiplier = 3
	}
}
