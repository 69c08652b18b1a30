package domain

import "time"

// FetchLog is one audit row per (refresh cycle, source) fetch attempt.
// Rows are append-only and feed the observability archive, never control flow.
type FetchLog struct {
	CycleID             string        // refresh cycle UUID
	Category            Category
	Source              string
	StartedAt           time.Time
	Duration            time.Duration
	Fetched             int    // raw candidates returned
	Validated           int    // candidates admitted by the gate this cycle
	FailureReason       string // empty on success
	Transient           bool
	ConsecutiveFailures int // source health counter after this attempt
}
