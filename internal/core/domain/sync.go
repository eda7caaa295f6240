package domain

import "time"

// SyncState is the rate sync state machine: Idle -> Fetching -> Merging -> Idle,
// or -> Failed until the next cycle starts.
type SyncState string

const (
	SyncStateIdle     SyncState = "IDLE"
	SyncStateFetching SyncState = "FETCHING"
	SyncStateMerging  SyncState = "MERGING"
	SyncStateFailed   SyncState = "FAILED"
)

// SyncOutcome is how a single SyncNow call ended.
type SyncOutcome string

const (
	SyncSucceeded SyncOutcome = "SUCCEEDED"
	SyncFailed    SyncOutcome = "FAILED"
	SyncSkipped   SyncOutcome = "SKIPPED"
)

// SyncReport describes one sync attempt.
type SyncReport struct {
	Outcome       SyncOutcome `json:"outcome"`
	StartedAt     time.Time   `json:"startedAt"`
	FinishedAt    time.Time   `json:"finishedAt"`
	Merged        []string    `json:"merged,omitempty"`
	SkippedManual []string    `json:"skippedManual,omitempty"`
	Error         string      `json:"error,omitempty"`
}

// SyncStatus is a point-in-time view of the sync service.
type SyncStatus struct {
	State         SyncState     `json:"state"`
	Scheduled     bool          `json:"scheduled"`
	Interval      time.Duration `json:"interval"`
	LastReport    *SyncReport   `json:"lastReport,omitempty"`
	LastSuccessAt *time.Time    `json:"lastSuccessAt,omitempty"`
}
