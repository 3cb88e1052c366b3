package domain

import "time"

// RunRecord is the persisted outcome of a target's last successful run.
// It backs checksum-based freshness; the default modification-time mode
// never reads or writes records.
type RunRecord struct {
	TargetName  string    `json:"target_name,omitzero"`
	Fingerprint string    `json:"fingerprint,omitzero"`
	RunID       string    `json:"run_id,omitzero"`
	Timestamp   time.Time `json:"timestamp,omitzero"`
}
