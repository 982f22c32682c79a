package domain

import "time"

// Changelog actions.
const (
	ActionCreated  = "created"
	ActionUpdated  = "updated"
	ActionRollback = "rollback"
)

// EventVersion is one immutable entry of an event's version ledger.
// Version numbers start at 1 and are gapless per event.
type EventVersion struct {
	ID                int64
	EventID           int64
	VersionNumber     int64
	Snapshot          map[string]interface{}
	ChangedBy         int64
	PreviousVersionID int64
	CreatedAt         time.Time
}

// FieldChange records one field transition inside a changelog entry.
type FieldChange struct {
	Old interface{} `json:"old"`
	New interface{} `json:"new"`
	// Patch carries a compact text patch for long string fields.
	Patch string `json:"patch,omitempty"`
}

// ChangelogEntry is the audit record written alongside each version.
type ChangelogEntry struct {
	ID          int64
	EventID     int64
	VersionID   int64
	ChangedBy   int64
	Action      string
	Description string
	Changes     map[string]FieldChange
	CreatedAt   time.Time
}

// FieldDiff is one differing field between two versions.
type FieldDiff struct {
	From interface{} `json:"from"`
	To   interface{} `json:"to"`
}
