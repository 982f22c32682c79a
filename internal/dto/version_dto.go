package dto

import (
	"github.com/planhub/collab-event-service/internal/domain"
	"github.com/planhub/collab-event-service/pkg/timex"
)

// VersionListRequest history query parameters.
type VersionListRequest struct {
	Page     int `json:"page" form:"page"`
	PageSize int `json:"pageSize" form:"pageSize"`
}

// ---------------- DTO / Response ----------------

// VersionDTO one ledger entry of an event's history.
type VersionDTO struct {
	ID                int64                  `json:"id"`
	EventID           int64                  `json:"eventId"`
	VersionNumber     int64                  `json:"versionNumber"`
	Snapshot          map[string]interface{} `json:"snapshot"`
	ChangedBy         int64                  `json:"changedBy"`
	PreviousVersionID int64                  `json:"previousVersionId,omitempty"`
	CreatedAt         timex.Time             `json:"createdAt"`
}

// ChangelogDTO one audit record of an event's changelog.
type ChangelogDTO struct {
	ID          int64                         `json:"id"`
	EventID     int64                         `json:"eventId"`
	VersionID   int64                         `json:"versionId,omitempty"`
	ChangedBy   int64                         `json:"changedBy"`
	Action      string                        `json:"action"`
	Description string                        `json:"description"`
	Changes     map[string]domain.FieldChange `json:"changes,omitempty"`
	CreatedAt   timex.Time                    `json:"createdAt"`
}

// DiffDTO field-level comparison of two versions.
type DiffDTO struct {
	EventID  int64                       `json:"eventId"`
	VersionA int64                       `json:"versionA"`
	VersionB int64                       `json:"versionB"`
	Fields   map[string]domain.FieldDiff `json:"fields"`
}

// RollbackResultDTO outcome of a rollback: the new head version.
type RollbackResultDTO struct {
	Event   *EventDTO   `json:"event"`
	Version *VersionDTO `json:"version"`
}
