package model

import "github.com/planhub/collab-event-service/pkg/timex"

const TableNameEventVersion = "event_version"

// EventVersion mapped from table <event_version>
//
// The unique index on (event_id, version_number) is what makes
// concurrent appends safe: the second writer of the same number
// gets a duplicated-key error and retries.
type EventVersion struct {
	ID                int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id" form:"id"`
	EventID           int64      `gorm:"column:event_id;not null;uniqueIndex:idx_event_version,priority:1" json:"eventId" form:"eventId"`
	VersionNumber     int64      `gorm:"column:version_number;not null;uniqueIndex:idx_event_version,priority:2" json:"versionNumber" form:"versionNumber"`
	Snapshot          JSONMap    `gorm:"column:snapshot;type:text" json:"snapshot" form:"snapshot"`
	ChangedBy         int64      `gorm:"column:changed_by;not null" json:"changedBy" form:"changedBy"`
	PreviousVersionID int64      `gorm:"column:previous_version_id;not null;default:0" json:"previousVersionId" form:"previousVersionId"`
	CreatedAt         timex.Time `gorm:"column:created_at;type:datetime;default:NULL;autoCreateTime:false" json:"createdAt" form:"createdAt"`
}

// TableName EventVersion's table name
func (*EventVersion) TableName() string {
	return TableNameEventVersion
}
