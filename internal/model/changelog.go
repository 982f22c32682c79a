package model

import "github.com/planhub/collab-event-service/pkg/timex"

const TableNameChangelog = "changelog"

// Changelog mapped from table <changelog>
type Changelog struct {
	ID          int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id" form:"id"`
	EventID     int64      `gorm:"column:event_id;not null;index:idx_changelog_event" json:"eventId" form:"eventId"`
	VersionID   int64      `gorm:"column:version_id;not null;index:idx_changelog_version" json:"versionId" form:"versionId"`
	ChangedBy   int64      `gorm:"column:changed_by;not null" json:"changedBy" form:"changedBy"`
	Action      string     `gorm:"column:action;not null" json:"action" form:"action"`
	Description string     `gorm:"column:description" json:"description" form:"description"`
	Changes     JSONMap    `gorm:"column:changes;type:text" json:"changes" form:"changes"`
	CreatedAt   timex.Time `gorm:"column:created_at;type:datetime;default:NULL;autoCreateTime:false" json:"createdAt" form:"createdAt"`
}

// TableName Changelog's table name
func (*Changelog) TableName() string {
	return TableNameChangelog
}
