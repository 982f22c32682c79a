package model

import "github.com/planhub/collab-event-service/pkg/timex"

const TableNameEvent = "event"

// Event mapped from table <event>
type Event struct {
	ID                int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id" form:"id"`
	UID               int64      `gorm:"column:uid;not null;index:idx_event_uid" json:"uid" form:"uid"`
	Title             string     `gorm:"column:title;not null" json:"title" form:"title"`
	Description       string     `gorm:"column:description" json:"description" form:"description"`
	StartTime         timex.Time `gorm:"column:start_time;type:datetime;default:NULL;autoCreateTime:false" json:"startTime" form:"startTime"`
	EndTime           timex.Time `gorm:"column:end_time;type:datetime;default:NULL;autoCreateTime:false" json:"endTime" form:"endTime"`
	Location          string     `gorm:"column:location" json:"location" form:"location"`
	IsRecurring       bool       `gorm:"column:is_recurring;default:false" json:"isRecurring" form:"isRecurring"`
	RecurrencePattern string     `gorm:"column:recurrence_pattern" json:"recurrencePattern" form:"recurrencePattern"`
	IsDeleted         int64      `gorm:"column:is_deleted;not null;default:0;index:idx_event_deleted" json:"isDeleted" form:"isDeleted"`
	CreatedAt         timex.Time `gorm:"column:created_at;type:datetime;default:NULL;autoCreateTime:false" json:"createdAt" form:"createdAt"`
	UpdatedAt         timex.Time `gorm:"column:updated_at;type:datetime;default:NULL;autoCreateTime:false" json:"updatedAt" form:"updatedAt"`
}

// TableName Event's table name
func (*Event) TableName() string {
	return TableNameEvent
}
