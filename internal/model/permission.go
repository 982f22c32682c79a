package model

import "github.com/planhub/collab-event-service/pkg/timex"

const TableNamePermission = "permission"

// Permission mapped from table <permission>
type Permission struct {
	ID        int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id" form:"id"`
	EventID   int64      `gorm:"column:event_id;not null;uniqueIndex:idx_event_user,priority:1" json:"eventId" form:"eventId"`
	UID       int64      `gorm:"column:uid;not null;uniqueIndex:idx_event_user,priority:2;index:idx_permission_uid" json:"uid" form:"uid"`
	Role      string     `gorm:"column:role;not null" json:"role" form:"role"`
	GrantedBy int64      `gorm:"column:granted_by;not null" json:"grantedBy" form:"grantedBy"`
	CreatedAt timex.Time `gorm:"column:created_at;type:datetime;default:NULL;autoCreateTime:false" json:"createdAt" form:"createdAt"`
	UpdatedAt timex.Time `gorm:"column:updated_at;type:datetime;default:NULL;autoCreateTime:false" json:"updatedAt" form:"updatedAt"`
}

// TableName Permission's table name
func (*Permission) TableName() string {
	return TableNamePermission
}
