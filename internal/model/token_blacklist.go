package model

import "github.com/planhub/collab-event-service/pkg/timex"

const TableNameTokenBlacklist = "token_blacklist"

// TokenBlacklist mapped from table <token_blacklist>
type TokenBlacklist struct {
	ID        int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id" form:"id"`
	Token     string     `gorm:"column:token;not null;uniqueIndex:idx_token" json:"token" form:"token"`
	UID       int64      `gorm:"column:uid;not null;index:idx_blacklist_uid" json:"uid" form:"uid"`
	ExpiresAt timex.Time `gorm:"column:expires_at;type:datetime;default:NULL;index:idx_blacklist_expires" json:"expiresAt" form:"expiresAt"`
	CreatedAt timex.Time `gorm:"column:created_at;type:datetime;default:NULL;autoCreateTime:false" json:"createdAt" form:"createdAt"`
}

// TableName TokenBlacklist's table name
func (*TokenBlacklist) TableName() string {
	return TableNameTokenBlacklist
}
