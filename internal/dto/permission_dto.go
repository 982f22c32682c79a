package dto

import "github.com/planhub/collab-event-service/pkg/timex"

// EventShareRequest grants another user a role on an event.
type EventShareRequest struct {
	UID  int64  `json:"uid" form:"uid" binding:"required"`
	Role string `json:"role" form:"role" binding:"required,oneof=editor viewer"`
}

// PermissionUpdateRequest changes an existing grant's role. The
// grantee uid comes from the route path.
type PermissionUpdateRequest struct {
	UID  int64  `json:"-"`
	Role string `json:"role" form:"role" binding:"required,oneof=editor viewer"`
}

// PermissionRevokeRequest removes a grant. The grantee uid comes from
// the route path.
type PermissionRevokeRequest struct {
	UID int64 `json:"-"`
}

// ---------------- DTO / Response ----------------

// PermissionDTO collaboration grant response payload.
type PermissionDTO struct {
	EventID   int64      `json:"eventId"`
	UID       int64      `json:"uid"`
	Role      string     `json:"role"`
	GrantedBy int64      `json:"grantedBy"`
	CreatedAt timex.Time `json:"createdAt"`
	UpdatedAt timex.Time `json:"updatedAt"`
}
