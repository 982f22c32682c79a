package domain

import "time"

// Role is a collaboration role on a single event.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleOwner, RoleEditor, RoleViewer:
		return true
	}
	return false
}

// CanEdit reports whether the role may modify the event.
func (r Role) CanEdit() bool {
	return r == RoleOwner || r == RoleEditor
}

// CanView reports whether the role may read the event.
func (r Role) CanView() bool {
	return r == RoleOwner || r == RoleEditor || r == RoleViewer
}

// Permission grants a user a role on an event.
type Permission struct {
	ID        int64
	EventID   int64
	UID       int64
	Role      Role
	GrantedBy int64
	CreatedAt time.Time
	UpdatedAt time.Time
}
