// Package domain defines the domain models and repository interfaces.
package domain

import "time"

// User is the account domain model.
type User struct {
	UID       int64
	Username  string
	Email     string
	Password  string
	Salt      string
	IsDeleted bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive reports whether the account is usable.
func (u *User) IsActive() bool {
	return !u.IsDeleted
}
