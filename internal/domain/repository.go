package domain

import "context"

// UserRepository persists accounts.
type UserRepository interface {
	// GetByUID fetches an active user by ID.
	GetByUID(ctx context.Context, uid int64) (*User, error)

	// GetByUsername fetches an active user by username.
	GetByUsername(ctx context.Context, username string) (*User, error)

	// GetByEmail fetches an active user by email.
	GetByEmail(ctx context.Context, email string) (*User, error)

	// Create inserts a new account.
	Create(ctx context.Context, user *User) (*User, error)

	// UpdatePassword replaces the stored password hash.
	UpdatePassword(ctx context.Context, uid int64, password string) error
}

// TokenRepository tracks revoked tokens.
type TokenRepository interface {
	// Blacklist records a token as revoked until it expires anyway.
	Blacklist(ctx context.Context, token string, uid int64, expiresAt int64) error

	// IsBlacklisted reports whether the token was revoked.
	IsBlacklisted(ctx context.Context, token string) (bool, error)

	// PurgeExpired removes blacklist rows whose tokens already expired.
	PurgeExpired(ctx context.Context, now int64) (int64, error)
}

// EventRepository persists events.
type EventRepository interface {
	// GetByID fetches an event regardless of caller permissions.
	GetByID(ctx context.Context, id int64) (*Event, error)

	// Create inserts a new event.
	Create(ctx context.Context, event *Event) (*Event, error)

	// Update writes the mutable fields of an existing event.
	Update(ctx context.Context, event *Event) (*Event, error)

	// Delete soft-deletes an event.
	Delete(ctx context.Context, id int64) error

	// ListAccessible pages over events the user owns or was granted
	// access to, newest first.
	ListAccessible(ctx context.Context, uid int64, page, pageSize int) ([]*Event, error)

	// ListAccessibleCount counts the events ListAccessible would return.
	ListAccessibleCount(ctx context.Context, uid int64) (int64, error)
}

// PermissionRepository persists collaboration grants.
type PermissionRepository interface {
	// Get fetches a user's grant on an event.
	Get(ctx context.Context, eventID, uid int64) (*Permission, error)

	// Create inserts a new grant.
	Create(ctx context.Context, perm *Permission) (*Permission, error)

	// UpdateRole changes the role of an existing grant.
	UpdateRole(ctx context.Context, eventID, uid int64, role Role) error

	// Delete revokes a grant.
	Delete(ctx context.Context, eventID, uid int64) error

	// ListByEvent lists all grants on an event.
	ListByEvent(ctx context.Context, eventID int64) ([]*Permission, error)

	// DeleteByEvent revokes every grant on an event.
	DeleteByEvent(ctx context.Context, eventID int64) error
}

// VersionRepository persists the version ledger. Versions are
// append-only; there is no update or delete.
type VersionRepository interface {
	// Create appends a version row. A duplicated (event, number) pair
	// surfaces as gorm.ErrDuplicatedKey for the caller to retry.
	Create(ctx context.Context, version *EventVersion) (*EventVersion, error)

	// GetByID fetches a version that belongs to the given event.
	GetByID(ctx context.Context, eventID, versionID int64) (*EventVersion, error)

	// GetByIDAny fetches a version by ID alone, whatever event owns it.
	GetByIDAny(ctx context.Context, versionID int64) (*EventVersion, error)

	// GetByNumber fetches a version by its per-event number.
	GetByNumber(ctx context.Context, eventID, number int64) (*EventVersion, error)

	// GetLatest fetches the highest-numbered version of an event.
	GetLatest(ctx context.Context, eventID int64) (*EventVersion, error)

	// MaxVersionNumber returns the highest number present, 0 when the
	// event has no versions yet.
	MaxVersionNumber(ctx context.Context, eventID int64) (int64, error)

	// List pages over an event's versions, newest first.
	List(ctx context.Context, eventID int64, page, pageSize int) ([]*EventVersion, error)

	// ListCount counts an event's versions.
	ListCount(ctx context.Context, eventID int64) (int64, error)
}

// ChangelogRepository persists the append-only audit log.
type ChangelogRepository interface {
	// Create appends a changelog entry.
	Create(ctx context.Context, entry *ChangelogEntry) (*ChangelogEntry, error)

	// List pages over an event's changelog, newest first.
	List(ctx context.Context, eventID int64, page, pageSize int) ([]*ChangelogEntry, error)

	// ListCount counts an event's changelog entries.
	ListCount(ctx context.Context, eventID int64) (int64, error)
}
