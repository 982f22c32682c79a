package dao

import (
	"context"
	"testing"
	"time"

	"github.com/planhub/collab-event-service/internal/domain"
	"github.com/planhub/collab-event-service/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDao(t *testing.T) *Dao {
	t.Helper()
	db, err := NewDBEngine(DatabaseConfig{
		Type:         "sqlite",
		Path:         ":memory:",
		MaxIdleConns: 1,
		MaxOpenConns: 1,
	}, false)
	require.NoError(t, err)
	require.NoError(t, model.AutoMigrateAll(db))
	return New(db)
}

func TestEventRepositoryCRUD(t *testing.T) {
	d := newTestDao(t)
	repo := NewEventRepository(d)
	ctx := context.Background()

	event, err := repo.Create(ctx, &domain.Event{
		UID:       1,
		Title:     "Standup",
		StartTime: time.Now(),
		EndTime:   time.Now().Add(time.Hour),
		Location:  "Room 4",
	})
	require.NoError(t, err)
	require.NotZero(t, event.ID)

	got, err := repo.GetByID(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, "Standup", got.Title)
	assert.Equal(t, "Room 4", got.Location)

	got.Title = "Daily Standup"
	updated, err := repo.Update(ctx, got)
	require.NoError(t, err)
	assert.Equal(t, "Daily Standup", updated.Title)

	require.NoError(t, repo.Delete(ctx, event.ID))
	_, err = repo.GetByID(ctx, event.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestEventRepositoryListAccessible(t *testing.T) {
	d := newTestDao(t)
	events := NewEventRepository(d)
	perms := NewPermissionRepository(d)
	ctx := context.Background()

	owned, err := events.Create(ctx, &domain.Event{UID: 1, Title: "Mine"})
	require.NoError(t, err)
	shared, err := events.Create(ctx, &domain.Event{UID: 2, Title: "Theirs"})
	require.NoError(t, err)
	_, err = events.Create(ctx, &domain.Event{UID: 2, Title: "Hidden"})
	require.NoError(t, err)

	_, err = perms.Create(ctx, &domain.Permission{
		EventID: shared.ID, UID: 1, Role: domain.RoleViewer, GrantedBy: 2,
	})
	require.NoError(t, err)

	count, err := events.ListAccessibleCount(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	list, err := events.ListAccessible(ctx, 1, 1, 10)
	require.NoError(t, err)
	ids := []int64{list[0].ID, list[1].ID}
	assert.ElementsMatch(t, []int64{owned.ID, shared.ID}, ids)
}

func TestVersionRepositoryUniqueNumber(t *testing.T) {
	d := newTestDao(t)
	repo := NewVersionRepository(d)
	ctx := context.Background()

	v1, err := repo.Create(ctx, &domain.EventVersion{
		EventID:       10,
		VersionNumber: 1,
		Snapshot:      map[string]interface{}{"title": "a"},
		ChangedBy:     1,
	})
	require.NoError(t, err)

	// Same (event, number) pair must surface the translated error.
	_, err = repo.Create(ctx, &domain.EventVersion{
		EventID:       10,
		VersionNumber: 1,
		Snapshot:      map[string]interface{}{"title": "b"},
		ChangedBy:     2,
	})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	// A different event may reuse the number.
	_, err = repo.Create(ctx, &domain.EventVersion{
		EventID:       11,
		VersionNumber: 1,
		Snapshot:      map[string]interface{}{"title": "c"},
		ChangedBy:     1,
	})
	require.NoError(t, err)

	number, err := repo.MaxVersionNumber(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), number)

	latest, err := repo.GetLatest(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, v1.ID, latest.ID)
	assert.Equal(t, "a", latest.Snapshot["title"])
}

func TestVersionRepositoryScopedGet(t *testing.T) {
	d := newTestDao(t)
	repo := NewVersionRepository(d)
	ctx := context.Background()

	v, err := repo.Create(ctx, &domain.EventVersion{
		EventID:       10,
		VersionNumber: 1,
		Snapshot:      map[string]interface{}{"title": "a"},
		ChangedBy:     1,
	})
	require.NoError(t, err)

	_, err = repo.GetByID(ctx, 99, v.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	got, err := repo.GetByIDAny(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), got.EventID)
}

func TestChangelogRepositoryRoundTrip(t *testing.T) {
	d := newTestDao(t)
	repo := NewChangelogRepository(d)
	ctx := context.Background()

	entry, err := repo.Create(ctx, &domain.ChangelogEntry{
		EventID:     10,
		VersionID:   1,
		ChangedBy:   1,
		Action:      domain.ActionUpdated,
		Description: "Updated: title",
		Changes: map[string]domain.FieldChange{
			"title": {Old: "a", New: "b"},
		},
	})
	require.NoError(t, err)

	list, err := repo.List(ctx, 10, 1, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, entry.ID, list[0].ID)
	assert.Equal(t, "a", list[0].Changes["title"].Old)
	assert.Equal(t, "b", list[0].Changes["title"].New)
}

func TestPermissionRepositoryUniqueGrant(t *testing.T) {
	d := newTestDao(t)
	repo := NewPermissionRepository(d)
	ctx := context.Background()

	_, err := repo.Create(ctx, &domain.Permission{
		EventID: 1, UID: 2, Role: domain.RoleEditor, GrantedBy: 1,
	})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &domain.Permission{
		EventID: 1, UID: 2, Role: domain.RoleViewer, GrantedBy: 1,
	})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	require.NoError(t, repo.UpdateRole(ctx, 1, 2, domain.RoleViewer))
	perm, err := repo.Get(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleViewer, perm.Role)
}

func TestTransactionRollback(t *testing.T) {
	d := newTestDao(t)
	events := NewEventRepository(d)
	ctx := context.Background()

	err := d.Transaction(ctx, func(ctx context.Context) error {
		_, err := events.Create(ctx, &domain.Event{UID: 1, Title: "Ghost"})
		require.NoError(t, err)
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)

	count, err := events.ListAccessibleCount(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestVersionRepositoryRetryInsideTransaction(t *testing.T) {
	d := newTestDao(t)
	repo := NewVersionRepository(d)
	ctx := context.Background()

	_, err := repo.Create(ctx, &domain.EventVersion{
		EventID:       10,
		VersionNumber: 1,
		Snapshot:      map[string]interface{}{"title": "a"},
		ChangedBy:     1,
	})
	require.NoError(t, err)

	// A duplicated number inside a transaction must not poison it;
	// the retry with the next number has to commit.
	err = d.Transaction(ctx, func(ctx context.Context) error {
		_, err := repo.Create(ctx, &domain.EventVersion{
			EventID:       10,
			VersionNumber: 1,
			Snapshot:      map[string]interface{}{"title": "b"},
			ChangedBy:     2,
		})
		require.ErrorIs(t, err, gorm.ErrDuplicatedKey)

		_, err = repo.Create(ctx, &domain.EventVersion{
			EventID:       10,
			VersionNumber: 2,
			Snapshot:      map[string]interface{}{"title": "b"},
			ChangedBy:     2,
		})
		return err
	})
	require.NoError(t, err)

	latest, err := repo.GetLatest(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), latest.VersionNumber)
	assert.Equal(t, "b", latest.Snapshot["title"])
}
