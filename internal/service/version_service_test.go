package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/planhub/collab-event-service/internal/domain"
	"github.com/planhub/collab-event-service/internal/dto"
	"github.com/planhub/collab-event-service/pkg/code"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestVersionNumbersAreGapless(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	uid := env.register(t, "alice")
	event := env.createEvent(t, uid, "Standup")

	for i := 0; i < 5; i++ {
		_, err := env.events.Update(ctx, uid, event.ID, &dto.EventUpdateRequest{
			Title: present(fmt.Sprintf("Standup %d", i)),
		})
		require.NoError(t, err)
	}

	versions, total, err := env.ledger.List(ctx, uid, event.ID, 1, 100)
	require.NoError(t, err)
	require.Equal(t, int64(6), total)

	// Newest first: 6, 5, ... 1, each linked to its predecessor.
	for i, version := range versions {
		assert.Equal(t, int64(6-i), version.VersionNumber)
		if version.VersionNumber > 1 {
			assert.Equal(t, versions[i+1].ID, version.PreviousVersionID)
		} else {
			assert.Zero(t, version.PreviousVersionID)
		}
	}
}

func TestVersionGetScopedToEvent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	uid := env.register(t, "alice")
	eventA := env.createEvent(t, uid, "A")
	eventB := env.createEvent(t, uid, "B")

	versionsB, _, err := env.ledger.List(ctx, uid, eventB.ID, 1, 10)
	require.NoError(t, err)

	// A version of event B fetched through event A is an invalid state,
	// not a plain not-found.
	_, err = env.ledger.Get(ctx, uid, eventA.ID, versionsB[0].ID)
	assert.Equal(t, code.ErrorVersionWrongEvent, err)

	_, err = env.ledger.Get(ctx, uid, eventA.ID, 99999)
	assert.Equal(t, code.ErrorVersionNotFound, err)
}

func TestRollbackAppliesOnlyCapturedFields(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	uid := env.register(t, "alice")
	event := env.createEvent(t, uid, "Standup")

	// v2 captures only the title; v3 only the location.
	_, err := env.events.Update(ctx, uid, event.ID, &dto.EventUpdateRequest{
		Title: present("Renamed"),
	})
	require.NoError(t, err)
	_, err = env.events.Update(ctx, uid, event.ID, &dto.EventUpdateRequest{
		Location: present("Room 9"),
	})
	require.NoError(t, err)

	versions, _, err := env.ledger.List(ctx, uid, event.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, versions, 3)
	v2 := versions[1]
	require.Equal(t, int64(2), v2.VersionNumber)

	// Rolling back to v2 restores its title but keeps the later
	// location, because v2 never captured a location.
	result, err := env.ledger.Rollback(ctx, uid, event.ID, v2.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", result.Event.Title)
	assert.Equal(t, "Room 9", result.Event.Location)

	// The rollback appended version 4 with a full snapshot.
	assert.Equal(t, int64(4), result.Version.VersionNumber)
	assert.Len(t, result.Version.Snapshot, 7)

	log, _, err := env.ledger.Changelog(ctx, uid, event.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, domain.ActionRollback, log[0].Action)
	assert.Equal(t, "Rollback to version 2", log[0].Description)
}

func TestRollbackChangesRecorded(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	uid := env.register(t, "alice")
	event := env.createEvent(t, uid, "Standup")

	_, err := env.events.Update(ctx, uid, event.ID, &dto.EventUpdateRequest{
		Title: present("Renamed"),
	})
	require.NoError(t, err)

	versions, _, err := env.ledger.List(ctx, uid, event.ID, 1, 10)
	require.NoError(t, err)
	v1 := versions[1]

	result, err := env.ledger.Rollback(ctx, uid, event.ID, v1.ID)
	require.NoError(t, err)
	assert.Equal(t, "Standup", result.Event.Title)

	log, _, err := env.ledger.Changelog(ctx, uid, event.ID, 1, 10)
	require.NoError(t, err)
	change, ok := log[0].Changes[domain.FieldTitle]
	require.True(t, ok)
	assert.Equal(t, "Renamed", change.Old)
	assert.Equal(t, "Standup", change.New)
}

func TestRollbackRequiresEditRole(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.register(t, "alice")
	viewer := env.register(t, "bob")
	event := env.createEvent(t, owner, "Standup")

	_, err := env.collab.Share(ctx, owner, event.ID, &dto.EventShareRequest{
		UID: viewer, Role: "viewer",
	})
	require.NoError(t, err)

	versions, _, err := env.ledger.List(ctx, viewer, event.ID, 1, 10)
	require.NoError(t, err)

	_, err = env.ledger.Rollback(ctx, viewer, event.ID, versions[0].ID)
	assert.Equal(t, code.ErrorPermissionDenied, err)
}

func TestDiffBetweenVersions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	uid := env.register(t, "alice")
	event := env.createEvent(t, uid, "Standup")

	_, err := env.events.Update(ctx, uid, event.ID, &dto.EventUpdateRequest{
		Title:    present("Renamed"),
		Location: present("Room 9"),
	})
	require.NoError(t, err)

	versions, _, err := env.ledger.List(ctx, uid, event.ID, 1, 10)
	require.NoError(t, err)
	v1, v2 := versions[1], versions[0]

	diff, err := env.ledger.Diff(ctx, uid, event.ID, v1.ID, v2.ID)
	require.NoError(t, err)
	assert.Equal(t, v1.VersionNumber, diff.VersionA)
	assert.Equal(t, v2.VersionNumber, diff.VersionB)

	// v1 is full, v2 holds only {title, location}; the other five
	// fields differ as value-vs-absent.
	titleDiff, ok := diff.Fields[domain.FieldTitle]
	require.True(t, ok)
	assert.Equal(t, "Standup", titleDiff.From)
	assert.Equal(t, "Renamed", titleDiff.To)

	startDiff, ok := diff.Fields[domain.FieldStartTime]
	require.True(t, ok)
	assert.Nil(t, startDiff.To)

	// Anti-symmetry: swapping the arguments swaps from and to.
	reverse, err := env.ledger.Diff(ctx, uid, event.ID, v2.ID, v1.ID)
	require.NoError(t, err)
	require.Len(t, reverse.Fields, len(diff.Fields))
	for key, fd := range diff.Fields {
		assert.Equal(t, fd.From, reverse.Fields[key].To)
		assert.Equal(t, fd.To, reverse.Fields[key].From)
	}

	// Identity: a version diffed with itself has no fields.
	same, err := env.ledger.Diff(ctx, uid, event.ID, v2.ID, v2.ID)
	require.NoError(t, err)
	assert.Empty(t, same.Fields)
}

func TestDiffRejectsForeignVersion(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	uid := env.register(t, "alice")
	eventA := env.createEvent(t, uid, "A")
	eventB := env.createEvent(t, uid, "B")

	versionsA, _, err := env.ledger.List(ctx, uid, eventA.ID, 1, 10)
	require.NoError(t, err)
	versionsB, _, err := env.ledger.List(ctx, uid, eventB.ID, 1, 10)
	require.NoError(t, err)

	_, err = env.ledger.Diff(ctx, uid, eventA.ID, versionsA[0].ID, versionsB[0].ID)
	assert.Equal(t, code.ErrorVersionWrongEvent, err)
}

func TestVersionHistoryVisibleToViewer(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.register(t, "alice")
	viewer := env.register(t, "bob")
	stranger := env.register(t, "carol")
	event := env.createEvent(t, owner, "Standup")

	_, err := env.collab.Share(ctx, owner, event.ID, &dto.EventShareRequest{
		UID: viewer, Role: "viewer",
	})
	require.NoError(t, err)

	_, total, err := env.ledger.List(ctx, viewer, event.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	_, _, err = env.ledger.List(ctx, stranger, event.ID, 1, 10)
	assert.Equal(t, code.ErrorEventNotFound, err)
}

// contendedVersionRepo fails version inserts with a duplicated-key
// error a fixed number of times, as if a concurrent writer claimed
// the number first, and bumps the observed max on each failure.
type contendedVersionRepo struct {
	domain.VersionRepository
	failures int
	max      int64
	creates  int
	stored   []*domain.EventVersion
}

func (r *contendedVersionRepo) MaxVersionNumber(ctx context.Context, eventID int64) (int64, error) {
	return r.max, nil
}

func (r *contendedVersionRepo) GetByNumber(ctx context.Context, eventID, number int64) (*domain.EventVersion, error) {
	return &domain.EventVersion{ID: number * 100, EventID: eventID, VersionNumber: number}, nil
}

func (r *contendedVersionRepo) Create(ctx context.Context, version *domain.EventVersion) (*domain.EventVersion, error) {
	r.creates++
	if r.failures > 0 {
		r.failures--
		r.max++
		return nil, gorm.ErrDuplicatedKey
	}
	version.ID = version.VersionNumber * 100
	r.stored = append(r.stored, version)
	return version, nil
}

func TestAppendVersionRetriesOnceOnCollision(t *testing.T) {
	ctx := context.Background()
	snapshot := map[string]interface{}{domain.FieldTitle: "Standup"}

	repo := &contendedVersionRepo{failures: 1, max: 3}
	version, err := appendVersion(ctx, repo, 1, 7, snapshot)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.creates)
	// The retry re-reads the max and allocates the next free number.
	assert.Equal(t, int64(5), version.VersionNumber)
	assert.Equal(t, int64(400), version.PreviousVersionID)
}

func TestAppendVersionConflictAfterRetry(t *testing.T) {
	ctx := context.Background()
	snapshot := map[string]interface{}{domain.FieldTitle: "Standup"}

	repo := &contendedVersionRepo{failures: 2, max: 3}
	_, err := appendVersion(ctx, repo, 1, 7, snapshot)
	require.Error(t, err)
	assert.Equal(t, 2, repo.creates)
	assert.Equal(t, code.ErrorVersionConflict.Code(), err.(*code.Code).Code())
}

func TestChangelogEmptyForBareEvent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	uid := env.register(t, "alice")

	// Seeded below the service layer, so no changelog entry exists.
	event, err := env.eventRepo.Create(ctx, &domain.Event{
		UID:       uid,
		Title:     "Bare",
		StartTime: time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 9, 1, 11, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	_, _, err = env.ledger.Changelog(ctx, uid, event.ID, 1, 10)
	assert.Equal(t, code.ErrorChangelogNotFound, err)
}
