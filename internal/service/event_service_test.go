package service

import (
	"context"
	"testing"

	"github.com/planhub/collab-event-service/internal/domain"
	"github.com/planhub/collab-event-service/internal/dto"
	"github.com/planhub/collab-event-service/pkg/code"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventCreateWritesFirstVersion(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	uid := env.register(t, "alice")

	event := env.createEvent(t, uid, "Standup")

	versions, total, err := env.ledger.List(ctx, uid, event.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, int64(1), versions[0].VersionNumber)
	assert.Zero(t, versions[0].PreviousVersionID)
	assert.Equal(t, "Standup", versions[0].Snapshot[domain.FieldTitle])
	// The first version captures every field.
	assert.Len(t, versions[0].Snapshot, 7)

	log, _, err := env.ledger.Changelog(ctx, uid, event.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, log, 1)
	assert.Equal(t, domain.ActionCreated, log[0].Action)
	assert.Equal(t, "Event created", log[0].Description)
	// The creation entry references no version.
	assert.Zero(t, log[0].VersionID)
	assert.Empty(t, log[0].Changes)
}

func TestEventCreateRejectsBadTimeRange(t *testing.T) {
	env := newTestEnv(t)
	uid := env.register(t, "alice")

	_, err := env.events.Create(context.Background(), uid, &dto.EventCreateRequest{
		Title:     "Backwards",
		StartTime: "2026-09-01T11:00:00Z",
		EndTime:   "2026-09-01T10:00:00Z",
	})
	assert.Equal(t, code.ErrorEventTimeRange, err)
}

func TestEventUpdatePartialSnapshot(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	uid := env.register(t, "alice")
	event := env.createEvent(t, uid, "Standup")

	updated, err := env.events.Update(ctx, uid, event.ID, &dto.EventUpdateRequest{
		Title:    present("Daily Standup"),
		Location: present("Room 2"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Daily Standup", updated.Title)
	assert.Equal(t, "Room 2", updated.Location)

	versions, _, err := env.ledger.List(ctx, uid, event.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, versions, 2)

	// The update version carries only the fields from the payload.
	head := versions[0]
	assert.Equal(t, int64(2), head.VersionNumber)
	assert.Len(t, head.Snapshot, 2)
	assert.Equal(t, "Daily Standup", head.Snapshot[domain.FieldTitle])
	assert.Equal(t, "Room 2", head.Snapshot[domain.FieldLocation])
	assert.Equal(t, versions[1].ID, head.PreviousVersionID)

	log, _, err := env.ledger.Changelog(ctx, uid, event.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, log, 2)
	assert.Equal(t, domain.ActionUpdated, log[0].Action)
	assert.Equal(t, "Updated: location, title", log[0].Description)
	assert.Equal(t, "Standup", log[0].Changes[domain.FieldTitle].Old)
	assert.Equal(t, "Daily Standup", log[0].Changes[domain.FieldTitle].New)
}

func TestEventUpdateNoEffectiveChange(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	uid := env.register(t, "alice")
	event := env.createEvent(t, uid, "Standup")

	// Same values as stored: no version appended.
	_, err := env.events.Update(ctx, uid, event.ID, &dto.EventUpdateRequest{
		Title: present("Standup"),
	})
	require.NoError(t, err)

	_, total, err := env.ledger.List(ctx, uid, event.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	// An empty payload is rejected.
	_, err = env.events.Update(ctx, uid, event.ID, &dto.EventUpdateRequest{})
	require.Error(t, err)
	assert.Equal(t, code.ErrorInvalidParams.Code(), err.(*code.Code).Code())
}

func TestEventUpdateNullTitleRejected(t *testing.T) {
	env := newTestEnv(t)
	uid := env.register(t, "alice")
	event := env.createEvent(t, uid, "Standup")

	null := dto.Field[string]{Present: true, Valid: false}
	_, err := env.events.Update(context.Background(), uid, event.ID, &dto.EventUpdateRequest{
		Title: null,
	})
	require.Error(t, err)
}

func TestEventBatchCreateAtomic(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	uid := env.register(t, "alice")

	good := dto.EventCreateRequest{
		Title:     "OK",
		StartTime: "2026-09-01T10:00:00Z",
		EndTime:   "2026-09-01T11:00:00Z",
	}
	bad := dto.EventCreateRequest{
		Title:     "Bad",
		StartTime: "2026-09-01T11:00:00Z",
		EndTime:   "2026-09-01T10:00:00Z",
	}

	_, err := env.events.BatchCreate(ctx, uid, &dto.EventBatchCreateRequest{
		Events: []dto.EventCreateRequest{good, bad},
	})
	require.Error(t, err)

	// The failing entry rolled the whole batch back.
	_, total, err := env.events.List(ctx, uid, 1, 10)
	require.NoError(t, err)
	assert.Zero(t, total)

	out, err := env.events.BatchCreate(ctx, uid, &dto.EventBatchCreateRequest{
		Events: []dto.EventCreateRequest{good, good, good},
	})
	require.NoError(t, err)
	assert.Len(t, out, 3)
}

func TestEventAccessControl(t *testing.T) {
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

	// Viewers read but do not write.
	_, err = env.events.Get(ctx, viewer, event.ID)
	assert.NoError(t, err)
	_, err = env.events.Update(ctx, viewer, event.ID, &dto.EventUpdateRequest{
		Title: present("Hijacked"),
	})
	assert.Equal(t, code.ErrorPermissionDenied, err)
	err = env.events.Delete(ctx, viewer, event.ID)
	assert.Equal(t, code.ErrorPermissionDenied, err)

	// Strangers cannot even see the event.
	_, err = env.events.Get(ctx, stranger, event.ID)
	assert.Equal(t, code.ErrorEventNotFound, err)
}

func TestEventDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	uid := env.register(t, "alice")
	event := env.createEvent(t, uid, "Standup")

	require.NoError(t, env.events.Delete(ctx, uid, event.ID))

	_, err := env.events.Get(ctx, uid, event.ID)
	assert.Equal(t, code.ErrorEventNotFound, err)
}
