package service

import (
	"context"
	"testing"

	"github.com/planhub/collab-event-service/internal/dto"
	"github.com/planhub/collab-event-service/pkg/code"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShareAndListPermissions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.register(t, "alice")
	editor := env.register(t, "bob")
	event := env.createEvent(t, owner, "Standup")

	perm, err := env.collab.Share(ctx, owner, event.ID, &dto.EventShareRequest{
		UID: editor, Role: "editor",
	})
	require.NoError(t, err)
	assert.Equal(t, "editor", perm.Role)
	assert.Equal(t, owner, perm.GrantedBy)

	perms, err := env.collab.ListPermissions(ctx, owner, event.ID)
	require.NoError(t, err)
	// Owner grant plus the new editor grant.
	assert.Len(t, perms, 2)

	// Editors can edit now.
	_, err = env.events.Update(ctx, editor, event.ID, &dto.EventUpdateRequest{
		Title: present("Edited"),
	})
	assert.NoError(t, err)
}

func TestShareRestrictions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.register(t, "alice")
	other := env.register(t, "bob")
	event := env.createEvent(t, owner, "Standup")

	// Only the owner shares.
	_, err := env.collab.Share(ctx, other, event.ID, &dto.EventShareRequest{
		UID: other, Role: "viewer",
	})
	assert.Equal(t, code.ErrorEventNotFound, err)

	// The owner grant cannot be replaced.
	_, err = env.collab.Share(ctx, owner, event.ID, &dto.EventShareRequest{
		UID: owner, Role: "viewer",
	})
	assert.Equal(t, code.ErrorPermissionOwnerChange, err)

	// Unknown grantee.
	_, err = env.collab.Share(ctx, owner, event.ID, &dto.EventShareRequest{
		UID: 9999, Role: "viewer",
	})
	assert.Equal(t, code.ErrorUserNotFound, err)

	// Duplicate grant.
	_, err = env.collab.Share(ctx, owner, event.ID, &dto.EventShareRequest{
		UID: other, Role: "viewer",
	})
	require.NoError(t, err)
	_, err = env.collab.Share(ctx, owner, event.ID, &dto.EventShareRequest{
		UID: other, Role: "editor",
	})
	assert.Equal(t, code.ErrorPermissionAlreadyExists, err)

	// "owner" is not a grantable role.
	_, err = env.collab.Share(ctx, owner, event.ID, &dto.EventShareRequest{
		UID: other, Role: "owner",
	})
	assert.Equal(t, code.ErrorPermissionInvalidRole, err)
}

func TestUpdateRoleAndRevoke(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.register(t, "alice")
	member := env.register(t, "bob")
	event := env.createEvent(t, owner, "Standup")

	_, err := env.collab.Share(ctx, owner, event.ID, &dto.EventShareRequest{
		UID: member, Role: "viewer",
	})
	require.NoError(t, err)

	perm, err := env.collab.UpdateRole(ctx, owner, event.ID, &dto.PermissionUpdateRequest{
		UID: member, Role: "editor",
	})
	require.NoError(t, err)
	assert.Equal(t, "editor", perm.Role)

	// Changing a grant that does not exist.
	_, err = env.collab.UpdateRole(ctx, owner, event.ID, &dto.PermissionUpdateRequest{
		UID: 9999, Role: "editor",
	})
	assert.Equal(t, code.ErrorPermissionNotFound, err)

	require.NoError(t, env.collab.Revoke(ctx, owner, event.ID, &dto.PermissionRevokeRequest{
		UID: member,
	}))

	// Revoked members lose access entirely.
	_, err = env.events.Get(ctx, member, event.ID)
	assert.Equal(t, code.ErrorEventNotFound, err)

	// The owner grant cannot be revoked.
	err = env.collab.Revoke(ctx, owner, event.ID, &dto.PermissionRevokeRequest{
		UID: owner,
	})
	assert.Equal(t, code.ErrorPermissionOwnerChange, err)
}
