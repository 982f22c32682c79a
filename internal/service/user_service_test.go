package service

import (
	"context"
	"testing"

	"github.com/planhub/collab-event-service/internal/dto"
	"github.com/planhub/collab-event-service/pkg/code"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	out, err := env.users.Register(ctx, &dto.UserCreateRequest{
		Email:           "alice@example.com",
		Username:        "alice",
		Password:        "password123",
		ConfirmPassword: "password123",
	}, "127.0.0.1")
	require.NoError(t, err)
	assert.NotZero(t, out.UID)
	assert.NotEmpty(t, out.Token)
	assert.NotEmpty(t, out.RefreshToken)

	// Login by username.
	login, err := env.users.Login(ctx, &dto.UserLoginRequest{
		Credentials: "alice",
		Password:    "password123",
	}, "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, out.UID, login.UID)

	// Login by email.
	login, err = env.users.Login(ctx, &dto.UserLoginRequest{
		Credentials: "alice@example.com",
		Password:    "password123",
	}, "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, out.UID, login.UID)

	// Wrong password and unknown account share one error.
	_, err = env.users.Login(ctx, &dto.UserLoginRequest{
		Credentials: "alice",
		Password:    "wrong",
	}, "127.0.0.1")
	assert.Equal(t, code.ErrorUserLoginPasswordFailed, err)

	_, err = env.users.Login(ctx, &dto.UserLoginRequest{
		Credentials: "nobody",
		Password:    "password123",
	}, "127.0.0.1")
	assert.Equal(t, code.ErrorUserLoginPasswordFailed, err)
}

func TestUserRegisterDuplicates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.register(t, "alice")

	_, err := env.users.Register(ctx, &dto.UserCreateRequest{
		Email:           "alice@example.com",
		Username:        "other",
		Password:        "password123",
		ConfirmPassword: "password123",
	}, "")
	assert.Equal(t, code.ErrorUserEmailAlreadyExists, err)

	_, err = env.users.Register(ctx, &dto.UserCreateRequest{
		Email:           "other@example.com",
		Username:        "alice",
		Password:        "password123",
		ConfirmPassword: "password123",
	}, "")
	assert.Equal(t, code.ErrorUserAlreadyExists, err)

	_, err = env.users.Register(ctx, &dto.UserCreateRequest{
		Email:           "bob@example.com",
		Username:        "bob",
		Password:        "password123",
		ConfirmPassword: "different",
	}, "")
	assert.Equal(t, code.ErrorUserPasswordNotMatch, err)
}

func TestUserRefreshAndLogout(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	out, err := env.users.Register(ctx, &dto.UserCreateRequest{
		Email:           "alice@example.com",
		Username:        "alice",
		Password:        "password123",
		ConfirmPassword: "password123",
	}, "127.0.0.1")
	require.NoError(t, err)

	refreshed, err := env.users.Refresh(ctx, &dto.UserRefreshRequest{
		RefreshToken: out.RefreshToken,
	}, "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, out.UID, refreshed.UID)
	assert.NotEmpty(t, refreshed.Token)

	// Access tokens are not refresh tokens.
	_, err = env.users.Refresh(ctx, &dto.UserRefreshRequest{
		RefreshToken: out.Token,
	}, "127.0.0.1")
	assert.Equal(t, code.ErrorInvalidRefreshToken, err)

	require.NoError(t, env.users.Logout(ctx, out.UID, out.Token))
}

func TestUserChangePassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	uid := env.register(t, "alice")

	err := env.users.ChangePassword(ctx, uid, &dto.UserChangePasswordRequest{
		OldPassword:     "wrong",
		Password:        "newpassword1",
		ConfirmPassword: "newpassword1",
	})
	assert.Equal(t, code.ErrorUserOldPasswordFailed, err)

	require.NoError(t, env.users.ChangePassword(ctx, uid, &dto.UserChangePasswordRequest{
		OldPassword:     "password123",
		Password:        "newpassword1",
		ConfirmPassword: "newpassword1",
	}))

	_, err = env.users.Login(ctx, &dto.UserLoginRequest{
		Credentials: "alice",
		Password:    "newpassword1",
	}, "")
	assert.NoError(t, err)
}

func TestUserGetInfo(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	uid := env.register(t, "alice")

	info, err := env.users.GetInfo(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, "alice", info.Username)
	assert.Equal(t, "alice@example.com", info.Email)

	_, err = env.users.GetInfo(ctx, 9999)
	assert.Equal(t, code.ErrorUserNotFound, err)
}
