package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() TokenManager {
	return NewTokenManager(TokenConfig{
		SecretKey:     "test-secret",
		AccessExpiry:  time.Hour,
		RefreshExpiry: 24 * time.Hour,
	})
}

func TestTokenAccessRoundTrip(t *testing.T) {
	manager := newTestManager()

	token, err := manager.GenerateAccess(42, "alice", "127.0.0.1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.Parse(token, ScopeAccess)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "127.0.0.1", claims.IP)
	assert.Equal(t, ScopeAccess, claims.Scope)
}

func TestTokenScopeMismatch(t *testing.T) {
	manager := newTestManager()

	refresh, err := manager.GenerateRefresh(42)
	require.NoError(t, err)

	_, err = manager.Parse(refresh, ScopeAccess)
	assert.Error(t, err)

	claims, err := manager.Parse(refresh, ScopeRefresh)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UID)
}

func TestTokenWrongSecret(t *testing.T) {
	manager := newTestManager()
	other := NewTokenManager(TokenConfig{SecretKey: "other-secret"})

	token, err := manager.GenerateAccess(1, "bob", "")
	require.NoError(t, err)

	_, err = other.Parse(token, ScopeAccess)
	assert.Error(t, err)
}

func TestTokenExpiresAt(t *testing.T) {
	manager := newTestManager()

	token, err := manager.GenerateAccess(1, "bob", "")
	require.NoError(t, err)

	expiry, err := manager.ExpiresAt(token)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiry, time.Minute)
}

func TestTokenGarbage(t *testing.T) {
	manager := newTestManager()

	_, err := manager.Parse("not-a-token", ScopeAccess)
	assert.Error(t, err)
}
