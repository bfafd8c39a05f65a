package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewStore(NewMemoryKV())

	_, ok := store.Token(ctx)
	assert.False(t, ok)

	require.NoError(t, store.SetSession(ctx, "abc", &Extra{Email: "admin@x.com"}))

	token, ok := store.Token(ctx)
	require.True(t, ok)
	assert.Equal(t, "abc", token)

	email, ok := store.Email(ctx)
	require.True(t, ok)
	assert.Equal(t, "admin@x.com", email)

	require.NoError(t, store.ClearSession(ctx))
	_, ok = store.Token(ctx)
	assert.False(t, ok)
	_, ok = store.Email(ctx)
	assert.False(t, ok)

	// Clearing an already empty session is fine.
	require.NoError(t, store.ClearSession(ctx))
}

func TestIsValid(t *testing.T) {
	store := NewStore(NewMemoryKV())

	t.Run("expired jwt", func(t *testing.T) {
		expired := signedToken(t, jwt.MapClaims{"exp": time.Now().Add(-time.Hour).Unix()})
		assert.False(t, store.IsValid(expired))
	})

	t.Run("live jwt", func(t *testing.T) {
		live := signedToken(t, jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()})
		assert.True(t, store.IsValid(live))
	})

	t.Run("jwt without expiry", func(t *testing.T) {
		noExp := signedToken(t, jwt.MapClaims{"sub": "admin"})
		assert.True(t, store.IsValid(noExp))
	})

	t.Run("opaque token", func(t *testing.T) {
		assert.True(t, store.IsValid("abc"))
	})

	t.Run("malformed jwt", func(t *testing.T) {
		assert.False(t, store.IsValid("not.base64.payload"))
	})

	t.Run("empty", func(t *testing.T) {
		assert.False(t, store.IsValid(""))
	})
}

func TestValidateClearsExpiredSession(t *testing.T) {
	ctx := context.Background()
	store := NewStore(NewMemoryKV())

	expired := signedToken(t, jwt.MapClaims{"exp": time.Now().Add(-time.Minute).Unix()})
	require.NoError(t, store.SetSession(ctx, expired, nil))

	assert.False(t, store.Validate(ctx))

	// The whole session is gone, not just marked invalid.
	_, ok := store.Token(ctx)
	assert.False(t, ok)
}

func TestValidateLiveSession(t *testing.T) {
	ctx := context.Background()
	store := NewStore(NewMemoryKV())

	live := signedToken(t, jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()})
	require.NoError(t, store.SetSession(ctx, live, nil))

	assert.True(t, store.Validate(ctx))
	_, ok := store.Token(ctx)
	assert.True(t, ok)
}

func TestFileKV(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.json")

	t.Run("roundtrip survives reopen", func(t *testing.T) {
		kv := NewFileKV(path)
		require.NoError(t, kv.Set(ctx, KeyToken, "tok"))

		reopened := NewFileKV(path)
		v, err := reopened.Get(ctx, KeyToken)
		require.NoError(t, err)
		assert.Equal(t, "tok", v)
	})

	t.Run("delete", func(t *testing.T) {
		kv := NewFileKV(path)
		require.NoError(t, kv.Set(ctx, KeyAuth, "true"))
		require.NoError(t, kv.Delete(ctx, KeyAuth, "never-set"))
		_, err := kv.Get(ctx, KeyAuth)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("corrupt file reads as empty", func(t *testing.T) {
		corrupt := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(corrupt, []byte("{nope"), 0o600))
		kv := NewFileKV(corrupt)
		_, err := kv.Get(ctx, KeyToken)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
