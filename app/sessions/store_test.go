package sessions

import (
	"testing"
	"time"

	"miniblog/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreCreateGetDestroy(t *testing.T) {
	store := NewStore(0)

	token, err := store.Create(models.Session{
		UserID:   "u1",
		Username: "alice",
		Email:    "alice@example.com",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	session := store.Get(token)
	require.NotNil(t, session)
	assert.Equal(t, "u1", session.UserID)
	assert.Equal(t, "alice", session.Username)

	store.Destroy(token)
	assert.Nil(t, store.Get(token))

	// Destroying again is a no-op.
	store.Destroy(token)
}

func TestStoreTokensAreUnique(t *testing.T) {
	store := NewStore(0)
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := store.Create(models.Session{UserID: "u"})
		require.NoError(t, err)
		assert.False(t, seen[token])
		seen[token] = true
	}
}

func TestStoreExpiry(t *testing.T) {
	store := NewStore(10 * time.Millisecond)

	token, err := store.Create(models.Session{UserID: "u1"})
	require.NoError(t, err)
	require.NotNil(t, store.Get(token))

	time.Sleep(20 * time.Millisecond)
	assert.Nil(t, store.Get(token))
}

func TestStoreFlashReadOnce(t *testing.T) {
	store := NewStore(0)

	token, err := store.Create(models.Session{UserID: "u1"})
	require.NoError(t, err)

	assert.Equal(t, "", store.PopFlash(token))

	store.SetFlash(token, "Post deleted successfully.")
	assert.Equal(t, "Post deleted successfully.", store.PopFlash(token))
	assert.Equal(t, "", store.PopFlash(token))

	// Flash on an unknown token is silently dropped.
	store.SetFlash("nope", "msg")
	assert.Equal(t, "", store.PopFlash("nope"))
}
