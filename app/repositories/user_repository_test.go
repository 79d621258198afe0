package repositories

import (
	"testing"

	"miniblog/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBadgerUserRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBadgerUserRepository(db)

	t.Run("create assigns id and creation time", func(t *testing.T) {
		user := &models.User{
			Username:     "alice",
			Email:        "alice@example.com",
			PasswordHash: "hash-a",
		}
		require.NoError(t, repo.Create(user))
		assert.NotEmpty(t, user.ID)
		assert.False(t, user.CreatedAt.IsZero())

		got, err := repo.GetByID(user.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice", got.Username)
		assert.Equal(t, "alice@example.com", got.Email)
		assert.Equal(t, "hash-a", got.PasswordHash)
	})

	t.Run("get missing user", func(t *testing.T) {
		_, err := repo.GetByID("no-such-id")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("find by email", func(t *testing.T) {
		got, err := repo.FindByEmail("alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, "alice", got.Username)
		// Login verifies credentials against the stored hash, so it has
		// to survive the round trip through the stored document.
		assert.Equal(t, "hash-a", got.PasswordHash)

		_, err = repo.FindByEmail("nobody@example.com")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("find by username or email", func(t *testing.T) {
		got, err := repo.FindByUsernameOrEmail("alice", "other@example.com")
		require.NoError(t, err)
		assert.Equal(t, "alice", got.Username)

		got, err = repo.FindByUsernameOrEmail("other", "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, "alice", got.Username)

		_, err = repo.FindByUsernameOrEmail("other", "other@example.com")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("delete all", func(t *testing.T) {
		require.NoError(t, repo.Create(&models.User{
			Username:     "bob",
			Email:        "bob@example.com",
			PasswordHash: "hash-b",
		}))

		n, err := repo.DeleteAll()
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		_, err = repo.FindByEmail("alice@example.com")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
