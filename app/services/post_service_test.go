package services

import (
	"testing"
	"time"

	"miniblog/app/models"
	"miniblog/app/repositories"
	"miniblog/app/repositories/mock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPostService(t *testing.T) (*PostService, *mock.PostRepository, *models.User, *models.User) {
	t.Helper()
	users := mock.NewUserRepository()
	posts := mock.NewPostRepository()

	owner := &models.User{Username: "alice", Email: "alice@example.com", PasswordHash: "h"}
	require.NoError(t, users.Create(owner))
	other := &models.User{Username: "bob", Email: "bob@example.com", PasswordHash: "h"}
	require.NoError(t, users.Create(other))

	return NewPostService(posts, users), posts, owner, other
}

func TestPostServiceCreate(t *testing.T) {
	service, _, owner, _ := newTestPostService(t)

	t.Run("create post", func(t *testing.T) {
		post, err := service.CreatePost("Hello", "first body", owner.ID)
		require.NoError(t, err)
		assert.NotEmpty(t, post.ID)
		assert.Equal(t, owner.ID, post.AuthorID)
		assert.Equal(t, "alice", post.AuthorName)
		assert.False(t, post.CreatedAt.IsZero())
		assert.Nil(t, post.UpdatedAt)
	})

	t.Run("missing title", func(t *testing.T) {
		_, err := service.CreatePost("", "body", owner.ID)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("missing body", func(t *testing.T) {
		_, err := service.CreatePost("title", "", owner.ID)
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestPostServiceOwnership(t *testing.T) {
	service, _, owner, other := newTestPostService(t)

	post, err := service.CreatePost("Mine", "owned body", owner.ID)
	require.NoError(t, err)

	t.Run("check owner helper", func(t *testing.T) {
		assert.NoError(t, CheckOwner(post, owner.ID))
		assert.ErrorIs(t, CheckOwner(post, other.ID), ErrForbidden)
	})

	t.Run("non-owner update leaves post unchanged", func(t *testing.T) {
		_, err := service.UpdatePost(post.ID, other.ID, "Stolen", "hacked")
		assert.ErrorIs(t, err, ErrForbidden)

		got, err := service.GetPost(post.ID)
		require.NoError(t, err)
		assert.Equal(t, "Mine", got.Title)
		assert.Equal(t, "owned body", got.Body)
		assert.Nil(t, got.UpdatedAt)
	})

	t.Run("non-owner patch leaves post unchanged", func(t *testing.T) {
		title := "Stolen"
		_, err := service.PatchPost(post.ID, other.ID, &title, nil)
		assert.ErrorIs(t, err, ErrForbidden)

		got, err := service.GetPost(post.ID)
		require.NoError(t, err)
		assert.Equal(t, "Mine", got.Title)
	})

	t.Run("non-owner delete leaves post in place", func(t *testing.T) {
		assert.ErrorIs(t, service.DeletePost(post.ID, other.ID), ErrForbidden)
		_, err := service.GetPost(post.ID)
		assert.NoError(t, err)
	})

	t.Run("missing post reports not found before forbidden", func(t *testing.T) {
		_, err := service.UpdatePost("no-such-id", other.ID, "t", "b")
		assert.ErrorIs(t, err, repositories.ErrNotFound)
		assert.ErrorIs(t, service.DeletePost("no-such-id", other.ID), repositories.ErrNotFound)
	})
}

func TestPostServiceUpdateSemantics(t *testing.T) {
	service, _, owner, _ := newTestPostService(t)

	t.Run("update is a full overwrite", func(t *testing.T) {
		post, err := service.CreatePost("Original", "original body", owner.ID)
		require.NoError(t, err)

		// A blank body clears the stored value.
		updated, err := service.UpdatePost(post.ID, owner.ID, "Changed", "")
		require.NoError(t, err)
		assert.Equal(t, "Changed", updated.Title)
		assert.Equal(t, "", updated.Body)
		assert.NotNil(t, updated.UpdatedAt)
	})

	t.Run("patch is a partial merge", func(t *testing.T) {
		post, err := service.CreatePost("Original", "original body", owner.ID)
		require.NoError(t, err)

		title := "Changed"
		patched, err := service.PatchPost(post.ID, owner.ID, &title, nil)
		require.NoError(t, err)
		assert.Equal(t, "Changed", patched.Title)
		assert.Equal(t, "original body", patched.Body)
		assert.NotNil(t, patched.UpdatedAt)
	})

	t.Run("author survives every mutation", func(t *testing.T) {
		post, err := service.CreatePost("Original", "original body", owner.ID)
		require.NoError(t, err)

		_, err = service.UpdatePost(post.ID, owner.ID, "A", "B")
		require.NoError(t, err)
		body := "C"
		_, err = service.PatchPost(post.ID, owner.ID, nil, &body)
		require.NoError(t, err)

		got, err := service.GetPost(post.ID)
		require.NoError(t, err)
		assert.Equal(t, owner.ID, got.AuthorID)
	})
}

func TestPostServiceList(t *testing.T) {
	service, posts, owner, other := newTestPostService(t)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	authors := []string{owner.ID, other.ID}
	for i := 0; i < 6; i++ {
		require.NoError(t, posts.Create(&models.Post{
			Title:     "Post",
			Body:      "body",
			AuthorID:  authors[i%2],
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	t.Run("newest first with authors resolved", func(t *testing.T) {
		list, err := service.ListPosts(0)
		require.NoError(t, err)
		require.Len(t, list, 6)
		assert.Equal(t, base.Add(5*time.Minute), list[0].CreatedAt)
		for i, post := range list {
			if i > 0 {
				assert.True(t, !list[i-1].CreatedAt.Before(post.CreatedAt))
			}
			assert.NotEmpty(t, post.AuthorName)
		}
	})

	t.Run("limit truncates", func(t *testing.T) {
		list, err := service.ListPosts(4)
		require.NoError(t, err)
		assert.Len(t, list, 4)
	})
}

func TestPostServiceDelete(t *testing.T) {
	service, _, owner, _ := newTestPostService(t)

	post, err := service.CreatePost("Doomed", "body", owner.ID)
	require.NoError(t, err)

	require.NoError(t, service.DeletePost(post.ID, owner.ID))
	_, err = service.GetPost(post.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}
