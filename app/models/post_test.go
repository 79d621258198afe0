package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPostValidate(t *testing.T) {
	tests := []struct {
		name    string
		post    *Post
		wantErr bool
	}{
		{
			name: "valid post",
			post: &Post{
				Title:     "First Post",
				Body:      "Hello from the blog",
				AuthorID:  "a1b2c3",
				CreatedAt: time.Now(),
			},
			wantErr: false,
		},
		{
			name: "missing title",
			post: &Post{
				Body:      "Hello from the blog",
				AuthorID:  "a1b2c3",
				CreatedAt: time.Now(),
			},
			wantErr: true,
		},
		{
			name: "missing body",
			post: &Post{
				Title:     "First Post",
				AuthorID:  "a1b2c3",
				CreatedAt: time.Now(),
			},
			wantErr: true,
		},
		{
			name: "missing author",
			post: &Post{
				Title:     "First Post",
				Body:      "Hello from the blog",
				CreatedAt: time.Now(),
			},
			wantErr: true,
		},
		{
			name: "zero created_at",
			post: &Post{
				Title:    "First Post",
				Body:     "Hello from the blog",
				AuthorID: "a1b2c3",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.post.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPostBeforeCreate(t *testing.T) {
	post := &Post{Title: "t", Body: "b", AuthorID: "a"}
	post.BeforeCreate()
	assert.False(t, post.CreatedAt.IsZero())
	assert.Nil(t, post.UpdatedAt)

	// An already-set creation time is preserved.
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	post = &Post{Title: "t", Body: "b", AuthorID: "a", CreatedAt: created}
	post.BeforeCreate()
	assert.Equal(t, created, post.CreatedAt)
}

func TestPostTouch(t *testing.T) {
	post := &Post{Title: "t", Body: "b", AuthorID: "a"}
	post.BeforeCreate()
	assert.Nil(t, post.UpdatedAt)

	post.Touch()
	assert.NotNil(t, post.UpdatedAt)
	assert.False(t, post.UpdatedAt.IsZero())
}
