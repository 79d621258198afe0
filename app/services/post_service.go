package services

import (
	"miniblog/app/models"
	"miniblog/app/repositories"
)

// PostService handles business logic for blog posts. Both the web and the
// API surface go through it, so the ownership rules cannot drift between
// the two.
type PostService struct {
	posts repositories.PostRepository
	users repositories.UserRepository
}

// NewPostService creates a new PostService
func NewPostService(posts repositories.PostRepository, users repositories.UserRepository) *PostService {
	return &PostService{posts: posts, users: users}
}

// CheckOwner returns ErrForbidden unless userID owns the post. Identifiers
// are compared as opaque values.
func CheckOwner(post *models.Post, userID string) error {
	if post.AuthorID != userID {
		return ErrForbidden
	}
	return nil
}

// CreatePost creates a new post owned by authorID.
func (s *PostService) CreatePost(title, body, authorID string) (*models.Post, error) {
	if title == "" || body == "" {
		return nil, ErrValidation
	}

	post := &models.Post{
		Title:    title,
		Body:     body,
		AuthorID: authorID,
	}
	if err := s.posts.Create(post); err != nil {
		return nil, err
	}

	s.resolveAuthor(post)
	return post, nil
}

// GetPost retrieves a post by ID with its author name resolved.
func (s *PostService) GetPost(id string) (*models.Post, error) {
	post, err := s.posts.GetByID(id)
	if err != nil {
		return nil, err
	}

	s.resolveAuthor(post)
	return post, nil
}

// ListPosts retrieves posts newest-first with author names resolved. A
// limit of zero or less returns all posts.
func (s *PostService) ListPosts(limit int) ([]*models.Post, error) {
	posts, err := s.posts.List(limit)
	if err != nil {
		return nil, err
	}

	// Resolve each author once, not once per post.
	names := make(map[string]string)
	for _, post := range posts {
		name, ok := names[post.AuthorID]
		if !ok {
			if user, err := s.users.GetByID(post.AuthorID); err == nil {
				name = user.Username
			}
			names[post.AuthorID] = name
		}
		post.AuthorName = name
	}
	return posts, nil
}

// UpdatePost overwrites the post's title and body unconditionally (web
// form semantics: a blank submitted field clears the stored value). The
// guard sequence is absent-before-owner, so a missing post never reports
// Forbidden.
func (s *PostService) UpdatePost(id, userID, title, body string) (*models.Post, error) {
	post, err := s.posts.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := CheckOwner(post, userID); err != nil {
		return nil, err
	}

	post.Title = title
	post.Body = body
	post.Touch()
	if err := s.posts.Update(post); err != nil {
		return nil, err
	}

	s.resolveAuthor(post)
	return post, nil
}

// PatchPost merges only the provided fields into the post (API semantics:
// a nil field preserves the stored value). Same guard sequence as
// UpdatePost.
func (s *PostService) PatchPost(id, userID string, title, body *string) (*models.Post, error) {
	post, err := s.posts.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := CheckOwner(post, userID); err != nil {
		return nil, err
	}

	if title != nil {
		post.Title = *title
	}
	if body != nil {
		post.Body = *body
	}
	post.Touch()
	if err := s.posts.Update(post); err != nil {
		return nil, err
	}

	s.resolveAuthor(post)
	return post, nil
}

// DeletePost removes the post after the same guard sequence as updates.
func (s *PostService) DeletePost(id, userID string) error {
	post, err := s.posts.GetByID(id)
	if err != nil {
		return err
	}
	if err := CheckOwner(post, userID); err != nil {
		return err
	}

	return s.posts.Delete(id)
}

// resolveAuthor fills in the denormalized author username. A missing user
// leaves the name blank rather than failing the whole request.
func (s *PostService) resolveAuthor(post *models.Post) {
	user, err := s.users.GetByID(post.AuthorID)
	if err != nil {
		return
	}
	post.AuthorName = user.Username
}
