package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// User represents a registered account. The password is stored only as a
// bcrypt hash; plaintext never reaches the models layer. Users are
// persisted as JSON documents and never serialized to clients (pages and
// API responses carry Session and Post only), so the hash keeps a real
// JSON tag.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username" validate:"required"`
	Email        string    `json:"email" validate:"required,email"`
	PasswordHash string    `json:"passwordHash" validate:"required"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Post represents a blog post owned by exactly one user. AuthorID is set
// once at creation and never reassigned.
type Post struct {
	ID         string     `json:"id"`
	Title      string     `json:"title" validate:"required"`
	Body       string     `json:"body" validate:"required"`
	AuthorID   string     `json:"author" validate:"required"`
	AuthorName string     `json:"authorName,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  *time.Time `json:"updatedAt,omitempty"`
}

// Session is the server-side snapshot bound to a client's session token.
// It is taken at login or registration time and does not track later
// changes to the User record.
type Session struct {
	UserID   string
	Username string
	Email    string
}
