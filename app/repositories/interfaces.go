package repositories

import "miniblog/app/models"

// UserRepository defines the interface for user data access
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id string) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	FindByUsernameOrEmail(username, email string) (*models.User, error)
	DeleteAll() (int, error)
}

// PostRepository defines the interface for post data access
type PostRepository interface {
	Create(post *models.Post) error
	GetByID(id string) (*models.Post, error)
	List(limit int) ([]*models.Post, error)
	Update(post *models.Post) error
	Delete(id string) error
}
