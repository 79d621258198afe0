package services

import (
	"errors"
	"fmt"

	"miniblog/app/models"
	"miniblog/app/repositories"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt cost for newly hashed passwords.
const hashCost = 10

// AuthService handles registration and credential verification.
type AuthService struct {
	users repositories.UserRepository
}

// NewAuthService creates a new AuthService
func NewAuthService(users repositories.UserRepository) *AuthService {
	return &AuthService{users: users}
}

// Register creates a new user with a hashed password. It re-checks the
// username/email uniqueness at this layer since the store enforces no
// unique constraints of its own. No user is persisted on any failure.
func (s *AuthService) Register(username, email, password string) (*models.User, error) {
	if username == "" || email == "" || password == "" {
		return nil, ErrValidation
	}

	_, err := s.users.FindByUsernameOrEmail(username, email)
	if err == nil {
		return nil, ErrConflict
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("lookup existing user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login verifies the credentials and returns the matching user. Unknown
// email and wrong password return the identical ErrInvalidCredentials.
func (s *AuthService) Login(email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, ErrValidation
	}

	user, err := s.users.FindByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
