package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"happythoughts/api/internal/auth"
	"happythoughts/api/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateUser persists a new user. The caller supplies email and password hash;
// the store assigns the ID, the access token, and the creation timestamp.
// Returns ErrDuplicateEmail if the email is already registered.
func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	var existing models.User
	err := s.db.WithContext(ctx).First(&existing, "email = ?", user.Email).Error
	if err == nil {
		return ErrDuplicateEmail
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check existing user: %w", err)
	}

	token, err := auth.GenerateAccessToken()
	if err != nil {
		return err
	}

	user.ID = uuid.New().String()
	user.AccessToken = token
	user.CreatedAt = time.Now()

	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// UserByEmail looks up a user by email
func (s *Store) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user by email: %w", err)
	}
	return &user, nil
}

// UserByToken resolves a bearer token to the user it was issued to. An empty
// token never matches, even if a row somehow carries an empty token.
func (s *Store) UserByToken(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, ErrNotFound
	}

	var user models.User
	err := s.db.WithContext(ctx).First(&user, "access_token = ?", token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user by token: %w", err)
	}
	return &user, nil
}

// ListUsers returns all users
func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}
