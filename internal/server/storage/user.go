package storage

import (
	"context"

	"github.com/skillsage/backend/internal/models"
)

// UserStorage defines the interface for user persistence
type UserStorage interface {
	// CreateUser creates a new user.
	// Returns ErrUserAlreadyExists if the username is taken.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByUsername retrieves a user by username.
	// Returns ErrUserNotFound if no such user exists.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// GetUserByID retrieves a user by ID.
	// Returns ErrUserNotFound if no such user exists.
	GetUserByID(ctx context.Context, userID string) (*models.User, error)

	// UpdateProfile updates username and nickname.
	// Returns ErrUserNotFound if no such user exists.
	UpdateProfile(ctx context.Context, userID, username, nickname string) error

	// UpdatePassword replaces the stored password hash.
	UpdatePassword(ctx context.Context, userID, passwordHash string) error

	// UpdateRefreshToken replaces the single active refresh token.
	UpdateRefreshToken(ctx context.Context, userID, refreshToken string) error
}
