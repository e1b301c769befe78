package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/skillsage/backend/internal/models"
	"github.com/skillsage/backend/internal/server/storage"
)

// CreateUser creates a new user in the storage
func (s *Storage) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, username, nickname, password_hash, secret_word_hash, refresh_token, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		user.ID,
		user.Username,
		user.Nickname,
		user.PasswordHash,
		user.SecretWordHash,
		user.RefreshToken,
		user.CreatedAt,
	)

	if err != nil {
		if isUniqueViolation(err, "users.username") {
			return storage.ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

// GetUserByUsername retrieves user by username
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `
		SELECT id, username, nickname, password_hash, secret_word_hash, refresh_token, created_at
		FROM users
		WHERE username = ?
	`

	user := &models.User{}
	if err := s.db.GetContext(ctx, user, query, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// GetUserByID retrieves user by ID
func (s *Storage) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	query := `
		SELECT id, username, nickname, password_hash, secret_word_hash, refresh_token, created_at
		FROM users
		WHERE id = ?
	`

	user := &models.User{}
	if err := s.db.GetContext(ctx, user, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// UpdateProfile updates username and nickname
func (s *Storage) UpdateProfile(ctx context.Context, userID, username, nickname string) error {
	query := `UPDATE users SET username = ?, nickname = ? WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query, username, nickname, userID)
	if err != nil {
		if isUniqueViolation(err, "users.username") {
			return storage.ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to update profile: %w", err)
	}

	return requireRowAffected(result, storage.ErrUserNotFound)
}

// UpdatePassword replaces the stored password hash
func (s *Storage) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	query := `UPDATE users SET password_hash = ? WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query, passwordHash, userID)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return requireRowAffected(result, storage.ErrUserNotFound)
}

// UpdateRefreshToken replaces the single active refresh token
func (s *Storage) UpdateRefreshToken(ctx context.Context, userID, refreshToken string) error {
	query := `UPDATE users SET refresh_token = ? WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query, refreshToken, userID)
	if err != nil {
		return fmt.Errorf("failed to update refresh token: %w", err)
	}

	return requireRowAffected(result, storage.ErrUserNotFound)
}

// requireRowAffected converts a zero-rows-affected result into notFound.
// The mutation and its existence check are a single statement, so the
// check-then-act race of separate lookup+update does not apply here.
func requireRowAffected(result sql.Result, notFound error) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return notFound
	}
	return nil
}
