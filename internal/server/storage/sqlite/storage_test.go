package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/skillsage/backend/internal/models"
)

// setupTestStorage creates an in-memory database with migrations applied.
func setupTestStorage(t *testing.T) *Storage {
	t.Helper()

	s, err := New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	return s
}

func createTestUser(t *testing.T, s *Storage, username string) *models.User {
	t.Helper()

	user := &models.User{
		ID:             uuid.New().String(),
		Username:       username,
		Nickname:       username,
		PasswordHash:   "password-hash",
		SecretWordHash: "secret-hash",
		CreatedAt:      time.Now().UTC(),
	}
	require.NoError(t, s.CreateUser(context.Background(), user))

	return user
}

func createTestCategory(t *testing.T, s *Storage, userID, title string) *models.Category {
	t.Helper()

	category := &models.Category{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     title,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, s.CreateCategory(context.Background(), category))

	return category
}

func createTestPost(t *testing.T, s *Storage, userID, title string, categoryID *string) *models.Post {
	t.Helper()

	post := &models.Post{
		ID:          uuid.New().String(),
		UserID:      userID,
		CategoryID:  categoryID,
		Title:       title,
		Description: "description of " + title,
		CreatedAt:   time.Now().UTC(),
	}
	require.NoError(t, s.CreatePost(context.Background(), post))

	return post
}

func createTestComment(t *testing.T, s *Storage, postID, userID, text string) *models.Comment {
	t.Helper()

	comment := &models.Comment{
		ID:        uuid.New().String(),
		PostID:    postID,
		UserID:    userID,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, s.CreateComment(context.Background(), comment))

	return comment
}
