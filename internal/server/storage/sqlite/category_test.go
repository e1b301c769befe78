package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillsage/backend/internal/server/storage"
)

func TestCreateCategory_DuplicateTitle(t *testing.T) {
	s := setupTestStorage(t)

	user := createTestUser(t, s, "alice")
	createTestCategory(t, s, user.ID, "golang")

	dup := createTestCategory(t, s, user.ID, "other")
	dup.Title = "golang"
	dup.ID = dup.ID + "-2"
	err := s.CreateCategory(context.Background(), dup)
	assert.ErrorIs(t, err, storage.ErrCategoryAlreadyExists)
}

func TestListCategories_PostCounts(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()

	user := createTestUser(t, s, "alice")
	golang := createTestCategory(t, s, user.ID, "golang")
	createTestCategory(t, s, user.ID, "graphics")

	createTestPost(t, s, user.ID, "one", &golang.ID)
	createTestPost(t, s, user.ID, "two", &golang.ID)

	categories, total, err := s.ListCategories(ctx, storage.CategoryFilter{})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, categories, 2)

	counts := map[string]int{}
	for _, c := range categories {
		counts[c.Title] = c.PostCount
	}
	assert.Equal(t, 2, counts["golang"])
	assert.Equal(t, 0, counts["graphics"])
}

func TestListCategories_TitlePrefix(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()

	user := createTestUser(t, s, "alice")
	createTestCategory(t, s, user.ID, "Golang")
	createTestCategory(t, s, user.ID, "gophers")
	createTestCategory(t, s, user.ID, "rust")

	categories, total, err := s.ListCategories(ctx, storage.CategoryFilter{TitlePrefix: "go"})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, categories, 2)
}

func TestUpdateCategory(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()

	user := createTestUser(t, s, "alice")
	category := createTestCategory(t, s, user.ID, "before")
	createTestCategory(t, s, user.ID, "taken")

	require.NoError(t, s.UpdateCategory(ctx, category.ID, "after"))

	got, err := s.GetCategory(ctx, category.ID)
	require.NoError(t, err)
	assert.Equal(t, "after", got.Title)

	assert.ErrorIs(t, s.UpdateCategory(ctx, category.ID, "taken"), storage.ErrCategoryAlreadyExists)
	assert.ErrorIs(t, s.UpdateCategory(ctx, "no-such-id", "t"), storage.ErrCategoryNotFound)
}

func TestDeleteCategory_PostsKeepNullCategory(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()

	user := createTestUser(t, s, "alice")
	category := createTestCategory(t, s, user.ID, "doomed")
	post := createTestPost(t, s, user.ID, "orphan", &category.ID)

	require.NoError(t, s.DeleteCategory(ctx, category.ID))

	// the post survives with its category reference cleared
	got, err := s.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Nil(t, got.CategoryID)

	assert.ErrorIs(t, s.DeleteCategory(ctx, category.ID), storage.ErrCategoryNotFound)
}
