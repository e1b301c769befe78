package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillsage/backend/internal/server/storage"
)

func TestCreateLike_DuplicateRejected(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()

	alice := createTestUser(t, s, "alice")
	bob := createTestUser(t, s, "bob")
	post := createTestPost(t, s, alice.ID, "post", nil)

	require.NoError(t, s.CreateLike(ctx, postTarget(post.ID), bob.ID, true))

	// the unique index rejects a second reaction, even a dislike
	err := s.CreateLike(ctx, postTarget(post.ID), bob.ID, false)
	assert.ErrorIs(t, err, storage.ErrLikeAlreadyExists)

	// a different target is unaffected
	comment := createTestComment(t, s, post.ID, alice.ID, "c")
	require.NoError(t, s.CreateLike(ctx, commentTarget(comment.ID), bob.ID, true))
}

func TestGetLike(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()

	alice := createTestUser(t, s, "alice")
	bob := createTestUser(t, s, "bob")
	post := createTestPost(t, s, alice.ID, "post", nil)

	require.NoError(t, s.CreateLike(ctx, postTarget(post.ID), bob.ID, true))

	like, err := s.GetLike(ctx, postTarget(post.ID), bob.ID)
	require.NoError(t, err)
	assert.Equal(t, bob.ID, like.UserID)
	assert.True(t, like.Liked)
	require.NotNil(t, like.PostID)
	assert.Equal(t, post.ID, *like.PostID)
	assert.Nil(t, like.CommentID)

	_, err = s.GetLike(ctx, postTarget(post.ID), alice.ID)
	assert.ErrorIs(t, err, storage.ErrLikeNotFound)
}

func TestGetLikeSummary(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()

	alice := createTestUser(t, s, "alice")
	bob := createTestUser(t, s, "bob")
	carol := createTestUser(t, s, "carol")
	post := createTestPost(t, s, alice.ID, "post", nil)

	require.NoError(t, s.CreateLike(ctx, postTarget(post.ID), bob.ID, true))
	require.NoError(t, s.CreateLike(ctx, postTarget(post.ID), carol.ID, false))

	summary, err := s.GetLikeSummary(ctx, postTarget(post.ID), bob.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Likes)
	assert.Equal(t, 1, summary.Dislikes)
	require.NotNil(t, summary.Liked)
	assert.True(t, *summary.Liked)

	// viewer without a reaction gets nil, not false
	summary, err = s.GetLikeSummary(ctx, postTarget(post.ID), alice.ID)
	require.NoError(t, err)
	assert.Nil(t, summary.Liked)

	// a target with no likes at all reports zeros and nil
	other := createTestPost(t, s, alice.ID, "quiet", nil)
	summary, err = s.GetLikeSummary(ctx, postTarget(other.ID), bob.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Likes)
	assert.Equal(t, 0, summary.Dislikes)
	assert.Nil(t, summary.Liked)
}

func TestUpdateLike_FlipsReaction(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()

	alice := createTestUser(t, s, "alice")
	bob := createTestUser(t, s, "bob")
	post := createTestPost(t, s, alice.ID, "post", nil)

	require.NoError(t, s.CreateLike(ctx, postTarget(post.ID), bob.ID, true))
	require.NoError(t, s.UpdateLike(ctx, postTarget(post.ID), bob.ID, false))

	like, err := s.GetLike(ctx, postTarget(post.ID), bob.ID)
	require.NoError(t, err)
	assert.False(t, like.Liked)

	err = s.UpdateLike(ctx, postTarget(post.ID), alice.ID, true)
	assert.ErrorIs(t, err, storage.ErrLikeNotFound)
}

func TestDeleteLike(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()

	alice := createTestUser(t, s, "alice")
	bob := createTestUser(t, s, "bob")
	post := createTestPost(t, s, alice.ID, "post", nil)

	require.NoError(t, s.CreateLike(ctx, postTarget(post.ID), bob.ID, true))
	require.NoError(t, s.DeleteLike(ctx, postTarget(post.ID), bob.ID))

	_, err := s.GetLike(ctx, postTarget(post.ID), bob.ID)
	assert.ErrorIs(t, err, storage.ErrLikeNotFound)

	assert.ErrorIs(t, s.DeleteLike(ctx, postTarget(post.ID), bob.ID), storage.ErrLikeNotFound)

	// the user may now react again
	require.NoError(t, s.CreateLike(ctx, postTarget(post.ID), bob.ID, false))
}
