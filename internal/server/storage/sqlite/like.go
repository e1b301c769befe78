package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/skillsage/backend/internal/models"
	"github.com/skillsage/backend/internal/server/storage"
)

// CreateLike records a reaction to the target. The partial unique indexes on
// (user_id, post_id) and (user_id, comment_id) reject a second reaction to the
// same target even under concurrent requests.
func (s *Storage) CreateLike(ctx context.Context, target storage.LikeTarget, userID string, liked bool) error {
	like := &models.Like{
		ID:        uuid.New().String(),
		UserID:    userID,
		Liked:     liked,
		CreatedAt: time.Now(),
	}
	switch target.Kind {
	case storage.CommentTarget:
		like.CommentID = &target.ID
	default:
		like.PostID = &target.ID
	}

	query := `
		INSERT INTO likes (id, post_id, comment_id, user_id, liked, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		like.ID,
		like.PostID,
		like.CommentID,
		like.UserID,
		like.Liked,
		like.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, "likes.user_id") {
			return storage.ErrLikeAlreadyExists
		}
		return fmt.Errorf("failed to insert like: %w", err)
	}

	return nil
}

// GetLike retrieves the user's like row for the target
func (s *Storage) GetLike(ctx context.Context, target storage.LikeTarget, userID string) (*models.Like, error) {
	query, args, err := sq.Select(
		"id", "post_id", "comment_id", "user_id", "liked", "created_at",
	).
		From("likes").
		Where(sq.Eq{likeColumn(target.Kind): target.ID, "user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build like query: %w", err)
	}

	like := &models.Like{}
	if err := s.db.GetContext(ctx, like, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrLikeNotFound
		}
		return nil, fmt.Errorf("failed to get like: %w", err)
	}

	return like, nil
}

// GetLikeSummary aggregates likes and dislikes for the target and reports the
// viewer's own state. Liked stays nil when the viewer has no like row.
func (s *Storage) GetLikeSummary(ctx context.Context, target storage.LikeTarget, viewerID string) (*models.LikeSummary, error) {
	query, args, err := sq.Select().
		Column("COALESCE(SUM(CASE WHEN liked THEN 1 ELSE 0 END), 0) AS likes").
		Column("COALESCE(SUM(CASE WHEN NOT liked THEN 1 ELSE 0 END), 0) AS dislikes").
		Column(sq.Expr("MAX(CASE WHEN user_id = ? THEN liked END) AS liked", viewerID)).
		From("likes").
		Where(sq.Eq{likeColumn(target.Kind): target.ID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build like summary query: %w", err)
	}

	summary := &models.LikeSummary{}
	row := s.db.QueryRowxContext(ctx, query, args...)
	if err := row.Scan(&summary.Likes, &summary.Dislikes, &summary.Liked); err != nil {
		return nil, fmt.Errorf("failed to get like summary: %w", err)
	}

	return summary, nil
}

// UpdateLike flips the user's reaction to the target
func (s *Storage) UpdateLike(ctx context.Context, target storage.LikeTarget, userID string, liked bool) error {
	query, args, err := sq.Update("likes").
		Set("liked", liked).
		Where(sq.Eq{likeColumn(target.Kind): target.ID, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build like update: %w", err)
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update like: %w", err)
	}

	return requireRowAffected(result, storage.ErrLikeNotFound)
}

// DeleteLike removes the user's reaction to the target
func (s *Storage) DeleteLike(ctx context.Context, target storage.LikeTarget, userID string) error {
	query, args, err := sq.Delete("likes").
		Where(sq.Eq{likeColumn(target.Kind): target.ID, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build like delete: %w", err)
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete like: %w", err)
	}

	return requireRowAffected(result, storage.ErrLikeNotFound)
}
