package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/skillsage/backend/internal/models"
	"github.com/skillsage/backend/internal/server/storage"
)

// commentRow is the flat scan target for comment listing queries.
type commentRow struct {
	models.Comment
	LikesCount    int    `db:"likes_count"`
	DislikesCount int    `db:"dislikes_count"`
	Liked         *bool  `db:"liked"`
	Username      string `db:"username"`
	Nickname      string `db:"nickname"`
}

func (r *commentRow) toStats() *models.CommentWithStats {
	return &models.CommentWithStats{
		Comment:       r.Comment,
		LikesCount:    r.LikesCount,
		DislikesCount: r.DislikesCount,
		Liked:         r.Liked,
		User: models.UserRef{
			ID:       r.UserID,
			Username: r.Username,
			Nickname: r.Nickname,
		},
	}
}

func commentSelect(viewerID string) sq.SelectBuilder {
	qb := sq.Select(
		"c.id", "c.post_id", "c.user_id", "c.text", "c.created_at",
	)
	qb = withLikeStats(qb, viewerID)
	return qb.
		Column("u.username").
		Column("u.nickname").
		From("comments c").
		LeftJoin("likes l ON l.comment_id = c.id").
		Join("users u ON u.id = c.user_id").
		GroupBy("c.id", "u.id")
}

// CreateComment creates a new comment
func (s *Storage) CreateComment(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (id, post_id, user_id, text, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		comment.ID,
		comment.PostID,
		comment.UserID,
		comment.Text,
		comment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert comment: %w", err)
	}

	return nil
}

// GetComment retrieves a bare comment row by ID
func (s *Storage) GetComment(ctx context.Context, commentID string) (*models.Comment, error) {
	query := `
		SELECT id, post_id, user_id, text, created_at
		FROM comments
		WHERE id = ?
	`

	comment := &models.Comment{}
	if err := s.db.GetContext(ctx, comment, query, commentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}

	return comment, nil
}

// GetCommentWithStats retrieves a comment with like aggregates and author
func (s *Storage) GetCommentWithStats(ctx context.Context, commentID, viewerID string) (*models.CommentWithStats, error) {
	query, args, err := commentSelect(viewerID).
		Where(sq.Eq{"c.id": commentID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build comment query: %w", err)
	}

	row := &commentRow{}
	if err := s.db.GetContext(ctx, row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}

	return row.toStats(), nil
}

// ListComments returns the page plus the total comment count
func (s *Storage) ListComments(ctx context.Context, filter storage.CommentFilter) ([]*models.CommentWithStats, int, error) {
	query, args, err := commentSelect(filter.ViewerID).
		OrderBy(orderByCreatedAt("c", filter.Sort)).
		Limit(listLimit(filter.Limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build comments query: %w", err)
	}

	rows := []*commentRow{}
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list comments: %w", err)
	}

	comments := make([]*models.CommentWithStats, 0, len(rows))
	for _, row := range rows {
		comments = append(comments, row.toStats())
	}

	var total int
	if err := s.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM comments`); err != nil {
		return nil, 0, fmt.Errorf("failed to count comments: %w", err)
	}

	return comments, total, nil
}

// UpdateComment replaces the comment text
func (s *Storage) UpdateComment(ctx context.Context, commentID, text string) error {
	query := `UPDATE comments SET text = ? WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query, text, commentID)
	if err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}

	return requireRowAffected(result, storage.ErrCommentNotFound)
}

// DeleteComment deletes a comment by ID
func (s *Storage) DeleteComment(ctx context.Context, commentID string) error {
	query := `DELETE FROM comments WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query, commentID)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	return requireRowAffected(result, storage.ErrCommentNotFound)
}
