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

// postRow is the flat scan target for post listing queries.
type postRow struct {
	models.Post
	LikesCount    int    `db:"likes_count"`
	DislikesCount int    `db:"dislikes_count"`
	Liked         *bool  `db:"liked"`
	Username      string `db:"username"`
	Nickname      string `db:"nickname"`
}

func (r *postRow) toStats() *models.PostWithStats {
	return &models.PostWithStats{
		Post:          r.Post,
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

// postSelect builds the shared post listing query: post columns, like
// aggregates for the viewer and the author columns.
func postSelect(viewerID string) sq.SelectBuilder {
	qb := sq.Select(
		"p.id", "p.user_id", "p.category_id", "p.title", "p.description", "p.created_at",
	)
	qb = withLikeStats(qb, viewerID)
	return qb.
		Column("u.username").
		Column("u.nickname").
		From("posts p").
		LeftJoin("likes l ON l.post_id = p.id").
		Join("users u ON u.id = p.user_id").
		GroupBy("p.id", "u.id")
}

// CreatePost creates a new post
func (s *Storage) CreatePost(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts (id, user_id, category_id, title, description, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		post.ID,
		post.UserID,
		post.CategoryID,
		post.Title,
		post.Description,
		post.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}

	return nil
}

// GetPost retrieves a bare post row by ID
func (s *Storage) GetPost(ctx context.Context, postID string) (*models.Post, error) {
	query := `
		SELECT id, user_id, category_id, title, description, created_at
		FROM posts
		WHERE id = ?
	`

	post := &models.Post{}
	if err := s.db.GetContext(ctx, post, query, postID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	return post, nil
}

// GetPostWithStats retrieves a post with like aggregates and author
func (s *Storage) GetPostWithStats(ctx context.Context, postID, viewerID string) (*models.PostWithStats, error) {
	query, args, err := postSelect(viewerID).
		Where(sq.Eq{"p.id": postID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build post query: %w", err)
	}

	row := &postRow{}
	if err := s.db.GetContext(ctx, row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	return row.toStats(), nil
}

// ListPosts returns the filtered page plus the total matching count.
// The page query and the count query share one predicate value, so their
// filters cannot disagree.
func (s *Storage) ListPosts(ctx context.Context, filter storage.PostFilter) ([]*models.PostWithStats, int, error) {
	pred := postPredicate(filter)

	query, args, err := postSelect(filter.ViewerID).
		Where(pred).
		OrderBy(orderByCreatedAt("p", filter.Sort)).
		Limit(listLimit(filter.Limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build posts query: %w", err)
	}

	rows := []*postRow{}
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list posts: %w", err)
	}

	posts := make([]*models.PostWithStats, 0, len(rows))
	for _, row := range rows {
		posts = append(posts, row.toStats())
	}

	countQuery, countArgs, err := sq.Select("COUNT(*)").
		From("posts p").
		Where(pred).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build posts count query: %w", err)
	}

	var total int
	if err := s.db.GetContext(ctx, &total, countQuery, countArgs...); err != nil {
		return nil, 0, fmt.Errorf("failed to count posts: %w", err)
	}

	return posts, total, nil
}

// UpdatePost updates title, description and category
func (s *Storage) UpdatePost(ctx context.Context, post *models.Post) error {
	query := `UPDATE posts SET title = ?, description = ?, category_id = ? WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query,
		post.Title,
		post.Description,
		post.CategoryID,
		post.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}

	return requireRowAffected(result, storage.ErrPostNotFound)
}

// DeletePost deletes a post by ID
func (s *Storage) DeletePost(ctx context.Context, postID string) error {
	query := `DELETE FROM posts WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query, postID)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	return requireRowAffected(result, storage.ErrPostNotFound)
}
