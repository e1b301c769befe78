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

// CreateCategory creates a new category
func (s *Storage) CreateCategory(ctx context.Context, category *models.Category) error {
	query := `
		INSERT INTO categories (id, user_id, title, created_at)
		VALUES (?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		category.ID,
		category.UserID,
		category.Title,
		category.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, "categories.title") {
			return storage.ErrCategoryAlreadyExists
		}
		return fmt.Errorf("failed to insert category: %w", err)
	}

	return nil
}

// GetCategory retrieves a category by ID
func (s *Storage) GetCategory(ctx context.Context, categoryID string) (*models.Category, error) {
	query := `
		SELECT id, user_id, title, created_at
		FROM categories
		WHERE id = ?
	`

	category := &models.Category{}
	if err := s.db.GetContext(ctx, category, query, categoryID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	return category, nil
}

// ListCategories returns the filtered page with post counts plus the total
// matching count. Page and count queries share one predicate value.
func (s *Storage) ListCategories(ctx context.Context, filter storage.CategoryFilter) ([]*models.CategoryWithCount, int, error) {
	pred := sq.And{
		sq.Expr("LOWER(c.title) LIKE LOWER(?) || '%'", filter.TitlePrefix),
	}

	query, args, err := sq.Select(
		"c.id", "c.user_id", "c.title", "c.created_at",
	).
		Column("COUNT(p.id) AS post_count").
		From("categories c").
		LeftJoin("posts p ON p.category_id = c.id").
		Where(pred).
		GroupBy("c.id").
		Limit(listLimit(filter.Limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build categories query: %w", err)
	}

	categories := []*models.CategoryWithCount{}
	if err := s.db.SelectContext(ctx, &categories, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list categories: %w", err)
	}

	countQuery, countArgs, err := sq.Select("COUNT(*)").
		From("categories c").
		Where(pred).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build categories count query: %w", err)
	}

	var total int
	if err := s.db.GetContext(ctx, &total, countQuery, countArgs...); err != nil {
		return nil, 0, fmt.Errorf("failed to count categories: %w", err)
	}

	return categories, total, nil
}

// UpdateCategory replaces the category title
func (s *Storage) UpdateCategory(ctx context.Context, categoryID, title string) error {
	query := `UPDATE categories SET title = ? WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query, title, categoryID)
	if err != nil {
		if isUniqueViolation(err, "categories.title") {
			return storage.ErrCategoryAlreadyExists
		}
		return fmt.Errorf("failed to update category: %w", err)
	}

	return requireRowAffected(result, storage.ErrCategoryNotFound)
}

// DeleteCategory deletes a category by ID
func (s *Storage) DeleteCategory(ctx context.Context, categoryID string) error {
	query := `DELETE FROM categories WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query, categoryID)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	return requireRowAffected(result, storage.ErrCategoryNotFound)
}
