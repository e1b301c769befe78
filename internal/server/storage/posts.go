package storage

import (
	"context"

	"github.com/skillsage/backend/internal/models"
)

// SortVariant is the whitelisted ORDER BY direction for listings.
// Anything not recognized by ParseSortVariant degrades to ascending;
// the raw query value never reaches the SQL text.
type SortVariant string

const (
	SortAsc  SortVariant = "ASC"
	SortDesc SortVariant = "DESC"
)

// ParseSortVariant maps a caller-supplied string onto a SortVariant.
func ParseSortVariant(s string) SortVariant {
	if s == string(SortDesc) || s == "desc" {
		return SortDesc
	}
	return SortAsc
}

// PostFilter describes a posts listing request. TitlePrefix is always applied
// (empty prefix matches everything); CategoryID and UserID are optional and
// each contributes exactly one predicate. ViewerID selects whose like state
// is reported in the rows.
type PostFilter struct {
	ViewerID    string
	TitlePrefix string
	CategoryID  *string
	UserID      *string
	Sort        SortVariant
	Limit       int
}

// CommentFilter describes a comments listing request.
type CommentFilter struct {
	ViewerID string
	Sort     SortVariant
	Limit    int
}

// CategoryFilter describes a categories listing request.
type CategoryFilter struct {
	TitlePrefix string
	Limit       int
}

// PostStorage defines the interface for post persistence
type PostStorage interface {
	// CreatePost creates a new post.
	CreatePost(ctx context.Context, post *models.Post) error

	// GetPost retrieves a bare post row by ID.
	// Returns ErrPostNotFound if no such post exists.
	GetPost(ctx context.Context, postID string) (*models.Post, error)

	// GetPostWithStats retrieves a post with like aggregates and author,
	// reporting viewerID's own like state.
	GetPostWithStats(ctx context.Context, postID, viewerID string) (*models.PostWithStats, error)

	// ListPosts returns the filtered page plus the total number of posts
	// matching the same filter regardless of limit.
	ListPosts(ctx context.Context, filter PostFilter) ([]*models.PostWithStats, int, error)

	// UpdatePost updates title, description and category.
	// Returns ErrPostNotFound if no such post exists.
	UpdatePost(ctx context.Context, post *models.Post) error

	// DeletePost deletes a post by ID.
	// Returns ErrPostNotFound if no such post exists.
	DeletePost(ctx context.Context, postID string) error
}

// CommentStorage defines the interface for comment persistence
type CommentStorage interface {
	CreateComment(ctx context.Context, comment *models.Comment) error

	// GetComment retrieves a bare comment row by ID.
	// Returns ErrCommentNotFound if no such comment exists.
	GetComment(ctx context.Context, commentID string) (*models.Comment, error)

	// GetCommentWithStats retrieves a comment with like aggregates and author.
	GetCommentWithStats(ctx context.Context, commentID, viewerID string) (*models.CommentWithStats, error)

	// ListComments returns the page plus the total comment count.
	ListComments(ctx context.Context, filter CommentFilter) ([]*models.CommentWithStats, int, error)

	// UpdateComment replaces the comment text.
	// Returns ErrCommentNotFound if no such comment exists.
	UpdateComment(ctx context.Context, commentID, text string) error

	// DeleteComment deletes a comment by ID.
	// Returns ErrCommentNotFound if no such comment exists.
	DeleteComment(ctx context.Context, commentID string) error
}

// CategoryStorage defines the interface for category persistence
type CategoryStorage interface {
	// CreateCategory creates a new category.
	// Returns ErrCategoryAlreadyExists if the title is taken.
	CreateCategory(ctx context.Context, category *models.Category) error

	// GetCategory retrieves a category by ID.
	// Returns ErrCategoryNotFound if no such category exists.
	GetCategory(ctx context.Context, categoryID string) (*models.Category, error)

	// ListCategories returns the filtered page with per-category post counts
	// plus the total matching count.
	ListCategories(ctx context.Context, filter CategoryFilter) ([]*models.CategoryWithCount, int, error)

	// UpdateCategory replaces the category title.
	// Returns ErrCategoryNotFound if no such category exists.
	UpdateCategory(ctx context.Context, categoryID, title string) error

	// DeleteCategory deletes a category by ID.
	// Returns ErrCategoryNotFound if no such category exists.
	DeleteCategory(ctx context.Context, categoryID string) error
}
