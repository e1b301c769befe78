package api

import "github.com/skillsage/backend/internal/models"

// CreatePostRequest is the body of POST /api/posts; title, description and
// category_id are all required.
type CreatePostRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	CategoryID  string `json:"category_id"`
}

// UpdatePostRequest is the body of PUT /api/posts/{id}.
type UpdatePostRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	CategoryID  *string `json:"category_id"`
}

// PostListResponse is the envelope of GET /api/posts.
type PostListResponse struct {
	Data  []*models.PostWithStats `json:"data"`
	Total int                     `json:"total"`
}

// CreateCommentRequest is the body of POST /api/comments.
type CreateCommentRequest struct {
	Text   string `json:"text"`
	PostID string `json:"post_id"`
}

// UpdateCommentRequest is the body of PUT /api/comments/{id}.
type UpdateCommentRequest struct {
	Text string `json:"text"`
}

// CommentListResponse is the envelope of GET /api/comments.
type CommentListResponse struct {
	Data  []*models.CommentWithStats `json:"data"`
	Total int                        `json:"total"`
}

// CategoryRequest is the body of category create and update calls.
type CategoryRequest struct {
	Title string `json:"title"`
}

// CategoryListResponse is the envelope of GET /api/categories.
type CategoryListResponse struct {
	Data  []*models.CategoryWithCount `json:"data"`
	Total int                         `json:"total"`
}

// LikeRequest addresses a reaction: exactly one of PostID/CommentID must be
// set. Liked distinguishes like from dislike on create and update.
type LikeRequest struct {
	Liked     bool    `json:"liked"`
	PostID    *string `json:"post_id"`
	CommentID *string `json:"comment_id"`
}
