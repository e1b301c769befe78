package models

import "time"

// Post represents a blog post. CategoryID is optional.
type Post struct {
	ID          string    `db:"id"          json:"id"`
	UserID      string    `db:"user_id"     json:"user_id"`
	CategoryID  *string   `db:"category_id" json:"category_id"`
	Title       string    `db:"title"       json:"title"`
	Description string    `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at"  json:"created_at"`
}

// PostWithStats is a listing row: the post plus aggregated like counts,
// the requesting user's own like state and the author.
// Liked is nil when the requester has no like row for the post, never false.
type PostWithStats struct {
	Post
	LikesCount    int     `db:"likes_count"    json:"likes_count"`
	DislikesCount int     `db:"dislikes_count" json:"dislikes_count"`
	Liked         *bool   `db:"liked"          json:"liked"`
	User          UserRef `json:"user"`
}

// Comment represents a comment on a post.
type Comment struct {
	ID        string    `db:"id"         json:"id"`
	PostID    string    `db:"post_id"    json:"post_id"`
	UserID    string    `db:"user_id"    json:"user_id"`
	Text      string    `db:"text"       json:"text"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// CommentWithStats mirrors PostWithStats for comments.
type CommentWithStats struct {
	Comment
	LikesCount    int     `db:"likes_count"    json:"likes_count"`
	DislikesCount int     `db:"dislikes_count" json:"dislikes_count"`
	Liked         *bool   `db:"liked"          json:"liked"`
	User          UserRef `json:"user"`
}

// Category groups posts under a unique title.
type Category struct {
	ID        string    `db:"id"         json:"id"`
	UserID    string    `db:"user_id"    json:"user_id"`
	Title     string    `db:"title"      json:"title"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// CategoryWithCount is a listing row with the number of posts in the category.
type CategoryWithCount struct {
	Category
	PostCount int `db:"post_count" json:"post_count"`
}
