package models

import "time"

// Like is a per-user reaction to exactly one post or one comment.
// Liked true is a like, false a dislike.
type Like struct {
	ID        string    `db:"id"         json:"id"`
	PostID    *string   `db:"post_id"    json:"post_id"`
	CommentID *string   `db:"comment_id" json:"comment_id"`
	UserID    string    `db:"user_id"    json:"user_id"`
	Liked     bool      `db:"liked"      json:"liked"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// LikeSummary is the aggregate returned for a single target.
// Liked is nil when the requesting user has no like row for the target.
type LikeSummary struct {
	Likes    int   `json:"likes"`
	Dislikes int   `json:"dislikes"`
	Liked    *bool `json:"liked"`
}
