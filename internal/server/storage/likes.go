package storage

import (
	"context"

	"github.com/skillsage/backend/internal/models"
)

// TargetKind says whether a like refers to a post or a comment.
type TargetKind int

const (
	PostTarget TargetKind = iota
	CommentTarget
)

// LikeTarget is the tagged reference a like operation acts on. Construct it
// with NewLikeTarget; the zero value is not meaningful.
type LikeTarget struct {
	Kind TargetKind
	ID   string
}

// NewLikeTarget builds a LikeTarget from the two optional ids of a request
// body. Exactly one must be set; zero or both yield ErrAmbiguousTarget.
func NewLikeTarget(postID, commentID *string) (LikeTarget, error) {
	switch {
	case postID != nil && *postID != "" && (commentID == nil || *commentID == ""):
		return LikeTarget{Kind: PostTarget, ID: *postID}, nil
	case commentID != nil && *commentID != "" && (postID == nil || *postID == ""):
		return LikeTarget{Kind: CommentTarget, ID: *commentID}, nil
	default:
		return LikeTarget{}, ErrAmbiguousTarget
	}
}

// LikeStorage defines the interface for like persistence
type LikeStorage interface {
	// CreateLike records userID's reaction to the target.
	// Returns ErrLikeAlreadyExists if the user already reacted to it.
	CreateLike(ctx context.Context, target LikeTarget, userID string, liked bool) error

	// GetLike retrieves userID's like row for the target.
	// Returns ErrLikeNotFound if there is none.
	GetLike(ctx context.Context, target LikeTarget, userID string) (*models.Like, error)

	// GetLikeSummary aggregates likes and dislikes for the target and reports
	// viewerID's own state (nil when the viewer has no row).
	GetLikeSummary(ctx context.Context, target LikeTarget, viewerID string) (*models.LikeSummary, error)

	// UpdateLike flips userID's reaction to the target.
	// Returns ErrLikeNotFound if there is none.
	UpdateLike(ctx context.Context, target LikeTarget, userID string, liked bool) error

	// DeleteLike removes userID's reaction to the target.
	// Returns ErrLikeNotFound if there is none.
	DeleteLike(ctx context.Context, target LikeTarget, userID string) error
}
