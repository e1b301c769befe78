package storage

import "errors"

// Common storage errors
var (
	// ErrUserNotFound indicates that the user was not found in storage
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists indicates that a user with this username already exists
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrPostNotFound indicates that the post was not found
	ErrPostNotFound = errors.New("post not found")

	// ErrCommentNotFound indicates that the comment was not found
	ErrCommentNotFound = errors.New("comment not found")

	// ErrCategoryNotFound indicates that the category was not found
	ErrCategoryNotFound = errors.New("category not found")

	// ErrCategoryAlreadyExists indicates that a category with this title already exists
	ErrCategoryAlreadyExists = errors.New("category already exists")

	// ErrLikeNotFound indicates that the user has no like row for the target
	ErrLikeNotFound = errors.New("like not found")

	// ErrLikeAlreadyExists indicates that the user already reacted to the target
	ErrLikeAlreadyExists = errors.New("like already exists")

	// ErrAmbiguousTarget indicates that a like request named zero or both targets
	ErrAmbiguousTarget = errors.New("exactly one of post_id or comment_id must be set")
)
