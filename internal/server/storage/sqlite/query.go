package sqlite

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/skillsage/backend/internal/server/storage"
)

// Predicates are composed as squirrel conjunctions so that clause text and
// positional arguments are appended in one step and can never drift apart.
// The page query and its COUNT(*) companion share the same predicate value.

// postPredicate builds the WHERE conjunction for a posts listing. The title
// prefix is always present (empty matches everything); category and user
// filters each contribute exactly one conjunct.
func postPredicate(f storage.PostFilter) sq.And {
	pred := sq.And{
		sq.Expr("LOWER(p.title) LIKE LOWER(?) || '%'", f.TitlePrefix),
	}

	if f.CategoryID != nil {
		pred = append(pred, sq.Eq{"p.category_id": *f.CategoryID})
	}
	if f.UserID != nil {
		pred = append(pred, sq.Eq{"p.user_id": *f.UserID})
	}

	return pred
}

// likeColumn maps a target kind onto the reference column of the likes table.
// The column name comes from this fixed switch, never from request data.
func likeColumn(kind storage.TargetKind) string {
	switch kind {
	case storage.CommentTarget:
		return "comment_id"
	default:
		return "post_id"
	}
}

// withLikeStats appends the aggregate columns shared by post and comment
// listings: like/dislike totals and the viewer's own state. The viewer state
// is NULL when the viewer has no like row, which scans into a nil *bool.
func withLikeStats(qb sq.SelectBuilder, viewerID string) sq.SelectBuilder {
	return qb.
		Column("COALESCE(SUM(CASE WHEN l.liked THEN 1 ELSE 0 END), 0) AS likes_count").
		Column("COALESCE(SUM(CASE WHEN NOT l.liked THEN 1 ELSE 0 END), 0) AS dislikes_count").
		Column(sq.Expr("MAX(CASE WHEN l.user_id = ? THEN l.liked END) AS liked", viewerID))
}

// orderByCreatedAt renders the whitelisted sort direction for a listing.
func orderByCreatedAt(alias string, sort storage.SortVariant) string {
	dir := "ASC"
	if sort == storage.SortDesc {
		dir = "DESC"
	}
	return fmt.Sprintf("%s.created_at %s", alias, dir)
}

// listLimit applies the default page size.
func listLimit(limit int) uint64 {
	if limit <= 0 {
		return 10
	}
	return uint64(limit)
}
