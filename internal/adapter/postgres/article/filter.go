package article

import (
	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

// Filter defines parameters for resolving the ordered, paginated set of
// matching article ids. Username filters are resolved to ids by the service
// before the repo is called; a filter that resolved to no user never reaches
// this layer.
type Filter struct {
	// Tag keeps articles carrying the given tag name (case-sensitive).
	Tag *string

	// AuthorID keeps articles written by the given user.
	AuthorID *uuid.UUID

	// FavoritedBy keeps articles favorited by the given user.
	FavoritedBy *uuid.UUID

	// AuthorIDs keeps articles written by any of the given users.
	// Used by the feed; nil means no restriction.
	AuthorIDs []uuid.UUID

	// Limit is the page size. The service clamps it to [1,100] beforehand.
	Limit int

	// Offset is the number of matching articles to skip.
	Offset int
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// idQuery builds the id-set query: ordered by created_at DESC with id as a
// deterministic tie-break, paginated at this stage rather than after
// hydration.
func (f Filter) idQuery() squirrel.SelectBuilder {
	q := psql.Select("a.id").
		From("articles a").
		OrderBy("a.created_at DESC", "a.id").
		Limit(uint64(f.Limit)).
		Offset(uint64(f.Offset))

	if f.Tag != nil {
		q = q.Where(squirrel.Expr(
			`EXISTS (SELECT 1 FROM article_tags at
			         JOIN tags t ON t.id = at.tag_id
			         WHERE at.article_id = a.id AND t.name = ?)`, *f.Tag))
	}
	if f.AuthorID != nil {
		q = q.Where(squirrel.Eq{"a.author_id": *f.AuthorID})
	}
	if f.FavoritedBy != nil {
		q = q.Where(squirrel.Expr(
			`EXISTS (SELECT 1 FROM favorites f
			         WHERE f.article_id = a.id AND f.user_id = ?)`, *f.FavoritedBy))
	}
	if f.AuthorIDs != nil {
		q = q.Where(squirrel.Eq{"a.author_id": f.AuthorIDs})
	}

	return q
}
