package article

import "github.com/heartmarshall/conduit-backend/internal/domain"

// EnrichedArticle is an article with its viewer-dependent fields resolved:
// whether the viewer favorited it, the global favorites count, and whether
// the viewer follows the author.
type EnrichedArticle struct {
	domain.Article

	Favorited       bool
	FavoritesCount  int
	AuthorFollowing bool
}

// ListResult is a page of enriched articles. Count is the page length, not
// a global total.
type ListResult struct {
	Articles []EnrichedArticle
	Count    int
}
